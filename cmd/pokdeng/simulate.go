package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/siamdeck/pokdeng-go/cmd/pokdeng/shared"
	"github.com/siamdeck/pokdeng-go/config"
	"github.com/siamdeck/pokdeng-go/internal/simulator"
)

// SimulateCmd plays dealer-vs-player hands and reports aggregate results
type SimulateCmd struct {
	Hands       int    `kong:"default='100000',help='Number of hands to simulate'"`
	Workers     int    `kong:"default='0',help='Worker goroutines (0 = one per CPU)'"`
	Seed        int64  `kong:"default='0',help='Deterministic seed (0 for random)'"`
	PlayerStand int    `kong:"default='4',help='Player draws on two-card scores below this'"`
	DealerStand int    `kong:"default='4',help='Dealer draws on two-card scores below this'"`
	Config      string `kong:"default='pokdeng.hcl',help='Path to an HCL table config'"`
	Debug       bool   `kong:"help='Enable debug logging'"`
	LogJSON     bool   `kong:"help='Structured JSON logs'"`
}

func (c *SimulateCmd) Run() error {
	var logger *log.Logger
	if c.LogJSON {
		logger = shared.SetupStructuredLogger(c.Debug)
	} else {
		logger = shared.SetupLogger(c.Debug)
	}

	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Info("starting simulation",
		"hands", c.Hands,
		"workers", c.Workers,
		"seed", c.Seed,
		"player_stand", c.PlayerStand,
		"dealer_stand", c.DealerStand)

	ctx := shared.SetupSignalHandler(logger)

	sim := simulator.New(simulator.Config{
		Hands:       c.Hands,
		Workers:     c.Workers,
		Seed:        c.Seed,
		PlayerStand: c.PlayerStand,
		DealerStand: c.DealerStand,
		Rules:       cfg.ToRules(),
		Logger:      logger,
	})

	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	logger.Info("simulation complete",
		"hands", stats.Hands,
		"elapsed", elapsed.Round(time.Millisecond),
		"hands_per_sec", fmt.Sprintf("%.0f", float64(stats.Hands)/elapsed.Seconds()))

	fmt.Println(simulator.Summary(stats))
	return nil
}
