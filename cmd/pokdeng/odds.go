package main

import (
	"fmt"
	"time"

	"github.com/siamdeck/pokdeng-go/config"
	"github.com/siamdeck/pokdeng-go/internal/simulator"
	"github.com/siamdeck/pokdeng-go/pokdeng"
)

// OddsCmd estimates win/lose/push equity for a dealt hand
type OddsCmd struct {
	Hand        string `arg:"" help:"Hand in rank-suit notation, e.g. 9sKd or 3h4h5h"`
	Trials      int    `kong:"default='10000',help='Monte Carlo trials'"`
	Seed        int64  `kong:"default='0',help='Deterministic seed (0 for random)'"`
	DealerStand int    `kong:"default='4',help='Dealer draws on two-card scores below this'"`
	Config      string `kong:"default='pokdeng.hcl',help='Path to an HCL table config'"`
}

func (c *OddsCmd) Run() error {
	cards, err := pokdeng.ParseCards(c.Hand)
	if err != nil {
		return err
	}

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}

	result, err := simulator.Odds(cards, simulator.OddsConfig{
		Trials:      c.Trials,
		Seed:        c.Seed,
		DealerStand: c.DealerStand,
		Rules:       cfg.ToRules(),
	})
	if err != nil {
		return err
	}

	fmt.Println(simulator.OddsSummary(result))
	return nil
}
