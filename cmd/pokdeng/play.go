package main

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/siamdeck/pokdeng-go/cmd/pokdeng/shared"
	"github.com/siamdeck/pokdeng-go/config"
	"github.com/siamdeck/pokdeng-go/engine"
	"github.com/siamdeck/pokdeng-go/internal/tui"
)

// PlayCmd runs an interactive table against the house dealer
type PlayCmd struct {
	Config      string `kong:"default='pokdeng.hcl',help='Path to an HCL table config'"`
	Seat        string `kong:"default='player',help='Seat to play from'"`
	Seed        *int64 `kong:"help='Deterministic shuffle seed (optional)'"`
	DealerStand int    `kong:"default='4',help='Dealer draws on two-card scores below this'"`
	Debug       bool   `kong:"help='Enable debug logging'"`
	LogFile     string `kong:"default='pokdeng.log',help='Log file (keeps the table clean)'"`
}

func (c *PlayCmd) Run() error {
	// Log lines on stderr would tear the table, so they go to a file.
	logger, logFile, err := shared.SetupFileLogger(c.LogFile, c.Debug)
	if err != nil {
		return err
	}
	defer logFile.Close()

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	seats := cfg.Seats()
	if !slices.Contains(seats, c.Seat) {
		return fmt.Errorf("seat %q is not at this table (seats: %v)", c.Seat, seats)
	}

	opts := cfg.SessionOptions()
	opts = append(opts, engine.WithLogger(logger))
	if c.Seed != nil {
		opts = append(opts, engine.WithSessionSeed(*c.Seed))
	}

	session, err := engine.NewSession(seats, opts...)
	if err != nil {
		return err
	}

	logger.Info("starting table", "config", c.Config, "seat", c.Seat)

	program := tea.NewProgram(tui.New(session, c.Seat, c.DealerStand, logger), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
