package main

import (
	"fmt"

	"github.com/siamdeck/pokdeng-go/config"
)

// RulesCmd prints the active table settings and multiplier schedule
type RulesCmd struct {
	Config string `kong:"default='pokdeng.hcl',help='Path to an HCL table config'"`
}

func (c *RulesCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	rules := cfg.ToRules()

	fmt.Println("Table")
	fmt.Printf("  seats            %v\n", cfg.Seats())
	fmt.Printf("  starting chips   %v\n", cfg.Table.StartingChips)
	fmt.Printf("  min bet          %v\n", cfg.Table.MinBet)
	if cfg.Table.MaxBet > 0 {
		fmt.Printf("  max bet          %v\n", cfg.Table.MaxBet)
	} else {
		fmt.Println("  max bet          none")
	}

	fmt.Println("\nDeng multipliers")
	fmt.Printf("  pok              x%d\n", rules.PokDeng)
	fmt.Printf("  pair             x%d\n", rules.PairDeng)
	fmt.Printf("  suited pair      x%d\n", rules.SuitedPairDeng)
	fmt.Printf("  straight         x%d\n", rules.StraightDeng)
	fmt.Printf("  flush            x%d\n", rules.FlushDeng)
	fmt.Printf("  tong             x%d\n", rules.TongDeng)
	fmt.Printf("  straight flush   x%d\n", rules.StraightFlushDeng)
	fmt.Printf("  loss multiplier  x%d\n", rules.LossMultiplier)

	return nil
}
