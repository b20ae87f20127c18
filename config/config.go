// Package config loads table and house-rule settings from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"github.com/siamdeck/pokdeng-go/engine"
	"github.com/siamdeck/pokdeng-go/pokdeng"
)

// Config represents the complete table configuration.
type Config struct {
	Table *TableSettings `hcl:"table,block"`
	Rules *RulesSettings `hcl:"rules,block"`
}

// TableSettings contains bankroll and bet-limit configuration.
type TableSettings struct {
	StartingChips float64  `hcl:"starting_chips,optional"`
	MinBet        float64  `hcl:"min_bet,optional"`
	MaxBet        float64  `hcl:"max_bet,optional"` // zero means no cap
	Seats         []string `hcl:"seats,optional"`
}

// RulesSettings contains the payout multipliers for each hand shape.
type RulesSettings struct {
	PokDeng           int `hcl:"pok_deng,optional"`
	PairDeng          int `hcl:"pair_deng,optional"`
	SuitedPairDeng    int `hcl:"suited_pair_deng,optional"`
	StraightDeng      int `hcl:"straight_deng,optional"`
	FlushDeng         int `hcl:"flush_deng,optional"`
	TongDeng          int `hcl:"tong_deng,optional"`
	StraightFlushDeng int `hcl:"straight_flush_deng,optional"`
	LossMultiplier    int `hcl:"loss_multiplier,optional"`
}

// Default returns the stock configuration: one seat, 100 chips, and the
// traditional multipliers.
func Default() *Config {
	rules := pokdeng.DefaultRules()
	return &Config{
		Table: &TableSettings{
			StartingChips: 100,
			MinBet:        1,
			MaxBet:        0,
			Seats:         []string{"player"},
		},
		Rules: &RulesSettings{
			PokDeng:           rules.PokDeng,
			PairDeng:          rules.PairDeng,
			SuitedPairDeng:    rules.SuitedPairDeng,
			StraightDeng:      rules.StraightDeng,
			FlushDeng:         rules.FlushDeng,
			TongDeng:          rules.TongDeng,
			StraightFlushDeng: rules.StraightFlushDeng,
			LossMultiplier:    rules.LossMultiplier,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; a present file only needs to set what it wants to change.
func Load(filename string) (*Config, error) {
	// Check if file exists
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := Default()
	if config.Table == nil {
		config.Table = defaults.Table
	} else {
		if config.Table.StartingChips == 0 {
			config.Table.StartingChips = defaults.Table.StartingChips
		}
		if config.Table.MinBet == 0 {
			config.Table.MinBet = defaults.Table.MinBet
		}
		if len(config.Table.Seats) == 0 {
			config.Table.Seats = defaults.Table.Seats
		}
	}
	if config.Rules == nil {
		config.Rules = defaults.Rules
	} else {
		fillRules(config.Rules, defaults.Rules)
	}

	return &config, nil
}

func fillRules(rules, defaults *RulesSettings) {
	if rules.PokDeng == 0 {
		rules.PokDeng = defaults.PokDeng
	}
	if rules.PairDeng == 0 {
		rules.PairDeng = defaults.PairDeng
	}
	if rules.SuitedPairDeng == 0 {
		rules.SuitedPairDeng = defaults.SuitedPairDeng
	}
	if rules.StraightDeng == 0 {
		rules.StraightDeng = defaults.StraightDeng
	}
	if rules.FlushDeng == 0 {
		rules.FlushDeng = defaults.FlushDeng
	}
	if rules.TongDeng == 0 {
		rules.TongDeng = defaults.TongDeng
	}
	if rules.StraightFlushDeng == 0 {
		rules.StraightFlushDeng = defaults.StraightFlushDeng
	}
	if rules.LossMultiplier == 0 {
		rules.LossMultiplier = defaults.LossMultiplier
	}
}

// Validate validates the table configuration.
func (c *Config) Validate() error {
	if c.Table == nil || c.Rules == nil {
		return fmt.Errorf("configuration is incomplete")
	}
	if c.Table.StartingChips <= 0 {
		return fmt.Errorf("starting_chips must be positive, got %v", c.Table.StartingChips)
	}
	if c.Table.MinBet <= 0 {
		return fmt.Errorf("min_bet must be positive, got %v", c.Table.MinBet)
	}
	if c.Table.MaxBet != 0 && c.Table.MaxBet < c.Table.MinBet {
		return fmt.Errorf("max_bet %v is below min_bet %v", c.Table.MaxBet, c.Table.MinBet)
	}
	if c.Table.MinBet > c.Table.StartingChips {
		return fmt.Errorf("min_bet %v exceeds starting_chips %v", c.Table.MinBet, c.Table.StartingChips)
	}

	if len(c.Table.Seats) == 0 {
		return fmt.Errorf("at least one seat must be configured")
	}
	seen := make(map[string]bool, len(c.Table.Seats))
	for _, seat := range c.Table.Seats {
		if seat == "" || seat == engine.DealerID {
			return fmt.Errorf("invalid seat name %q", seat)
		}
		if seen[seat] {
			return fmt.Errorf("duplicate seat name %q", seat)
		}
		seen[seat] = true
	}

	return c.ToRules().Validate()
}

// ToRules converts the rules block into the engine's rule set.
func (c *Config) ToRules() pokdeng.Rules {
	if c.Rules == nil {
		return pokdeng.DefaultRules()
	}
	return pokdeng.Rules{
		PokDeng:           c.Rules.PokDeng,
		PairDeng:          c.Rules.PairDeng,
		SuitedPairDeng:    c.Rules.SuitedPairDeng,
		StraightDeng:      c.Rules.StraightDeng,
		FlushDeng:         c.Rules.FlushDeng,
		TongDeng:          c.Rules.TongDeng,
		StraightFlushDeng: c.Rules.StraightFlushDeng,
		LossMultiplier:    c.Rules.LossMultiplier,
	}
}

// Seats returns the configured seat names.
func (c *Config) Seats() []string {
	if c.Table == nil {
		return nil
	}
	return append([]string(nil), c.Table.Seats...)
}

// SessionOptions translates the configuration into session options.
func (c *Config) SessionOptions() []engine.SessionOption {
	opts := []engine.SessionOption{
		engine.WithSessionRules(c.ToRules()),
	}
	if c.Table != nil {
		opts = append(opts,
			engine.WithStartingChips(decimal.NewFromFloat(c.Table.StartingChips)),
			engine.WithBetLimits(
				decimal.NewFromFloat(c.Table.MinBet),
				decimal.NewFromFloat(c.Table.MaxBet),
			),
		)
	}
	return opts
}
