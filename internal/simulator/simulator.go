// Package simulator plays batches of hands against the house to estimate
// player equity under a draw policy.
package simulator

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/siamdeck/pokdeng-go/engine"
	"github.com/siamdeck/pokdeng-go/internal/randutil"
	"github.com/siamdeck/pokdeng-go/internal/statistics"
	"github.com/siamdeck/pokdeng-go/pokdeng"
)

// DefaultStandThreshold is the folk draw policy: take a third card while
// the score is below 4.
const DefaultStandThreshold = 4

// DefaultOddsTrials is the Monte Carlo sample size for hand equity.
const DefaultOddsTrials = 10000

const playerID = "player"

// Config holds configuration for running simulations.
type Config struct {
	Hands       int
	Workers     int
	Seed        int64
	PlayerStand int // player draws while score is below this and holds no pok
	DealerStand int // dealer draws while score is below this and holds no pok
	Rules       pokdeng.Rules
	Logger      *log.Logger
}

// Simulator runs hand simulations.
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration. Zero-value
// workers, thresholds, rules and logger fall back to sensible defaults.
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.PlayerStand <= 0 {
		config.PlayerStand = DefaultStandThreshold
	}
	if config.DealerStand <= 0 {
		config.DealerStand = DefaultStandThreshold
	}
	if config.Rules == (pokdeng.Rules{}) {
		config.Rules = pokdeng.DefaultRules()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run executes the simulation and returns aggregated results. Hand seeds
// derive from the base seed plus the hand index, so results do not depend
// on the worker count.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	cfg := s.config
	if cfg.Hands <= 0 {
		return nil, fmt.Errorf("hand count must be positive, got %d", cfg.Hands)
	}
	workers := cfg.Workers
	if workers > cfg.Hands {
		workers = cfg.Hands
	}

	cfg.Logger.Debug("starting simulation",
		"hands", cfg.Hands,
		"workers", workers,
		"seed", cfg.Seed,
		"player_stand", cfg.PlayerStand,
		"dealer_stand", cfg.DealerStand)

	results := make([]*statistics.Statistics, workers)
	chunk := (cfg.Hands + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, cfg.Hands)
		local := &statistics.Statistics{}
		results[w] = local

		g.Go(func() error {
			for hand := start; hand < end; hand++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				record, err := s.playHand(cfg.Seed + int64(hand))
				if err != nil {
					return fmt.Errorf("hand %d: %w", hand+1, err)
				}
				local.Add(record)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge in worker order so repeated runs aggregate identically.
	stats := &statistics.Statistics{}
	for _, local := range results {
		stats.Merge(local)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// playHand plays one seeded hand under the configured draw policy.
func (s *Simulator) playHand(handSeed int64) (statistics.HandRecord, error) {
	cfg := s.config

	round, err := engine.StartRound([]string{playerID},
		engine.WithSeed(handSeed),
		engine.WithRules(cfg.Rules))
	if err != nil {
		return statistics.HandRecord{}, err
	}

	playerDealt, err := round.Result(playerID)
	if err != nil {
		return statistics.HandRecord{}, err
	}
	dealerDealt, err := round.Result(engine.DealerID)
	if err != nil {
		return statistics.HandRecord{}, err
	}

	// A dealt pok on either side ends the hand immediately.
	drew := false
	if !dealerDealt.Pok && !playerDealt.Pok {
		if playerDealt.Score < cfg.PlayerStand {
			if _, err := round.Draw(playerID); err != nil {
				return statistics.HandRecord{}, err
			}
			drew = true
		}
		if dealerDealt.Score < cfg.DealerStand {
			if _, err := round.Draw(engine.DealerID); err != nil {
				return statistics.HandRecord{}, err
			}
		}
	}

	settlements, err := round.Resolve()
	if err != nil {
		return statistics.HandRecord{}, err
	}
	st := settlements[playerID]

	net := pokdeng.Payout(st.Outcome, st.Multiplier, decimal.NewFromInt(1), cfg.Rules)
	return statistics.HandRecord{
		Net:       net.InexactFloat64(),
		Seed:      handSeed,
		Outcome:   st.Outcome,
		Drew:      drew,
		PlayerPok: playerDealt.Pok,
		DealerPok: dealerDealt.Pok,
		Special:   st.PlayerResult.Special,
		Deng:      st.Multiplier,
	}, nil
}

// OddsConfig holds configuration for hand equity estimation.
type OddsConfig struct {
	Trials      int
	Seed        int64
	DealerStand int
	Rules       pokdeng.Rules
}

// OddsResult summarises how a fixed hand fares against the dealer's range.
type OddsResult struct {
	PlayerResult pokdeng.HandResult
	Trials       int
	Wins         int
	Losses       int
	Pushes       int
	SumNet       float64
}

// WinRate returns the fraction of trials won.
func (r OddsResult) WinRate() float64 { return r.rate(r.Wins) }

// LossRate returns the fraction of trials lost.
func (r OddsResult) LossRate() float64 { return r.rate(r.Losses) }

// PushRate returns the fraction of trials pushed.
func (r OddsResult) PushRate() float64 { return r.rate(r.Pushes) }

// MeanNet returns the mean net result per trial at a unit stake.
func (r OddsResult) MeanNet() float64 {
	if r.Trials == 0 {
		return 0
	}
	return r.SumNet / float64(r.Trials)
}

func (r OddsResult) rate(count int) float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(count) / float64(r.Trials)
}

// Odds Monte-Carlos the dealer's range against a fixed player hand. The
// player stands pat on the given cards; the dealer plays the threshold
// policy unless either side holds a pok.
func Odds(cards []pokdeng.Card, cfg OddsConfig) (OddsResult, error) {
	if cfg.Trials <= 0 {
		cfg.Trials = DefaultOddsTrials
	}
	if cfg.DealerStand <= 0 {
		cfg.DealerStand = DefaultStandThreshold
	}
	if cfg.Rules == (pokdeng.Rules{}) {
		cfg.Rules = pokdeng.DefaultRules()
	}
	if err := cfg.Rules.Validate(); err != nil {
		return OddsResult{}, err
	}

	player, err := pokdeng.Evaluate(cards, cfg.Rules)
	if err != nil {
		return OddsResult{}, err
	}

	rest := remainingCards(cards)
	if len(rest) != pokdeng.DeckSize-len(cards) {
		return OddsResult{}, fmt.Errorf("hand contains duplicate cards: %s", pokdeng.FormatCards(cards))
	}

	rng := randutil.New(cfg.Seed)
	result := OddsResult{PlayerResult: player, Trials: cfg.Trials}
	stake := decimal.NewFromInt(1)

	for trial := 0; trial < cfg.Trials; trial++ {
		// Partial Fisher-Yates: the dealer needs at most three cards.
		for i := 0; i < 3; i++ {
			j := i + rng.IntN(len(rest)-i)
			rest[i], rest[j] = rest[j], rest[i]
		}

		dealer, err := pokdeng.Evaluate(rest[:2], cfg.Rules)
		if err != nil {
			return OddsResult{}, err
		}
		if !dealer.Pok && !player.Pok && dealer.Score < cfg.DealerStand {
			dealer, err = pokdeng.Evaluate(rest[:3], cfg.Rules)
			if err != nil {
				return OddsResult{}, err
			}
		}

		outcome := pokdeng.Compare(player, dealer)
		var winnerDeng int
		switch outcome {
		case pokdeng.Win:
			result.Wins++
			winnerDeng = player.Deng
		case pokdeng.Lose:
			result.Losses++
			winnerDeng = dealer.Deng
		case pokdeng.Push:
			result.Pushes++
		}
		result.SumNet += pokdeng.Payout(outcome, winnerDeng, stake, cfg.Rules).InexactFloat64()
	}

	return result, nil
}

// remainingCards returns a full deck minus the given cards.
func remainingCards(exclude []pokdeng.Card) []pokdeng.Card {
	used := make(map[pokdeng.Card]bool, len(exclude))
	for _, card := range exclude {
		used[card] = true
	}

	rest := make([]pokdeng.Card, 0, pokdeng.DeckSize-len(exclude))
	for suit := pokdeng.Spades; suit <= pokdeng.Clubs; suit++ {
		for rank := pokdeng.Two; rank <= pokdeng.Ace; rank++ {
			card := pokdeng.NewCard(rank, suit)
			if !used[card] {
				rest = append(rest, card)
			}
		}
	}
	return rest
}
