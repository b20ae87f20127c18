package pokdeng

import "fmt"

// Rules holds the house payout multipliers. The evaluator stamps each
// HandResult with the deng for its shape; Payout applies the winner's deng
// and the loss multiplier. Zero values are invalid; use DefaultRules as the
// base and override fields as needed.
type Rules struct {
	// PokDeng is paid on any Pok win. Pok hands never earn shape bonuses,
	// so a Pok that happens to be a pair still pays PokDeng.
	PokDeng int

	// Two-card bonuses (non-Pok hands only).
	PairDeng       int
	SuitedPairDeng int

	// Three-card bonuses.
	StraightDeng      int
	FlushDeng         int
	TongDeng          int
	StraightFlushDeng int

	// LossMultiplier scales the stake lost by a beaten player. Standard
	// house rules keep losses flat at 1 regardless of the dealer's hand.
	LossMultiplier int
}

// DefaultRules returns the standard Pok Deng multiplier table.
func DefaultRules() Rules {
	return Rules{
		PokDeng:           1,
		PairDeng:          2,
		SuitedPairDeng:    3,
		StraightDeng:      3,
		FlushDeng:         3,
		TongDeng:          5,
		StraightFlushDeng: 5,
		LossMultiplier:    1,
	}
}

// Validate checks that every multiplier is at least 1.
func (r Rules) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"pok_deng", r.PokDeng},
		{"pair_deng", r.PairDeng},
		{"suited_pair_deng", r.SuitedPairDeng},
		{"straight_deng", r.StraightDeng},
		{"flush_deng", r.FlushDeng},
		{"tong_deng", r.TongDeng},
		{"straight_flush_deng", r.StraightFlushDeng},
		{"loss_multiplier", r.LossMultiplier},
	}
	for _, f := range fields {
		if f.value < 1 {
			return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalidRules, f.name, f.value)
		}
	}
	return nil
}

// dengFor returns the multiplier for a hand's special shape. Pok hands are
// handled separately by the evaluator.
func (r Rules) dengFor(special Special, suited bool) int {
	switch special {
	case Pair:
		if suited {
			return r.SuitedPairDeng
		}
		return r.PairDeng
	case Flush:
		return r.FlushDeng
	case Straight:
		return r.StraightDeng
	case Tong:
		return r.TongDeng
	case StraightFlush:
		return r.StraightFlushDeng
	default:
		return 1
	}
}
