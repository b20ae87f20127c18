package pokdeng

import "github.com/shopspring/decimal"

// Payout converts a comparison outcome into a signed stake delta for the
// player. winnerDeng is the deng multiplier of whichever hand won; it is
// consulted only on a Win. Losses are scaled by the house loss multiplier
// (flat 1 under default rules, whatever the dealer held) and pushes pay
// nothing. Pure function, no rounding: deng multipliers are integers.
func Payout(outcome Outcome, winnerDeng int, stake decimal.Decimal, rules Rules) decimal.Decimal {
	switch outcome {
	case Win:
		return stake.Mul(decimal.NewFromInt(int64(winnerDeng)))
	case Lose:
		return stake.Neg().Mul(decimal.NewFromInt(int64(rules.LossMultiplier)))
	default:
		return decimal.Zero
	}
}
