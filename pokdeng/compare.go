package pokdeng

// Outcome is the result of a hand comparison from the player's perspective.
type Outcome int

const (
	Push Outcome = iota
	Win
	Lose
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case Win:
		return "Win"
	case Lose:
		return "Lose"
	case Push:
		return "Push"
	default:
		return "Unknown"
	}
}

// Compare ranks a player's hand against the dealer's and returns the
// player's outcome. The ladder is strict:
//
//  1. Pok beats any non-Pok hand. Between two Poks the higher PokValue
//     wins; equal PokValue is a Push with no further tiebreak.
//  2. Higher score wins.
//  3. On equal score the higher Special wins (StraightFlush > Tong >
//     Straight > Flush > Pair > None).
//  4. Otherwise Push.
//
// Compare is antisymmetric: swapping the arguments maps Win to Lose and
// leaves Push fixed.
func Compare(player, dealer HandResult) Outcome {
	if player.Pok || dealer.Pok {
		switch {
		case player.PokValue > dealer.PokValue:
			return Win
		case player.PokValue < dealer.PokValue:
			return Lose
		default:
			return Push
		}
	}

	switch {
	case player.Score > dealer.Score:
		return Win
	case player.Score < dealer.Score:
		return Lose
	}

	switch {
	case player.Special > dealer.Special:
		return Win
	case player.Special < dealer.Special:
		return Lose
	default:
		return Push
	}
}
