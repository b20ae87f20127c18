package pokdeng

import "fmt"

// Special enumerates the bonus hand shapes. Declaration order is comparison
// order: on equal score the higher Special wins, so StraightFlush must stay
// on top and None at the bottom.
type Special int

const (
	None Special = iota
	Pair
	Flush
	Straight
	Tong
	StraightFlush
)

// String returns a human-readable shape description.
func (s Special) String() string {
	switch s {
	case None:
		return "None"
	case Pair:
		return "Pair"
	case Flush:
		return "Flush"
	case Straight:
		return "Straight"
	case Tong:
		return "Tong"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandResult is the immutable evaluation of a hand. It is recomputed from
// scratch whenever the hand changes (a drawn third card voids any two-card
// bonus), never patched in place.
type HandResult struct {
	Cards    []Card
	Score    int // 0..9, sum of card points mod 10
	Pok      bool
	PokValue int // 8 or 9 when Pok, else 0
	Special  Special
	Deng     int // payout multiplier earned by this hand when it wins
}

// String renders the result for logs and UIs, e.g. "Pok 9", "2 (Straight Flush x5)".
func (hr HandResult) String() string {
	if hr.Pok {
		return fmt.Sprintf("Pok %d", hr.PokValue)
	}
	if hr.Special != None {
		return fmt.Sprintf("%d (%s x%d)", hr.Score, hr.Special, hr.Deng)
	}
	return fmt.Sprintf("%d", hr.Score)
}

// Evaluate scores a two- or three-card hand under the given rules.
//
// Score is the sum of card points mod 10. Pok is a two-card 8 or 9; a
// three-card hand is never Pok whatever it scores. Bonus shapes are
// mutually exclusive by hand size: pairs exist only in two-card hands,
// straights, flushes, tongs and straight flushes only in three-card hands.
// A Pok hand earns the fixed Pok multiplier and no shape bonus, so a Pok
// that is also a pair pays PokDeng, not PairDeng.
func Evaluate(cards []Card, rules Rules) (HandResult, error) {
	n := len(cards)
	if n != 2 && n != 3 {
		return HandResult{}, fmt.Errorf("%w: got %d", ErrInvalidHandSize, n)
	}

	score := 0
	for _, c := range cards {
		score += c.Points()
	}
	score %= 10

	hr := HandResult{
		Cards: append([]Card(nil), cards...),
		Score: score,
		Deng:  1,
	}

	if n == 2 {
		if score >= 8 {
			hr.Pok = true
			hr.PokValue = score
			hr.Deng = rules.PokDeng
			return hr, nil
		}
		if cards[0].Rank == cards[1].Rank {
			hr.Special = Pair
			hr.Deng = rules.dengFor(Pair, cards[0].Suit == cards[1].Suit)
		}
		return hr, nil
	}

	straight := isStraight3(cards[0].Rank, cards[1].Rank, cards[2].Rank)
	flush := cards[0].Suit == cards[1].Suit && cards[1].Suit == cards[2].Suit
	tong := cards[0].Rank == cards[1].Rank && cards[1].Rank == cards[2].Rank

	switch {
	case straight && flush:
		hr.Special = StraightFlush
	case tong:
		hr.Special = Tong
	case straight:
		hr.Special = Straight
	case flush:
		hr.Special = Flush
	}
	hr.Deng = rules.dengFor(hr.Special, false)

	return hr, nil
}

// isStraight3 reports whether three ranks form a run. The ace plays both
// ends: A-2-3 and Q-K-A are straights, K-A-2 is not.
func isStraight3(a, b, c Rank) bool {
	lo, mid, hi := sort3(int(a), int(b), int(c))
	if lo+1 == mid && mid+1 == hi {
		return true
	}
	// Retry with the ace counted low.
	if hi == int(Ace) {
		lo, mid, hi = sort3(1, lo, mid)
		return lo+1 == mid && mid+1 == hi
	}
	return false
}

func sort3(a, b, c int) (int, int, int) {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return a, b, c
}
