package pokdeng

import (
	"errors"
	"testing"
)

func mustEvaluate(t *testing.T, notation string) HandResult {
	t.Helper()
	hr, err := Evaluate(MustParseCards(notation), DefaultRules())
	if err != nil {
		t.Fatalf("Evaluate(%q) error: %v", notation, err)
	}
	return hr
}

func TestEvaluateTwoCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cards    string
		score    int
		pok      bool
		pokValue int
		special  Special
		deng     int
	}{
		{name: "pok nine", cards: "9sKd", score: 9, pok: true, pokValue: 9, deng: 1},
		{name: "pok eight", cards: "8cKh", score: 8, pok: true, pokValue: 8, deng: 1},
		{name: "pok nine from ace", cards: "8dAh", score: 9, pok: true, pokValue: 9, deng: 1},
		{name: "pok eight pair pays pok rate", cards: "4c4h", score: 8, pok: true, pokValue: 8, deng: 1},
		{name: "pair", cards: "5c5d", score: 0, special: Pair, deng: 2},
		{name: "face pair", cards: "KsKh", score: 0, special: Pair, deng: 2},
		{name: "plain seven", cards: "3s4h", score: 7, deng: 1},
		{name: "zero from faces", cards: "JsQh", score: 0, deng: 1},
		{name: "wraps past ten", cards: "7s6h", score: 3, deng: 1},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			hr := mustEvaluate(t, tc.cards)
			if hr.Score != tc.score {
				t.Errorf("Score = %d, want %d", hr.Score, tc.score)
			}
			if hr.Pok != tc.pok {
				t.Errorf("Pok = %v, want %v", hr.Pok, tc.pok)
			}
			if hr.PokValue != tc.pokValue {
				t.Errorf("PokValue = %d, want %d", hr.PokValue, tc.pokValue)
			}
			if hr.Special != tc.special {
				t.Errorf("Special = %s, want %s", hr.Special, tc.special)
			}
			if hr.Deng != tc.deng {
				t.Errorf("Deng = %d, want %d", hr.Deng, tc.deng)
			}
		})
	}
}

func TestEvaluateThreeCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		cards   string
		score   int
		special Special
		deng    int
	}{
		{name: "straight flush", cards: "3h4h5h", score: 2, special: StraightFlush, deng: 5},
		{name: "tong", cards: "7s7h7d", score: 1, special: Tong, deng: 5},
		{name: "straight mixed suits", cards: "4s5h6d", score: 5, special: Straight, deng: 3},
		{name: "ace low straight", cards: "Ah2s3d", score: 6, special: Straight, deng: 3},
		{name: "ace high straight", cards: "QdKsAh", score: 1, special: Straight, deng: 3},
		{name: "ace high straight flush", cards: "QhKhAh", score: 1, special: StraightFlush, deng: 5},
		{name: "no wraparound straight", cards: "KsAh2d", score: 3, special: None, deng: 1},
		{name: "flush non sequential", cards: "2h7hJh", score: 9, special: Flush, deng: 3},
		{name: "face tong", cards: "KsKhKd", score: 0, special: Tong, deng: 5},
		{name: "plain three cards", cards: "2s5hJd", score: 7, special: None, deng: 1},
		{name: "three card nine is not pok", cards: "4s5dKc", score: 9, special: None, deng: 1},
		{name: "three card eight is not pok", cards: "3s5dJc", score: 8, special: None, deng: 1},
		{name: "face straight order independent", cards: "AhKsQd", score: 1, special: Straight, deng: 3},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			hr := mustEvaluate(t, tc.cards)
			if hr.Score != tc.score {
				t.Errorf("Score = %d, want %d", hr.Score, tc.score)
			}
			if hr.Pok {
				t.Error("three-card hand reported Pok")
			}
			if hr.Special != tc.special {
				t.Errorf("Special = %s, want %s", hr.Special, tc.special)
			}
			if hr.Deng != tc.deng {
				t.Errorf("Deng = %d, want %d", hr.Deng, tc.deng)
			}
		})
	}
}

// Exhaustive sweep of all 1326 two-card hands: score stays in range and
// Pok holds exactly for scores of eight and nine.
func TestEvaluateAllTwoCardHands(t *testing.T) {
	t.Parallel()
	cards := allCards()
	rules := DefaultRules()

	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			hr, err := Evaluate([]Card{cards[i], cards[j]}, rules)
			if err != nil {
				t.Fatalf("Evaluate(%s %s) error: %v", cards[i], cards[j], err)
			}
			if hr.Score < 0 || hr.Score > 9 {
				t.Fatalf("score out of range for %s %s: %d", cards[i], cards[j], hr.Score)
			}
			wantPok := hr.Score >= 8
			if hr.Pok != wantPok {
				t.Fatalf("Pok = %v for %s %s (score %d)", hr.Pok, cards[i], cards[j], hr.Score)
			}
			if hr.Pok && hr.PokValue != hr.Score {
				t.Fatalf("PokValue %d != score %d for %s %s", hr.PokValue, hr.Score, cards[i], cards[j])
			}
			if hr.Deng < 1 {
				t.Fatalf("deng below 1 for %s %s", cards[i], cards[j])
			}
		}
	}
}

// Exhaustive sweep of all 22100 three-card hands: never Pok, score in range.
func TestEvaluateAllThreeCardHands(t *testing.T) {
	t.Parallel()
	cards := allCards()
	rules := DefaultRules()

	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			for k := j + 1; k < len(cards); k++ {
				hr, err := Evaluate([]Card{cards[i], cards[j], cards[k]}, rules)
				if err != nil {
					t.Fatalf("Evaluate error: %v", err)
				}
				if hr.Score < 0 || hr.Score > 9 {
					t.Fatalf("score out of range: %d", hr.Score)
				}
				if hr.Pok {
					t.Fatalf("three-card hand %s %s %s reported Pok", cards[i], cards[j], cards[k])
				}
				if hr.Special == Pair {
					t.Fatalf("three-card hand %s %s %s reported Pair", cards[i], cards[j], cards[k])
				}
			}
		}
	}
}

func TestEvaluateInvalidHandSize(t *testing.T) {
	t.Parallel()
	rules := DefaultRules()
	for _, n := range []int{0, 1, 4, 5} {
		cards := allCards()[:n]
		if _, err := Evaluate(cards, rules); !errors.Is(err, ErrInvalidHandSize) {
			t.Errorf("Evaluate with %d cards error = %v, want ErrInvalidHandSize", n, err)
		}
	}
}

func TestEvaluateCustomRules(t *testing.T) {
	t.Parallel()
	rules := DefaultRules()
	rules.PokDeng = 2
	rules.PairDeng = 4
	rules.StraightFlushDeng = 7

	hr, err := Evaluate(MustParseCards("9sKd"), rules)
	if err != nil {
		t.Fatal(err)
	}
	if hr.Deng != 2 {
		t.Errorf("pok deng = %d, want 2", hr.Deng)
	}

	hr, err = Evaluate(MustParseCards("5c5d"), rules)
	if err != nil {
		t.Fatal(err)
	}
	if hr.Deng != 4 {
		t.Errorf("pair deng = %d, want 4", hr.Deng)
	}

	hr, err = Evaluate(MustParseCards("3h4h5h"), rules)
	if err != nil {
		t.Fatal(err)
	}
	if hr.Deng != 7 {
		t.Errorf("straight flush deng = %d, want 7", hr.Deng)
	}
}

// A same-rank same-suit pair cannot come out of one deck, but hands are
// plain values and multi-deck tables produce them, so the evaluator prices
// them.
func TestEvaluateSuitedPair(t *testing.T) {
	t.Parallel()
	hr, err := Evaluate(MustParseCards("5s5s"), DefaultRules())
	if err != nil {
		t.Fatal(err)
	}
	if hr.Special != Pair || hr.Deng != 3 {
		t.Errorf("suited pair = %s x%d, want Pair x3", hr.Special, hr.Deng)
	}
}

func TestEvaluateCopiesCards(t *testing.T) {
	t.Parallel()
	cards := MustParseCards("9sKd")
	hr, err := Evaluate(cards, DefaultRules())
	if err != nil {
		t.Fatal(err)
	}

	cards[0] = NewCard(Two, Clubs)
	if hr.Cards[0] != NewCard(Nine, Spades) {
		t.Error("HandResult shares storage with the caller's slice")
	}
}

func TestHandResultString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cards string
		want  string
	}{
		{"9sKd", "Pok 9"},
		{"4c4h", "Pok 8"},
		{"5c5d", "0 (Pair x2)"},
		{"3h4h5h", "2 (Straight Flush x5)"},
		{"3s4h", "7"},
	}

	for _, tc := range tests {
		if got := mustEvaluate(t, tc.cards).String(); got != tc.want {
			t.Errorf("String(%s) = %q, want %q", tc.cards, got, tc.want)
		}
	}
}

func allCards() []Card {
	cards := make([]Card, 0, 52)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

func BenchmarkEvaluateTwoCard(b *testing.B) {
	cards := MustParseCards("5c5d")
	rules := DefaultRules()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Evaluate(cards, rules)
	}
}

func BenchmarkEvaluateThreeCard(b *testing.B) {
	cards := MustParseCards("3h4h5h")
	rules := DefaultRules()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Evaluate(cards, rules)
	}
}
