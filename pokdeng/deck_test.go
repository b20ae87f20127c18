package pokdeng

import (
	"errors"
	rand "math/rand/v2"
	"testing"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestDeckDeterministicForSeed(t *testing.T) {
	t.Parallel()
	a := NewDeck(testRNG(42))
	b := NewDeck(testRNG(42))

	cardsA, err := a.Deal(52)
	if err != nil {
		t.Fatalf("Deal(52) error: %v", err)
	}
	cardsB, err := b.Deal(52)
	if err != nil {
		t.Fatalf("Deal(52) error: %v", err)
	}

	for i := range cardsA {
		if cardsA[i] != cardsB[i] {
			t.Fatalf("decks with equal seeds diverged at card %d: %v != %v", i, cardsA[i], cardsB[i])
		}
	}
}

func TestDeckDealsAll52Unique(t *testing.T) {
	t.Parallel()
	deck := NewDeck(testRNG(7))

	seen := make(map[Card]bool)
	cards, err := deck.Deal(52)
	if err != nil {
		t.Fatalf("Deal(52) error: %v", err)
	}
	for _, c := range cards {
		if seen[c] {
			t.Errorf("Dealt duplicate card: %s", c)
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Errorf("Expected 52 unique cards, got %d", len(seen))
	}

	if _, err := deck.DealOne(); !errors.Is(err, ErrInsufficientCards) {
		t.Errorf("DealOne from empty deck error = %v, want ErrInsufficientCards", err)
	}
}

func TestDeckRemainingAfterHands(t *testing.T) {
	t.Parallel()
	deck := NewDeck(testRNG(3))

	// Four players and a dealer at two cards each.
	for i := 0; i < 5; i++ {
		if _, err := deck.Deal(2); err != nil {
			t.Fatalf("Deal(2) error: %v", err)
		}
	}
	if got := deck.Remaining(); got != 52-5*2 {
		t.Errorf("Remaining() = %d, want %d", got, 52-5*2)
	}
}

func TestDeckDealInsufficient(t *testing.T) {
	t.Parallel()
	deck := NewDeck(testRNG(11))

	if _, err := deck.Deal(53); !errors.Is(err, ErrInsufficientCards) {
		t.Fatalf("Deal(53) error = %v, want ErrInsufficientCards", err)
	}
	// Failed deal must not consume cards.
	if got := deck.Remaining(); got != 52 {
		t.Errorf("Remaining() after failed deal = %d, want 52", got)
	}

	if _, err := deck.Deal(50); err != nil {
		t.Fatalf("Deal(50) error: %v", err)
	}
	if _, err := deck.Deal(3); !errors.Is(err, ErrInsufficientCards) {
		t.Errorf("Deal(3) with 2 left error = %v, want ErrInsufficientCards", err)
	}
	if got := deck.Remaining(); got != 2 {
		t.Errorf("Remaining() = %d, want 2", got)
	}
}

func TestDeckDealtSlicesDoNotAlias(t *testing.T) {
	t.Parallel()
	a := NewDeck(testRNG(99))
	b := NewDeck(testRNG(99))

	handA, err := a.Deal(2)
	if err != nil {
		t.Fatalf("Deal(2) error: %v", err)
	}
	if _, err := b.Deal(2); err != nil {
		t.Fatalf("Deal(2) error: %v", err)
	}

	// Appending a third card to a dealt hand must not disturb the deck.
	_ = append(handA, NewCard(Ace, Spades))

	nextA, err := a.DealOne()
	if err != nil {
		t.Fatalf("DealOne error: %v", err)
	}
	nextB, err := b.DealOne()
	if err != nil {
		t.Fatalf("DealOne error: %v", err)
	}
	if nextA != nextB {
		t.Errorf("append to dealt hand corrupted the deck: next card %s, want %s", nextA, nextB)
	}
}

func TestDeckShuffleResets(t *testing.T) {
	t.Parallel()
	deck := NewDeck(testRNG(5))
	if _, err := deck.Deal(10); err != nil {
		t.Fatalf("Deal(10) error: %v", err)
	}

	deck.Shuffle()
	if got := deck.Remaining(); got != 52 {
		t.Errorf("Remaining() after Shuffle = %d, want 52", got)
	}
}

func TestStackedDeckDealsInOrder(t *testing.T) {
	t.Parallel()
	stacked := MustParseCards("9sKd 8cKh 5c5d")
	deck := NewStackedDeck(stacked...)

	dealt, err := deck.Deal(6)
	if err != nil {
		t.Fatalf("Deal(6) error: %v", err)
	}
	for i, c := range dealt {
		if c != stacked[i] {
			t.Errorf("card %d = %s, want %s", i, c, stacked[i])
		}
	}

	// The tail is the rest of the pack: still 52 unique cards in total.
	rest, err := deck.Deal(46)
	if err != nil {
		t.Fatalf("Deal(46) error: %v", err)
	}
	seen := make(map[Card]bool)
	for _, c := range append(dealt, rest...) {
		if seen[c] {
			t.Errorf("duplicate card in stacked deck: %s", c)
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Errorf("stacked deck holds %d unique cards, want 52", len(seen))
	}
}

func TestStackedDeckDuplicatePanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("NewStackedDeck should panic on duplicates")
		}
	}()
	NewStackedDeck(MustParseCards("AsAs")...)
}

func TestNewDeckNilRNGPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("NewDeck(nil) should panic")
		}
	}()
	NewDeck(nil)
}

func BenchmarkNewDeck(b *testing.B) {
	rng := testRNG(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = NewDeck(rng)
	}
}
