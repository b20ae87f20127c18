package pokdeng

import (
	rand "math/rand/v2"
)

// DeckSize is the number of cards in a single deck.
const DeckSize = 52

// Deck represents a standard 52-card deck with a draw cursor. A deck is
// single-use within a round: it shuffles once on construction and is never
// reshuffled mid-round, so dealt cards can never repeat.
type Deck struct {
	cards [DeckSize]Card
	next  int
	rng   *rand.Rand
}

// NewDeck creates a new shuffled deck. The canonical pre-shuffle order is
// suit-major (Spades, Hearts, Diamonds, Clubs), rank ascending (2 through
// Ace) within each suit, so a given rng seed always yields the same deal
// sequence. The rng must not be nil; the engine owns seeding policy.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("pokdeng: NewDeck requires a non-nil rng")
	}

	d := &Deck{rng: rng}

	i := 0
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}

	d.Shuffle()
	return d
}

// NewStackedDeck returns an unshuffled deck that deals the given cards
// first and the rest of the pack in canonical order after them. It exists
// so tests can script exact deals; it panics on duplicate cards. A stacked
// deck has no rng and cannot be reshuffled.
func NewStackedDeck(first ...Card) *Deck {
	if len(first) > DeckSize {
		panic("pokdeng: stacked deck longer than 52 cards")
	}

	d := &Deck{}
	used := make(map[Card]bool, len(first))
	i := 0
	for _, c := range first {
		if used[c] {
			panic("pokdeng: duplicate card in stacked deck: " + c.String())
		}
		used[c] = true
		d.cards[i] = c
		i++
	}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			c := NewCard(rank, suit)
			if used[c] {
				continue
			}
			d.cards[i] = c
			i++
		}
	}
	return d
}

// Shuffle reshuffles all 52 cards using Fisher-Yates and resets the cursor.
func (d *Deck) Shuffle() {
	if d.rng == nil {
		panic("pokdeng: deck has no rng")
	}
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the deck. It returns ErrInsufficientCards when
// fewer than n cards remain; the deck is not consumed on failure. The
// returned slice has no spare capacity, so appending to it cannot touch
// undealt cards.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || d.next+n > len(d.cards) {
		return nil, ErrInsufficientCards
	}
	cards := d.cards[d.next : d.next+n : d.next+n]
	d.next += n
	return cards, nil
}

// DealOne deals a single card from the deck.
func (d *Deck) DealOne() (Card, error) {
	if d.next >= len(d.cards) {
		return Card{}, ErrInsufficientCards
	}
	card := d.cards[d.next]
	d.next++
	return card, nil
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
