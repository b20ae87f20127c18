package pokdeng

import "errors"

var (
	// ErrInsufficientCards is returned when a deal asks for more cards than
	// the deck has left.
	ErrInsufficientCards = errors.New("pokdeng: insufficient cards in deck")

	// ErrInvalidHandSize is returned when evaluating a hand that is not
	// exactly two or three cards.
	ErrInvalidHandSize = errors.New("pokdeng: hand must hold two or three cards")

	// ErrInvalidRules is returned when a rules value fails validation.
	ErrInvalidRules = errors.New("pokdeng: invalid rules")
)
