// Package engine drives Pok Deng rounds and sessions: it owns the round
// state machine, per-session chip bankrolls, and the registry of live
// sessions. The rules themselves live in package pokdeng; the engine
// enforces when they may be applied.
package engine

import "errors"

var (
	// ErrInvalidState is returned when an operation is not legal in the
	// round's current state, including any mutation of a resolved round.
	ErrInvalidState = errors.New("engine: operation not valid in current round state")

	// ErrPokAlreadyPresent is returned when a participant whose two-card
	// hand is a Pok asks to draw.
	ErrPokAlreadyPresent = errors.New("engine: hand is a pok, drawing is not allowed")

	// ErrAlreadyDrawn is returned on a second draw attempt by the same
	// participant.
	ErrAlreadyDrawn = errors.New("engine: participant has already drawn")

	// ErrUnknownParticipant is returned for a participant ID that is not
	// part of the round.
	ErrUnknownParticipant = errors.New("engine: unknown participant")

	// ErrDuplicateParticipant is returned when a round is started with a
	// repeated or reserved participant ID.
	ErrDuplicateParticipant = errors.New("engine: duplicate participant id")

	// ErrNoParticipants is returned when a round is started with no players.
	ErrNoParticipants = errors.New("engine: at least one player required")

	// ErrInvalidBet is returned for a bet that is not positive, exceeds the
	// player's chips, or falls outside the table limits.
	ErrInvalidBet = errors.New("engine: invalid bet")

	// ErrBetRequired is returned when a round is dealt before every player
	// has placed a bet.
	ErrBetRequired = errors.New("engine: all players must bet before the deal")

	// ErrGameOver is returned when a busted player tries to keep playing.
	ErrGameOver = errors.New("engine: player is out of chips")

	// ErrRoundInProgress is returned when a session operation requires the
	// previous round to be resolved first.
	ErrRoundInProgress = errors.New("engine: round already in progress")

	// ErrNoRound is returned when a session operation needs an active round.
	ErrNoRound = errors.New("engine: no active round")

	// ErrUnknownSession is returned by the manager for an unknown session ID.
	ErrUnknownSession = errors.New("engine: unknown session")
)
