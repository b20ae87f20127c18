package engine

import (
	"fmt"
	rand "math/rand/v2"
	"sync"

	"github.com/siamdeck/pokdeng-go/internal/randutil"
	"github.com/siamdeck/pokdeng-go/pokdeng"
)

// DealerID is the reserved participant ID for the dealer's hand. The dealer
// plays under the same rules as everyone else: two cards, an optional single
// draw, and no draw on a Pok.
const DealerID = "dealer"

// State is a round lifecycle stage. Transitions only move forward:
// Created through Dealt and Drawing to Evaluated and Resolved.
type State int

const (
	StateCreated State = iota
	StateDealt
	StateDrawing
	StateEvaluated
	StateResolved
)

// String returns the string representation of a state
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateDealt:
		return "dealt"
	case StateDrawing:
		return "drawing"
	case StateEvaluated:
		return "evaluated"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Settlement is the resolved result for one player. Multiplier is the deng
// of whichever hand won the comparison: the player's own on a Win, the
// dealer's on a Lose (informational there, losses stay flat under default
// rules), and zero on a Push.
type Settlement struct {
	PlayerResult pokdeng.HandResult
	DealerResult pokdeng.HandResult
	Outcome      pokdeng.Outcome
	Multiplier   int
}

// Round is a single hand of Pok Deng from deal to settlement. Each round
// owns its deck and RNG, so concurrent rounds never contend; a Round's own
// methods are safe for concurrent use.
type Round struct {
	mu      sync.Mutex
	state   State
	deck    *pokdeng.Deck
	rules   pokdeng.Rules
	players []string
	hands   map[string][]pokdeng.Card
	drawn   map[string]bool
}

// RoundOption configures a round during creation.
type RoundOption func(*roundConfig)

type roundConfig struct {
	rng   *rand.Rand
	rules pokdeng.Rules
	deck  *pokdeng.Deck
}

// WithSeed makes the round's shuffle reproducible.
func WithSeed(seed int64) RoundOption {
	return func(c *roundConfig) {
		c.rng = randutil.New(seed)
	}
}

// WithRand supplies the round's randomness source directly. Sessions use
// this to hand every round a stream from their own seeded RNG.
func WithRand(rng *rand.Rand) RoundOption {
	return func(c *roundConfig) {
		c.rng = rng
	}
}

// WithRules overrides the default house rules.
func WithRules(rules pokdeng.Rules) RoundOption {
	return func(c *roundConfig) {
		c.rules = rules
	}
}

// WithDeck sets a specific pre-shuffled deck, overriding the RNG.
func WithDeck(deck *pokdeng.Deck) RoundOption {
	return func(c *roundConfig) {
		c.deck = deck
	}
}

// StartRound shuffles a fresh deck and deals two cards to every player and
// then two to the dealer, leaving the round in the dealt state. Player IDs
// must be unique, non-empty, and must not claim the reserved dealer ID.
// Deal order follows the id slice, dealer last, so a fixed seed always
// produces the same hands.
func StartRound(playerIDs []string, opts ...RoundOption) (*Round, error) {
	if len(playerIDs) == 0 {
		return nil, ErrNoParticipants
	}

	cfg := &roundConfig{rules: pokdeng.DefaultRules()}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.rules.Validate(); err != nil {
		return nil, err
	}

	deck := cfg.deck
	if deck == nil {
		rng := cfg.rng
		if rng == nil {
			rng = randutil.NewFromTime()
		}
		deck = pokdeng.NewDeck(rng)
	}

	r := &Round{
		state:   StateCreated,
		deck:    deck,
		rules:   cfg.rules,
		players: append([]string(nil), playerIDs...),
		hands:   make(map[string][]pokdeng.Card, len(playerIDs)+1),
		drawn:   make(map[string]bool),
	}

	for _, id := range playerIDs {
		if id == "" || id == DealerID {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateParticipant, id)
		}
		if _, exists := r.hands[id]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateParticipant, id)
		}
		cards, err := deck.Deal(2)
		if err != nil {
			return nil, fmt.Errorf("dealing to %s: %w", id, err)
		}
		r.hands[id] = cards
	}

	cards, err := deck.Deal(2)
	if err != nil {
		return nil, fmt.Errorf("dealing to dealer: %w", err)
	}
	r.hands[DealerID] = cards

	r.state = StateDealt
	return r, nil
}

// State returns the round's current lifecycle stage.
func (r *Round) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Players returns the player IDs in deal order, dealer excluded.
func (r *Round) Players() []string {
	return append([]string(nil), r.players...)
}

// Hand returns a copy of a participant's current cards.
func (r *Round) Hand(participantID string) ([]pokdeng.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hand, ok := r.hands[participantID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParticipant, participantID)
	}
	return append([]pokdeng.Card(nil), hand...), nil
}

// Result evaluates a participant's hand as it currently stands. It is a
// read-only view: drawing later reevaluates from scratch.
func (r *Round) Result(participantID string) (pokdeng.HandResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resultLocked(participantID)
}

func (r *Round) resultLocked(participantID string) (pokdeng.HandResult, error) {
	hand, ok := r.hands[participantID]
	if !ok {
		return pokdeng.HandResult{}, fmt.Errorf("%w: %q", ErrUnknownParticipant, participantID)
	}
	return pokdeng.Evaluate(hand, r.rules)
}

// CanDraw reports whether a draw by the participant would be accepted,
// returning the error the draw would fail with.
func (r *Round) CanDraw(participantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.canDrawLocked(participantID)
}

func (r *Round) canDrawLocked(participantID string) error {
	if r.state != StateDealt && r.state != StateDrawing {
		return fmt.Errorf("%w: round is %s", ErrInvalidState, r.state)
	}

	hand, ok := r.hands[participantID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParticipant, participantID)
	}
	if r.drawn[participantID] || len(hand) == 3 {
		return fmt.Errorf("%w: %q", ErrAlreadyDrawn, participantID)
	}

	hr, err := pokdeng.Evaluate(hand, r.rules)
	if err != nil {
		return err
	}
	// Only the participant's own Pok blocks the draw. A dealer Pok never
	// stops a player from drawing, and vice versa.
	if hr.Pok {
		return fmt.Errorf("%w: %q holds pok %d", ErrPokAlreadyPresent, participantID, hr.PokValue)
	}
	return nil
}

// Draw deals exactly one extra card to the participant's hand and returns
// the three-card hand reevaluated from scratch: any two-card bonus is gone
// and only three-card shapes can apply. The dealer draws through the same
// path under DealerID.
func (r *Round) Draw(participantID string) (pokdeng.HandResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.canDrawLocked(participantID); err != nil {
		return pokdeng.HandResult{}, err
	}

	card, err := r.deck.DealOne()
	if err != nil {
		return pokdeng.HandResult{}, fmt.Errorf("drawing for %s: %w", participantID, err)
	}

	r.hands[participantID] = append(r.hands[participantID], card)
	r.drawn[participantID] = true
	r.state = StateDrawing

	return r.resultLocked(participantID)
}

// Resolve evaluates every hand as it stands, compares each player against
// the dealer, and moves the round to its terminal state. Participants who
// never drew stand on their two cards. Any later mutation, including a
// second resolve, fails with ErrInvalidState.
func (r *Round) Resolve() (map[string]Settlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateDealt && r.state != StateDrawing {
		return nil, fmt.Errorf("%w: round is %s", ErrInvalidState, r.state)
	}

	results := make(map[string]pokdeng.HandResult, len(r.hands))
	for id := range r.hands {
		hr, err := r.resultLocked(id)
		if err != nil {
			return nil, err
		}
		results[id] = hr
	}
	r.state = StateEvaluated

	dealer := results[DealerID]
	settlements := make(map[string]Settlement, len(r.players))
	for _, id := range r.players {
		player := results[id]
		outcome := pokdeng.Compare(player, dealer)

		var multiplier int
		switch outcome {
		case pokdeng.Win:
			multiplier = player.Deng
		case pokdeng.Lose:
			multiplier = dealer.Deng
		}

		settlements[id] = Settlement{
			PlayerResult: player,
			DealerResult: dealer,
			Outcome:      outcome,
			Multiplier:   multiplier,
		}
	}

	r.state = StateResolved
	return settlements, nil
}

// Remaining returns the number of undealt cards in the round's deck.
func (r *Round) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deck.Remaining()
}

// Rules returns the house rules the round was dealt under.
func (r *Round) Rules() pokdeng.Rules {
	return r.rules
}
