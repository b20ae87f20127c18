package engine

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siamdeck/pokdeng-go/internal/randutil"
	"github.com/siamdeck/pokdeng-go/pokdeng"
)

// Session is a single table playing consecutive rounds against the house.
// It owns the per-player chip bankrolls, validates bets before each deal,
// settles payouts into the bankrolls on resolve, and tracks busted players.
// All methods are safe for concurrent use; rounds within a session run one
// at a time.
type Session struct {
	mu sync.Mutex

	id     string
	logger *log.Logger
	clock  quartz.Clock
	rng    *rand.Rand
	rules  pokdeng.Rules

	startingChips decimal.Decimal
	minBet        decimal.Decimal
	maxBet        decimal.Decimal // zero means no table cap

	players []string
	chips   map[string]decimal.Decimal
	bets    map[string]decimal.Decimal
	round   *Round

	handsPlayed uint64
	createdAt   time.Time
	lastActive  time.Time
}

// SessionOption configures a session during creation.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	id            string
	logger        *log.Logger
	clock         quartz.Clock
	rng           *rand.Rand
	rules         pokdeng.Rules
	startingChips decimal.Decimal
	minBet        decimal.Decimal
	maxBet        decimal.Decimal
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) SessionOption {
	return func(c *sessionConfig) {
		c.id = id
	}
}

// WithLogger attaches a logger. Sessions are silent by default.
func WithLogger(logger *log.Logger) SessionOption {
	return func(c *sessionConfig) {
		c.logger = logger
	}
}

// WithClock injects the session's time source so tests can drive idle
// expiry deterministically.
func WithClock(clock quartz.Clock) SessionOption {
	return func(c *sessionConfig) {
		c.clock = clock
	}
}

// WithSessionSeed seeds the session RNG; every deal in the session draws
// from this stream, so a seeded session replays identically.
func WithSessionSeed(seed int64) SessionOption {
	return func(c *sessionConfig) {
		c.rng = randutil.New(seed)
	}
}

// WithSessionRules sets the house rules applied to every round.
func WithSessionRules(rules pokdeng.Rules) SessionOption {
	return func(c *sessionConfig) {
		c.rules = rules
	}
}

// WithStartingChips sets each player's opening bankroll. Default is 100.
func WithStartingChips(chips decimal.Decimal) SessionOption {
	return func(c *sessionConfig) {
		c.startingChips = chips
	}
}

// WithBetLimits sets the table's bet bounds. A zero max means no cap.
func WithBetLimits(minBet, maxBet decimal.Decimal) SessionOption {
	return func(c *sessionConfig) {
		c.minBet = minBet
		c.maxBet = maxBet
	}
}

// NewSession creates a table for the given players, each starting on the
// configured bankroll.
func NewSession(playerIDs []string, opts ...SessionOption) (*Session, error) {
	if len(playerIDs) == 0 {
		return nil, ErrNoParticipants
	}

	cfg := &sessionConfig{
		rules:         pokdeng.DefaultRules(),
		startingChips: decimal.NewFromInt(100),
		minBet:        decimal.NewFromInt(1),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.rng == nil {
		cfg.rng = randutil.NewFromTime()
	}
	if err := cfg.rules.Validate(); err != nil {
		return nil, err
	}
	if cfg.startingChips.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: starting chips must be positive", ErrInvalidBet)
	}

	now := cfg.clock.Now()
	s := &Session{
		id:            cfg.id,
		logger:        cfg.logger.WithPrefix("session").With("session", cfg.id),
		clock:         cfg.clock,
		rng:           cfg.rng,
		rules:         cfg.rules,
		startingChips: cfg.startingChips,
		minBet:        cfg.minBet,
		maxBet:        cfg.maxBet,
		players:       append([]string(nil), playerIDs...),
		chips:         make(map[string]decimal.Decimal, len(playerIDs)),
		bets:          make(map[string]decimal.Decimal, len(playerIDs)),
		createdAt:     now,
		lastActive:    now,
	}

	for _, id := range playerIDs {
		if id == "" || id == DealerID {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateParticipant, id)
		}
		if _, exists := s.chips[id]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateParticipant, id)
		}
		s.chips[id] = cfg.startingChips
	}

	s.logger.Info("session created", "players", len(playerIDs), "chips", cfg.startingChips)
	return s, nil
}

// PlaceBet stakes chips for the next deal. Bets must be positive, within
// the table limits, and covered by the player's bankroll; a player whose
// bankroll has reached zero gets ErrGameOver until the session is reset.
// A bet can be replaced until the cards are dealt.
func (s *Session) PlaceBet(playerID string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	chips, ok := s.chips[playerID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParticipant, playerID)
	}
	if s.roundActive() {
		return ErrRoundInProgress
	}
	if chips.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: %q", ErrGameOver, playerID)
	}

	switch {
	case amount.LessThanOrEqual(decimal.Zero):
		return fmt.Errorf("%w: bet must be positive, got %s", ErrInvalidBet, amount)
	case amount.GreaterThan(chips):
		return fmt.Errorf("%w: bet %s exceeds chips %s", ErrInvalidBet, amount, chips)
	case amount.LessThan(s.minBet):
		return fmt.Errorf("%w: bet %s below table minimum %s", ErrInvalidBet, amount, s.minBet)
	case !s.maxBet.IsZero() && amount.GreaterThan(s.maxBet):
		return fmt.Errorf("%w: bet %s above table maximum %s", ErrInvalidBet, amount, s.maxBet)
	}

	s.bets[playerID] = amount
	return nil
}

// Deal locks in the bets and starts a new round. Every player still holding
// chips must have bet; busted players sit out. The previous round must be
// resolved first.
func (s *Session) Deal() (*Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.roundActive() {
		return nil, ErrRoundInProgress
	}

	participants := make([]string, 0, len(s.players))
	for _, id := range s.players {
		if s.chips[id].LessThanOrEqual(decimal.Zero) {
			continue
		}
		if _, ok := s.bets[id]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrBetRequired, id)
		}
		participants = append(participants, id)
	}
	if len(participants) == 0 {
		return nil, ErrGameOver
	}

	round, err := StartRound(participants, WithRand(s.rng), WithRules(s.rules))
	if err != nil {
		return nil, err
	}
	s.round = round

	s.logger.Debug("round dealt", "players", len(participants), "remaining", round.Remaining())
	return round, nil
}

// Draw deals one extra card to the participant in the active round. The
// dealer draws through DealerID.
func (s *Session) Draw(participantID string) (pokdeng.HandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.round == nil {
		return pokdeng.HandResult{}, ErrNoRound
	}
	hr, err := s.round.Draw(participantID)
	if err != nil {
		return pokdeng.HandResult{}, err
	}
	s.logger.Debug("drew third card", "participant", participantID, "hand", hr)
	return hr, nil
}

// Resolve settles the active round into the bankrolls and returns each
// player's settlement.
func (s *Session) Resolve() (map[string]Settlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.round == nil {
		return nil, ErrNoRound
	}
	settlements, err := s.round.Resolve()
	if err != nil {
		return nil, err
	}

	for id, st := range settlements {
		stake, ok := s.bets[id]
		if !ok {
			continue
		}
		payout := pokdeng.Payout(st.Outcome, st.Multiplier, stake, s.rules)
		s.chips[id] = s.chips[id].Add(payout)
		s.logger.Info("settled",
			"player", id,
			"outcome", st.Outcome,
			"hand", st.PlayerResult,
			"dealer", st.DealerResult,
			"payout", payout,
			"chips", s.chips[id])
	}

	s.handsPlayed++
	s.bets = make(map[string]decimal.Decimal, len(s.players))
	return settlements, nil
}

// Reset restores every bankroll to the starting amount and clears any
// round in progress. This is how a busted table starts over.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	for _, id := range s.players {
		s.chips[id] = s.startingChips
	}
	s.bets = make(map[string]decimal.Decimal, len(s.players))
	s.round = nil
	s.logger.Info("session reset", "chips", s.startingChips)
}

// roundActive reports whether a round is dealt and not yet resolved.
// Callers must hold s.mu.
func (s *Session) roundActive() bool {
	return s.round != nil && s.round.State() != StateResolved
}

func (s *Session) touch() {
	s.lastActive = s.clock.Now()
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Players returns the table's player IDs in seating order.
func (s *Session) Players() []string {
	return append([]string(nil), s.players...)
}

// Chips returns a player's current bankroll.
func (s *Session) Chips(playerID string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chips, ok := s.chips[playerID]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrUnknownParticipant, playerID)
	}
	return chips, nil
}

// Busted reports whether a player's bankroll has run out.
func (s *Session) Busted(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	chips, ok := s.chips[playerID]
	return ok && chips.LessThanOrEqual(decimal.Zero)
}

// Bet returns the player's staked bet for the pending deal, if any.
func (s *Session) Bet(playerID string) (decimal.Decimal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bet, ok := s.bets[playerID]
	return bet, ok
}

// Round returns the most recent round, resolved or not, or nil before the
// first deal.
func (s *Session) Round() *Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// Rules returns the session's house rules.
func (s *Session) Rules() pokdeng.Rules {
	return s.rules
}

// HandsPlayed returns the number of resolved rounds.
func (s *Session) HandsPlayed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handsPlayed
}

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// LastActive returns the time of the session's most recent operation.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}
