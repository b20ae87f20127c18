package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// SessionSummary holds lightweight metadata for listings.
type SessionSummary struct {
	ID          string    `json:"id"`
	Players     []string  `json:"players"`
	HandsPlayed uint64    `json:"hands_played"`
	CreatedAt   time.Time `json:"created_at"`
	LastActive  time.Time `json:"last_active"`
}

// Manager tracks live sessions. The first created session becomes the
// default, which lets single-table callers skip carrying an ID around.
type Manager struct {
	logger *log.Logger
	clock  quartz.Clock

	mu               sync.RWMutex
	sessions         map[string]*Session
	defaultSessionID string
}

// NewManager constructs an empty session manager. The clock is shared with
// every session it creates so tests can drive idle expiry.
func NewManager(logger *log.Logger, clock quartz.Clock) *Manager {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Manager{
		logger:   logger.WithPrefix("manager"),
		clock:    clock,
		sessions: make(map[string]*Session),
	}
}

// Create builds and registers a new session. The manager's clock and logger
// are applied before any caller options, so options can still override them.
func (m *Manager) Create(playerIDs []string, opts ...SessionOption) (*Session, error) {
	merged := append([]SessionOption{WithClock(m.clock), WithLogger(m.logger)}, opts...)
	session, err := NewSession(playerIDs, merged...)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.ID()] = session
	if m.defaultSessionID == "" {
		m.defaultSessionID = session.ID()
	}
	m.logger.Info("session registered", "session", session.ID(), "players", len(playerIDs))
	return session, nil
}

// Get retrieves a session by ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSession, id)
	}
	return session, nil
}

// Default returns the default session, if any.
func (m *Manager) Default() (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[m.defaultSessionID]
	return session, ok
}

// Delete removes a session by ID.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	if m.defaultSessionID == id {
		m.defaultSessionID = ""
		for newID := range m.sessions {
			m.defaultSessionID = newID
			break
		}
	}
	m.logger.Info("session deleted", "session", id)
	return true
}

// List returns a snapshot of live sessions.
func (m *Manager) List() []SessionSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summaries := make([]SessionSummary, 0, len(m.sessions))
	for _, s := range m.sessions {
		summaries = append(summaries, SessionSummary{
			ID:          s.ID(),
			Players:     s.Players(),
			HandsPlayed: s.HandsPlayed(),
			CreatedAt:   s.CreatedAt(),
			LastActive:  s.LastActive(),
		})
	}
	return summaries
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// PruneIdle deletes sessions whose last activity is older than maxIdle and
// returns how many were removed.
func (m *Manager) PruneIdle(maxIdle time.Duration) int {
	cutoff := m.clock.Now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()

	pruned := 0
	for id, s := range m.sessions {
		if s.LastActive().After(cutoff) {
			continue
		}
		delete(m.sessions, id)
		pruned++
		if m.defaultSessionID == id {
			m.defaultSessionID = ""
		}
		m.logger.Info("pruned idle session", "session", id)
	}
	if m.defaultSessionID == "" {
		for newID := range m.sessions {
			m.defaultSessionID = newID
			break
		}
	}
	return pruned
}
