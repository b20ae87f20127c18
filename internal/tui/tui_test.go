package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siamdeck/pokdeng-go/engine"
	"github.com/siamdeck/pokdeng-go/internal/simulator"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests
}

func newTestModel(t *testing.T, seed int64) (*Model, *engine.Session) {
	t.Helper()

	session, err := engine.NewSession([]string{"player"},
		engine.WithLogger(testLogger()),
		engine.WithSessionSeed(seed),
	)
	require.NoError(t, err)

	return New(session, "player", 0, testLogger()), session
}

// finishHand plays the current hand to settlement. A dealt pok settles
// during the deal, so there may be nothing left to decide.
func finishHand(t *testing.T, m *Model) {
	t.Helper()

	if m.phase == phaseDeciding {
		m.handleCommand("stand")
	}
	require.Equal(t, phaseSettled, m.phase)
}

func TestNewAppliesDefaults(t *testing.T) {
	m, _ := newTestModel(t, 42)

	assert.Equal(t, simulator.DefaultStandThreshold, m.dealerStand)
	assert.True(t, m.input.Focused())
	assert.NotEmpty(t, m.History())

	session, err := engine.NewSession([]string{"player"}, engine.WithLogger(testLogger()))
	require.NoError(t, err)

	custom := New(session, "player", 6, nil)
	assert.Equal(t, 6, custom.dealerStand)
	assert.NotNil(t, custom.logger)
}

func TestModelPlaysAHand(t *testing.T) {
	m, session := newTestModel(t, 42)

	m.handleCommand("bet 10")
	require.Empty(t, m.status)
	finishHand(t, m)

	assert.Equal(t, uint64(1), session.HandsPlayed())
	_, pending := session.Bet("player")
	assert.False(t, pending, "settled hands should not leave a bet behind")
	assert.True(t, m.lastBet.Equal(decimal.NewFromInt(10)))

	log := strings.Join(m.History(), "\n")
	assert.Contains(t, log, "Hand 1")
	assert.Contains(t, log, "You are dealt")
	assert.Contains(t, log, "Dealer shows")
	assert.Contains(t, log, "Chips:")
}

func TestModelDrawCommand(t *testing.T) {
	m, session := newTestModel(t, 7)

	m.handleCommand("bet 5")
	require.Empty(t, m.status)

	// A dealt pok on either side ends the hand before any decision.
	if m.phase != phaseDeciding {
		require.Equal(t, phaseSettled, m.phase)
		return
	}

	round := session.Round()
	require.NotNil(t, round)
	if round.CanDraw("player") != nil {
		m.handleCommand("stand")
		require.Equal(t, phaseSettled, m.phase)
		return
	}

	m.handleCommand("draw")
	require.Equal(t, phaseSettled, m.phase)

	hand, err := round.Hand("player")
	require.NoError(t, err)
	assert.Len(t, hand, 3)
	assert.Contains(t, strings.Join(m.History(), "\n"), "You draw")
}

func TestModelRejectsBadBets(t *testing.T) {
	m, session := newTestModel(t, 42)

	tests := []struct {
		name  string
		input string
	}{
		{"not a number", "bet lots"},
		{"missing amount", "bet"},
		{"negative", "bet -5"},
		{"zero", "0"},
		{"exceeds chips", "bet 5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.handleCommand(tt.input)
			assert.NotEmpty(t, m.status)
			assert.Equal(t, phaseBetting, m.phase)
		})
	}

	assert.Equal(t, uint64(0), session.HandsPlayed())
}

func TestModelBareAmountBets(t *testing.T) {
	m, session := newTestModel(t, 11)

	m.handleCommand("25")
	require.Empty(t, m.status)

	assert.NotEqual(t, phaseBetting, m.phase)
	require.NotNil(t, session.Round())
	assert.True(t, m.lastBet.Equal(decimal.NewFromInt(25)))
}

func TestModelEmptyEnterRebets(t *testing.T) {
	m, session := newTestModel(t, 42)

	m.handleCommand("bet 10")
	finishHand(t, m)
	require.Equal(t, uint64(1), session.HandsPlayed())

	m.handleCommand("")
	require.Empty(t, m.status)
	finishHand(t, m)

	assert.Equal(t, uint64(2), session.HandsPlayed())
	assert.True(t, m.lastBet.Equal(decimal.NewFromInt(10)))
}

func TestModelDecisionErrors(t *testing.T) {
	m, _ := newTestModel(t, 42)
	m.phase = phaseDeciding

	m.handleCommand("")
	assert.Equal(t, "draw or stand?", m.status)

	m.handleCommand("flip")
	assert.Contains(t, m.status, "not an option")
	assert.Equal(t, phaseDeciding, m.phase)
}

func TestModelGameOverPrompts(t *testing.T) {
	m, _ := newTestModel(t, 42)
	m.phase = phaseGameOver

	m.handleCommand("bet 10")
	assert.Contains(t, m.status, "out of chips")
	assert.Equal(t, phaseGameOver, m.phase)

	m.handleCommand("reset")
	assert.Equal(t, phaseBetting, m.phase)
}

func TestModelResetRestoresChips(t *testing.T) {
	m, session := newTestModel(t, 42)

	m.handleCommand("bet 10")
	finishHand(t, m)

	m.handleCommand("reset")
	assert.Equal(t, phaseBetting, m.phase)

	chips, err := session.Chips("player")
	require.NoError(t, err)
	assert.True(t, chips.Equal(decimal.NewFromInt(100)), "chips = %s", chips)
}

func TestModelQuitCommands(t *testing.T) {
	for _, cmd := range []string{"quit", "exit", "q"} {
		t.Run(cmd, func(t *testing.T) {
			m, _ := newTestModel(t, 42)
			m.handleCommand(cmd)
			assert.True(t, m.quitting)
		})
	}
}

func TestModelHelpCommand(t *testing.T) {
	m, _ := newTestModel(t, 42)

	before := len(m.History())
	m.handleCommand("help")

	history := m.History()
	assert.Greater(t, len(history), before)
	assert.Contains(t, strings.Join(history, "\n"), "bet <amount>")
}

func TestModelViewRenders(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	m, _ := newTestModel(t, 42)
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	view := m.View()
	assert.Contains(t, view, "Chips: 100")
	assert.Contains(t, view, "Place your bet")
	assert.Contains(t, view, "Pok Deng")

	m.quitting = true
	assert.Equal(t, "", m.View())
}

func TestModelUpdateDrivesCommands(t *testing.T) {
	m, session := newTestModel(t, 42)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	m.input.SetValue("bet 10")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, session.Round())
	assert.Empty(t, m.input.Value(), "input should clear after enter")

	// Tab moves focus to the log pane; enter no longer submits.
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.focusedPane)
	assert.False(t, m.input.Focused())

	m.input.SetValue("stand")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "stand", m.input.Value())

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.focusedPane)
	assert.True(t, m.input.Focused())

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.quitting)
}
