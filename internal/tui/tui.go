// Package tui is an interactive table for playing hands against a
// threshold dealer.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/siamdeck/pokdeng-go/engine"
	"github.com/siamdeck/pokdeng-go/internal/simulator"
	"github.com/siamdeck/pokdeng-go/pokdeng"
)

type phase int

const (
	phaseBetting phase = iota
	phaseDeciding
	phaseSettled
	phaseGameOver
)

// Model represents the Bubble Tea model for an interactive session. It
// drives a single seat; the dealer plays the house threshold policy.
type Model struct {
	session     *engine.Session
	seat        string
	dealerStand int
	logger      *log.Logger

	// UI components
	logViewport viewport.Model
	input       textinput.Model

	// State
	history     []string
	phase       phase
	status      string // one-line feedback shown under the input
	lastBet     decimal.Decimal
	focusedPane int // 0 = log, 1 = input
	quitting    bool

	// Dimensions
	width       int
	height      int
	initialized bool // Track if viewport has been properly sized
}

// New creates a table model for the given seat. A dealerStand of zero
// uses the house default.
func New(session *engine.Session, seat string, dealerStand int, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if dealerStand <= 0 {
		dealerStand = simulator.DefaultStandThreshold
	}

	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "bet <amount>"
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		session:     session,
		seat:        seat,
		dealerStand: dealerStand,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
		focusedPane: 1, // Start with input focused
	}

	m.addHistory(HeaderStyle.Render(" Pok Deng "))
	m.addHistory(InfoStyle.Render("Type help for commands, bet <amount> to start."))
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			// Switch focus between log and input
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.input.Focus()
			} else {
				m.focusedPane = 0
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				m.handleCommand(m.input.Value())
				m.input.SetValue("")
				if m.quitting {
					return m, tea.Sequence(tea.ClearScreen, tea.Quit)
				}
			}
		case "up":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the table.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionWidth := m.width - 2 // Full width minus border
	if actionWidth < 1 {
		actionWidth = 1
	}
	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(actionWidth)
	if m.focusedPane == 1 {
		actionStyle = actionStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	actionPane := actionStyle.Render(actionContent)

	logWidth := m.width - 2
	logHeight := m.height - lipgloss.Height(actionPane) - 2
	if logWidth < 1 {
		logWidth = 1
	}
	if logHeight < 1 {
		logHeight = 1
	}
	m.logViewport.Width = logWidth
	m.logViewport.Height = logHeight
	m.logViewport.SetContent(strings.Join(m.history, "\n"))

	// On first proper sizing, jump to the latest entries
	if !m.initialized && logWidth > 1 && logHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(logHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	return lipgloss.JoinVertical(lipgloss.Top, logPane, actionPane)
}

// renderActionPane renders the prompt area below the game log.
func (m *Model) renderActionPane() string {
	var content strings.Builder

	chips, err := m.session.Chips(m.seat)
	if err == nil {
		line := ChipStyle.Render(fmt.Sprintf("Chips: %s", chips))
		if stake, ok := m.session.Bet(m.seat); ok && m.phase == phaseDeciding {
			line += "  " + InfoStyle.Render(fmt.Sprintf("Bet: %s", stake))
		}
		content.WriteString(line)
		content.WriteString("\n")
	}

	switch m.phase {
	case phaseBetting:
		content.WriteString(HandInfoStyle.Render("Place your bet"))
		content.WriteString("\n")
		m.input.Placeholder = "bet <amount>"
	case phaseDeciding:
		if round := m.session.Round(); round != nil {
			if res, resErr := round.Result(m.seat); resErr == nil {
				content.WriteString(HandInfoStyle.Render("Your hand:") + " " +
					m.formatCards(res.Cards) + " " + HandInfoStyle.Render(res.String()))
				content.WriteString("\n")
			}
		}
		content.WriteString(ActionsStyle.Render("Actions: ") +
			SuccessStyle.Render("[draw]") + " " + ErrorStyle.Render("[stand]"))
		content.WriteString("\n")
		m.input.Placeholder = "draw or stand"
	case phaseSettled:
		content.WriteString(HandInfoStyle.Render(fmt.Sprintf("Enter to bet %s again, or bet <amount>", m.lastBet)))
		content.WriteString("\n")
		m.input.Placeholder = "press enter to play again"
	case phaseGameOver:
		content.WriteString(ErrorStyle.Render("Out of chips!") + " " +
			InfoStyle.Render("reset to start over"))
		content.WriteString("\n")
		m.input.Placeholder = "reset"
	}

	if m.status != "" {
		content.WriteString(ErrorStyle.Render(m.status))
		content.WriteString("\n")
	}

	content.WriteString(m.input.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}

	return content.String()
}

// handleCommand processes one line of user input.
func (m *Model) handleCommand(raw string) {
	m.status = ""
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))

	if len(fields) > 0 {
		switch fields[0] {
		case "quit", "exit", "q":
			m.quitting = true
			return
		case "reset":
			m.session.Reset()
			m.phase = phaseBetting
			m.addHistory(InfoStyle.Render("Bankrolls reset."))
			return
		case "help", "h", "?":
			m.addHelp()
			return
		}
	}

	switch m.phase {
	case phaseBetting:
		m.handleBet(fields)
	case phaseDeciding:
		m.handleDecision(fields)
	case phaseSettled:
		m.phase = phaseBetting
		if len(fields) == 0 {
			if m.lastBet.IsPositive() {
				m.placeBetAndDeal(m.lastBet)
			} else {
				m.status = "place a bet to deal the next hand"
			}
			return
		}
		m.handleBet(fields)
	case phaseGameOver:
		m.status = "out of chips: type reset to start over, or quit"
	}
}

func (m *Model) handleBet(fields []string) {
	if len(fields) == 0 {
		m.status = "place a bet like: bet 10"
		return
	}
	raw := fields[0]
	if raw == "bet" || raw == "b" {
		if len(fields) < 2 {
			m.status = "place a bet like: bet 10"
			return
		}
		raw = fields[1]
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		m.status = fmt.Sprintf("%q is not a bet amount", raw)
		return
	}
	m.placeBetAndDeal(amount)
}

func (m *Model) placeBetAndDeal(amount decimal.Decimal) {
	if err := m.session.PlaceBet(m.seat, amount); err != nil {
		if errors.Is(err, engine.ErrGameOver) {
			m.phase = phaseGameOver
			m.status = "no chips left: type reset to start over"
			return
		}
		m.status = err.Error()
		return
	}
	m.lastBet = amount

	round, err := m.session.Deal()
	if err != nil {
		m.status = err.Error()
		return
	}
	m.logger.Debug("hand dealt", "bet", amount)

	m.addHistory(HeaderStyle.Render(fmt.Sprintf(" Hand %d ", m.session.HandsPlayed()+1)))

	player, err := round.Result(m.seat)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.addHistory("You are dealt " + m.formatCards(player.Cards) + "  " +
		HandInfoStyle.Render(player.String()))

	dealer, err := round.Result(engine.DealerID)
	if err != nil {
		m.status = err.Error()
		return
	}

	// A pok on either side ends the hand before any draw.
	switch {
	case dealer.Pok:
		m.addHistory(ErrorStyle.Render("Dealer has a pok!"))
		m.resolve()
	case player.Pok:
		m.addHistory(SuccessStyle.Render("Pok! The hand ends immediately."))
		m.resolve()
	default:
		m.phase = phaseDeciding
	}
}

func (m *Model) handleDecision(fields []string) {
	if len(fields) == 0 {
		m.status = "draw or stand?"
		return
	}
	switch fields[0] {
	case "draw", "d", "hit":
		hr, err := m.session.Draw(m.seat)
		if err != nil {
			m.status = err.Error()
			return
		}
		drawn := hr.Cards[len(hr.Cards)-1]
		m.addHistory("You draw " + m.formatCards([]pokdeng.Card{drawn}) + "  " +
			HandInfoStyle.Render(hr.String()))
		m.dealerPlay()
		m.resolve()
	case "stand", "s", "stay":
		m.dealerPlay()
		m.resolve()
	default:
		m.status = fmt.Sprintf("%q is not an option: draw or stand", fields[0])
	}
}

// dealerPlay applies the house threshold policy. Only reachable when
// neither side holds a pok.
func (m *Model) dealerPlay() {
	round := m.session.Round()
	if round == nil {
		return
	}
	dealer, err := round.Result(engine.DealerID)
	if err != nil || dealer.Pok || len(dealer.Cards) != 2 {
		return
	}
	if dealer.Score < m.dealerStand {
		if _, err := m.session.Draw(engine.DealerID); err == nil {
			m.addHistory(InfoStyle.Render("Dealer draws a third card."))
		}
	}
}

func (m *Model) resolve() {
	stake, _ := m.session.Bet(m.seat)

	settlements, err := m.session.Resolve()
	if err != nil {
		m.status = err.Error()
		return
	}
	st, ok := settlements[m.seat]
	if !ok {
		m.status = "no settlement for this seat"
		return
	}

	m.addHistory("Dealer shows " + m.formatCards(st.DealerResult.Cards) + "  " +
		HandInfoStyle.Render(st.DealerResult.String()))

	payout := pokdeng.Payout(st.Outcome, st.Multiplier, stake, m.session.Rules())
	switch st.Outcome {
	case pokdeng.Win:
		m.addHistory(SuccessStyle.Render(fmt.Sprintf("You win %s (x%d)", payout, st.Multiplier)))
	case pokdeng.Lose:
		m.addHistory(ErrorStyle.Render(fmt.Sprintf("You lose %s", payout.Abs())))
	default:
		m.addHistory(InfoStyle.Render("Push. Your stake is returned."))
	}

	chips, err := m.session.Chips(m.seat)
	if err == nil {
		m.addHistory(ChipStyle.Render(fmt.Sprintf("Chips: %s", chips)))
	}

	if m.session.Busted(m.seat) {
		m.phase = phaseGameOver
		m.addHistory(ErrorStyle.Render("You are out of chips. Type reset to start over."))
	} else {
		m.phase = phaseSettled
	}
}

// formatCards formats cards with suit colours.
func (m *Model) formatCards(cards []pokdeng.Card) string {
	if len(cards) == 0 {
		return ""
	}

	formatted := make([]string, 0, len(cards))
	for _, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, RedCardStyle.Render(card.String()))
		} else {
			formatted = append(formatted, BlackCardStyle.Render(card.String()))
		}
	}

	return "[" + strings.Join(formatted, " ") + "]"
}

func (m *Model) addHelp() {
	for _, line := range []string{
		"bet <amount>   stake chips and deal a hand",
		"draw, stand    play out your two-card hand",
		"reset          restore every bankroll to its starting chips",
		"quit           leave the table",
	} {
		m.addHistory(InfoStyle.Render(line))
	}
}

// addHistory appends an entry to the game log and follows the tail.
func (m *Model) addHistory(entry string) {
	m.history = append(m.history, entry)
	m.logViewport.SetContent(strings.Join(m.history, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// History returns a copy of the game log entries.
func (m *Model) History() []string {
	return append([]string(nil), m.history...)
}
