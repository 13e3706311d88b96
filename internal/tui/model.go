// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/verte-zerg/geodrill/internal/logger"
	"github.com/verte-zerg/geodrill/internal/model"
	"github.com/verte-zerg/geodrill/internal/prefs"
	"github.com/verte-zerg/geodrill/internal/scheduler"
	statsPkg "github.com/verte-zerg/geodrill/internal/stats"
	"github.com/verte-zerg/geodrill/internal/taxonomy"
)

// RoundStore records completed rounds.
type RoundStore interface {
	InsertRound(ctx context.Context, r model.RoundResult) error
}

type round struct {
	startedAt time.Time
	asked     int
	correct   int
	wrong     int
}

// Model implements the Bubble Tea quiz UI.
type Model struct {
	session   *scheduler.Session
	prefs     *prefs.Prefs
	catalog   *taxonomy.Catalog
	rounds    RoundStore
	log       *logger.Logger
	roundSize int
	rnd       *rand.Rand

	width  int
	height int

	input    textinput.Model
	feedback string
	warning  string
	summary  string
	round    round
}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7BC77B"))
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	summaryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Italic(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	helpLineStyle = footerStyle.Faint(true)
)

// NewModel constructs a quiz TUI model around a started session.
func NewModel(session *scheduler.Session, p *prefs.Prefs, catalog *taxonomy.Catalog, rounds RoundStore, log *logger.Logger, roundSize int) *Model {
	if log == nil {
		log = logger.Nop()
	}
	input := textinput.New()
	input.Placeholder = "division name"
	input.CharLimit = 64
	input.Width = 32
	input.Focus()

	m := &Model{
		session:   session,
		prefs:     p,
		catalog:   catalog,
		rounds:    rounds,
		log:       log,
		roundSize: roundSize,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		input:     input,
	}
	m.resetRound()
	p.OnChange(m.applyPrefs)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit(m.input.Value())
			return m, nil
		case tea.KeyCtrlS:
			m.skip()
			return m, nil
		case tea.KeyCtrlG:
			m.cycleGroup()
			return m, nil
		case tea.KeyCtrlL:
			m.cycleLanguage()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	current := m.session.Current()
	lines := []string{
		titleStyle.Render(m.catalog.GroupName(m.session.Group(), m.session.Language())),
		"",
		promptStyle.Render(fmt.Sprintf("Which division is %s?", current)),
		"",
		m.input.View(),
	}
	if m.feedback != "" {
		lines = append(lines, "", m.feedback)
	}
	if m.summary != "" {
		lines = append(lines, "", summaryStyle.Render(m.summary))
	}
	if m.warning != "" {
		lines = append(lines, "", wrongStyle.Render(m.warning))
	}
	content := strings.Join(lines, "\n")
	footer := m.renderFooter()
	help := helpLineStyle.Render("enter answer · ctrl+s skip · ctrl+g group · ctrl+l language · esc quit")
	if m.width == 0 || m.height < 4 {
		return content + "\n\n" + footer + "\n" + help
	}
	body := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	helpLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, help)
	return body + "\n" + footerLine + "\n" + helpLine
}

func (m *Model) submit(answer string) {
	if strings.TrimSpace(answer) == "" {
		return
	}
	ctx := context.Background()
	current := m.session.Current()
	name := m.session.Name(current)
	ok := matchesAnswer(answer, current, m.catalog.DivisionNames(m.session.Group(), current))

	_, err := m.session.Answer(ctx, ok)
	m.noteError(err)
	if ok {
		m.round.correct++
		m.feedback = correctStyle.Render("✓ " + name)
	} else {
		m.round.wrong++
		m.feedback = wrongStyle.Render(fmt.Sprintf("✗ %s was %s", current, name))
	}
	m.round.asked++
	m.input.SetValue("")
	m.summary = ""
	if m.round.asked >= m.roundSize {
		m.finishRound()
	}
	m.advance()
}

func (m *Model) skip() {
	current := m.session.Current()
	m.feedback = footerStyle.Render(fmt.Sprintf("Skipped: %s was %s", current, m.session.Name(current)))
	m.input.SetValue("")
	m.advance()
}

func (m *Model) advance() {
	_, err := m.session.Advance(context.Background())
	m.noteError(err)
}

func (m *Model) noteError(err error) {
	if err == nil {
		m.warning = ""
		return
	}
	if errors.Is(err, scheduler.ErrPersist) {
		m.warning = "Progress could not be saved; continuing without saving."
	} else {
		m.warning = err.Error()
	}
	m.log.Warn("quiz step failed", "group", m.session.Group(), "error", err)
}

func (m *Model) cycleGroup() {
	next := m.catalog.Next(m.session.Group())
	if err := m.prefs.SetGroup(context.Background(), next); err != nil {
		m.log.Warn("failed to save group", "group", next, "error", err)
	}
}

func (m *Model) cycleLanguage() {
	next := m.session.Language().Next()
	if err := m.prefs.SetLanguage(context.Background(), next); err != nil {
		m.log.Warn("failed to save language", "lang", next, "error", err)
	}
}

func (m *Model) applyPrefs(change prefs.Change) {
	m.session.SetLanguage(change.Language)
	if !change.GroupChanged || change.Group == m.session.Group() {
		return
	}
	_, err := m.session.SwitchGroup(context.Background(), change.Group)
	m.noteError(err)
	m.feedback = ""
	m.summary = ""
	m.resetRound()
}

func (m *Model) finishRound() {
	result := model.RoundResult{
		ID:        uuid.NewString(),
		Group:     m.session.Group(),
		StartedAt: m.round.startedAt,
		EndedAt:   time.Now(),
		Correct:   m.round.correct,
		Wrong:     m.round.wrong,
	}
	if m.rounds != nil {
		if err := m.rounds.InsertRound(context.Background(), result); err != nil {
			m.log.Warn("failed to save round", "round", result.ID, "error", err)
		}
	}
	m.summary = fmt.Sprintf("%s %.0f%% in %s",
		statsPkg.ResultMessage(result.Percent(), m.rnd),
		result.Percent(),
		statsPkg.FormatDuration(result.Duration()))
	m.resetRound()
}

func (m *Model) resetRound() {
	m.round = round{startedAt: time.Now()}
}

func (m *Model) renderFooter() string {
	segments := []string{fmt.Sprintf("Round %d/%d", m.round.asked+1, m.roundSize)}
	if m.round.asked > 0 {
		pct := float64(m.round.correct) / float64(m.round.asked) * 100
		segments = append(segments, fmt.Sprintf("Score %.0f%%", pct))
	}
	entry := m.session.Ensure(m.session.Current())
	if entry.Attempts() > 0 {
		segments = append(segments, fmt.Sprintf("This one: %d/%d correct", entry.Correct, entry.Attempts()))
	} else {
		segments = append(segments, "This one: new")
	}
	segments = append(segments, m.session.Language().Name())
	return footerStyle.Render(strings.Join(segments, "  "))
}
