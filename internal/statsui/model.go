// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/geodrill/internal/model"
	"github.com/verte-zerg/geodrill/internal/stats"
)

const (
	tabOverview = iota
	tabDivisions
	tabRounds
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Report is the data shown by the stats UI.
type Report struct {
	Title  string
	Rows   []stats.DivisionRow
	Rounds []model.RoundResult
}

// Model implements the Bubble Tea stats UI.
type Model struct {
	report Report

	tabs      []string
	activeTab int
	viewports []viewport.Model
	divTable  table.Model

	width  int
	height int
}

// NewModel constructs a stats UI model.
func NewModel(report Report) *Model {
	m := &Model{
		report: report,
		tabs:   []string{"Overview", "Divisions", "Rounds"},
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.divTable = buildDivisionTable(report.Rows, 0, 1)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "g", "home":
			if m.activeTab == tabDivisions {
				m.divTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabDivisions {
				m.divTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabDivisions {
				var cmd tea.Cmd
				m.divTable, cmd = m.divTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Top/Bottom: g/G  Quit: q"), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.divTable.SetWidth(m.width)
	m.divTable.SetHeight(max(1, bodyHeight-1))
	m.divTable.SetColumns(divisionColumns(m.width))
}

func (m *Model) moveTab(delta int) {
	next := (m.activeTab + delta + len(m.tabs)) % len(m.tabs)
	m.activeTab = next
	if m.activeTab == tabDivisions {
		m.divTable.Focus()
	} else {
		m.divTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	return m.renderTabs() + "\n" + headerStyle.Render(m.report.Title)
}

func (m *Model) renderBody() string {
	if m.activeTab == tabDivisions {
		if len(m.report.Rows) == 0 {
			return "No divisions found."
		}
		return tableMutedStyle.Render(m.divTable.View())
	}
	return m.viewports[m.activeTab].View()
}

func (m *Model) renderTabContents() {
	m.viewports[tabOverview].SetContent(renderSummaryCards(m.report.Rows, m.report.Rounds, m.width))
	m.viewports[tabRounds].SetContent(renderRounds(m.report.Rounds))
}

func renderSummaryCards(rows []stats.DivisionRow, rounds []model.RoundResult, width int) string {
	var seen, correct, wrong, practiced int
	for _, row := range rows {
		seen += row.Stats.Seen
		correct += row.Stats.Correct
		wrong += row.Stats.Wrong
		if row.Stats.Attempts() > 0 {
			practiced++
		}
	}
	accuracy := "-"
	if correct+wrong > 0 {
		accuracy = fmt.Sprintf("%.1f%%", float64(correct)/float64(correct+wrong)*100)
	}
	best := "-"
	if len(rounds) > 0 {
		top := 0.0
		for _, r := range rounds {
			top = max(top, r.Percent())
		}
		best = fmt.Sprintf("%.0f%%", top)
	}
	cards := []string{
		metricCard("Practiced", fmt.Sprintf("%d/%d", practiced, len(rows))),
		metricCard("Shown", fmt.Sprintf("%d", seen)),
		metricCard("Accuracy", accuracy),
		metricCard("Rounds", fmt.Sprintf("%d", len(rounds))),
		metricCard("Best round", best),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderRounds(rounds []model.RoundResult) string {
	var buf bytes.Buffer
	if err := stats.RenderRoundSummary(&buf, rounds); err != nil {
		return fmt.Sprintf("Failed to render rounds: %v", err)
	}
	for i := len(rounds) - 1; i >= 0; i-- {
		r := rounds[i]
		fmt.Fprintf(&buf, "%s  %3.0f%%  %d/%d  %s\n",
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			r.Percent(),
			r.Correct,
			r.Correct+r.Wrong,
			stats.FormatDuration(r.Duration()))
	}
	return strings.TrimRight(buf.String(), "\n")
}

func divisionColumns(width int) []table.Column {
	nameWidth := max(12, width-50)
	return []table.Column{
		{Title: "Division", Width: nameWidth},
		{Title: "Seen", Width: 6},
		{Title: "Correct", Width: 7},
		{Title: "Wrong", Width: 6},
		{Title: "Accuracy", Width: 9},
		{Title: "Odds", Width: 7},
	}
}

func buildDivisionRows(rows []stats.DivisionRow) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		accuracy := "-"
		if row.Stats.Attempts() > 0 {
			accuracy = fmt.Sprintf("%.1f%%", row.Stats.Accuracy()*100)
		}
		out = append(out, table.Row{
			row.Name,
			fmt.Sprintf("%d", row.Stats.Seen),
			fmt.Sprintf("%d", row.Stats.Correct),
			fmt.Sprintf("%d", row.Stats.Wrong),
			accuracy,
			fmt.Sprintf("%.1f%%", row.Probability*100),
		})
	}
	return out
}

func buildDivisionTable(rows []stats.DivisionRow, width, height int) table.Model {
	t := table.New(
		table.WithColumns(divisionColumns(width)),
		table.WithRows(buildDivisionRows(rows)),
		table.WithHeight(max(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(divisionTableStyles())
	return t
}

func divisionTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
