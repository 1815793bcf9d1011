// Package histui provides the Bubble Tea history browser.
package histui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/sprintlog/internal/model"
	"github.com/verte-zerg/sprintlog/internal/store"
)

const (
	viewList = iota
	viewDetail
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1)
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Padding(0, 1)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")).Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Padding(0, 1)
	detailStyle  = lipgloss.NewStyle().Padding(0, 1)
)

// Model implements the Bubble Tea history UI.
type Model struct {
	store *store.Store
	cfg   model.HistoryConfig

	summaries []model.AnalysisSummary
	totals    map[string]int
	errMsg    string

	view     int
	list     table.Model
	detail   viewport.Model
	selected model.AnalysisSummary

	width  int
	height int
}

// NewModel constructs a history UI model.
func NewModel(st *store.Store, cfg model.HistoryConfig) *Model {
	m := &Model{
		store: st,
		cfg:   cfg,
	}
	m.list = buildListTable(nil, 0, 1)
	m.detail = viewport.New(0, 0)
	m.refresh()
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
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch m.view {
		case viewList:
			return m.updateList(msg)
		case viewDetail:
			return m.updateDetail(msg)
		}
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.openSelected()
	case "r":
		m.refresh()
		m.updateLayout()
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.view = viewList
		return m, tea.ClearScreen
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *Model) openSelected() (tea.Model, tea.Cmd) {
	idx := m.list.Cursor()
	if idx < 0 || idx >= len(m.summaries) {
		return m, nil
	}
	m.selected = m.summaries[idx]
	outcomes, err := m.store.ListOutcomes(context.Background(), m.selected.ID)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load outcomes: %v", err)
		return m, nil
	}
	m.errMsg = ""
	m.detail.SetContent(renderDetail(m.selected, outcomes))
	m.detail.GotoTop()
	m.view = viewDetail
	return m, tea.ClearScreen
}

func (m *Model) refresh() {
	ctx := context.Background()
	summaries, err := m.store.ListAnalyses(ctx, m.cfg)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load history: %v", err)
		return
	}
	totals, err := m.store.WinnerTotals(ctx, m.cfg)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load winner totals: %v", err)
		return
	}
	m.errMsg = ""
	m.summaries = summaries
	m.totals = totals
	m.list.SetRows(listRows(summaries))
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = 2
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	_, bodyHeight, _ := m.layoutHeights()
	m.list.SetWidth(m.width)
	m.list.SetHeight(maxInt(1, bodyHeight-1))
	m.detail.Width = m.width
	m.detail.Height = bodyHeight
}

func (m *Model) renderHeader() string {
	switch m.view {
	case viewDetail:
		title := titleStyle.Render(fmt.Sprintf("Analysis #%d", m.selected.ID))
		summary := summaryStyle.Render(fmt.Sprintf("%s, analyzed %s",
			m.selected.Source, m.selected.AnalyzedAt.Local().Format("2006-01-02 15:04:05")))
		return title + "\n" + summary
	default:
		title := titleStyle.Render("Analysis History")
		summary := summaryStyle.Render(fmt.Sprintf("%d analyses, outcome winners A: %d, B: %d",
			len(m.summaries), m.totals[string(rune(model.SymbolA))], m.totals[string(rune(model.SymbolB))]))
		return title + "\n" + summary
	}
}

func (m *Model) renderBody() string {
	if m.view == viewDetail {
		return m.detail.View()
	}
	if len(m.summaries) == 0 {
		return summaryStyle.Render("No analyses recorded.")
	}
	return m.list.View()
}

func (m *Model) renderFooter() string {
	hints := "enter: open  r: refresh  q: quit"
	if m.view == viewDetail {
		hints = "esc: back  j/k: scroll  q: quit"
	}
	footer := footerStyle.Render(hints)
	if m.errMsg != "" {
		footer = errorStyle.Render(m.errMsg) + "\n" + footer
	}
	return footer
}

func buildListTable(rows []table.Row, width, height int) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Analyzed At", Width: 19},
		{Title: "Source", Width: 24},
		{Title: "Valid", Width: 6},
		{Title: "A", Width: 5},
		{Title: "B", Width: 5},
		{Title: "Matches", Width: 8},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
		table.WithFocused(true),
	)
	t.SetWidth(width)
	t.SetStyles(listTableStyles())
	return t
}

func listTableStyles() table.Styles {
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

func listRows(summaries []model.AnalysisSummary) []table.Row {
	rows := make([]table.Row, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, table.Row{
			strconv.FormatInt(s.ID, 10),
			s.AnalyzedAt.Local().Format("2006-01-02 15:04:05"),
			s.Source,
			strconv.Itoa(s.ValidChars),
			strconv.Itoa(s.AChars),
			strconv.Itoa(s.BChars),
			strconv.Itoa(s.OutcomeCount),
		})
	}
	return rows
}

func renderDetail(summary model.AnalysisSummary, outcomes []model.Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Characters: %d total, %d valid (A: %d, B: %d)\n\n",
		summary.LogLen, summary.ValidChars, summary.AChars, summary.BChars)
	if len(outcomes) == 0 {
		b.WriteString("No complete matches.\n")
		return detailStyle.Render(b.String())
	}
	fmt.Fprintf(&b, "%11s %10s %6s\n", "Sprints (s)", "Target (t)", "Winner")
	for _, o := range outcomes {
		fmt.Fprintf(&b, "%11d %10d %6s\n", o.Sprints, o.Target, o.WinnerString())
	}
	return detailStyle.Render(b.String())
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

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
