// Package tui is an interactive findings browser over the query engine.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/a11yscan/a11yscan/internal/report"
	"github.com/a11yscan/a11yscan/internal/store"
	"github.com/a11yscan/a11yscan/internal/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	detailBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	sevCriticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	sevSeriousStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	sevModerateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sevMinorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// severityCycle is the order the filter key steps through; "" means all.
var severityCycle = []types.Impact{
	"", types.ImpactCritical, types.ImpactSerious, types.ImpactModerate, types.ImpactMinor,
}

// Model is the findings browser state. It reads pages from the store's query
// engine rather than slicing findings itself.
type Model struct {
	store    *store.Store
	table    table.Model
	viewport viewport.Model

	page       store.Page
	pageNum    int
	pageSize   int
	severity   types.Impact
	searchMode bool
	search     textinput.Model
	query      string

	width, height int
	ready         bool
	status        string
	quitting      bool
}

// NewModel builds a browser over the given store.
func NewModel(st *store.Store) Model {
	ti := textinput.New()
	ti.Placeholder = "search findings..."
	ti.CharLimit = 120

	cols := []table.Column{
		{Title: "Impact", Width: 9},
		{Title: "Rule", Width: 20},
		{Title: "URL", Width: 36},
		{Title: "Message", Width: 48},
	}
	t := table.New(table.WithColumns(cols), table.WithFocused(true))
	m := Model{
		store:    st,
		table:    t,
		search:   ti,
		pageNum:  1,
		pageSize: 20,
	}
	m.refresh()
	return m
}

func (m *Model) params() store.Params {
	p := store.Params{
		Page:     m.pageNum,
		PageSize: m.pageSize,
		SortBy:   store.SortBySeverity,
		Search:   m.query,
	}
	if m.severity != "" {
		p.Severities = []types.Impact{m.severity}
	}
	return p
}

func (m *Model) refresh() {
	m.page = m.store.Query(m.params())
	rows := make([]table.Row, 0, len(m.page.Items))
	for _, f := range m.page.Items {
		rows = append(rows, table.Row{string(f.Impact), f.Rule, f.SourceURL, f.Message})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
	m.updateDetail()
}

func (m *Model) selected() (types.Finding, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.page.Items) {
		return types.Finding{}, false
	}
	return m.page.Items[i], true
}

func (m *Model) totalPages() int {
	if m.page.TotalCount == 0 {
		return 1
	}
	return (m.page.TotalCount + m.pageSize - 1) / m.pageSize
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tea.KeyMsg:
		if m.searchMode {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "/":
			m.searchMode = true
			m.search.Focus()
			return m, textinput.Blink
		case "esc":
			m.query = ""
			m.search.SetValue("")
			m.pageNum = 1
			m.refresh()
			return m, nil
		case "s":
			m.severity = nextSeverity(m.severity)
			m.pageNum = 1
			m.refresh()
			return m, nil
		case "n", "right":
			if m.pageNum < m.totalPages() {
				m.pageNum++
				m.refresh()
			}
			return m, nil
		case "p", "left":
			if m.pageNum > 1 {
				m.pageNum--
				m.refresh()
			}
			return m, nil
		case "c":
			if f, ok := m.selected(); ok {
				if err := clipboard.WriteAll(f.SourceURL + " " + f.Message + " " + f.Locator); err != nil {
					m.status = "clipboard unavailable"
				} else {
					m.status = "finding copied"
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	m.updateDetail()
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.search.Blur()
		m.query = m.search.Value()
		m.pageNum = 1
		m.refresh()
		return m, nil
	case "esc":
		m.searchMode = false
		m.search.Blur()
		m.search.SetValue("")
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func nextSeverity(cur types.Impact) types.Impact {
	for i, s := range severityCycle {
		if s == cur {
			return severityCycle[(i+1)%len(severityCycle)]
		}
	}
	return ""
}

func (m *Model) layout() {
	if !m.ready {
		return
	}
	tableHeight := m.height/2 - 4
	if tableHeight < 5 {
		tableHeight = 5
	}
	m.pageSize = tableHeight - 1
	m.table.SetHeight(tableHeight)
	m.viewport = viewport.New(m.width-4, m.height-tableHeight-6)
	m.refresh()
}

func (m *Model) updateDetail() {
	f, ok := m.selected()
	if !ok {
		m.viewport.SetContent("no finding selected")
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", severityBadge(f.Impact), keyStyle.Render(f.Rule))
	fmt.Fprintf(&b, "URL:         %s\n", f.SourceURL)
	if f.Locator != "" {
		fmt.Fprintf(&b, "Locator:     %s\n", f.Locator)
	}
	fmt.Fprintf(&b, "Message:     %s\n", f.Message)
	if f.Remediation != "" {
		fmt.Fprintf(&b, "Remediation: %s\n", f.Remediation)
	}
	auxKeys := make([]string, 0, len(f.Aux))
	for k := range f.Aux {
		auxKeys = append(auxKeys, k)
	}
	sort.Strings(auxKeys)
	for _, k := range auxKeys {
		fmt.Fprintf(&b, "  %s: %s\n", k, f.Aux[k])
	}
	if f.EvidencePath != "" {
		fmt.Fprintf(&b, "Evidence:    %s\n", f.EvidencePath)
	}
	b.WriteString("\n")
	b.WriteString(report.HighlightHTML(f.Snippet, false))
	m.viewport.SetContent(b.String())
}

func severityBadge(i types.Impact) string {
	switch i {
	case types.ImpactCritical:
		return sevCriticalStyle.Render("CRITICAL")
	case types.ImpactSerious:
		return sevSeriousStyle.Render("SERIOUS")
	case types.ImpactModerate:
		return sevModerateStyle.Render("MODERATE")
	default:
		return sevMinorStyle.Render("MINOR")
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("a11yscan findings"))
	b.WriteString("\n")
	if m.searchMode {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(detailBorderStyle.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) statusLine() string {
	filter := "all"
	if m.severity != "" {
		filter = string(m.severity)
	}
	s := fmt.Sprintf(" %d findings | page %d/%d | filter: %s | /:search s:severity n/p:page c:copy q:quit ",
		m.page.TotalCount, m.pageNum, m.totalPages(), filter)
	if m.status != "" {
		s += "| " + m.status + " "
	}
	return statusStyle.Render(s)
}

// Run starts the browser and blocks until the user quits.
func Run(st *store.Store) error {
	p := tea.NewProgram(NewModel(st), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
