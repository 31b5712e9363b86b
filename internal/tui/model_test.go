package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11yscan/a11yscan/internal/store"
	"github.com/a11yscan/a11yscan/internal/types"
)

func seededStore() *store.Store {
	st := store.New()
	st.Replace(types.BatchResult{Results: []types.ScanResult{
		{URL: "https://a.example", Findings: []types.Finding{
			{ID: "1", Rule: "form-label", SourceURL: "https://a.example", Message: "form field has no label", Impact: types.ImpactCritical},
			{ID: "2", Rule: "image-alt", SourceURL: "https://a.example", Message: "image missing alt text", Impact: types.ImpactSerious, Snippet: `<img src="a.png">`},
			{ID: "3", Rule: "generic-link", SourceURL: "https://a.example", Message: "link text is generic", Impact: types.ImpactModerate},
		}},
	}})
	return st
}

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func key(m Model, k string) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return updated.(Model)
}

func TestViewBeforeSizing(t *testing.T) {
	m := NewModel(seededStore())
	assert.Equal(t, "loading...", m.View())
}

func TestViewListsFindings(t *testing.T) {
	m := sized(NewModel(seededStore()))
	out := m.View()

	assert.Contains(t, out, "a11yscan findings")
	assert.Contains(t, out, "form-label")
	assert.Contains(t, out, "image-alt")
	assert.Contains(t, out, "3 findings")
	assert.Contains(t, out, "filter: all")
}

func TestSeverityFilterCycles(t *testing.T) {
	m := sized(NewModel(seededStore()))

	m = key(m, "s")
	assert.Equal(t, types.ImpactCritical, m.severity)
	assert.Equal(t, 1, m.page.TotalCount)
	assert.Contains(t, m.View(), "filter: critical")

	// cycling past minor wraps back to all
	for _, want := range []types.Impact{types.ImpactSerious, types.ImpactModerate, types.ImpactMinor, ""} {
		m = key(m, "s")
		assert.Equal(t, want, m.severity)
	}
	assert.Equal(t, 3, m.page.TotalCount)
}

func TestSearchFiltersFindings(t *testing.T) {
	m := sized(NewModel(seededStore()))

	m = key(m, "/")
	require.True(t, m.searchMode)

	for _, r := range "generic" {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	assert.False(t, m.searchMode)
	assert.Equal(t, 1, m.page.TotalCount)
	assert.Contains(t, m.View(), "generic-link")

	// esc clears the filter
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	assert.Equal(t, 3, m.page.TotalCount)
}

func TestPagingKeysStayInBounds(t *testing.T) {
	m := sized(NewModel(seededStore()))
	require.Equal(t, 1, m.pageNum)

	// a single short page: next and prev are both no-ops
	m = key(m, "n")
	assert.Equal(t, 1, m.pageNum)
	m = key(m, "p")
	assert.Equal(t, 1, m.pageNum)
}

func TestDetailShowsSelectedFinding(t *testing.T) {
	m := sized(NewModel(seededStore()))
	out := m.View()
	// the first row is the critical finding; its detail pane is visible
	assert.Contains(t, out, "form field has no label")
}

func TestDetailAuxRowsAreSorted(t *testing.T) {
	st := store.New()
	st.Replace(types.BatchResult{Results: []types.ScanResult{
		{URL: "https://a.example", Findings: []types.Finding{
			{ID: "1", Rule: "color-contrast", SourceURL: "https://a.example", Message: "insufficient color contrast", Impact: types.ImpactCritical,
				Aux: map[string]string{"zulu": "1", "alpha": "2", "mike": "3"}},
		}},
	}})
	m := sized(NewModel(st))
	out := m.View()

	alpha := strings.Index(out, "alpha: 2")
	mike := strings.Index(out, "mike: 3")
	zulu := strings.Index(out, "zulu: 1")
	require.NotEqual(t, -1, alpha)
	require.NotEqual(t, -1, mike)
	require.NotEqual(t, -1, zulu)
	assert.Less(t, alpha, mike)
	assert.Less(t, mike, zulu)
}

func TestQuit(t *testing.T) {
	m := sized(NewModel(seededStore()))
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, "", m.View())
}
