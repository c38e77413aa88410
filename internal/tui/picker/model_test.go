package picker

import (
	"strings"
	"testing"

	"github.com/LeLocTai/unityhub-launcher/internal/plugin"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	names   []string
	queries []string
}

func (f *fakeIndex) search(q string) []plugin.Entry {
	f.queries = append(f.queries, q)
	var out []plugin.Entry
	for _, n := range f.names {
		if strings.Contains(strings.ToLower(n), strings.ToLower(q)) {
			out = append(out, plugin.Entry{
				Title:    n,
				SubTitle: "   2021.3.5f1  \t/projects/" + n,
				Ref:      plugin.Ref{Path: "/projects/" + n},
			})
		}
	}
	return out
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_TypingRequeries(t *testing.T) {
	idx := &fakeIndex{names: []string{"Game", "Garden", "Tool"}}
	m := NewModel(idx.search, "")
	require.Len(t, m.Entries(), 3)

	m = update(t, m, keys("g"))
	require.Len(t, m.Entries(), 2)

	m = update(t, m, keys("am"))
	require.Len(t, m.Entries(), 1)
	require.Equal(t, "Game", m.Entries()[0].Title)
	require.Equal(t, []string{"", "g", "gam"}, idx.queries)
}

func TestModel_NavigationClamps(t *testing.T) {
	idx := &fakeIndex{names: []string{"A", "B", "C"}}
	m := NewModel(idx.search, "")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 0, m.Cursor())

	for i := 0; i < 5; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	require.Equal(t, 2, m.Cursor())
}

func TestModel_EnterChooses(t *testing.T) {
	idx := &fakeIndex{names: []string{"A", "B"}}
	m := NewModel(idx.search, "")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.NotNil(t, cmd)

	chosen, ok := m.Chosen()
	require.True(t, ok)
	require.Equal(t, "/projects/B", chosen.Ref.Path)
	require.Empty(t, m.View())
}

func TestModel_EscapeQuitsWithoutChoice(t *testing.T) {
	idx := &fakeIndex{names: []string{"A"}}
	m := update(t, NewModel(idx.search, ""), tea.KeyMsg{Type: tea.KeyEsc})

	_, ok := m.Chosen()
	require.False(t, ok)
}

func TestModel_EnterWithNoResults(t *testing.T) {
	idx := &fakeIndex{names: []string{"A"}}
	m := NewModel(idx.search, "zzz")
	require.Empty(t, m.Entries())
	require.Contains(t, m.View(), "no matching projects")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	_, ok := m.Chosen()
	require.False(t, ok)
}

func TestModel_ReloadRefreshes(t *testing.T) {
	idx := &fakeIndex{names: []string{"A"}}
	m := NewModel(idx.search, "")
	require.Len(t, m.Entries(), 1)

	idx.names = append(idx.names, "B")
	m = update(t, m, ReloadedMsg{Projects: 2})
	require.Len(t, m.Entries(), 2)
	require.Contains(t, m.View(), "reloaded, 2 projects")
}

func TestModel_ViewScrollsWithCursor(t *testing.T) {
	idx := &fakeIndex{names: []string{"P0", "P1", "P2", "P3", "P4", "P5"}}
	m := NewModel(idx.search, "")
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 7})

	for i := 0; i < 4; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}

	view := m.View()
	require.Contains(t, view, "P4")
	require.NotContains(t, view, "P0")
	require.NotContains(t, view, "\t")
}

func TestModel_View(t *testing.T) {
	idx := &fakeIndex{names: []string{"Game", "Garden", "Tool"}}
	m := NewModel(idx.search, "ga")
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})

	snaps.MatchSnapshot(t, m.View())
}

func TestOptionLabel(t *testing.T) {
	e := plugin.Entry{Title: "Game", SubTitle: "★  2021.3.5f1  \t/projects/Game"}
	require.Equal(t, "Game  ★  2021.3.5f1    /projects/Game", OptionLabel(e))
}
