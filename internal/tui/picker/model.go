// Package picker is the interactive project chooser: a bubbletea list that
// re-queries on every keystroke, and a huh prompt for ambiguous matches.
package picker

import (
	"fmt"
	"strings"

	"github.com/LeLocTai/unityhub-launcher/internal/plugin"
	"github.com/LeLocTai/unityhub-launcher/internal/tui"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultVisible = 10

// SearchFunc returns ranked entries for a query.
type SearchFunc func(query string) []plugin.Entry

// ReloadedMsg tells the model the index changed and results must be refreshed.
type ReloadedMsg struct {
	Projects int
}

// Model is the bubbletea model for the picker.
type Model struct {
	input   textinput.Model
	search  SearchFunc
	entries []plugin.Entry
	cursor  int
	offset  int
	visible int
	status  string

	chosen   *plugin.Entry
	quitting bool
}

// NewModel creates a picker over search with an initial query.
func NewModel(search SearchFunc, initial string) Model {
	input := textinput.New()
	input.Prompt = tui.FocusedStyle.Render("› ")
	input.Placeholder = "Search Unity projects"
	input.SetValue(initial)
	input.Focus()

	m := Model{
		input:   input,
		search:  search,
		visible: defaultVisible,
	}
	m.refresh()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if len(m.entries) > 0 {
				chosen := m.entries[m.cursor]
				m.chosen = &chosen
			}
			m.quitting = true
			return m, tea.Quit
		case "up", "ctrl+p", "ctrl+k":
			m.move(-1)
			return m, nil
		case "down", "ctrl+n", "ctrl+j":
			m.move(1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		// input line, status line, help line, and two lines per entry
		if rows := (msg.Height - 3) / 2; rows > 0 {
			m.visible = rows
		}
		m.clampOffset()
		return m, nil

	case ReloadedMsg:
		m.status = fmt.Sprintf("reloaded, %d projects", msg.Projects)
		m.refresh()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refresh()
	}
	return m, cmd
}

func (m *Model) refresh() {
	m.entries = m.search(m.input.Value())
	m.cursor = 0
	m.offset = 0
}

func (m *Model) move(delta int) {
	if len(m.entries) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	m.clampOffset()
}

func (m *Model) clampOffset() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.visible {
		m.offset = m.cursor - m.visible + 1
	}
}

// View renders the model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString(tui.SubtleStyle.Render("  no matching projects"))
		b.WriteString("\n")
	}

	end := m.offset + m.visible
	if end > len(m.entries) {
		end = len(m.entries)
	}
	for i := m.offset; i < end; i++ {
		e := m.entries[i]
		cursor := "  "
		title := e.Title
		if i == m.cursor {
			cursor = tui.SelectedStyle.Render("› ")
			title = tui.SelectedStyle.Render(title)
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, title, tui.SubtleStyle.Render(fmt.Sprintf("(%d)", e.Score))))
		b.WriteString("    " + tui.DescStyle.Render(strings.ReplaceAll(e.SubTitle, "\t", "  ")) + "\n")
	}

	status := fmt.Sprintf("%d results", len(m.entries))
	if m.status != "" {
		status += " · " + m.status
	}
	b.WriteString(tui.HelpStyle.Render(status + " · ↑/↓ move · enter open · esc quit"))

	return b.String()
}

// Chosen returns the entry picked with enter, if any.
func (m Model) Chosen() (plugin.Entry, bool) {
	if m.chosen == nil {
		return plugin.Entry{}, false
	}
	return *m.chosen, true
}

// Entries returns the current results.
func (m Model) Entries() []plugin.Entry {
	return m.entries
}

// Cursor returns the highlighted index.
func (m Model) Cursor() int {
	return m.cursor
}
