// Package state holds the bubbletea model of the preferences editor.
package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/MrJer/automute/internal/action"
	"github.com/MrJer/automute/internal/network"
	"github.com/MrJer/automute/internal/tui/render"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Table is the part of the action table the editor needs.
type Table interface {
	Load() error
	Networks() []network.Entry
	SetActionAt(index int, a action.Action) error
}

// reloadedMsg is sent after the table has been reloaded.
type reloadedMsg struct{ err error }

// Model is the preferences editor.
type Model struct {
	table    Table
	entries  []network.Entry
	cursor   int
	width    int
	height   int
	keys     keyMap
	help     help.Model
	status   string
	isError  bool
	now      func() time.Time
	quitting bool
}

// NewModel creates an editor over table. The table should already be loaded.
func NewModel(table Table) *Model {
	if table == nil {
		panic("NewModel: table dependency cannot be nil")
	}
	return &Model{
		table:   table,
		entries: table.Networks(),
		keys:    defaultKeyMap(),
		help:    help.New(),
		now:     time.Now,
	}
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
		m.help.Width = msg.Width
		return m, nil
	case reloadedMsg:
		m.entries = m.table.Networks()
		m.clampCursor()
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("reload failed: %v", msg.err), true)
		} else {
			m.setStatus(fmt.Sprintf("reloaded %d networks", len(m.entries)), false)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Left):
		if e, ok := m.selected(); ok {
			m.set(e.Action.Prev())
		}
	case key.Matches(msg, m.keys.Right):
		if e, ok := m.selected(); ok {
			m.set(e.Action.Next())
		}
	case key.Matches(msg, m.keys.Mute):
		m.set(action.Mute)
	case key.Matches(msg, m.keys.Unmute):
		m.set(action.Unmute)
	case key.Matches(msg, m.keys.Nothing):
		m.set(action.DoNothing)
	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) reload() tea.Cmd {
	table := m.table
	return func() tea.Msg {
		return reloadedMsg{err: table.Load()}
	}
}

// set persists a for the selected row.
func (m *Model) set(a action.Action) {
	e, ok := m.selected()
	if !ok || e.Action == a {
		return
	}
	if err := m.table.SetActionAt(m.cursor, a); err != nil {
		m.setStatus(fmt.Sprintf("could not save %s: %v", e.DisplayName(), err), true)
		return
	}
	m.entries = m.table.Networks()
	m.setStatus(fmt.Sprintf("%s: %s", e.DisplayName(), a.Description()), false)
}

func (m *Model) selected() (network.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return network.Entry{}, false
	}
	return m.entries[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(message string, isError bool) {
	m.status = message
	m.isError = isError
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(render.Title())
	b.WriteString("\n\n")
	b.WriteString(render.Header(m.width))
	b.WriteString("\n")

	now := m.now()
	for i, e := range m.entries {
		b.WriteString(render.Row(render.RowState{
			Entry:    e,
			Width:    m.width,
			Selected: i == m.cursor,
			Now:      now,
		}))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if status := render.Status(m.status, m.isError); status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Cursor returns the selected row index.
func (m *Model) Cursor() int {
	return m.cursor
}
