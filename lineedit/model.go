package lineedit

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type keyMap struct {
	Accept   key.Binding
	Abort    key.Binding
	EOF      key.Binding
	Previous key.Binding
	Next     key.Binding
	Complete key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Accept:   key.NewBinding(key.WithKeys("enter")),
		Abort:    key.NewBinding(key.WithKeys("ctrl+c")),
		EOF:      key.NewBinding(key.WithKeys("ctrl+d")),
		Previous: key.NewBinding(key.WithKeys("up", "ctrl+p")),
		Next:     key.NewBinding(key.WithKeys("down", "ctrl+n")),
		Complete: key.NewBinding(key.WithKeys("tab")),
	}
}

// model edits a single line.
type model struct {
	input   textinput.Model
	keys    keyMap
	options *EditorOptions

	hintStyle lipgloss.Style

	// pos indexes the recalled history entry, History.Len() while editing
	// a fresh line.
	pos   int
	draft string

	candidates []string

	value string
	done  bool
	eof   bool
}

func newModel(prompt string, options *EditorOptions) *model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.CharLimit = options.CharLimit
	ti.Focus()

	hint := lipgloss.NewStyle()
	if !options.NoColor {
		hint = hint.Foreground(lipgloss.Color(options.HintColor))
	}

	return &model{
		input:     ti,
		keys:      defaultKeyMap(),
		options:   options,
		hintStyle: hint,
		pos:       options.History.Len(),
	}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Accept):
		m.value = m.input.Value()
		m.done = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Abort):
		m.eof = true
		m.done = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.EOF):
		if m.input.Value() == "" {
			m.eof = true
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Previous):
		m.recall(-1)
		return m, nil

	case key.Matches(keyMsg, m.keys.Next):
		m.recall(1)
		return m, nil

	case key.Matches(keyMsg, m.keys.Complete):
		m.complete()
		return m, nil
	}

	m.candidates = nil
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// recall moves through the history, keeping the unfinished line as draft.
func (m *model) recall(delta int) {
	history := m.options.History
	next := m.pos + delta
	if next < 0 || next > history.Len() {
		return
	}

	if m.pos == history.Len() {
		m.draft = m.input.Value()
	}
	m.pos = next

	if line, ok := history.At(m.pos); ok {
		m.input.SetValue(line)
	} else {
		m.input.SetValue(m.draft)
	}
	m.input.CursorEnd()
}

// complete replaces the line with the single candidate, or with the common
// prefix of several candidates which are then listed below the line.
func (m *model) complete() {
	if m.options.Completer == nil {
		return
	}

	candidates := m.options.Completer(m.input.Value())
	switch len(candidates) {
	case 0:
		m.candidates = nil
		return
	case 1:
		m.input.SetValue(candidates[0] + " ")
		m.candidates = nil
	default:
		m.input.SetValue(commonPrefix(candidates))
		m.candidates = candidates
	}
	m.input.CursorEnd()
}

func (m *model) View() string {
	if m.done {
		return m.input.Prompt + m.value + "\n"
	}

	var sb strings.Builder
	sb.WriteString(m.input.View())

	if m.options.Hinter != nil {
		if hint := m.options.Hinter(m.input.Value()); hint != "" {
			sb.WriteString(m.hintStyle.Render(" " + hint))
		}
	}
	if len(m.candidates) > 0 {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(m.candidates, "  "))
	}
	return sb.String()
}

func commonPrefix(values []string) string {
	prefix := values[0]
	for _, v := range values[1:] {
		for !strings.HasPrefix(v, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}
