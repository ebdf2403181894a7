package lineedit

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(history *History, completer Completer) *model {
	return newModel("> ", &EditorOptions{
		History:   history,
		Completer: completer,
		CharLimit: 256,
		NoColor:   true,
	})
}

func typeText(m *model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func TestModel_Accept(t *testing.T) {
	m := newTestModel(NewHistory(10), nil)
	typeText(m, "hello")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if !m.done || m.eof || m.value != "hello" {
		t.Errorf("Unexpected state: done=%v eof=%v value=%q", m.done, m.eof, m.value)
	}
	if !strings.Contains(m.View(), "> hello") {
		t.Errorf("Expected final view to keep the line, got %q", m.View())
	}
}

func TestModel_EOF(t *testing.T) {
	m := newTestModel(NewHistory(10), nil)
	typeText(m, "x")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if m.done {
		t.Fatal("Expected ctrl+d to be ignored on a non-empty line")
	}

	m = newTestModel(NewHistory(10), nil)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if !m.eof {
		t.Error("Expected ctrl+d on an empty line to signal EOF")
	}
}

func TestModel_Recall(t *testing.T) {
	history := NewHistory(10)
	history.Load([]string{"first", "second"})

	m := newTestModel(history, nil)
	typeText(m, "draft")

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.input.Value(); got != "second" {
		t.Errorf("Expected newest entry, got %q", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.input.Value(); got != "first" {
		t.Errorf("Expected oldest entry, got %q", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.input.Value(); got != "draft" {
		t.Errorf("Expected draft to be restored, got %q", got)
	}
}

func TestModel_Complete(t *testing.T) {
	names := []string{"gpio", "gpio_read", "hello"}
	completer := func(line string) []string {
		var out []string
		for _, name := range names {
			if strings.HasPrefix(name, line) {
				out = append(out, name)
			}
		}
		return out
	}

	m := newTestModel(NewHistory(10), completer)
	typeText(m, "g")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.input.Value(); got != "gpio" {
		t.Errorf("Expected common prefix, got %q", got)
	}
	if len(m.candidates) != 2 {
		t.Errorf("Expected candidates to be listed, got %q", m.candidates)
	}

	m = newTestModel(NewHistory(10), completer)
	typeText(m, "he")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.input.Value(); got != "hello " {
		t.Errorf("Expected single completion, got %q", got)
	}
}

func TestCommonPrefix(t *testing.T) {
	if got := commonPrefix([]string{"gpio", "gpio_read", "get"}); got != "g" {
		t.Errorf("Unexpected prefix %q", got)
	}
	if got := commonPrefix([]string{"abc", "xyz"}); got != "" {
		t.Errorf("Unexpected prefix %q", got)
	}
}
