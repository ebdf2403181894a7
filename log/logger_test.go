package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("test", WithWriter(&buf), WithLevel(Warn))

	l.Info("hidden %d", 1)
	l.Warn("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info entry should be filtered: %q", out)
	}
	if !strings.Contains(out, "W (") || !strings.Contains(out, "test: shown 2") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestLogger_Named(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("console", WithWriter(&buf)).Named("registry")

	l.Info("hello")
	if !strings.Contains(buf.String(), "console/registry: hello") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("svc", WithWriter(&buf), WithJSON())

	l.Error("boom")

	var entry logEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if entry.Level != "ERROR" || entry.Service != "svc" || entry.Message != "boom" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestParse(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   Debug,
		"INFO":    Info,
		"warning": Warn,
		"Error":   Error,
		"":        Info,
	}
	for in, want := range tests {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", in, err)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := Parse("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestPainter(t *testing.T) {
	var nilPainter *painter
	if got := nilPainter.paint(Error, "plain"); got != "plain" {
		t.Fatalf("nil painter changed the entry: %q", got)
	}

	var buf bytes.Buffer
	p := newPainter(&buf)
	if len(p.styles) != len(levelColors) {
		t.Fatalf("expected %d styles, got %d", len(levelColors), len(p.styles))
	}
	if got := p.paint(Warn, "E (now)\tx"); got != "E (now)\tx" {
		t.Fatalf("expected no escape sequences for a non-terminal writer, got %q", got)
	}
	if got := p.paint(LogLevel(42), "unknown"); got != "unknown" {
		t.Fatalf("unknown level changed the entry: %q", got)
	}
}
