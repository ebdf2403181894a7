// Package lineedit reads command lines from the user, either through an
// interactive editor with history and completion or through a plain reader
// for terminals without escape sequence support.
package lineedit

import (
	"context"
	"os"

	"golang.org/x/term"
)

// Reader returns one line per call. It returns io.EOF once no more input is
// available.
type Reader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)

	// History returns the lines the user can recall.
	History() *History

	// Dumb reports whether the reader lacks line editing.
	Dumb() bool
}

// Completer returns the candidates for the line typed so far.
type Completer func(line string) []string

// Hinter returns the text shown after the line typed so far.
type Hinter func(line string) string

// Probe reports whether both in and out are terminals that support the
// interactive editor.
func Probe(in, out *os.File) bool {
	if in == nil || out == nil {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd()))
}
