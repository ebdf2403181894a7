// Package history defines where the console persists the lines a user typed.
package history

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
)

var (
	ErrNotOpen = errors.New("history: store not open")
	ErrBusy    = errors.New("history: store locked by another process")
)

// Store persists the command history. Lines are ordered oldest first.
type Store interface {
	// Name returns the identifier name defined for this store
	Name() string

	// Open is part of the lifecycle behaviour and gets called before the first Load
	Open(ctx context.Context) error

	// Close is part of the lifecycle behaviour and gets called when the session ends
	Close(ctx context.Context) error

	// Load returns all persisted lines
	Load(ctx context.Context) ([]string, error)

	// Save replaces the persisted lines
	Save(ctx context.Context, lines []string) error
}

// Encode renders lines in the plain text format, one line per entry.
func Encode(lines []string) []byte {
	var buf bytes.Buffer
	for _, line := range lines {
		if line = sanitize(line); line == "" {
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Decode parses the plain text format. Empty lines are skipped.
func Decode(data []byte) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if line := strings.TrimRight(scanner.Text(), "\r"); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// sanitize folds embedded line breaks so an entry always occupies one line.
func sanitize(line string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, line)
}
