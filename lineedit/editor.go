package lineedit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

type EditorOptions struct {
	In        io.Reader
	Out       io.Writer
	History   *History
	Completer Completer
	Hinter    Hinter
	CharLimit int
	HintColor string
	NoColor   bool
}

type EditorOption func(*EditorOptions)

func WithIO(in io.Reader, out io.Writer) EditorOption {
	return func(opts *EditorOptions) {
		opts.In = in
		opts.Out = out
	}
}

func WithHistory(history *History) EditorOption {
	return func(opts *EditorOptions) {
		opts.History = history
	}
}

func WithCompleter(fn Completer) EditorOption {
	return func(opts *EditorOptions) {
		opts.Completer = fn
	}
}

func WithHinter(fn Hinter) EditorOption {
	return func(opts *EditorOptions) {
		opts.Hinter = fn
	}
}

// WithCharLimit sets the maximum number of characters per line.
func WithCharLimit(n int) EditorOption {
	return func(opts *EditorOptions) {
		opts.CharLimit = n
	}
}

func WithoutColor() EditorOption {
	return func(opts *EditorOptions) {
		opts.NoColor = true
	}
}

// Editor reads lines with cursor movement, history recall, tab completion and
// inline hints. Every call to ReadLine runs a short lived inline program.
type Editor struct {
	options *EditorOptions
}

func NewEditor(opts ...EditorOption) *Editor {
	options := &EditorOptions{
		In:        os.Stdin,
		Out:       os.Stdout,
		CharLimit: 256,
		HintColor: "6",
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.History == nil {
		options.History = NewHistory(100)
	}

	return &Editor{
		options: options,
	}
}

func (e *Editor) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m := newModel(prompt, e.options)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(e.options.In),
		tea.WithOutput(e.options.Out))

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errors.Is(err, tea.ErrProgramKilled) {
			return "", io.EOF
		}
		return "", fmt.Errorf("line editor failed: %w", err)
	}

	result, ok := final.(*model)
	if !ok || result.eof {
		return "", io.EOF
	}
	return result.value, nil
}

func (e *Editor) History() *History {
	return e.options.History
}

func (*Editor) Dumb() bool {
	return false
}
