package lineedit

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// DumbReader reads plain lines without editing. The history is kept so it can
// still be persisted, but it cannot be recalled.
type DumbReader struct {
	reader  *bufio.Reader
	out     io.Writer
	history *History
	maxLen  int
}

// NewDumbReader reads from in and prints the prompt to out. Lines longer than
// maxLen bytes are truncated, the rest of the line is discarded.
func NewDumbReader(in io.Reader, out io.Writer, history *History, maxLen int) *DumbReader {
	if history == nil {
		history = NewHistory(0)
	}

	return &DumbReader{
		reader:  bufio.NewReader(in),
		out:     out,
		history: history,
		maxLen:  maxLen,
	}
}

func (d *DumbReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprint(d.out, prompt)

	var line []byte
	for {
		chunk, more, err := d.reader.ReadLine()
		if err != nil {
			return "", err
		}
		if d.maxLen <= 0 || len(line) < d.maxLen {
			line = append(line, chunk...)
		}
		if !more {
			break
		}
	}

	if d.maxLen > 0 && len(line) > d.maxLen {
		line = line[:d.maxLen]
	}
	return string(line), nil
}

func (d *DumbReader) History() *History {
	return d.history
}

func (*DumbReader) Dumb() bool {
	return true
}
