package lineedit

import "sync"

// History is the in-memory list of entered lines, oldest first. It drops the
// oldest entry once MaxLen is reached and never stores the same line twice in
// a row.
type History struct {
	mu     sync.RWMutex
	maxLen int
	lines  []string
}

func NewHistory(maxLen int) *History {
	return &History{
		maxLen: maxLen,
	}
}

// Add appends line and reports whether the history changed.
func (h *History) Add(line string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if line == "" || h.maxLen <= 0 {
		return false
	}
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		return false
	}

	h.lines = append(h.lines, line)
	h.trim()
	return true
}

// Load replaces the history, keeping the newest MaxLen lines.
func (h *History) Load(lines []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lines = h.lines[:0]
	for _, line := range lines {
		if line == "" {
			continue
		}
		if n := len(h.lines); n > 0 && h.lines[n-1] == line {
			continue
		}
		h.lines = append(h.lines, line)
	}
	h.trim()
}

func (h *History) SetMaxLen(maxLen int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxLen = maxLen
	h.trim()
}

func (h *History) MaxLen() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.maxLen
}

// Lines returns a copy of the history.
func (h *History) Lines() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return append([]string(nil), h.lines...)
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.lines)
}

// At returns the entry at index i, 0 being the oldest.
func (h *History) At(i int) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.lines) {
		return "", false
	}
	return h.lines[i], true
}

func (h *History) trim() {
	if h.maxLen <= 0 {
		h.lines = h.lines[:0]
		return
	}
	if over := len(h.lines) - h.maxLen; over > 0 {
		h.lines = append(h.lines[:0], h.lines[over:]...)
	}
}
