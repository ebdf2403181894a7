package memory

import (
	"context"
	"sync"

	"github.com/mwantia/console/history"
)

// MemoryStore keeps the history for the lifetime of the process only.
type MemoryStore struct {
	mu    sync.RWMutex
	open  bool
	lines []string
}

func NewMemoryStore(lines ...string) *MemoryStore {
	return &MemoryStore{
		lines: append([]string(nil), lines...),
	}
}

// Name returns the identifier name defined for this store
func (*MemoryStore) Name() string {
	return "memory"
}

func (ms *MemoryStore) Open(ctx context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.open = true
	return nil
}

func (ms *MemoryStore) Close(ctx context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.open = false
	return nil
}

func (ms *MemoryStore) Load(ctx context.Context) ([]string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if !ms.open {
		return nil, history.ErrNotOpen
	}
	return append([]string(nil), ms.lines...), nil
}

func (ms *MemoryStore) Save(ctx context.Context, lines []string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if !ms.open {
		return history.ErrNotOpen
	}
	ms.lines = append(ms.lines[:0], lines...)
	return nil
}
