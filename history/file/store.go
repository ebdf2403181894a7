package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mwantia/console/history"
	"github.com/nightlyone/lockfile"
)

// FileStore writes the history as plain text, one entry per line. While open
// it holds a lock file next to the history so two consoles never interleave
// their writes.
type FileStore struct {
	mu   sync.Mutex
	path string
	lock *lockfile.Lockfile
}

func NewFileStore(path string) (*FileStore, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid history path: %w", err)
	}

	return &FileStore{
		path: abs,
	}, nil
}

// Name returns the identifier name defined for this store
func (*FileStore) Name() string {
	return "file"
}

// Path returns the absolute location of the history file.
func (fs *FileStore) Path() string {
	return fs.path
}

func (fs *FileStore) Open(ctx context.Context) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.lock != nil {
		return nil
	}

	dir := filepath.Dir(fs.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("history directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("history directory unavailable: %s is not a directory", dir)
	}

	lock, err := lockfile.New(fs.path + ".lock")
	if err != nil {
		return err
	}
	if err := lock.TryLock(); err != nil {
		if errors.Is(err, lockfile.ErrBusy) {
			return fmt.Errorf("%w: %s", history.ErrBusy, fs.path)
		}
		return fmt.Errorf("failed to lock history: %w", err)
	}

	fs.lock = &lock
	return nil
}

func (fs *FileStore) Close(ctx context.Context) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.lock == nil {
		return nil
	}

	err := fs.lock.Unlock()
	fs.lock = nil
	return err
}

func (fs *FileStore) Load(ctx context.Context) ([]string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.lock == nil {
		return nil, history.ErrNotOpen
	}

	data, err := os.ReadFile(fs.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return history.Decode(data)
}

// Save rewrites the history file through a temporary file in the same
// directory.
func (fs *FileStore) Save(ctx context.Context, lines []string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.lock == nil {
		return history.ErrNotOpen
	}

	tmp, err := os.CreateTemp(filepath.Dir(fs.path), filepath.Base(fs.path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(history.Encode(lines)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), fs.path)
}
