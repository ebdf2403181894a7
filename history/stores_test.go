package history_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mwantia/console/history"
	"github.com/mwantia/console/history/consul"
	"github.com/mwantia/console/history/file"
	"github.com/mwantia/console/history/memory"
	"github.com/mwantia/console/history/postgres"
	"github.com/mwantia/console/history/s3"
	"github.com/mwantia/console/history/sqlite"
)

// TestStoreFactory creates a new store instance for testing.
type TestStoreFactory func(t *testing.T) (history.Store, error)

// GetTestStoreFactories returns all store implementations to test. Stores
// that need an external service are only included when it is configured.
func GetTestStoreFactories() map[string]TestStoreFactory {
	factories := map[string]TestStoreFactory{
		"memory": func(t *testing.T) (history.Store, error) {
			return memory.NewMemoryStore(), nil
		},
		"file": func(t *testing.T) (history.Store, error) {
			return file.NewFileStore(filepath.Join(t.TempDir(), "history.txt"))
		},
		"sqlite": func(t *testing.T) (history.Store, error) {
			return sqlite.NewSQLiteStore(":memory:", "test")
		},
	}

	if dsn := os.Getenv("CONSOLE_TEST_POSTGRES_DSN"); dsn != "" {
		factories["postgres"] = func(t *testing.T) (history.Store, error) {
			return postgres.NewPostgresStore(t.Context(), dsn, t.Name())
		}
	}
	if addr := os.Getenv("CONSOLE_TEST_CONSUL_ADDR"); addr != "" {
		factories["consul"] = func(t *testing.T) (history.Store, error) {
			return consul.NewConsulStore(&consul.ConsulStoreConfig{
				Address: addr,
				Key:     "console-test/" + t.Name(),
			})
		}
	}
	if endpoint := os.Getenv("CONSOLE_TEST_S3_ENDPOINT"); endpoint != "" {
		factories["s3"] = func(t *testing.T) (history.Store, error) {
			return s3.NewS3Store(endpoint,
				os.Getenv("CONSOLE_TEST_S3_BUCKET"), "console-test/"+t.Name(),
				os.Getenv("CONSOLE_TEST_S3_ACCESS_KEY"), os.Getenv("CONSOLE_TEST_S3_SECRET_KEY"), false)
		}
	}

	return factories
}

// TestAllStores_SaveLoad verifies that saved lines are returned in order and
// that a save replaces the previous content.
func TestAllStores_SaveLoad(t *testing.T) {
	for name, factory := range GetTestStoreFactories() {
		t.Run(name, func(tst *testing.T) {
			ctx := tst.Context()

			store, err := factory(tst)
			if err != nil {
				tst.Fatalf("Store init failed: %v", err)
			}
			if store.Name() != name {
				tst.Errorf("Expected name %q, got %q", name, store.Name())
			}

			if err := store.Open(ctx); err != nil {
				tst.Fatalf("Open failed: %v", err)
			}
			defer store.Close(ctx)

			lines, err := store.Load(ctx)
			if err != nil {
				tst.Fatalf("Initial load failed: %v", err)
			}
			if len(lines) != 0 {
				tst.Errorf("Expected empty history, got %q", lines)
			}

			first := []string{"hello", "echo -m \"a b\"", "gpio 2 out"}
			if err := store.Save(ctx, first); err != nil {
				tst.Fatalf("Save failed: %v", err)
			}

			second := []string{"echo -m \"a b\"", "gpio 2 out", "status"}
			if err := store.Save(ctx, second); err != nil {
				tst.Fatalf("Save failed: %v", err)
			}

			lines, err = store.Load(ctx)
			if err != nil {
				tst.Fatalf("Load failed: %v", err)
			}
			if !reflect.DeepEqual(lines, second) {
				tst.Errorf("Expected %q, got %q", second, lines)
			}
		})
	}
}

// TestAllStores_NotOpen verifies that a store refuses access before Open.
func TestAllStores_NotOpen(t *testing.T) {
	for name, factory := range GetTestStoreFactories() {
		t.Run(name, func(tst *testing.T) {
			store, err := factory(tst)
			if err != nil {
				tst.Fatalf("Store init failed: %v", err)
			}

			if _, err := store.Load(tst.Context()); !errors.Is(err, history.ErrNotOpen) {
				tst.Errorf("Expected ErrNotOpen from Load, got %v", err)
			}
			if err := store.Save(tst.Context(), []string{"x"}); !errors.Is(err, history.ErrNotOpen) {
				tst.Errorf("Expected ErrNotOpen from Save, got %v", err)
			}
		})
	}
}

func TestFileStore_MissingDirectory(t *testing.T) {
	store, err := file.NewFileStore(filepath.Join(t.TempDir(), "missing", "history.txt"))
	if err != nil {
		t.Fatalf("Store init failed: %v", err)
	}

	if err := store.Open(t.Context()); err == nil {
		t.Fatal("Expected Open to fail for a missing directory")
	}
}

func TestFileStore_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")
	if err := os.WriteFile(path, []byte("hello\n\r\nstatus\r\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store, err := file.NewFileStore(path)
	if err != nil {
		t.Fatalf("Store init failed: %v", err)
	}
	if err := store.Open(t.Context()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close(t.Context())

	lines, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(lines, []string{"hello", "status"}) {
		t.Errorf("Unexpected lines: %q", lines)
	}

	if err := store.Save(t.Context(), []string{"multi\nline"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "multi line\n" {
		t.Errorf("Unexpected file content: %q", data)
	}
}
