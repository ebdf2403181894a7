package sqlite

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/console/history"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore keeps the history in a single table. Several consoles can share
// one database by using different names.
type SQLiteStore struct {
	mu   sync.RWMutex
	db   *sql.DB
	name string
	open bool
}

// NewSQLiteStore opens the database at dbPath, which can be ":memory:".
// name selects the history within the table.
func NewSQLiteStore(dbPath, name string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// A single connection keeps ":memory:" databases alive across calls
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}

	store := &SQLiteStore{
		db:   db,
		name: name,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (ss *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS console_history (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		seq INTEGER NOT NULL,
		line TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_console_history_name ON console_history(name, seq);
	`

	_, err := ss.db.Exec(schema)
	return err
}

// Name returns the identifier name defined for this store
func (*SQLiteStore) Name() string {
	return "sqlite"
}

func (ss *SQLiteStore) Open(ctx context.Context) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if err := ss.db.PingContext(ctx); err != nil {
		return err
	}

	ss.open = true
	return nil
}

func (ss *SQLiteStore) Close(ctx context.Context) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	ss.open = false
	return ss.db.Close()
}

func (ss *SQLiteStore) Load(ctx context.Context) ([]string, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	if !ss.open {
		return nil, history.ErrNotOpen
	}

	rows, err := ss.db.QueryContext(ctx,
		"SELECT line FROM console_history WHERE name = ? ORDER BY seq", ss.name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

func (ss *SQLiteStore) Save(ctx context.Context, lines []string) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if !ss.open {
		return history.ErrNotOpen
	}

	tx, err := ss.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM console_history WHERE name = ?", ss.name); err != nil {
		return err
	}

	now := time.Now().Unix()
	for seq, line := range lines {
		id := uuid.Must(uuid.NewV7()).String()
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO console_history (id, name, seq, line, created_at) VALUES (?, ?, ?, ?, ?)",
			id, ss.name, seq, line, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}
