// Package sqlitekv implements storage.Backend on a SQLite database.
//
// Values live in a single table:
//
//	kv(key TEXT PRIMARY KEY, value TEXT NOT NULL)
//
// Writes are single-statement upserts, so each SetItem is atomic.
package sqlitekv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// FileName is the default database file name inside the config directory.
const FileName = "storage.db"

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Store is a SQLite-backed key/value store.
type Store struct {
	pool   *sqlitex.Pool
	path   string
	logger *slog.Logger
}

// Open opens (creating if needed) the database at path.
// The parent directory must exist.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlitekv: path is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// One connection: the task list has a single writer and reader.
	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{
		PoolSize:    1,
		PrepareConn: prepareConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("sqlitekv: opening %s: %w", path, err)
	}

	logger.Debug("sqlite storage opened", "path", path)
	return &Store{pool: pool, path: path, logger: logger}, nil
}

func prepareConnection(conn *sqlite.Conn) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("sqlitekv: %s: %w", pragma, err)
		}
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return fmt.Errorf("sqlitekv: schema: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// GetItem implements storage.Backend.
func (s *Store) GetItem(ctx context.Context, key string) (string, bool, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return "", false, fmt.Errorf("sqlitekv: take: %w", err)
	}
	defer s.pool.Put(conn)

	var value string
	var found bool
	err = sqlitex.Execute(conn, "SELECT value FROM kv WHERE key = ?", &sqlitex.ExecOptions{
		Args: []any{key},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			value = stmt.ColumnText(0)
			found = true
			return nil
		},
	})
	if err != nil {
		return "", false, fmt.Errorf("sqlitekv: get %s: %w", key, err)
	}
	return value, found, nil
}

// SetItem implements storage.Backend.
func (s *Store) SetItem(ctx context.Context, key, value string) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("sqlitekv: take: %w", err)
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn,
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		&sqlitex.ExecOptions{Args: []any{key, value}},
	)
	if err != nil {
		return fmt.Errorf("sqlitekv: set %s: %w", key, err)
	}
	return nil
}

// Close implements storage.Backend.
func (s *Store) Close() error {
	if err := s.pool.Close(); err != nil {
		s.logger.Error("sqlite storage close error", "path", s.path, "error", err)
		return fmt.Errorf("sqlitekv: closing %s: %w", s.path, err)
	}
	s.logger.Debug("sqlite storage closed", "path", s.path)
	return nil
}
