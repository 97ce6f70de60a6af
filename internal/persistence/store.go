// Package persistence provides SQLite-backed storage for game resources.
// Each resource is a JSON value under a well-known key; reading a key
// that has never been written seeds it with a default and persists the
// seed.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Resource keys for everything the game core persists.
const (
	KeyBank            = "bank"
	KeyMarkets         = "markets"
	KeyPlayerInventory = "playerInventory"
	KeyTradeLedger     = "tradeLedger"
	KeyPlayerCaravan   = "playerCaravan"
	KeyPlayerInfo      = "playerInfo"
	KeyWorldMap        = "worldMap"
	KeyDate            = "date"
	KeyEmployees       = "employees"
)

// Store wraps a SQLite connection holding the save.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a save database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// OpenInMemory opens a throwaway in-memory save, used by tests.
func OpenInMemory() (*Store, error) {
	return Open(":memory:")
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS resources (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Get loads the resource under key into dest. When the key is absent the
// seed callback produces the default, which is persisted before being
// returned, so every later read sees the same value.
func Get[T any](s *Store, key string, seed func() (T, error)) (T, error) {
	var zero T

	var raw string
	err := s.conn.Get(&raw, "SELECT value FROM resources WHERE key = ?", key)
	switch {
	case err == nil:
		var out T
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return zero, fmt.Errorf("decode resource %q: %w", key, err)
		}
		return out, nil
	case errors.Is(err, sql.ErrNoRows):
		seeded, err := seed()
		if err != nil {
			return zero, fmt.Errorf("seed resource %q: %w", key, err)
		}
		if err := Replace(s, key, seeded); err != nil {
			return zero, err
		}
		slog.Info("seeded resource", "key", key)
		return seeded, nil
	default:
		return zero, fmt.Errorf("get resource %q: %w", key, err)
	}
}

// Replace overwrites the resource under key.
func Replace[T any](s *Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode resource %q: %w", key, err)
	}
	_, err = s.conn.Exec(
		"INSERT OR REPLACE INTO resources (key, value) VALUES (?, ?)",
		key, string(raw),
	)
	if err != nil {
		return fmt.Errorf("replace resource %q: %w", key, err)
	}
	return nil
}

// Reset wipes every stored resource, abandoning the save.
func (s *Store) Reset() error {
	_, err := s.conn.Exec("DELETE FROM resources")
	return err
}
