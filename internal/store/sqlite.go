// internal/store/sqlite.go
//
// SQLite-backed leaderboard store.
//
// The board writes its full mapping after every score change, so Save
// replaces the table contents in one transaction. Open applies the
// usual safe defaults (busy timeout, WAL, foreign keys) and bootstraps
// the schema.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"katakilat/internal/leaderboard"
)

const schema = `
CREATE TABLE IF NOT EXISTS leaderboard (
    participant_id TEXT PRIMARY KEY,
    display_name   TEXT NOT NULL DEFAULT '',
    avatar_url     TEXT NOT NULL DEFAULT '',
    score          INTEGER NOT NULL DEFAULT 0
);`

// Open opens (and creates if missing) the SQLite database file and
// ensures the leaderboard schema exists.
func Open(dsn string) (*sql.DB, error) {
	// Ensure directory exists for ./data/app.db, etc.
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

// SQLite implements leaderboard.Store on a *sql.DB.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an opened database handle.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// Load reads the full leaderboard mapping.
func (s *SQLite) Load(ctx context.Context) (map[string]leaderboard.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT participant_id, display_name, avatar_url, score FROM leaderboard`)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	defer rows.Close()

	out := make(map[string]leaderboard.Entry)
	for rows.Next() {
		var e leaderboard.Entry
		if err := rows.Scan(&e.ParticipantID, &e.DisplayName, &e.AvatarURL, &e.Score); err != nil {
			return nil, err
		}
		out[e.ParticipantID] = e
	}
	return out, rows.Err()
}

// Save replaces the stored mapping with entries, atomically.
func (s *SQLite) Save(ctx context.Context, entries map[string]leaderboard.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM leaderboard`); err != nil {
		return fmt.Errorf("clear leaderboard: %w", err)
	}
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO leaderboard (participant_id, display_name, avatar_url, score)
			 VALUES (?,?,?,?)`,
			e.ParticipantID, e.DisplayName, e.AvatarURL, e.Score); err != nil {
			return fmt.Errorf("insert %s: %w", e.ParticipantID, err)
		}
	}
	return tx.Commit()
}
