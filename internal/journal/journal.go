// Package journal appends every committed colour to a SQLite database so
// picks survive restarts. The in-memory history stays bounded; the journal
// does not.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/timvw/cpick/internal/colorspace"
)

const schema = `
CREATE TABLE IF NOT EXISTS commits (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at INTEGER NOT NULL,
	hex        TEXT    NOT NULL,
	value      TEXT    NOT NULL,
	vals       TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS commits_created_at ON commits (created_at);
`

// Record is one journal row.
type Record struct {
	ID     int64          `json:"id"`
	At     time.Time      `json:"at"`
	Hex    string         `json:"hex"`
	Value  string         `json:"value"`
	Values colorspace.Set `json:"values"`
}

// Journal is safe for concurrent use.
type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal at path, creating parent directories.
// ":memory:" gives a throwaway journal.
func Open(path string) (*Journal, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("journal dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// One connection keeps ":memory:" a single database.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("journal pragma: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Add appends one commit.
func (j *Journal) Add(ctx context.Context, at time.Time, value, hex string, values colorspace.Set) error {
	vals, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode values: %w", err)
	}
	_, err = j.db.ExecContext(ctx,
		`INSERT INTO commits (created_at, hex, value, vals) VALUES (?, ?, ?, ?)`,
		at.UnixMilli(), hex, value, string(vals))
	if err != nil {
		return fmt.Errorf("journal insert: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, created_at, hex, value, vals FROM commits ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal query: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r    Record
			ms   int64
			vals string
		)
		if err := rows.Scan(&r.ID, &ms, &r.Hex, &r.Value, &vals); err != nil {
			return nil, fmt.Errorf("journal scan: %w", err)
		}
		r.At = time.UnixMilli(ms)
		if err := json.Unmarshal([]byte(vals), &r.Values); err != nil {
			return nil, fmt.Errorf("journal row %d: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Count returns the number of journaled commits.
func (j *Journal) Count(ctx context.Context) (int, error) {
	var n int
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM commits`).Scan(&n); err != nil {
		return 0, fmt.Errorf("journal count: %w", err)
	}
	return n, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}
