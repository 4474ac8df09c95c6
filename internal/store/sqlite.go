package store

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS invocations (
	id          TEXT PRIMARY KEY,
	tool        TEXT NOT NULL,
	success     INTEGER NOT NULL,
	message     TEXT,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_invocations_tool ON invocations(tool);
CREATE INDEX IF NOT EXISTS idx_invocations_created_at ON invocations(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) RecordInvocation(ctx context.Context, inv Invocation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invocations (id, tool, success, message, duration_ms, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Tool, boolToInt(inv.Success), inv.Message, inv.DurationMS, inv.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: record invocation")
}

func (s *SQLiteStore) ListInvocations(ctx context.Context, limit int) ([]Invocation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tool, success, message, duration_ms, created_at FROM invocations ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list invocations")
	}
	defer rows.Close()

	var out []Invocation
	for rows.Next() {
		var inv Invocation
		var success int
		var message sql.NullString
		if err := rows.Scan(&inv.ID, &inv.Tool, &success, &message, &inv.DurationMS, &inv.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan invocation")
		}
		inv.Success = success != 0
		inv.Message = message.String
		out = append(out, inv)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate invocations")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
