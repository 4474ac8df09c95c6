package store

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS invocations (
	id          TEXT PRIMARY KEY,
	tool        TEXT NOT NULL,
	success     BOOLEAN NOT NULL,
	message     TEXT,
	duration_ms BIGINT NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_invocations_tool ON invocations(tool);
CREATE INDEX IF NOT EXISTS idx_invocations_created_at ON invocations(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) RecordInvocation(ctx context.Context, inv Invocation) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO invocations (id, tool, success, message, duration_ms, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		inv.ID, inv.Tool, inv.Success, inv.Message, inv.DurationMS, inv.CreatedAt,
	)
	return eris.Wrap(err, "postgres: record invocation")
}

func (s *PostgresStore) ListInvocations(ctx context.Context, limit int) ([]Invocation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, tool, success, message, duration_ms, created_at FROM invocations ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list invocations")
	}
	defer rows.Close()

	var out []Invocation
	for rows.Next() {
		var inv Invocation
		var message sql.NullString
		if err := rows.Scan(&inv.ID, &inv.Tool, &inv.Success, &message, &inv.DurationMS, &inv.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan invocation")
		}
		inv.Message = message.String
		out = append(out, inv)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate invocations")
}
