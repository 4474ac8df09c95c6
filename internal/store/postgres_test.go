package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPostgres(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresWithPool(mock), mock
}

func TestPostgresMigrate(t *testing.T) {
	s, mock := newTestPostgres(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS invocations").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRecordInvocation(t *testing.T) {
	s, mock := newTestPostgres(t)

	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO invocations").
		WithArgs("inv-1", "create_lead", true, "Lead created.", int64(120), created).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.RecordInvocation(context.Background(), Invocation{
		ID:         "inv-1",
		Tool:       "create_lead",
		Success:    true,
		Message:    "Lead created.",
		DurationMS: 120,
		CreatedAt:  created,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRecordInvocationError(t *testing.T) {
	s, mock := newTestPostgres(t)

	mock.ExpectExec("INSERT INTO invocations").
		WillReturnError(errors.New("connection refused"))

	err := s.RecordInvocation(context.Background(), Invocation{ID: "inv-1"})
	assert.Error(t, err)
}

func TestPostgresListInvocations(t *testing.T) {
	s, mock := newTestPostgres(t)

	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "tool", "success", "message", "duration_ms", "created_at"}).
		AddRow("inv-2", "qualify_lead", true, "Lead 42 updated.", int64(900), created).
		AddRow("inv-1", "create_lead", false, "validation failed on name: lead name is required", int64(5), created.Add(-time.Minute))

	mock.ExpectQuery("SELECT id, tool, success, message, duration_ms, created_at FROM invocations").
		WithArgs(2).
		WillReturnRows(rows)

	invs, err := s.ListInvocations(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, invs, 2)

	assert.Equal(t, "inv-2", invs[0].ID)
	assert.True(t, invs[0].Success)
	assert.Equal(t, "qualify_lead", invs[0].Tool)
	assert.False(t, invs[1].Success)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListInvocationsDefaultLimit(t *testing.T) {
	s, mock := newTestPostgres(t)

	mock.ExpectQuery("SELECT id, tool, success, message, duration_ms, created_at FROM invocations").
		WithArgs(50).
		WillReturnRows(pgxmock.NewRows([]string{"id", "tool", "success", "message", "duration_ms", "created_at"}))

	invs, err := s.ListInvocations(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, invs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
