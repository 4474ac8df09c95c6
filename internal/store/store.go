// Package store persists a log of tool invocations for operator review.
// Auditing is advisory: callers log and continue when a store call fails.
package store

import (
	"context"
	"time"
)

// Invocation is one recorded tool call.
type Invocation struct {
	ID         string    `json:"id"`
	Tool       string    `json:"tool"`
	Success    bool      `json:"success"`
	Message    string    `json:"message,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store defines the audit log persistence interface.
type Store interface {
	RecordInvocation(ctx context.Context, inv Invocation) error
	ListInvocations(ctx context.Context, limit int) ([]Invocation, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Nop is a Store that records nothing, used when auditing is disabled.
type Nop struct{}

func (Nop) RecordInvocation(context.Context, Invocation) error { return nil }

func (Nop) ListInvocations(context.Context, int) ([]Invocation, error) { return nil, nil }

func (Nop) Migrate(context.Context) error { return nil }

func (Nop) Close() error { return nil }
