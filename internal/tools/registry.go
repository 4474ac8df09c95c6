// Package tools exposes the CRM operations as named, JSON-argument tools.
// Both invocation surfaces (HTTP and MCP) dispatch through the registry so
// auditing and the result envelope contract live in one place.
package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/crm-tools/internal/crm"
	"github.com/sells-group/crm-tools/internal/store"
)

// Result is a tool outcome: the JSON-serializable payload returned to the
// caller plus the success/message pair recorded in the audit log.
type Result struct {
	Payload any
	Success bool
	Message string
}

// Tool is a named operation with a JSON object argument.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any

	// Run never returns an error: every failure mode is folded into the
	// result envelope, per the tool surface contract.
	Run func(ctx context.Context, args json.RawMessage) Result
}

// Registry holds the tool set backed by one CRM service.
type Registry struct {
	svc   *crm.Service
	audit store.Store
	tools map[string]*Tool
	order []string
}

// NewRegistry builds the registry with all built-in tools registered.
func NewRegistry(svc *crm.Service, audit store.Store) *Registry {
	if audit == nil {
		audit = store.Nop{}
	}
	r := &Registry{
		svc:   svc,
		audit: audit,
		tools: make(map[string]*Tool),
	}
	for _, t := range builtinTools(svc) {
		r.tools[t.Name] = t
		r.order = append(r.order, t.Name)
	}
	return r
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []*Tool {
	out := make([]*Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Lookup returns the named tool.
func (r *Registry) Lookup(name string) (*Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Invoke dispatches one tool call and records it in the audit log. The
// returned payload is always a structured result value; err is non-nil
// only for an unknown tool name.
func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) (any, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, eris.Errorf("tools: unknown tool %q", name)
	}

	start := time.Now()
	res := tool.Run(ctx, args)
	elapsed := time.Since(start)

	zap.L().Info("tool invoked",
		zap.String("tool", name),
		zap.Bool("success", res.Success),
		zap.Duration("duration", elapsed),
	)

	if err := r.audit.RecordInvocation(ctx, store.Invocation{
		ID:         uuid.NewString(),
		Tool:       name,
		Success:    res.Success,
		Message:    res.Message,
		DurationMS: elapsed.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		// Auditing is advisory; the invocation result stands.
		zap.L().Warn("tools: audit write failed", zap.Error(err))
	}

	return res.Payload, nil
}

// History returns recent invocations from the audit log.
func (r *Registry) History(ctx context.Context, limit int) ([]store.Invocation, error) {
	return r.audit.ListInvocations(ctx, limit)
}

// decodeArgs unmarshals tool arguments, tolerating an absent body.
func decodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return nil
	}
	return json.Unmarshal(args, v)
}
