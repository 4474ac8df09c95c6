// Package crm implements the lead classification and CRM-update pipeline:
// classify inbound text with a language model, resolve the target lead by
// email, and apply conditional updates including salesperson assignment.
package crm

import (
	"context"

	"github.com/sells-group/crm-tools/internal/config"
	"github.com/sells-group/crm-tools/internal/resilience"
	"github.com/sells-group/crm-tools/pkg/anthropic"
	"github.com/sells-group/crm-tools/pkg/odoo"
	"github.com/sells-group/crm-tools/pkg/serper"
)

// Service wires the remote store, the model client, and the search client
// into the CRM operations. Each method is an independent synchronous call
// chain; the Service itself holds no per-invocation state.
type Service struct {
	store  odoo.Client
	ai     anthropic.Client
	search serper.Client // optional; nil disables prospecting
	aiCfg  config.AnthropicConfig
	retry  resilience.RetryConfig
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithSearch enables the prospecting tool with the given search client.
func WithSearch(sc serper.Client) ServiceOption {
	return func(s *Service) {
		s.search = sc
	}
}

// WithRetry overrides the retry policy applied to remote calls.
func WithRetry(cfg resilience.RetryConfig) ServiceOption {
	return func(s *Service) {
		s.retry = cfg
	}
}

// NewService creates the CRM service.
func NewService(store odoo.Client, ai anthropic.Client, aiCfg config.AnthropicConfig, opts ...ServiceOption) *Service {
	s := &Service{
		store: store,
		ai:    ai,
		aiCfg: aiCfg,
		retry: resilience.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Remote-call helpers apply the bounded retry policy. Only transient
// failures are retried; an Odoo fault (bad field, access denied) surfaces
// immediately.

func (s *Service) searchIDs(ctx context.Context, table string, domain []any, limit int) ([]int64, error) {
	cfg := s.retry
	cfg.OnRetry = resilience.RetryLogger("odoo", table+".search")
	return resilience.DoVal(ctx, cfg, func(ctx context.Context) ([]int64, error) {
		return s.store.Search(ctx, table, domain, limit)
	})
}

func (s *Service) searchRead(ctx context.Context, table string, domain []any, fields []string, limit int) ([]map[string]any, error) {
	cfg := s.retry
	cfg.OnRetry = resilience.RetryLogger("odoo", table+".search_read")
	return resilience.DoVal(ctx, cfg, func(ctx context.Context) ([]map[string]any, error) {
		return s.store.SearchRead(ctx, table, domain, fields, limit)
	})
}

func (s *Service) createRecord(ctx context.Context, table string, values map[string]any) (int64, error) {
	cfg := s.retry
	cfg.OnRetry = resilience.RetryLogger("odoo", table+".create")
	return resilience.DoVal(ctx, cfg, func(ctx context.Context) (int64, error) {
		return s.store.Create(ctx, table, values)
	})
}

func (s *Service) writeRecord(ctx context.Context, table string, ids []int64, values map[string]any) (bool, error) {
	cfg := s.retry
	cfg.OnRetry = resilience.RetryLogger("odoo", table+".write")
	return resilience.DoVal(ctx, cfg, func(ctx context.Context) (bool, error) {
		return s.store.Write(ctx, table, ids, values)
	})
}

func (s *Service) createMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	cfg := s.retry
	cfg.OnRetry = resilience.RetryLogger("anthropic", "create_message")
	return resilience.DoVal(ctx, cfg, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		if s.aiCfg.TimeoutSecs > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.aiCfg.Timeout())
			defer cancel()
		}
		return s.ai.CreateMessage(ctx, req)
	})
}
