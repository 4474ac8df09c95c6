package main

import (
	"context"
	"net/http"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/crm-tools/internal/crm"
	"github.com/sells-group/crm-tools/internal/store"
	"github.com/sells-group/crm-tools/internal/tools"
	anthropicpkg "github.com/sells-group/crm-tools/pkg/anthropic"
	"github.com/sells-group/crm-tools/pkg/odoo"
	"github.com/sells-group/crm-tools/pkg/serper"
)

// serviceEnv holds the initialized clients, service, and tool registry
// shared by the serve/mcp/lead/tasks commands.
type serviceEnv struct {
	Store    store.Store
	Odoo     odoo.Client
	Service  *crm.Service
	Registry *tools.Registry
}

// Close releases resources held by the environment.
func (se *serviceEnv) Close() {
	if se.Store != nil {
		_ = se.Store.Close()
	}
}

// initService sets up the Odoo client, the model client, the optional
// search client, the audit store, and the tool registry. Callers should
// defer env.Close().
func initService(ctx context.Context) (*serviceEnv, error) {
	var odooOpts []odoo.ClientOption
	if cfg.Odoo.RateLimitRPS > 0 {
		odooOpts = append(odooOpts, odoo.WithRateLimit(cfg.Odoo.RateLimitRPS))
	}
	odooClient, err := odoo.New(odoo.Config{
		URL:      cfg.Odoo.URL,
		Database: cfg.Odoo.Database,
		Username: cfg.Odoo.Username,
		Password: cfg.Odoo.Password,
		Timeout:  cfg.Odoo.Timeout(),
	}, odooOpts...)
	if err != nil {
		return nil, err
	}

	if cfg.Anthropic.Key == "" {
		return nil, eris.New("CRMTOOLS_ANTHROPIC_KEY is required")
	}
	anthropicClient := anthropicpkg.NewClient(cfg.Anthropic.Key)

	svcOpts := []crm.ServiceOption{}
	if cfg.Serper.Key != "" {
		searchClient, err := serper.NewClient(cfg.Serper.Key,
			serper.WithBaseURL(cfg.Serper.BaseURL),
			serper.WithHTTPClient(&http.Client{Timeout: cfg.Serper.Timeout()}),
		)
		if err != nil {
			return nil, err
		}
		svcOpts = append(svcOpts, crm.WithSearch(searchClient))
		zap.L().Info("serper search enabled, prospecting available")
	} else {
		zap.L().Debug("CRMTOOLS_SERPER_KEY not set, prospecting disabled")
	}

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, eris.Wrap(err, "open audit store")
	}

	svc := crm.NewService(odooClient, anthropicClient, cfg.Anthropic, svcOpts...)

	return &serviceEnv{
		Store:    st,
		Odoo:     odooClient,
		Service:  svc,
		Registry: tools.NewRegistry(svc, st),
	}, nil
}
