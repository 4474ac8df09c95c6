package crm

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/crm-tools/pkg/anthropic"
	"github.com/sells-group/crm-tools/pkg/odoo"
	"github.com/sells-group/crm-tools/pkg/serper"
)

// --- Odoo Mock ---

type mockOdooClient struct {
	mock.Mock
}

func (m *mockOdooClient) UID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOdooClient) ExecuteKw(ctx context.Context, table, method string, callArgs []any, kwargs map[string]any) (any, error) {
	args := m.Called(ctx, table, method, callArgs, kwargs)
	return args.Get(0), args.Error(1)
}

func (m *mockOdooClient) Search(ctx context.Context, table string, domain []any, limit int) ([]int64, error) {
	args := m.Called(ctx, table, domain, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockOdooClient) SearchRead(ctx context.Context, table string, domain []any, fields []string, limit int) ([]map[string]any, error) {
	args := m.Called(ctx, table, domain, fields, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

func (m *mockOdooClient) Create(ctx context.Context, table string, values map[string]any) (int64, error) {
	args := m.Called(ctx, table, values)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOdooClient) Write(ctx context.Context, table string, ids []int64, values map[string]any) (bool, error) {
	args := m.Called(ctx, table, ids, values)
	return args.Bool(0), args.Error(1)
}

// --- Anthropic Mock ---

type mockAnthropicClient struct {
	mock.Mock
}

func (m *mockAnthropicClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

// --- Serper Mock ---

type mockSerperClient struct {
	mock.Mock
}

func (m *mockSerperClient) Search(ctx context.Context, query string) ([]serper.SearchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]serper.SearchResult), args.Error(1)
}

// --- Ensure interface compliance ---
var (
	_ odoo.Client      = (*mockOdooClient)(nil)
	_ anthropic.Client = (*mockAnthropicClient)(nil)
	_ serper.Client    = (*mockSerperClient)(nil)
)

// textResponse builds a single-text-block model response.
func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		ID:      "msg_test",
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
	}
}
