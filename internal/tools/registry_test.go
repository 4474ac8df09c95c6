package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/crm-tools/internal/config"
	"github.com/sells-group/crm-tools/internal/crm"
	"github.com/sells-group/crm-tools/internal/model"
	"github.com/sells-group/crm-tools/internal/store"
	"github.com/sells-group/crm-tools/pkg/anthropic"
	"github.com/sells-group/crm-tools/pkg/odoo"
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

// --- Recording audit store ---

type recordingStore struct {
	store.Nop
	invocations []store.Invocation
}

func (r *recordingStore) RecordInvocation(ctx context.Context, inv store.Invocation) error {
	r.invocations = append(r.invocations, inv)
	return nil
}

func (r *recordingStore) ListInvocations(ctx context.Context, limit int) ([]store.Invocation, error) {
	return r.invocations, nil
}

var (
	_ odoo.Client      = (*mockOdooClient)(nil)
	_ anthropic.Client = (*mockAnthropicClient)(nil)
	_ store.Store      = (*recordingStore)(nil)
)

func newTestRegistry(odooMock *mockOdooClient, aiMock *mockAnthropicClient, audit store.Store) *Registry {
	svc := crm.NewService(odooMock, aiMock, config.AnthropicConfig{
		Model:     "claude-haiku-4-5-20251001",
		MaxTokens: 1024,
	})
	return NewRegistry(svc, audit)
}

func TestRegistryListsToolsInRegistrationOrder(t *testing.T) {
	reg := newTestRegistry(&mockOdooClient{}, &mockAnthropicClient{}, nil)

	var names []string
	for _, tool := range reg.Tools() {
		names = append(names, tool.Name)
	}

	assert.Equal(t, []string{
		"create_lead",
		"qualify_lead",
		"classify_lead",
		"get_project_tasks",
		"prospect_leads",
	}, names)
}

func TestRegistryLookup(t *testing.T) {
	reg := newTestRegistry(&mockOdooClient{}, &mockAnthropicClient{}, nil)

	tool, ok := reg.Lookup("create_lead")
	require.True(t, ok)
	assert.Equal(t, "create_lead", tool.Name)
	assert.NotEmpty(t, tool.Description)
	assert.Equal(t, "object", tool.InputSchema["type"])

	_, ok = reg.Lookup("no_such_tool")
	assert.False(t, ok)
}

func TestRegistryInvokeUnknownTool(t *testing.T) {
	reg := newTestRegistry(&mockOdooClient{}, &mockAnthropicClient{}, nil)

	_, err := reg.Invoke(context.Background(), "no_such_tool", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_tool")
}

func TestRegistryInvokeCreateLead(t *testing.T) {
	odooMock := &mockOdooClient{}
	odooMock.On("Create", mock.Anything, "crm.lead", mock.Anything).
		Return(int64(77), nil)

	audit := &recordingStore{}
	reg := newTestRegistry(odooMock, &mockAnthropicClient{}, audit)

	payload, err := reg.Invoke(context.Background(), "create_lead",
		json.RawMessage(`{"name": "Acme inquiry"}`))

	require.NoError(t, err)
	result, ok := payload.(model.CreateResult)
	require.True(t, ok)
	assert.True(t, result.Success)
	assert.Equal(t, int64(77), result.LeadID)

	require.Len(t, audit.invocations, 1)
	assert.Equal(t, "create_lead", audit.invocations[0].Tool)
	assert.True(t, audit.invocations[0].Success)
	assert.NotEmpty(t, audit.invocations[0].ID)
}

func TestRegistryInvokeFailureFoldedIntoEnvelope(t *testing.T) {
	audit := &recordingStore{}
	reg := newTestRegistry(&mockOdooClient{}, &mockAnthropicClient{}, audit)

	// Missing required name: the tool reports failure in the payload,
	// never as a Go error.
	payload, err := reg.Invoke(context.Background(), "create_lead",
		json.RawMessage(`{}`))

	require.NoError(t, err)
	result, ok := payload.(model.CreateResult)
	require.True(t, ok)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)

	require.Len(t, audit.invocations, 1)
	assert.False(t, audit.invocations[0].Success)
}

func TestRegistryInvokeInvalidArguments(t *testing.T) {
	reg := newTestRegistry(&mockOdooClient{}, &mockAnthropicClient{}, nil)

	payload, err := reg.Invoke(context.Background(), "get_project_tasks",
		json.RawMessage(`{"project_name": 42}`))

	require.NoError(t, err)
	result, ok := payload.(model.TaskListResult)
	require.True(t, ok)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "invalid arguments")
}

func TestRegistryInvokeGetTasksNotFound(t *testing.T) {
	odooMock := &mockOdooClient{}
	odooMock.On("Search", mock.Anything, "project.project", mock.Anything, 1).
		Return([]int64{}, nil)

	reg := newTestRegistry(odooMock, &mockAnthropicClient{}, nil)

	payload, err := reg.Invoke(context.Background(), "get_project_tasks",
		json.RawMessage(`{"project_name": "NoSuchProject"}`))

	require.NoError(t, err)
	result := payload.(model.TaskListResult)
	assert.False(t, result.Success)
	assert.Equal(t, "Project 'NoSuchProject' not found.", result.Error)
}

func TestRegistryInvokeProspectUnconfigured(t *testing.T) {
	reg := newTestRegistry(&mockOdooClient{}, &mockAnthropicClient{}, nil)

	payload, err := reg.Invoke(context.Background(), "prospect_leads",
		json.RawMessage(`{"company": "Acme"}`))

	require.NoError(t, err)
	result := payload.(model.ProspectResult)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "not configured")
}

func TestRegistryHistory(t *testing.T) {
	audit := &recordingStore{}
	reg := newTestRegistry(&mockOdooClient{}, &mockAnthropicClient{}, audit)

	_, _ = reg.Invoke(context.Background(), "create_lead", json.RawMessage(`{}`))

	invs, err := reg.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, invs, 1)
}

func TestRegistryNilAuditDefaultsToNop(t *testing.T) {
	odooMock := &mockOdooClient{}
	odooMock.On("Create", mock.Anything, "crm.lead", mock.Anything).
		Return(int64(1), nil)

	reg := newTestRegistry(odooMock, &mockAnthropicClient{}, nil)

	_, err := reg.Invoke(context.Background(), "create_lead",
		json.RawMessage(`{"name": "x"}`))
	assert.NoError(t, err)
}
