package crm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/crm-tools/pkg/anthropic"
	"github.com/sells-group/crm-tools/pkg/serper"
)

const enrichedProfiles = `[
  {"name": "Jordan Pace", "title": "Senior Product Manager", "location": "Austin, TX",
   "timezone": "CST", "working_hours": "9am-5pm", "style": "hybrid",
   "best_time": "10am", "note": "Posts about developer tooling."}
]`

func TestProspectWithoutSearchClient(t *testing.T) {
	svc := newTestService(&mockOdooClient{}, &mockAnthropicClient{})

	_, err := svc.Prospect(context.Background(), "Acme", "", 5)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestProspectRequiresCompany(t *testing.T) {
	svc := newTestService(&mockOdooClient{}, &mockAnthropicClient{}, WithSearch(&mockSerperClient{}))

	_, err := svc.Prospect(context.Background(), "  ", "", 5)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "company", verr.Field)
}

func TestProspectNoResults(t *testing.T) {
	search := &mockSerperClient{}
	search.On("Search", mock.Anything, mock.Anything).
		Return([]serper.SearchResult{}, nil)

	svc := newTestService(&mockOdooClient{}, &mockAnthropicClient{}, WithSearch(search))
	_, err := svc.Prospect(context.Background(), "Acme", "", 5)

	var nferr *NotFoundError
	require.ErrorAs(t, err, &nferr)
}

func TestProspectDefaultRoleInQuery(t *testing.T) {
	search := &mockSerperClient{}
	search.On("Search", mock.Anything, `site:linkedin.com/in "product manager" "Acme"`).
		Return([]serper.SearchResult{}, nil)

	svc := newTestService(&mockOdooClient{}, &mockAnthropicClient{}, WithSearch(search))
	_, _ = svc.Prospect(context.Background(), "Acme", "", 5)

	search.AssertExpectations(t)
}

func TestProspectCreatesLeadsFromEnrichedProfiles(t *testing.T) {
	search := &mockSerperClient{}
	search.On("Search", mock.Anything, mock.Anything).
		Return([]serper.SearchResult{
			{Title: "Jordan Pace - Senior Product Manager - Acme", Snippet: "PM at Acme", Link: "https://linkedin.com/in/jordanpace"},
		}, nil)

	ai := &mockAnthropicClient{}
	ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(enrichedProfiles), nil)

	store := &mockOdooClient{}
	store.On("Create", mock.Anything, "crm.lead",
		mock.MatchedBy(func(values map[string]any) bool {
			return values["name"] == "Jordan Pace from Acme" &&
				values["partner_name"] == "Acme" &&
				values["contact_name"] == "Jordan Pace"
		})).
		Return(int64(201), nil)

	svc := newTestService(store, ai, WithSearch(search))
	leads, err := svc.Prospect(context.Background(), "Acme", "product manager", 5)

	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.True(t, leads[0].Created)
	assert.Equal(t, int64(201), leads[0].LeadID)
	assert.Equal(t, "https://linkedin.com/in/jordanpace", leads[0].Link)
	store.AssertExpectations(t)
}

func TestProspectPerLeadFailureIsNotFatal(t *testing.T) {
	search := &mockSerperClient{}
	search.On("Search", mock.Anything, mock.Anything).
		Return([]serper.SearchResult{
			{Title: "Jordan Pace - PM", Link: "https://linkedin.com/in/jordanpace"},
		}, nil)

	ai := &mockAnthropicClient{}
	ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(enrichedProfiles), nil)

	store := &mockOdooClient{}
	store.On("Create", mock.Anything, "crm.lead", mock.Anything).
		Return(int64(0), errors.New("access denied"))

	svc := newTestService(store, ai, WithSearch(search))
	leads, err := svc.Prospect(context.Background(), "Acme", "product manager", 5)

	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.False(t, leads[0].Created)
	assert.NotEmpty(t, leads[0].Error)
}

func TestProspectEnrichmentFailureIsFatal(t *testing.T) {
	search := &mockSerperClient{}
	search.On("Search", mock.Anything, mock.Anything).
		Return([]serper.SearchResult{{Title: "Jordan Pace"}}, nil)

	ai := &mockAnthropicClient{}
	ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse("sorry, no structured output today"), nil)

	store := &mockOdooClient{}
	svc := newTestService(store, ai, WithSearch(search))
	_, err := svc.Prospect(context.Background(), "Acme", "product manager", 5)

	var merr *MalformedResponseError
	require.ErrorAs(t, err, &merr)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestProspectTruncatesToMaxLeads(t *testing.T) {
	search := &mockSerperClient{}
	search.On("Search", mock.Anything, mock.Anything).
		Return([]serper.SearchResult{
			{Title: "A"}, {Title: "B"}, {Title: "C"},
		}, nil)

	ai := &mockAnthropicClient{}
	ai.On("CreateMessage", mock.Anything, mock.MatchedBy(func(req anthropic.MessageRequest) bool {
		// Only the first two snippets survive the cap.
		content := req.Messages[0].Content
		return strings.Contains(content, `"A"`) &&
			strings.Contains(content, `"B"`) &&
			!strings.Contains(content, `"C"`)
	})).Return(textResponse(`[]`), nil)

	svc := newTestService(&mockOdooClient{}, ai, WithSearch(search))
	leads, err := svc.Prospect(context.Background(), "Acme", "product manager", 2)

	require.NoError(t, err)
	assert.Empty(t, leads)
	ai.AssertExpectations(t)
}
