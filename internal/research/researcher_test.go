// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/lead-research/internal/completion"
	"github.com/pdiddy/lead-research/pkg/types"
)

// mockSearch is a testify mock of SearchClient.
type mockSearch struct {
	mock.Mock
}

func (m *mockSearch) CompanyInfo(ctx context.Context, query string, depth types.SearchDepth, maxResults int) (string, error) {
	args := m.Called(ctx, query, depth, maxResults)
	return args.String(0), args.Error(1)
}

func (m *mockSearch) SearchContext(ctx context.Context, query string, depth types.SearchDepth, maxResults int) (string, error) {
	args := m.Called(ctx, query, depth, maxResults)
	return args.String(0), args.Error(1)
}

// mockCompleter is a testify mock of completion.Completer.
type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, req completion.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func newTestResearcher(t *testing.T, s SearchClient, c completion.Completer) (*Researcher, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return NewResearcher(s, c, Options{Out: &out, Logger: zaptest.NewLogger(t)}), &out
}

// --- Query building ---

func TestCompanyQuery(t *testing.T) {
	tests := []struct {
		name    string
		company string
		domain  string
		want    string
	}{
		{"without domain", "Acme Inc", "", "Information about Acme Inc"},
		{"with domain", "Acme Inc", "acme.com", "Information about Acme Inc (acme.com)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := companyQuery(tt.company, tt.domain); got != tt.want {
				t.Errorf("companyQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPersonQuery(t *testing.T) {
	tests := []struct {
		name    string
		company string
		email   string
		want    string
	}{
		{"name only", "", "", "Information about Jane Doe"},
		{"company only", "Acme Inc", "", "Information about Jane Doe at Acme Inc"},
		{"email only", "", "jane@acme.com", "Information about Jane Doe jane@acme.com"},
		{"company then email", "Acme Inc", "jane@acme.com", "Information about Jane Doe at Acme Inc jane@acme.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := personQuery("Jane Doe", tt.company, tt.email); got != tt.want {
				t.Errorf("personQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- ResearchCompany / ResearchPerson ---

func TestResearchCompanyPassesThroughPayload(t *testing.T) {
	s := new(mockSearch)
	s.On("CompanyInfo", mock.Anything, "Information about Acme Inc (acme.com)", types.DepthAdvanced, 7).
		Return(`[{"url":"https://acme.com"}]`, nil)

	r, out := newTestResearcher(t, s, new(mockCompleter))
	got := r.ResearchCompany(context.Background(), "Acme Inc", "acme.com")

	assert.False(t, got.Degraded())
	assert.Equal(t, `[{"url":"https://acme.com"}]`, got.String())
	assert.Equal(t, "Researching company: Acme Inc...\n", out.String())
	s.AssertExpectations(t)
}

func TestResearchCompanyCapturesError(t *testing.T) {
	s := new(mockSearch)
	s.On("CompanyInfo", mock.Anything, "Information about Acme Inc", types.DepthAdvanced, 7).
		Return("", errors.New("connection refused"))

	r, out := newTestResearcher(t, s, new(mockCompleter))
	got := r.ResearchCompany(context.Background(), "Acme Inc", "")

	require.True(t, got.Degraded())
	assert.Equal(t, "Error retrieving company information: connection refused", got.String())
	assert.Contains(t, out.String(), "Error researching company: connection refused\n")
}

func TestResearchPersonPassesThroughPayload(t *testing.T) {
	s := new(mockSearch)
	s.On("SearchContext", mock.Anything, "Information about Jane at Acme Inc jane@acme.com", types.DepthAdvanced, 5).
		Return("Jane is the CEO.", nil)

	r, out := newTestResearcher(t, s, new(mockCompleter))
	got := r.ResearchPerson(context.Background(), "Jane", "Acme Inc", "jane@acme.com")

	assert.False(t, got.Degraded())
	assert.Equal(t, "Jane is the CEO.", got.String())
	assert.Equal(t, "Researching person: Jane...\n", out.String())
	s.AssertExpectations(t)
}

func TestResearchPersonCapturesError(t *testing.T) {
	s := new(mockSearch)
	s.On("SearchContext", mock.Anything, "Information about Jane", types.DepthAdvanced, 5).
		Return("", errors.New("HTTP 432"))

	r, out := newTestResearcher(t, s, new(mockCompleter))
	got := r.ResearchPerson(context.Background(), "Jane", "", "")

	require.True(t, got.Degraded())
	assert.True(t, strings.HasPrefix(got.String(), PersonErrorPrefix))
	assert.Equal(t, "Error retrieving person information: HTTP 432", got.String())
	assert.Contains(t, out.String(), "Error researching person: HTTP 432\n")
}

// --- AnalyzeResearch ---

func TestAnalyzeResearchSendsOneMessage(t *testing.T) {
	lead := types.DefaultLead()
	company := Context{Payload: "Acme is a widget maker."}
	person := Context{Payload: "Jane is the CEO."}

	c := new(mockCompleter)
	c.On("Complete", mock.Anything, mock.MatchedBy(func(req completion.Request) bool {
		return len(req.Messages) == 1 &&
			req.Messages[0].Role == completion.RoleUser &&
			req.Temperature == 0.4 &&
			req.MaxTokens == 4000
	})).Return("  the report, untouched \n", nil).Once()

	r, out := newTestResearcher(t, new(mockSearch), c)
	got := r.AnalyzeResearch(context.Background(), company, person, lead)

	assert.False(t, got.Degraded())
	assert.Equal(t, "  the report, untouched \n", got.String())
	assert.Equal(t, "Analyzing research data...\n", out.String())
	c.AssertExpectations(t)

	req := c.Calls[0].Arguments.Get(1).(completion.Request)
	prompt := req.Messages[0].Content
	assert.Contains(t, prompt, "Acme is a widget maker.")
	assert.Contains(t, prompt, "Jane is the CEO.")
	assert.Contains(t, prompt, "- email: Nicholas@tna.associates")
	for _, section := range []string{
		"1. Company Overview",
		"2. Decision Maker Profile (Nicholas Delgado)",
		"3. Opportunity Analysis",
		"4. Recommended Approach",
		"5. Risk Assessment",
	} {
		assert.Contains(t, prompt, section)
	}
	assert.Contains(t, prompt, "Alignment with provided needs (Integrate with our PM system")
	assert.Contains(t, prompt, "state that it's not available")
}

func TestAnalyzeResearchUsesConfiguredModel(t *testing.T) {
	c := new(mockCompleter)
	c.On("Complete", mock.Anything, mock.MatchedBy(func(req completion.Request) bool {
		return req.Model == "gpt-4o-mini"
	})).Return("ok", nil)

	r := NewResearcher(new(mockSearch), c, Options{Model: "gpt-4o-mini"})
	got := r.AnalyzeResearch(context.Background(), Context{}, Context{}, types.DefaultLead())
	assert.Equal(t, "ok", got.String())
	c.AssertExpectations(t)
}

func TestAnalyzeResearchInterpolatesDecisionMaker(t *testing.T) {
	lead := types.LeadInfo{Name: "Jane Roe", Company: "Acme Inc"}

	c := new(mockCompleter)
	c.On("Complete", mock.Anything, mock.Anything).Return("ok", nil)

	r, _ := newTestResearcher(t, new(mockSearch), c)
	r.AnalyzeResearch(context.Background(), Context{}, Context{}, lead)

	prompt := c.Calls[0].Arguments.Get(1).(completion.Request).Messages[0].Content
	assert.Contains(t, prompt, "2. Decision Maker Profile (Jane Roe)")
	assert.NotContains(t, prompt, "Nicholas Delgado")
	assert.Contains(t, prompt, "Alignment with provided needs (not stated)")
}

func TestAnalyzeResearchCapturesError(t *testing.T) {
	c := new(mockCompleter)
	c.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("rate limited"))

	r, out := newTestResearcher(t, new(mockSearch), c)
	got := r.AnalyzeResearch(context.Background(), Context{}, Context{}, types.DefaultLead())

	require.True(t, got.Degraded())
	assert.Equal(t, "Error analyzing research data: rate limited", got.String())
	assert.Contains(t, out.String(), "Error analyzing research data: rate limited\n")
}
