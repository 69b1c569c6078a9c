package service

import (
	"context"
	"errors"
	"testing"

	"wm-assistant/internal/llm"
	"wm-assistant/internal/models"
	"wm-assistant/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSearcher struct {
	entries []*models.SupportEntry
}

func (s *stubSearcher) Search(query string, limit int) []*models.SupportEntry {
	if limit > 0 && len(s.entries) > limit {
		return s.entries[:limit]
	}
	return s.entries
}

type stubProvider struct {
	result      *llm.Result
	err         error
	lastContext string
	lastHistory []llm.Message
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Generate(ctx context.Context, query, contextStr string, history []llm.Message) (*llm.Result, error) {
	p.lastContext = contextStr
	p.lastHistory = history
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

func newAssistant(search Searcher, provider llm.Provider) *AssistantService {
	return NewAssistantService(
		search,
		provider,
		&config.RAGConfig{TopK: 3},
		&config.LLMConfig{},
		zap.NewNop(),
	)
}

func testQuery(t *testing.T) *models.CustomerQuery {
	t.Helper()
	query, err := models.NewCustomerQuery("session-1", "how do I pay my bill")
	require.NoError(t, err)
	return query
}

func matchedEntries() []*models.SupportEntry {
	return []*models.SupportEntry{
		{
			ID:       "billing-basics",
			Title:    "Billing question",
			Category: models.CategoryBilling,
			Keywords: []string{"bill"},
			Content:  "pay your bill online",
			URL:      "https://www.wm.com/billing",
			ActionLinks: map[string]string{
				"My WM": "https://www.wm.com/mywm",
			},
			PolicyNotes: []string{"autopay discounts vary by region"},
		},
		{
			ID:       "billing-autopay",
			Title:    "Autopay setup",
			Category: models.CategoryBilling,
			Keywords: []string{"autopay"},
			Content:  "enroll in autopay through My WM",
		},
	}
}

func TestRespondPackagesAnswer(t *testing.T) {
	provider := &stubProvider{result: &llm.Result{Content: "You can pay online.", TokensUsed: 42, Model: "test-model"}}
	svc := newAssistant(&stubSearcher{entries: matchedEntries()}, provider)

	resp := svc.Respond(context.Background(), testQuery(t), nil)

	assert.NotEmpty(t, resp.ResponseID)
	assert.Equal(t, "You can pay online.", resp.Content)
	assert.Equal(t, []string{"billing-basics", "billing-autopay"}, resp.Sources)
	assert.Equal(t, []string{"https://www.wm.com/billing"}, resp.URLs)
	assert.Equal(t, 0.5, resp.ConfidenceScore)
	assert.GreaterOrEqual(t, resp.ResponseTimeMs, int64(0))
	assert.False(t, resp.Timestamp.IsZero())
}

func TestRespondContextIncludesMetadata(t *testing.T) {
	provider := &stubProvider{result: &llm.Result{Content: "ok answer"}}
	svc := newAssistant(&stubSearcher{entries: matchedEntries()}, provider)

	svc.Respond(context.Background(), testQuery(t), nil)

	assert.Contains(t, provider.lastContext, "Title: Billing question")
	assert.Contains(t, provider.lastContext, "Content: pay your bill online")
	assert.Contains(t, provider.lastContext, "Action Links: My WM: https://www.wm.com/mywm")
	assert.Contains(t, provider.lastContext, "Policy Notes: autopay discounts vary by region")
	assert.Contains(t, provider.lastContext, "Title: Autopay setup")
}

func TestRespondNoMatches(t *testing.T) {
	provider := &stubProvider{result: &llm.Result{Content: "Sorry, I don't have that information."}}
	svc := newAssistant(&stubSearcher{}, provider)

	resp := svc.Respond(context.Background(), testQuery(t), nil)

	assert.Equal(t, 0.1, resp.ConfidenceScore)
	assert.Empty(t, resp.Sources)
	assert.Empty(t, resp.URLs)
	assert.Equal(t, "", provider.lastContext)
}

func TestRespondProviderFailureDegrades(t *testing.T) {
	provider := &stubProvider{err: errors.New("api timeout")}
	svc := newAssistant(&stubSearcher{entries: matchedEntries()}, provider)

	resp := svc.Respond(context.Background(), testQuery(t), nil)

	// Generation failure degrades to the fallback message, never an error.
	assert.Equal(t, fallbackContent, resp.Content)
	assert.Equal(t, []string{"billing-basics", "billing-autopay"}, resp.Sources)
}

func TestRespondForwardsHistory(t *testing.T) {
	provider := &stubProvider{result: &llm.Result{Content: "ok"}}
	svc := newAssistant(&stubSearcher{}, provider)

	history := []llm.Message{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello, how can I help?"},
	}
	svc.Respond(context.Background(), testQuery(t), history)

	assert.Equal(t, history, provider.lastHistory)
}
