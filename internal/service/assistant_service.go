package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"wm-assistant/internal/llm"
	"wm-assistant/internal/models"
	"wm-assistant/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fallbackContent is returned when the answer generator fails; the request
// still succeeds, just degraded.
const fallbackContent = "I apologize, but I'm experiencing technical difficulties. Please try again in a moment."

const (
	// noMatchConfidence is reported when retrieval finds nothing.
	noMatchConfidence = 0.1
	// matchConfidence is the fixed per-match value for the keyword path,
	// which has no real similarity score to report.
	matchConfidence = 0.5
)

// AssistantService sequences one request: ranked search, context assembly,
// answer generation, response packaging.
type AssistantService struct {
	search   Searcher
	provider llm.Provider
	topK     int
	timeout  time.Duration
	logger   *zap.Logger
}

func NewAssistantService(
	search Searcher,
	provider llm.Provider,
	ragCfg *config.RAGConfig,
	llmCfg *config.LLMConfig,
	logger *zap.Logger,
) *AssistantService {
	topK := ragCfg.TopK
	if topK <= 0 {
		topK = 3
	}
	return &AssistantService{
		search:   search,
		provider: provider,
		topK:     topK,
		timeout:  llmCfg.Timeout,
		logger:   logger,
	}
}

// Respond answers a customer query. Generation failures degrade to a fixed
// fallback message instead of surfacing as request errors.
func (s *AssistantService) Respond(ctx context.Context, query *models.CustomerQuery, history []llm.Message) *models.AssistantResponse {
	start := time.Now()

	entries := s.search.Search(query.Message, s.topK)
	contextStr, sources, urls := buildContext(entries)

	confidence := noMatchConfidence
	if len(entries) > 0 {
		// Maximum over the fixed per-match values.
		confidence = matchConfidence
	}

	genCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	content := fallbackContent
	result, err := s.provider.Generate(genCtx, query.Message, contextStr, history)
	if err != nil {
		s.logger.Error("Answer generation failed",
			zap.String("provider", s.provider.Name()),
			zap.String("query_id", query.QueryID),
			zap.Error(err),
		)
	} else {
		content = result.Content
		s.logger.Info("Answer generated",
			zap.String("query_id", query.QueryID),
			zap.String("model", result.Model),
			zap.Int("tokens_used", result.TokensUsed),
			zap.Int("matches", len(entries)),
		)
	}

	return &models.AssistantResponse{
		ResponseID:      uuid.New().String(),
		QueryID:         query.QueryID,
		Content:         content,
		Sources:         sources,
		URLs:            urls,
		ConfidenceScore: confidence,
		ResponseTimeMs:  time.Since(start).Milliseconds(),
		Timestamp:       time.Now().UTC(),
	}
}

// buildContext renders the ranked entries into the grounding string handed to
// the answer generator, plus the source ids and urls in rank order.
func buildContext(entries []*models.SupportEntry) (string, []string, []string) {
	sources := make([]string, 0, len(entries))
	urls := make([]string, 0, len(entries))
	parts := make([]string, 0, len(entries))

	for _, entry := range entries {
		var b strings.Builder
		fmt.Fprintf(&b, "Title: %s\nContent: %s", entry.Title, entry.Content)

		if len(entry.ActionLinks) > 0 {
			labels := make([]string, 0, len(entry.ActionLinks))
			for label := range entry.ActionLinks {
				labels = append(labels, label)
			}
			sort.Strings(labels)
			links := make([]string, 0, len(labels))
			for _, label := range labels {
				links = append(links, fmt.Sprintf("%s: %s", label, entry.ActionLinks[label]))
			}
			b.WriteString("\nAction Links: ")
			b.WriteString(strings.Join(links, ", "))
		}

		if len(entry.PolicyNotes) > 0 {
			b.WriteString("\nPolicy Notes: ")
			b.WriteString(strings.Join(entry.PolicyNotes, "; "))
		}

		parts = append(parts, b.String())
		sources = append(sources, entry.ID)
		if entry.URL != "" {
			urls = append(urls, entry.URL)
		}
	}

	return strings.Join(parts, "\n\n"), sources, urls
}
