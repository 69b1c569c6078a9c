package service

import (
	"sort"
	"strings"

	"wm-assistant/internal/models"
	"wm-assistant/internal/repository"

	"go.uber.org/zap"
)

// Searcher ranks knowledge base entries against a free-text query. The
// keyword implementation below is the only one in use; a vector-similarity
// implementation can slot in behind the same contract.
type Searcher interface {
	Search(query string, limit int) []*models.SupportEntry
}

// SearchService scores every store entry against the query with cumulative
// keyword signals and returns the best matches first. Ties keep store
// insertion order.
type SearchService struct {
	store  *repository.KnowledgeStore
	logger *zap.Logger
}

func NewSearchService(store *repository.KnowledgeStore, logger *zap.Logger) *SearchService {
	return &SearchService{
		store:  store,
		logger: logger,
	}
}

// Search returns up to limit entries ranked by descending score. An empty or
// whitespace-only query yields no matches; entries scoring zero are excluded.
func (s *SearchService) Search(query string, limit int) []*models.SupportEntry {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return nil
	}
	words := strings.Fields(normalized)

	type rankedEntry struct {
		entry *models.SupportEntry
		score int
	}

	var ranked []rankedEntry
	for _, entry := range s.store.GetAll() {
		if score := scoreEntry(entry, normalized, words); score > 0 {
			ranked = append(ranked, rankedEntry{entry: entry, score: score})
		}
	}

	// Stable sort: equal scores preserve store order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	results := make([]*models.SupportEntry, len(ranked))
	for i, r := range ranked {
		results[i] = r.entry
	}

	s.logger.Debug("Knowledge search completed",
		zap.String("query", query),
		zap.Int("results", len(results)),
	)
	return results
}

// scoreEntry sums the relevance signals for one entry. All comparisons are
// case-insensitive substring checks; signals accumulate across keywords and
// query words.
func scoreEntry(entry *models.SupportEntry, query string, words []string) int {
	score := 0

	title := strings.ToLower(entry.Title)
	if strings.Contains(title, query) {
		score += 5
	} else {
		for _, word := range words {
			if strings.Contains(title, word) {
				score += 2
			}
		}
	}

	for _, keyword := range entry.Keywords {
		kw := strings.ToLower(keyword)
		if strings.Contains(kw, query) || strings.Contains(query, kw) {
			score += 4
		} else {
			for _, word := range words {
				if strings.Contains(kw, word) {
					score += 2
				}
			}
		}
	}

	content := strings.ToLower(entry.Content)
	for _, word := range words {
		if strings.Contains(content, word) {
			score++
		}
	}

	return score
}
