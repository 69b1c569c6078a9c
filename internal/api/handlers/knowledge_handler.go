package handlers

import (
	"wm-assistant/internal/models"
	"wm-assistant/internal/repository"
	"wm-assistant/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// KnowledgeHandler exposes the knowledge base for browsing and ad-hoc search,
// separate from the chat flow.
type KnowledgeHandler struct {
	store       *repository.KnowledgeStore
	search      service.Searcher
	searchLimit int
	logger      *zap.Logger
}

func NewKnowledgeHandler(store *repository.KnowledgeStore, search service.Searcher, searchLimit int, logger *zap.Logger) *KnowledgeHandler {
	if searchLimit <= 0 {
		searchLimit = 10
	}
	return &KnowledgeHandler{
		store:       store,
		search:      search,
		searchLimit: searchLimit,
		logger:      logger,
	}
}

// Search godoc
// @Summary Search the support knowledge base
// @Tags knowledge
// @Produce json
// @Param q query string true "search query"
// @Param limit query int false "maximum results"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/knowledge/search [get]
func (h *KnowledgeHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query parameter 'q' is required",
		})
	}

	limit := c.QueryInt("limit", h.searchLimit)
	if limit <= 0 || limit > h.searchLimit {
		limit = h.searchLimit
	}

	results := h.search.Search(query, limit)
	if results == nil {
		results = []*models.SupportEntry{}
	}

	return c.JSON(fiber.Map{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

// Categories godoc
// @Summary List knowledge base categories with entry counts
// @Tags knowledge
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/knowledge/categories [get]
func (h *KnowledgeHandler) Categories(c *fiber.Ctx) error {
	type categorySummary struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	categories := make([]categorySummary, 0)
	for _, category := range h.store.Categories() {
		categories = append(categories, categorySummary{
			Name:  string(category),
			Count: len(h.store.GetByCategory(category)),
		})
	}

	return c.JSON(fiber.Map{
		"total_entries": h.store.Count(),
		"categories":    categories,
	})
}

// GetEntry godoc
// @Summary Fetch one knowledge base entry by id
// @Tags knowledge
// @Produce json
// @Param id path string true "entry id"
// @Success 200 {object} models.SupportEntry
// @Failure 404 {object} map[string]string
// @Router /api/knowledge/entries/{id} [get]
func (h *KnowledgeHandler) GetEntry(c *fiber.Ctx) error {
	id := c.Params("id")
	entry, ok := h.store.GetByID(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "entry not found",
		})
	}
	return c.JSON(entry)
}
