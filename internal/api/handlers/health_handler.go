package handlers

import (
	"time"

	"wm-assistant/internal/llm"
	"wm-assistant/internal/repository"
	"wm-assistant/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const serviceVersion = "1.0.0"

type HealthHandler struct {
	store       *repository.KnowledgeStore
	provider    llm.Provider
	sessions    *service.SessionService
	environment string
	startedAt   time.Time
	logger      *zap.Logger
}

func NewHealthHandler(
	store *repository.KnowledgeStore,
	provider llm.Provider,
	sessions *service.SessionService,
	environment string,
	logger *zap.Logger,
) *HealthHandler {
	return &HealthHandler{
		store:       store,
		provider:    provider,
		sessions:    sessions,
		environment: environment,
		startedAt:   time.Now().UTC(),
		logger:      logger,
	}
}

// Health godoc
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	report := h.store.Validate()

	status := "healthy"
	if !report.IsValid {
		status = "unhealthy"
	}

	return c.JSON(fiber.Map{
		"status":                   status,
		"timestamp":                time.Now().UTC().Format(time.RFC3339),
		"version":                  serviceVersion,
		"uptime_seconds":           int64(time.Since(h.startedAt).Seconds()),
		"support_database_entries": h.store.Count(),
		"vector_db_status":         "disabled",
		"environment":              h.environment,
	})
}

// Detailed godoc
// @Summary Detailed health with per-service breakdown
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health/detailed [get]
func (h *HealthHandler) Detailed(c *fiber.Ctx) error {
	report := h.store.Validate()

	dbStatus := "healthy"
	if !report.IsValid {
		dbStatus = "unhealthy"
	}

	var lastLoaded any
	if t := h.store.LastLoaded(); !t.IsZero() {
		lastLoaded = t.Format(time.RFC3339)
	}

	status := "healthy"
	if !report.IsValid {
		status = "degraded"
	}

	return c.JSON(fiber.Map{
		"status":      status,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"version":     serviceVersion,
		"environment": h.environment,
		"services": fiber.Map{
			"support_database": fiber.Map{
				"status":        dbStatus,
				"total_entries": report.TotalEntries,
				"categories":    report.Categories,
				"errors":        report.Errors,
				"warnings":      report.Warnings,
				"last_loaded":   lastLoaded,
			},
			"retrieval": fiber.Map{
				"status": "keyword",
				"note":   "vector similarity path disabled",
			},
			"llm_service": fiber.Map{
				"status":   "healthy",
				"provider": h.provider.Name(),
			},
			"sessions": fiber.Map{
				"active": h.sessions.Count(),
			},
		},
	})
}

// Ready godoc
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health/ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	dbReady := h.store.IsLoaded() && h.store.Count() > 0

	if dbReady {
		return c.JSON(fiber.Map{
			"status":    "ready",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"status": "not_ready",
		"services": fiber.Map{
			"support_database": dbReady,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Live godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health/live [get]
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   serviceVersion,
	})
}
