package handlers

import (
	"encoding/json"
	"time"

	"wm-assistant/internal/dto"
	"wm-assistant/internal/llm"
	"wm-assistant/internal/models"
	"wm-assistant/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	assistant *service.AssistantService
	sessions  *service.SessionService
	logger    *zap.Logger
}

func NewChatHandler(assistant *service.AssistantService, sessions *service.SessionService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		assistant: assistant,
		sessions:  sessions,
		logger:    logger,
	}
}

// SubmitMessage godoc
// @Summary Submit a chat message
// @Description Answer a customer question grounded in the support knowledge base
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat request"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]string
// @Router /api/chat [post]
func (h *ChatHandler) SubmitMessage(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	query, err := models.NewCustomerQuery(req.SessionID, req.Message)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.logger.Info("Processing chat message",
		zap.String("session_id", query.SessionID),
		zap.String("query_id", query.QueryID),
	)

	history := h.resolveHistory(&req, query.SessionID)

	resp := h.assistant.Respond(c.Context(), query, history)
	h.sessions.RecordExchange(query.SessionID, query.Message, resp.Content)

	return c.JSON(dto.ChatResponse{
		ResponseID:      resp.ResponseID,
		QueryID:         resp.QueryID,
		Content:         resp.Content,
		Sources:         resp.Sources,
		URLs:            resp.URLs,
		ConfidenceScore: resp.ConfidenceScore,
		ResponseTimeMs:  resp.ResponseTimeMs,
		Timestamp:       resp.Timestamp.Format(time.RFC3339),
	})
}

// resolveHistory prefers the history supplied with the request; otherwise it
// falls back to the server-side session. Malformed request history is ignored.
func (h *ChatHandler) resolveHistory(req *dto.ChatRequest, sessionID string) []llm.Message {
	if req.Context != "" {
		var history []llm.Message
		if err := json.Unmarshal([]byte(req.Context), &history); err == nil {
			return history
		}
		h.logger.Debug("Ignoring malformed conversation context",
			zap.String("session_id", sessionID),
		)
	}

	stored := h.sessions.RecentHistory(sessionID, 10)
	history := make([]llm.Message, 0, len(stored))
	for _, msg := range stored {
		history = append(history, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	return history
}
