package models

import "time"

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatSession tracks one conversation between a customer and the assistant.
// Callers are responsible for synchronizing access; see service.SessionService.
type ChatSession struct {
	SessionID    string        `json:"session_id"`
	CreatedAt    time.Time     `json:"created_at"`
	LastActivity time.Time     `json:"last_activity"`
	MessageCount int           `json:"message_count"`
	Context      []ChatMessage `json:"context"`
}

// NewChatSession creates an empty session for the given id.
func NewChatSession(sessionID string) *ChatSession {
	now := time.Now().UTC()
	return &ChatSession{
		SessionID:    sessionID,
		CreatedAt:    now,
		LastActivity: now,
	}
}

// AddMessage appends a conversation turn and bumps the activity counters.
func (s *ChatSession) AddMessage(role, content string) {
	now := time.Now().UTC()
	s.Context = append(s.Context, ChatMessage{
		Role:      role,
		Content:   content,
		Timestamp: now,
	})
	s.MessageCount++
	s.LastActivity = now
}

// RecentContext returns up to limit of the most recent conversation turns.
func (s *ChatSession) RecentContext(limit int) []ChatMessage {
	if limit <= 0 || len(s.Context) == 0 {
		return nil
	}
	start := len(s.Context) - limit
	if start < 0 {
		start = 0
	}
	out := make([]ChatMessage, len(s.Context)-start)
	copy(out, s.Context[start:])
	return out
}

// ClearContext drops the conversation history.
func (s *ChatSession) ClearContext() {
	s.Context = nil
	s.MessageCount = 0
}
