package service

import (
	"sync"

	"wm-assistant/internal/models"

	"go.uber.org/zap"
)

// SessionService is the in-process registry of chat sessions. Sessions live
// for the lifetime of the process; there is no persistence.
type SessionService struct {
	logger *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*models.ChatSession
}

func NewSessionService(logger *zap.Logger) *SessionService {
	return &SessionService{
		logger:   logger,
		sessions: make(map[string]*models.ChatSession),
	}
}

// RecordExchange appends a user/assistant turn pair to the session, creating
// it on first use.
func (s *SessionService) RecordExchange(sessionID, userMessage, assistantMessage string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		session = models.NewChatSession(sessionID)
		s.sessions[sessionID] = session
		s.logger.Debug("Created chat session", zap.String("session_id", sessionID))
	}
	session.AddMessage("user", userMessage)
	session.AddMessage("assistant", assistantMessage)
}

// RecentHistory returns up to limit of the session's most recent turns, or
// nil for an unknown session.
func (s *SessionService) RecentHistory(sessionID string, limit int) []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	return session.RecentContext(limit)
}

// Count returns the number of live sessions.
func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Reset drops a session's conversation history.
func (s *SessionService) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[sessionID]; ok {
		session.ClearContext()
	}
}
