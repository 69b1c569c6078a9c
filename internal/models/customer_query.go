package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxQueryLength = 1000

// CustomerQuery is a single customer question bound for the assistant.
type CustomerQuery struct {
	QueryID   string    `json:"query_id"`
	SessionID string    `json:"session_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NewCustomerQuery assigns a fresh query id and validates the message.
func NewCustomerQuery(sessionID, message string) (*CustomerQuery, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session_id must be non-empty")
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("message must be non-empty")
	}
	if len(message) > maxQueryLength {
		return nil, fmt.Errorf("message must be under %d characters", maxQueryLength)
	}

	return &CustomerQuery{
		QueryID:   uuid.New().String(),
		SessionID: sessionID,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}, nil
}
