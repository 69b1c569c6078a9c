package models

import (
	"strings"
	"time"
)

// AssistantResponse is the packaged answer for one customer query.
type AssistantResponse struct {
	ResponseID      string    `json:"response_id"`
	QueryID         string    `json:"query_id"`
	Content         string    `json:"content"`
	Sources         []string  `json:"sources"`
	URLs            []string  `json:"urls"`
	ConfidenceScore float64   `json:"confidence_score"`
	ResponseTimeMs  int64     `json:"response_time_ms"`
	Timestamp       time.Time `json:"timestamp"`
}

// WordCount returns the number of words in the response content.
func (r *AssistantResponse) WordCount() int {
	return len(strings.Fields(r.Content))
}

// IsConversationalLength reports whether the response stays within the
// conversational word budget.
func (r *AssistantResponse) IsConversationalLength(maxWords int) bool {
	return r.WordCount() <= maxWords
}
