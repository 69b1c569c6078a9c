package dto

// ChatRequest is the body of POST /api/chat. Context optionally carries the
// client-side conversation history as a JSON-encoded array of
// {role, content} objects.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Context   string `json:"context,omitempty"`
}

// ChatResponse is the caller-facing answer envelope.
type ChatResponse struct {
	ResponseID      string   `json:"response_id"`
	QueryID         string   `json:"query_id"`
	Content         string   `json:"content"`
	Sources         []string `json:"sources"`
	URLs            []string `json:"urls"`
	ConfidenceScore float64  `json:"confidence_score"`
	ResponseTimeMs  int64    `json:"response_time_ms"`
	Timestamp       string   `json:"timestamp"`
}
