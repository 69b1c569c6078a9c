// Package llm abstracts the answer-generation collaborator. The assistant
// core only needs "given query + grounding context + history, return text";
// concrete adapters wrap the OpenAI and GigaChat APIs.
package llm

import "context"

// Message roles mirror the chat-completion convention.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one conversation turn handed to a provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Result is a successful generation.
type Result struct {
	Content    string
	TokensUsed int
	Model      string
}

// Provider generates a grounded answer for a customer query.
type Provider interface {
	Name() string
	Generate(ctx context.Context, query, contextStr string, history []Message) (*Result, error)
}

// recentTurns keeps the last n turns of history, dropping malformed ones.
func recentTurns(history []Message, n int) []Message {
	var turns []Message
	for _, msg := range history {
		if msg.Role == "" || msg.Content == "" {
			continue
		}
		turns = append(turns, msg)
	}
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	return turns
}
