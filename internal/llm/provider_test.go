package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecentTurns(t *testing.T) {
	history := []Message{
		{Role: "user", Content: "one"},
		{Role: "", Content: "dropped"},
		{Role: "assistant", Content: ""},
		{Role: "assistant", Content: "two"},
		{Role: "user", Content: "three"},
	}

	turns := recentTurns(history, 2)
	assert.Equal(t, []Message{
		{Role: "assistant", Content: "two"},
		{Role: "user", Content: "three"},
	}, turns)

	assert.Len(t, recentTurns(history, 10), 3)
	assert.Empty(t, recentTurns(nil, 6))
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := buildSystemPrompt("Title: Billing\nContent: pay online")
	assert.Contains(t, prompt, "Title: Billing")
	assert.Contains(t, prompt, "WM Assistant")

	empty := buildSystemPrompt("")
	assert.Contains(t, empty, "No relevant context found.")
}

func TestFoldHistory(t *testing.T) {
	assert.Equal(t, "what bins do you offer?", foldHistory(nil, "what bins do you offer?"))

	folded := foldHistory([]Message{
		{Role: "user", Content: "do you take paint?"},
		{Role: "assistant", Content: "No, paint is hazardous waste."},
	}, "what about batteries?")

	assert.Contains(t, folded, "Conversation so far:")
	assert.Contains(t, folded, "user: do you take paint?")
	assert.Contains(t, folded, "assistant: No, paint is hazardous waste.")
	assert.Contains(t, folded, "Customer: what about batteries?")
}
