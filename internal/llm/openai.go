package llm

import (
	"context"
	"fmt"
	"strings"

	"wm-assistant/pkg/config"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.uber.org/zap"
)

// OpenAI generates answers through the OpenAI chat completions API.
type OpenAI struct {
	client    openai.Client
	model     string
	maxTokens int
	logger    *zap.Logger
}

func NewOpenAI(cfg *config.OpenAIConfig, logger *zap.Logger) *OpenAI {
	var opts []option.RequestOption
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}

	return &OpenAI{
		client:    openai.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		logger:    logger,
	}
}

func (p *OpenAI) Name() string { return "openai" }

// Generate sends the grounding prompt, recent history, and the query as a
// chat completion request.
func (p *OpenAI) Generate(ctx context.Context, query, contextStr string, history []Message) (*Result, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(buildSystemPrompt(contextStr)),
	}
	for _, msg := range recentTurns(history, historyWindow) {
		if msg.Role == RoleAssistant {
			messages = append(messages, openai.AssistantMessage(msg.Content))
		} else {
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}
	messages = append(messages, openai.UserMessage(query))

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               shared.ChatModel(p.model),
		Messages:            messages,
		MaxCompletionTokens: openai.Int(int64(p.maxTokens)),
		Temperature:         openai.Float(0.7),
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("no choices in completion")
	}

	return &Result{
		Content:    strings.TrimSpace(completion.Choices[0].Message.Content),
		TokensUsed: int(completion.Usage.TotalTokens),
		Model:      completion.Model,
	}, nil
}
