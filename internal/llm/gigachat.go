package llm

import (
	"context"
	"fmt"
	"strings"

	"wm-assistant/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// GigaChat generates answers through the GigaChat API. It is the alternate
// provider; selection happens in configuration.
type GigaChat struct {
	client *gigago.Client
	logger *zap.Logger
}

func NewGigaChat(ctx context.Context, cfg *config.GigaChatConfig, logger *zap.Logger) (*GigaChat, error) {
	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	return &GigaChat{
		client: client,
		logger: logger,
	}, nil
}

func (p *GigaChat) Name() string { return "gigachat" }

// Generate builds a per-request model so the system instruction can carry the
// retrieved context without mutating shared state.
func (p *GigaChat) Generate(ctx context.Context, query, contextStr string, history []Message) (*Result, error) {
	model := p.client.GenerativeModel("GigaChat")
	model.SystemInstruction = buildSystemPrompt(contextStr)
	model.Temperature = 0.7

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: foldHistory(history, query)},
	}

	resp, err := model.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from GigaChat")
	}

	return &Result{
		Content: strings.TrimSpace(resp.Choices[0].Message.Content),
		Model:   "GigaChat",
	}, nil
}

func (p *GigaChat) Close() error {
	if p.client != nil {
		p.client.Close()
	}
	return nil
}

// foldHistory renders recent turns as a transcript ahead of the query, since
// the GigaChat message API carries a single user role here.
func foldHistory(history []Message, query string) string {
	turns := recentTurns(history, historyWindow)
	if len(turns) == 0 {
		return query
	}

	var b strings.Builder
	b.WriteString("Conversation so far:\n")
	for _, msg := range turns {
		b.WriteString(msg.Role)
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	b.WriteString("\nCustomer: ")
	b.WriteString(query)
	return b.String()
}
