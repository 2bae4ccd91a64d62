package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/natib-dev/tripwise/internal/prompts"
)

const (
	// replyMaxTokens caps Claude's response length for one turn.
	replyMaxTokens = 1024

	// DefaultModel is the Claude model used when config leaves it unset.
	DefaultModel = "claude-3-5-haiku-latest"
)

// LLM generates a free-form answer from a system prompt and message
// history. Implementations must be safe for concurrent use.
type LLM interface {
	Generate(ctx context.Context, system string, messages []prompts.Message) (string, error)
}

// ClaudeLLM implements LLM on the Anthropic Messages API.
type ClaudeLLM struct {
	client *anthropic.Client
	model  string
	logger *slog.Logger
}

// NewClaudeLLM creates a Claude-backed LLM. An empty model selects
// DefaultModel.
func NewClaudeLLM(apiKey, model string, logger *slog.Logger) *ClaudeLLM {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &ClaudeLLM{client: &c, model: model, logger: logger}
}

// Generate implements LLM.
func (c *ClaudeLLM) Generate(ctx context.Context, system string, messages []prompts.Message) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: replyMaxTokens,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	for _, m := range messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == "assistant" {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
		} else {
			params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
		}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("calling claude: %w", err)
	}

	var answer string
	for i := range resp.Content {
		if resp.Content[i].Type == "text" {
			answer = strings.TrimSpace(resp.Content[i].Text)
			break
		}
	}
	c.logger.Debug("claude reply", "model", c.model, "chars", len(answer))
	return answer, nil
}
