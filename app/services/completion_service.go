package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyCompletion is returned when the upstream answers without text
var ErrEmptyCompletion = errors.New("completion returned no text")

// Completion message roles
const (
	RoleSystem = openai.ChatMessageRoleSystem
	RoleUser   = openai.ChatMessageRoleUser
)

// CompletionMessage is one prompt message
type CompletionMessage struct {
	Role    string
	Content string
}

// CompletionRequest is a single stateless completion call
type CompletionRequest struct {
	Messages  []CompletionMessage
	MaxTokens int
}

// CompletionClient is the remote text completion service
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// OpenAIConfig configures an OpenAI-compatible completion endpoint
type OpenAIConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// OpenAICompletion calls an OpenAI-compatible chat completion API
type OpenAICompletion struct {
	client *openai.Client
	config OpenAIConfig
}

// NewOpenAICompletion creates a completion client
func NewOpenAICompletion(cfg OpenAIConfig) *OpenAICompletion {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &OpenAICompletion{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

// Complete sends one request. There is no retry.
func (c *OpenAICompletion) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.config.MaxTokens
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.config.Model,
		Messages:  messages,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
