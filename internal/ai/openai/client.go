package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/spigell/job-tracker/internal/ai"
)

const defaultModel = goopenai.GPT3Dot5Turbo

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
}

// Client is an ai.Completer backed by the OpenAI chat completions API.
type Client struct {
	chat        chatCompleter
	model       string
	temperature float32
	logger      *zap.Logger
}

// Options configures a Client.
type Options struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
}

// New creates a chat completions client. BaseURL allows OpenAI compatible gateways.
func New(opts Options, logger *zap.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	cfg := goopenai.DefaultConfig(apiKey)
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.BaseURL = base
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		chat:        goopenai.NewClientWithConfig(cfg),
		model:       model,
		temperature: opts.Temperature,
		logger:      logger,
	}, nil
}

// Complete sends prompt as a single user message.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := c.chat.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []goopenai.ChatCompletionMessage{{
			Role:    goopenai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ai.ErrEmptyResponse
	}

	output := strings.TrimSpace(resp.Choices[0].Message.Content)
	if output == "" {
		return "", ai.ErrEmptyResponse
	}

	c.logger.Debug("openai completion",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return output, nil
}

func (c *Client) Provider() string { return "openai" }

func (c *Client) Model() string { return c.model }
