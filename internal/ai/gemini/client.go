package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/job-tracker/internal/ai"
	"github.com/spigell/job-tracker/internal/util"
)

const (
	defaultModel      = "gemini-2.5-flash"
	defaultMaxRetries = 3
	baseBackoff       = 500 * time.Millisecond
	maxBackoff        = 8 * time.Second
)

var retryHint = regexp.MustCompile(`(?i)retry (?:after|in) (\d+(?:\.\d+)?)\s*s`)

type contentModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator wraps the Google GenAI client to provide simple prompt-based interactions.
type Generator struct {
	models      contentModels
	model       string
	maxRetries  int
	temperature float32
	logger      *zap.Logger
	wait        func(context.Context, time.Duration) error
}

// Options configures a Generator.
type Options struct {
	APIKey      string
	Model       string
	MaxRetries  int
	Temperature float32
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, opts Options, logger *zap.Logger) (*Generator, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGenerator(client.Models, opts, logger), nil
}

func newGenerator(models contentModels, opts Options, logger *zap.Logger) *Generator {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	retries := opts.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		models:      models,
		model:       model,
		maxRetries:  retries,
		temperature: opts.Temperature,
		logger:      logger,
		wait:        util.WaitFor,
	}
}

// Complete sends the prompt to Gemini and returns the concatenated text of the first answer.
// Transient API failures are retried with exponential backoff.
func (g *Generator) Complete(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	temperature := g.temperature
	cfg := &genai.GenerateContentConfig{Temperature: &temperature}

	var lastErr error
	for attempt := 0; attempt < g.maxRetries; attempt++ {
		resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
		if err == nil {
			return responseText(resp)
		}

		lastErr = fmt.Errorf("generate content: %w", err)

		delay, retry := retryDelay(err, attempt)
		if !retry || attempt == g.maxRetries-1 {
			break
		}

		g.logger.Debug("retrying gemini request",
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		if err := g.wait(ctx, delay); err != nil {
			return "", err
		}
	}

	return "", lastErr
}

func (g *Generator) Provider() string { return "gemini" }

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ai.ErrEmptyResponse
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", ai.ErrEmptyResponse
	}

	return output, nil
}

// retryDelay reports whether err is transient and how long to wait before the next attempt.
// A server supplied hint longer than maxBackoff disables the retry.
func retryDelay(err error, attempt int) (time.Duration, bool) {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var ptr *genai.APIError
		if !errors.As(err, &ptr) || ptr == nil {
			return 0, false
		}
		apiErr = *ptr
	}

	if apiErr.Code != http.StatusTooManyRequests && apiErr.Code < http.StatusInternalServerError {
		return 0, false
	}

	if m := retryHint.FindStringSubmatch(apiErr.Message); m != nil {
		seconds, parseErr := strconv.ParseFloat(m[1], 64)
		if parseErr == nil {
			hint := time.Duration(seconds * float64(time.Second))
			if hint > maxBackoff {
				return 0, false
			}
			return hint, true
		}
	}

	delay := baseBackoff << attempt
	if delay > maxBackoff {
		delay = maxBackoff
	}
	return delay, true
}
