// Package llm implements the AI-model-based alternative extractor. It
// produces the same InvoiceExtraction record as the rule-based pipeline
// and can be substituted or used as a fallback without changing any
// consumer.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"invoice-audit/internal/extract"
)

// Config holds the model client configuration.
type Config struct {
	Model             string
	APIKey            string
	Temperature       float32
	Timeout           time.Duration
	RequestsPerMinute int
}

// Client wraps the chat-completions API with a request throttle.
type Client struct {
	api     *openai.Client
	cfg     Config
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient builds a client; APIKey must be set.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 45 * time.Second
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 30
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		api:     openai.NewClient(cfg.APIKey),
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		logger:  logger,
	}, nil
}

// ExtractInvoice asks the model for the invoice fields as strict JSON,
// validates the reply against the schema, and maps it into the shared
// record shape.
func (c *Client) ExtractInvoice(ctx context.Context, text, filename string) (*extract.InvoiceExtraction, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("llm: rate limit wait: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(text)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("llm: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("llm: empty response")
	}

	raw := []byte(stripCodeFence(resp.Choices[0].Message.Content))
	clean, dropped, err := sanitizeReply(raw)
	if err != nil {
		return nil, fmt.Errorf("llm: sanitize reply: %w", err)
	}
	if err := validateReply(clean); err != nil {
		return nil, fmt.Errorf("llm: reply failed schema: %w", err)
	}

	ex, err := mapReply(clean, filename)
	if err != nil {
		return nil, fmt.Errorf("llm: map reply: %w", err)
	}

	c.logger.Info("llm.extract.ok",
		"model", c.cfg.Model,
		"filename", filename,
		"dropped", dropped,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return ex, nil
}
