// Package providers holds shared plumbing for generation provider clients.
package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/planforge/homeplan/core"
)

// BaseClient provides common functionality for all generation providers
type BaseClient struct {
	// HTTP client with per-attempt timeout. The timeout is the only latency
	// bound on an attempt; the fallback chain above does no retries.
	HTTPClient *http.Client

	// Logger for debugging
	Logger core.Logger

	// Telemetry for tracing, no-op unless injected
	Telemetry core.Telemetry

	// Default configuration
	DefaultModel       string
	DefaultTemperature float32
	DefaultMaxTokens   int
}

// NewBaseClient creates a new base client with defaults
func NewBaseClient(timeout time.Duration, logger core.Logger) *BaseClient {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}

	return &BaseClient{
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		Logger:             logger,
		Telemetry:          &core.NoOpTelemetry{},
		DefaultTemperature: 0.7,
		DefaultMaxTokens:   1000,
	}
}

// StartSpan starts a telemetry span, falling back to a no-op span
func (b *BaseClient) StartSpan(ctx context.Context, name string) (context.Context, core.Span) {
	if b.Telemetry == nil {
		return ctx, &core.NoOpSpan{}
	}
	return b.Telemetry.StartSpan(ctx, name)
}

// ApplyDefaults applies default values to options if not set
func (b *BaseClient) ApplyDefaults(options *core.GenOptions) *core.GenOptions {
	if options == nil {
		options = &core.GenOptions{}
	}

	if options.Model == "" && b.DefaultModel != "" {
		options.Model = b.DefaultModel
	}

	if options.Temperature == 0 {
		options.Temperature = b.DefaultTemperature
	}

	if options.MaxTokens == 0 {
		options.MaxTokens = b.DefaultMaxTokens
	}

	return options
}

// HandleError processes API errors consistently
func (b *BaseClient) HandleError(statusCode int, body []byte, provider string) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%s API error: invalid or missing API key", provider)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%s API error: rate limit exceeded", provider)
	case http.StatusBadRequest:
		return fmt.Errorf("%s API error: invalid request - %s", provider, string(body))
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return fmt.Errorf("%s API error: service temporarily unavailable (status %d)", provider, statusCode)
	default:
		return fmt.Errorf("%s API error (status %d): %s", provider, statusCode, string(body))
	}
}

// LogRequest logs outgoing API requests
func (b *BaseClient) LogRequest(provider, model, prompt string) {
	b.Logger.Info("Generation request initiated", map[string]interface{}{
		"operation":     "gen_request",
		"provider":      provider,
		"model":         model,
		"prompt_length": len(prompt),
	})
}

// LogResponse logs API responses
func (b *BaseClient) LogResponse(provider, model string, tokens core.TokenUsage, duration time.Duration) {
	b.Logger.Info("Generation response received", map[string]interface{}{
		"operation":         "gen_response",
		"provider":          provider,
		"model":             model,
		"prompt_tokens":     tokens.PromptTokens,
		"completion_tokens": tokens.CompletionTokens,
		"total_tokens":      tokens.TotalTokens,
		"duration_ms":       duration.Milliseconds(),
		"status":            "success",
	})
}
