package backend

import (
	"time"

	"github.com/planforge/homeplan/core"
)

// Standard provider constants
const (
	ProviderGemini = "gemini"
	ProviderPaLM   = "palm"
	ProviderAuto   = "auto" // Auto-detect from environment
)

// Config holds configuration for client creation
type Config struct {
	// Provider to use
	Provider string

	// API credentials
	APIKey  string
	BaseURL string

	// Per-attempt timeout at the transport boundary. The fallback chain
	// itself has no retry or backoff; this bounds total latency per attempt.
	Timeout time.Duration

	// Model configuration
	Model       string
	Temperature float32
	MaxTokens   int

	Logger    core.Logger
	Telemetry core.Telemetry
}

// Option configures a backend client
type Option func(*Config)

// WithProvider sets the generation provider
func WithProvider(provider string) Option {
	return func(c *Config) {
		c.Provider = provider
	}
}

// WithAPIKey sets the API key
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithBaseURL sets the base URL for the API
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithTimeout sets the per-attempt request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithModel sets the default model to use
func WithModel(model string) Option {
	return func(c *Config) {
		c.Model = model
	}
}

// WithTemperature sets the temperature for generation
func WithTemperature(temp float32) Option {
	return func(c *Config) {
		c.Temperature = temp
	}
}

// WithMaxTokens sets the maximum tokens for generation
func WithMaxTokens(tokens int) Option {
	return func(c *Config) {
		c.MaxTokens = tokens
	}
}

// WithLogger sets the logger for backend operations
func WithLogger(logger core.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithTelemetry sets the telemetry provider for distributed tracing
func WithTelemetry(telemetry core.Telemetry) Option {
	return func(c *Config) {
		c.Telemetry = telemetry
	}
}
