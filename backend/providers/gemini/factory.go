package gemini

import (
	"os"

	"github.com/planforge/homeplan/backend"
	"github.com/planforge/homeplan/core"
)

func init() {
	backend.MustRegister(&Factory{})
}

// Factory creates Gemini generation clients
type Factory struct{}

// Name returns the provider name
func (f *Factory) Name() string {
	return "gemini"
}

// Description returns provider description
func (f *Factory) Description() string {
	return "Google Gemini models via the native GenerateContent API"
}

// Priority returns provider priority
func (f *Factory) Priority() int {
	return 70 // Preferred over the legacy PaLM text API
}

// Create creates a new Gemini client
func (f *Factory) Create(config *backend.Config) core.GenClient {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = credentialFromEnv()
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = os.Getenv("GEMINI_BASE_URL")
	}

	client := NewClient(apiKey, baseURL, config.Logger)

	if config.Telemetry != nil {
		client.Telemetry = config.Telemetry
	}
	if config.Timeout > 0 {
		client.HTTPClient.Timeout = config.Timeout
	}
	if config.Model != "" {
		client.DefaultModel = config.Model
	}
	if config.Temperature > 0 {
		client.DefaultTemperature = config.Temperature
	}
	if config.MaxTokens > 0 {
		client.DefaultMaxTokens = config.MaxTokens
	}

	return client
}

// DetectEnvironment checks if Gemini is configured and returns priority.
// This is a pure environment read with no side effects.
func (f *Factory) DetectEnvironment() (priority int, available bool) {
	if credentialFromEnv() != "" {
		return f.Priority(), true
	}
	return 0, false
}

// credentialFromEnv resolves the API key, preferring GEMINI_API_KEY and
// accepting SESSION_SECRET as a legacy alias.
func credentialFromEnv() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("SESSION_SECRET")
}
