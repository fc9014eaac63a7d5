package palm

import (
	"os"

	"github.com/planforge/homeplan/backend"
	"github.com/planforge/homeplan/core"
)

func init() {
	backend.MustRegister(&Factory{})
}

// Factory creates legacy PaLM generation clients
type Factory struct{}

// Name returns the provider name
func (f *Factory) Name() string {
	return "palm"
}

// Description returns provider description
func (f *Factory) Description() string {
	return "Legacy PaLM text models via the generateText API"
}

// Priority returns provider priority
func (f *Factory) Priority() int {
	return 30 // Last resort behind Gemini
}

// Create creates a new PaLM client
func (f *Factory) Create(config *backend.Config) core.GenClient {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = credentialFromEnv()
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = os.Getenv("PALM_BASE_URL")
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

// DetectEnvironment checks if the PaLM credential is configured. The legacy
// API shares the Gemini credential.
func (f *Factory) DetectEnvironment() (priority int, available bool) {
	if credentialFromEnv() != "" {
		return f.Priority(), true
	}
	return 0, false
}

func credentialFromEnv() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("SESSION_SECRET")
}
