package backend

import (
	"fmt"
	"time"

	"github.com/planforge/homeplan/core"
)

// NewClient creates a generation client using registered providers
func NewClient(opts ...Option) (core.GenClient, error) {
	// Default configuration
	config := &Config{
		Provider:    ProviderAuto,
		Timeout:     30 * time.Second,
		Temperature: 0.7,
		MaxTokens:   1000,
	}

	// Apply options
	for _, opt := range opts {
		opt(config)
	}

	if config.Provider == ProviderAuto {
		provider, err := detectBestProvider(config.Logger)
		if err != nil {
			return nil, fmt.Errorf("no generation provider available: %w", err)
		}
		config.Provider = provider
	}

	factory, exists := GetProvider(config.Provider)
	if !exists {
		return nil, fmt.Errorf("provider '%s' not registered (registered: %v): %w",
			config.Provider, ListProviders(), core.ErrInvalidConfiguration)
	}

	client := factory.Create(config)
	if config.Logger != nil {
		config.Logger.Info("Generation client created", map[string]interface{}{
			"operation": "client_creation",
			"provider":  config.Provider,
			"status":    "success",
		})
	}

	return client, nil
}
