// Package backend implements the plan-acquisition backend layer: a registry
// of generation providers, environment-based availability detection, and a
// sequential fallback invoker that tries an ordered chain of named backends
// until one returns usable text.
package backend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/planforge/homeplan/core"
	"github.com/planforge/homeplan/telemetry"
)

// ProviderFactory defines the interface for generation provider factories
type ProviderFactory interface {
	// Create creates a new client instance with the given configuration
	Create(config *Config) core.GenClient

	// DetectEnvironment checks if this provider can be used with the current
	// environment. The check must be cheap and side-effect free: credential
	// presence only, no network calls. Returns priority (higher = preferred)
	// and availability.
	DetectEnvironment() (priority int, available bool)

	// Name returns the provider's name
	Name() string

	// Description returns a human-readable description
	Description() string
}

// ProviderRegistry manages registered generation providers
type ProviderRegistry struct {
	mu        sync.RWMutex
	providers map[string]ProviderFactory
}

// Global registry instance
var registry = &ProviderRegistry{
	providers: make(map[string]ProviderFactory),
}

// Register registers a new provider factory
// This is typically called from init() functions in provider packages
func Register(factory ProviderFactory) error {
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	name := factory.Name()
	if name == "" {
		return fmt.Errorf("factory.Name() cannot be empty")
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, exists := registry.providers[name]; exists {
		return fmt.Errorf("provider '%s' already registered", name)
	}

	registry.providers[name] = factory
	return nil
}

// MustRegister registers a provider and panics on error
// Use this in init() functions where errors cannot be handled
func MustRegister(factory ProviderFactory) {
	if err := Register(factory); err != nil {
		panic(fmt.Sprintf("failed to register provider: %v", err))
	}
}

// GetProvider retrieves a registered provider by name
func GetProvider(name string) (ProviderFactory, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	factory, exists := registry.providers[name]
	return factory, exists
}

// ListProviders returns all registered provider names
func ListProviders() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0, len(registry.providers))
	for name := range registry.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProviderInfo contains information about a registered provider
type ProviderInfo struct {
	Name        string
	Description string
	Available   bool
	Priority    int
}

// GetProviderInfo returns information about all registered providers
func GetProviderInfo() []ProviderInfo {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	info := make([]ProviderInfo, 0, len(registry.providers))
	for name, factory := range registry.providers {
		priority, available := factory.DetectEnvironment()
		info = append(info, ProviderInfo{
			Name:        name,
			Description: factory.Description(),
			Available:   available,
			Priority:    priority,
		})
	}

	// Sort by priority (highest first), then by name
	sort.Slice(info, func(i, j int) bool {
		if info[i].Priority != info[j].Priority {
			return info[i].Priority > info[j].Priority
		}
		return info[i].Name < info[j].Name
	})

	return info
}

// candidate represents a provider candidate for selection
type candidate struct {
	name     string
	priority int
}

// detectBestProvider finds the best available provider from the registry.
// Detection reads the environment once; it never opens a connection, so an
// unavailable result costs nothing and can be taken at construction time.
func detectBestProvider(logger core.Logger) (string, error) {
	var candidates []candidate

	registry.mu.RLock()
	defer registry.mu.RUnlock()

	for name, factory := range registry.providers {
		priority, available := factory.DetectEnvironment()

		if logger != nil {
			logger.Debug("Provider environment check", map[string]interface{}{
				"operation": "provider_check",
				"provider":  name,
				"priority":  priority,
				"available": available,
			})
		}

		if available {
			candidates = append(candidates, candidate{name: name, priority: priority})
		}
	}

	if len(candidates) == 0 {
		telemetry.Counter("backend.provider.detection", "status", "no_providers")

		if logger != nil {
			logger.Warn("No generation providers detected in environment", map[string]interface{}{
				"operation":         "provider_detection",
				"checked_providers": len(registry.providers),
				"suggestion":        "Set GEMINI_API_KEY or SESSION_SECRET",
			})
		}
		return "", fmt.Errorf("no provider detected in environment: %w", core.ErrBackendUnavailable)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].priority > candidates[j].priority
	})

	selected := candidates[0].name
	telemetry.Counter("backend.provider.selected", "provider", selected)

	if logger != nil {
		logger.Info("Generation provider selected", map[string]interface{}{
			"operation":          "provider_selection",
			"selected_provider":  selected,
			"selection_priority": candidates[0].priority,
			"total_candidates":   len(candidates),
		})
	}

	return selected, nil
}
