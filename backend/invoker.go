package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/planforge/homeplan/core"
	"github.com/planforge/homeplan/telemetry"
)

// Backend names one generation backend in a fallback chain: a provider
// family plus the model identifier passed to it.
type Backend struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

func (b Backend) String() string {
	return b.Provider + "/" + b.Model
}

// Attempt records the outcome of one backend call. Attempts are transient:
// they exist for diagnostics during a single Invoke and are not retained
// across requests.
type Attempt struct {
	Backend Backend
	Err     error
}

// Invoker tries an ordered chain of named backends against one prompt and
// returns the first usable raw text response. Attempts are strictly
// sequential: attempt N+1 begins only after attempt N definitively fails.
// There is no retry, no backoff and no racing of backends.
//
// Clients are constructed once; after construction the invoker is read-only
// and safe to reuse across sequential requests.
type Invoker struct {
	chain     []Backend
	clients   map[string]core.GenClient
	logger    core.Logger
	telemetry core.Telemetry
}

// NewInvoker builds an invoker for the given chain, creating one client per
// distinct provider. Providers whose environment is not configured are
// skipped with a warning so a partial chain still works. If no client can
// be constructed at all, NewInvoker fails with core.ErrBackendUnavailable;
// callers must treat this as "no raw text will ever be available" and
// route directly to the local fallback without calling Invoke.
func NewInvoker(chain []Backend, opts ...Option) (*Invoker, error) {
	if len(chain) == 0 {
		return nil, fmt.Errorf("at least one backend required in chain: %w", core.ErrInvalidConfiguration)
	}

	config := &Config{}
	for _, opt := range opts {
		opt(config)
	}

	logger := config.Logger
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	tel := config.Telemetry
	if tel == nil {
		tel = &core.NoOpTelemetry{}
	}

	inv := &Invoker{
		chain:     chain,
		clients:   make(map[string]core.GenClient),
		logger:    logger,
		telemetry: tel,
	}

	for _, b := range chain {
		if _, done := inv.clients[b.Provider]; done {
			continue
		}

		factory, exists := GetProvider(b.Provider)
		if !exists {
			logger.Warn("Unknown provider in chain (will skip)", map[string]interface{}{
				"operation": "invoker_init",
				"provider":  b.Provider,
			})
			continue
		}

		if _, available := factory.DetectEnvironment(); !available {
			logger.Warn("Provider not configured (will skip in chain)", map[string]interface{}{
				"operation": "invoker_init",
				"provider":  b.Provider,
				"note":      "backends on this provider are skipped during fallback",
			})
			continue
		}

		clientOpts := make([]Option, 0, len(opts)+1)
		clientOpts = append(clientOpts, opts...)
		clientOpts = append(clientOpts, WithProvider(b.Provider))
		client, err := NewClient(clientOpts...)
		if err != nil {
			logger.Warn("Provider client creation failed (will skip in chain)", map[string]interface{}{
				"operation": "invoker_init",
				"provider":  b.Provider,
				"error":     err.Error(),
			})
			continue
		}
		inv.clients[b.Provider] = client
	}

	if len(inv.clients) == 0 {
		return nil, fmt.Errorf("no backend client could be constructed: %w", core.ErrBackendUnavailable)
	}

	logger.Info("Backend invoker initialized", map[string]interface{}{
		"operation":          "invoker_init",
		"chain_length":       len(chain),
		"usable_providers":   len(inv.clients),
		"registered_backends": backendNames(chain),
	})

	return inv, nil
}

// Chain returns a copy of the configured backend chain.
func (inv *Invoker) Chain() []Backend {
	out := make([]Backend, len(inv.chain))
	copy(out, inv.chain)
	return out
}

// Invoke tries each backend in order and returns the first non-empty
// trimmed response text. On exhaustion it returns an error wrapping
// core.ErrBackendExhausted that carries the most recent failure reason;
// earlier failures are logged but not retained.
func (inv *Invoker) Invoke(ctx context.Context, prompt string) (string, error) {
	ctx, span := inv.telemetry.StartSpan(ctx, "backend.invoke")
	defer span.End()
	span.SetAttribute("backend.chain_length", len(inv.chain))
	span.SetAttribute("backend.prompt_length", len(prompt))

	var last Attempt
	for i, b := range inv.chain {
		client, ok := inv.clients[b.Provider]
		if !ok {
			last = Attempt{Backend: b, Err: fmt.Errorf("backend %s: provider not constructible: %w", b, core.ErrBackendUnavailable)}
			continue
		}

		inv.logger.Debug("Trying backend", map[string]interface{}{
			"operation": "backend_attempt",
			"backend":   b.String(),
			"position":  i,
		})

		resp, err := client.GenerateResponse(ctx, prompt, &core.GenOptions{Model: b.Model})
		if err != nil {
			last = Attempt{Backend: b, Err: err}
			telemetry.Counter("backend.attempt", "backend", b.String(), "status", "error")
			inv.logger.Warn("Backend attempt failed", map[string]interface{}{
				"operation": "backend_attempt",
				"backend":   b.String(),
				"position":  i,
				"error":     err.Error(),
			})
			continue
		}

		text := strings.TrimSpace(resp.Content)
		if text == "" {
			last = Attempt{Backend: b, Err: fmt.Errorf("backend %s: %w", b, core.ErrNoContent)}
			telemetry.Counter("backend.attempt", "backend", b.String(), "status", "empty")
			inv.logger.Warn("Backend returned empty text", map[string]interface{}{
				"operation": "backend_attempt",
				"backend":   b.String(),
				"position":  i,
			})
			continue
		}

		telemetry.Counter("backend.attempt", "backend", b.String(), "status", "success")
		if i > 0 {
			telemetry.Counter("backend.failover", "failed_count", fmt.Sprintf("%d", i))
		}
		span.SetAttribute("backend.selected", b.String())
		inv.logger.Info("Backend attempt succeeded", map[string]interface{}{
			"operation":       "backend_attempt",
			"backend":         b.String(),
			"position":        i,
			"response_length": len(text),
		})
		return text, nil
	}

	telemetry.Counter("backend.invoke", "status", "exhausted")
	err := fmt.Errorf("%w: %d backends tried, last failure from %s: %v",
		core.ErrBackendExhausted, len(inv.chain), last.Backend, last.Err)
	span.RecordError(err)
	inv.logger.Error("All backends failed", map[string]interface{}{
		"operation":    "backend_invoke",
		"chain_length": len(inv.chain),
		"last_backend": last.Backend.String(),
		"last_error":   fmt.Sprint(last.Err),
	})
	return "", err
}

func backendNames(chain []Backend) []string {
	names := make([]string, len(chain))
	for i, b := range chain {
		names[i] = b.String()
	}
	return names
}
