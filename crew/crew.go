// Package crew is the orchestrator for plan acquisition: it synthesizes the
// prompt, drives the backend invoker, extracts a plan from whatever text
// comes back, and substitutes the deterministic local fallback whenever any
// step fails. Its one entry point never returns an error: callers always
// receive a complete plan, from a backend or from the fallback, and cannot
// tell the two apart by type.
package crew

import (
	"context"
	"time"

	"github.com/planforge/homeplan/core"
	"github.com/planforge/homeplan/plan"
	"github.com/planforge/homeplan/telemetry"
)

// Invoker abstracts the backend fallback chain: one prompt in, the first
// usable raw text out, or an error after exhaustion.
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Crew generates construction plans. It is immutable after construction
// and safe for sequential reuse across requests; it holds no per-request
// state.
type Crew struct {
	invoker   Invoker
	logger    core.Logger
	telemetry core.Telemetry
}

// Option configures a Crew
type Option func(*Crew)

// WithLogger sets the logger
func WithLogger(logger core.Logger) Option {
	return func(c *Crew) {
		c.logger = logger
	}
}

// WithTelemetry sets the telemetry provider
func WithTelemetry(t core.Telemetry) Option {
	return func(c *Crew) {
		c.telemetry = t
	}
}

// New creates a Crew. A nil invoker is valid and means the backend layer is
// unavailable (no credential, no constructible client); every request is
// then served by the local fallback without a single backend call.
func New(invoker Invoker, opts ...Option) *Crew {
	c := &Crew{
		invoker:   invoker,
		logger:    &core.NoOpLogger{},
		telemetry: &core.NoOpTelemetry{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Available reports whether a backend invoker was constructed
func (c *Crew) Available() bool {
	return c.invoker != nil
}

// GeneratePlan produces a plan for the request. It never returns nil and
// never returns an error: backend unavailability, call failures and
// extraction failures are all absorbed and converted into the local
// fallback plan.
func (c *Crew) GeneratePlan(ctx context.Context, req plan.Request) *plan.Plan {
	ctx, span := c.telemetry.StartSpan(ctx, "crew.generate_plan")
	defer span.End()
	start := time.Now()

	req = req.Trimmed()

	if c.invoker == nil {
		c.logger.Info("Backend unavailable, using local fallback plan", map[string]interface{}{
			"operation": "generate_plan",
			"source":    "fallback",
			"reason":    "backend_unavailable",
		})
		return c.fallback(req, span, start, "backend_unavailable")
	}

	raw, err := c.invoker.Invoke(ctx, buildPrompt(req))
	if err != nil {
		c.logger.Warn("Backend invocation failed, using local fallback plan", map[string]interface{}{
			"operation": "generate_plan",
			"source":    "fallback",
			"reason":    "backend_failed",
			"error":     err.Error(),
		})
		span.RecordError(err)
		return c.fallback(req, span, start, "backend_failed")
	}

	p, err := plan.Extract(raw)
	if err != nil {
		c.logger.Warn("Response text yielded no plan, using local fallback plan", map[string]interface{}{
			"operation":   "generate_plan",
			"source":      "fallback",
			"reason":      "extraction_failed",
			"error":       err.Error(),
			"text_length": len(raw),
		})
		span.RecordError(err)
		return c.fallback(req, span, start, "extraction_failed")
	}

	telemetry.Counter("crew.plan.source", "source", "backend")
	telemetry.Histogram("crew.generate.duration_ms", float64(time.Since(start).Milliseconds()), "source", "backend")
	span.SetAttribute("plan.source", "backend")
	c.logger.Info("Plan generated from backend", map[string]interface{}{
		"operation": "generate_plan",
		"source":    "backend",
		"rooms":     len(p.RoomPlan),
	})
	return p
}

func (c *Crew) fallback(req plan.Request, span core.Span, start time.Time, reason string) *plan.Plan {
	telemetry.Counter("crew.plan.source", "source", "fallback", "reason", reason)
	telemetry.Histogram("crew.generate.duration_ms", float64(time.Since(start).Milliseconds()), "source", "fallback")
	span.SetAttribute("plan.source", "fallback")
	span.SetAttribute("plan.fallback_reason", reason)
	return plan.Fallback(req)
}
