package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instruments are created lazily and cached by name. The global meter
// defaults to a no-op, so emitting metrics without a configured meter
// provider costs almost nothing.
var (
	mu         sync.Mutex
	counters   = make(map[string]metric.Float64Counter)
	histograms = make(map[string]metric.Float64Histogram)
)

func meter() metric.Meter {
	return otel.Meter("homeplan-telemetry")
}

// Counter increments a counter metric by 1.
// Labels are provided as key-value pairs.
// Example: Counter("backend.attempt", "backend", "gemini/gemini-pro", "status", "error")
func Counter(name string, labels ...string) {
	mu.Lock()
	inst, ok := counters[name]
	if !ok {
		var err error
		inst, err = meter().Float64Counter(name)
		if err != nil {
			mu.Unlock()
			return
		}
		counters[name] = inst
	}
	mu.Unlock()

	inst.Add(context.Background(), 1, metric.WithAttributes(attrs(labels)...))
}

// Histogram records a value in a distribution.
// Example: Histogram("crew.generate.duration_ms", 125.3, "source", "backend")
func Histogram(name string, value float64, labels ...string) {
	mu.Lock()
	inst, ok := histograms[name]
	if !ok {
		var err error
		inst, err = meter().Float64Histogram(name)
		if err != nil {
			mu.Unlock()
			return
		}
		histograms[name] = inst
	}
	mu.Unlock()

	inst.Record(context.Background(), value, metric.WithAttributes(attrs(labels)...))
}

// attrs converts flat key-value pairs to attributes, ignoring a trailing
// key with no value
func attrs(labels []string) []attribute.KeyValue {
	kvs := make([]attribute.KeyValue, 0, len(labels)/2)
	for i := 0; i+1 < len(labels); i += 2 {
		kvs = append(kvs, attribute.String(labels[i], labels[i+1]))
	}
	return kvs
}
