package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterWithoutProvider(t *testing.T) {
	// Safe to call with the default no-op meter provider
	Counter("test.counter", "label", "value")
	Counter("test.counter", "label", "other")
	Histogram("test.histogram", 42.5, "source", "test")
}

func TestAttrsPairing(t *testing.T) {
	kvs := attrs([]string{"a", "1", "b", "2"})
	require.Len(t, kvs, 2)
	assert.Equal(t, "a", string(kvs[0].Key))
	assert.Equal(t, "1", kvs[0].Value.AsString())

	// A dangling key without a value is dropped
	kvs = attrs([]string{"a", "1", "dangling"})
	assert.Len(t, kvs, 1)

	assert.Empty(t, attrs(nil))
}

func TestOTelProviderSpanLifecycle(t *testing.T) {
	provider, err := NewOTelProvider("test-service")
	require.NoError(t, err)
	defer func() {
		_ = provider.Shutdown(context.Background())
	}()

	ctx, span := provider.StartSpan(context.Background(), "test.operation")
	require.NotNil(t, ctx)
	require.NotNil(t, span)

	span.SetAttribute("string", "value")
	span.SetAttribute("int", 7)
	span.SetAttribute("float", 1.5)
	span.SetAttribute("bool", true)
	span.SetAttribute("other", []string{"stringified"})
	span.RecordError(errors.New("recorded"))
	span.End()
}
