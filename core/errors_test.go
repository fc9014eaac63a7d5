package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelComparison(t *testing.T) {
	wrapped := fmt.Errorf("chain init: %w", ErrBackendUnavailable)
	deeplyWrapped := fmt.Errorf("request abc: %w", fmt.Errorf("invoke: %w", ErrBackendExhausted))

	assert.True(t, errors.Is(wrapped, ErrBackendUnavailable))
	assert.True(t, errors.Is(deeplyWrapped, ErrBackendExhausted))
	assert.False(t, errors.Is(wrapped, ErrBackendExhausted))
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		unavailable bool
		exhausted   bool
		config      bool
	}{
		{
			"unavailable",
			fmt.Errorf("no client: %w", ErrBackendUnavailable),
			true, false, false,
		},
		{
			"exhausted",
			fmt.Errorf("4 backends tried: %w", ErrBackendExhausted),
			false, true, false,
		},
		{
			"invalid config",
			fmt.Errorf("empty chain: %w", ErrInvalidConfiguration),
			false, false, true,
		},
		{
			"missing config",
			fmt.Errorf("no API key: %w", ErrMissingConfiguration),
			false, false, true,
		},
		{
			"unrelated",
			errors.New("disk on fire"),
			false, false, false,
		},
		{
			"nil",
			nil,
			false, false, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unavailable, IsUnavailable(tt.err))
			assert.Equal(t, tt.exhausted, IsExhausted(tt.err))
			assert.Equal(t, tt.config, IsConfigurationError(tt.err))
		})
	}
}
