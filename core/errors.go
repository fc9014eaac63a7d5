package core

import (
	"errors"
)

// Standard sentinel errors for comparison using errors.Is()
// These are generic errors that can be wrapped with additional context
var (
	// Backend errors
	ErrBackendUnavailable = errors.New("no generation backend available")
	ErrBackendExhausted   = errors.New("all generation backends failed")
	ErrNoContent          = errors.New("backend returned no usable text")

	// Extraction errors
	ErrExtractionFailed = errors.New("no parseable plan in response text")

	// Configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrMissingConfiguration = errors.New("missing required configuration")
)

// IsUnavailable checks if an error means no backend could be constructed.
// Callers route this directly to the local fallback without attempting calls.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrBackendUnavailable)
}

// IsExhausted checks if an error means every backend attempt failed
func IsExhausted(err error) bool {
	return errors.Is(err, ErrBackendExhausted)
}

// IsConfigurationError checks if an error is configuration-related
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration) ||
		errors.Is(err, ErrMissingConfiguration)
}
