package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectEnvironment(t *testing.T) {
	tests := []struct {
		name      string
		geminiKey string
		legacyKey string
		available bool
	}{
		{"no credential", "", "", false},
		{"gemini key", "gk-123", "", true},
		{"legacy session secret", "", "legacy-secret", true},
		{"both set", "gk-123", "legacy-secret", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", tt.geminiKey)
			t.Setenv("SESSION_SECRET", tt.legacyKey)

			f := &Factory{}
			priority, available := f.DetectEnvironment()
			assert.Equal(t, tt.available, available)
			if available {
				assert.Equal(t, f.Priority(), priority)
			}
		})
	}
}

func TestCredentialPrecedence(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "primary")
	t.Setenv("SESSION_SECRET", "legacy")
	assert.Equal(t, "primary", credentialFromEnv())

	t.Setenv("GEMINI_API_KEY", "")
	assert.Equal(t, "legacy", credentialFromEnv())
}
