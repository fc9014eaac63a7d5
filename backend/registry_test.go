package backend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planforge/homeplan/core"
)

func TestRegisterDuplicate(t *testing.T) {
	swapRegistry(t, &testFactory{name: "dup", priority: 10, available: true})

	err := Register(&testFactory{name: "dup", priority: 20, available: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegisterNilFactory(t *testing.T) {
	assert.Error(t, Register(nil))
}

func TestGetProvider(t *testing.T) {
	swapRegistry(t, &testFactory{name: "alpha", priority: 10, available: true})

	factory, exists := GetProvider("alpha")
	assert.True(t, exists)
	assert.Equal(t, "alpha", factory.Name())

	_, exists = GetProvider("missing")
	assert.False(t, exists)
}

func TestListProvidersSorted(t *testing.T) {
	swapRegistry(t,
		&testFactory{name: "zeta", priority: 10, available: true},
		&testFactory{name: "alpha", priority: 20, available: true},
	)

	assert.Equal(t, []string{"alpha", "zeta"}, ListProviders())
}

func TestGetProviderInfoPriorityOrder(t *testing.T) {
	swapRegistry(t,
		&testFactory{name: "low", priority: 10, available: true},
		&testFactory{name: "high", priority: 90, available: false},
	)

	info := GetProviderInfo()
	require.Len(t, info, 2)
	assert.Equal(t, "high", info[0].Name)
	assert.False(t, info[0].Available)
	assert.Equal(t, "low", info[1].Name)
	assert.True(t, info[1].Available)
}

func TestDetectBestProvider(t *testing.T) {
	swapRegistry(t,
		&testFactory{name: "secondary", priority: 30, available: true},
		&testFactory{name: "primary", priority: 70, available: true},
		&testFactory{name: "unusable", priority: 99, available: false},
	)

	name, err := detectBestProvider(nil)
	require.NoError(t, err)
	assert.Equal(t, "primary", name)
}

func TestDetectBestProviderNoneAvailable(t *testing.T) {
	swapRegistry(t, &testFactory{name: "unusable", priority: 99, available: false})

	_, err := detectBestProvider(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrBackendUnavailable)
}

func TestDefaultChainOrder(t *testing.T) {
	chain := DefaultChain()
	require.Len(t, chain, 4)
	assert.Equal(t, "gemini/gemini-pro", chain[0].String())
	assert.Equal(t, "gemini/gemini-1.5-flash", chain[1].String())
	assert.Equal(t, "gemini/gemini-2.0-flash", chain[2].String())
	assert.Equal(t, "palm/text-bison-001", chain[3].String())
}

func TestLoadChainFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chain.yaml")
	doc := `backends:
  - provider: gemini
    model: gemini-1.5-flash
  - provider: palm
    model: text-bison-001
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	chain, err := LoadChainFile(path)
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, Backend{Provider: "gemini", Model: "gemini-1.5-flash"}, chain[0])
	assert.Equal(t, Backend{Provider: "palm", Model: "text-bison-001"}, chain[1])
}

func TestLoadChainFileValidation(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		doc  string
	}{
		{"empty document", "backends: []\n"},
		{"missing model", "backends:\n  - provider: gemini\n"},
		{"missing provider", "backends:\n  - model: gemini-pro\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.doc), 0o644))

			_, err := LoadChainFile(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
		})
	}
}

func TestLoadChainFileMissing(t *testing.T) {
	_, err := LoadChainFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
