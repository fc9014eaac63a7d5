package backend

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/planforge/homeplan/core"
)

// chainFile is the YAML document describing an ordered backend chain:
//
//	backends:
//	  - provider: gemini
//	    model: gemini-pro
//	  - provider: palm
//	    model: text-bison-001
type chainFile struct {
	Backends []Backend `yaml:"backends"`
}

// DefaultChain returns the built-in fallback order: Gemini models in
// preference order, with the legacy PaLM text model as the final resort.
func DefaultChain() []Backend {
	return []Backend{
		{Provider: ProviderGemini, Model: "gemini-pro"},
		{Provider: ProviderGemini, Model: "gemini-1.5-flash"},
		{Provider: ProviderGemini, Model: "gemini-2.0-flash"},
		{Provider: ProviderPaLM, Model: "text-bison-001"},
	}
}

// LoadChainFile reads an ordered backend chain from a YAML file. Order in
// the file is attempt order.
func LoadChainFile(path string) ([]Backend, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chain file %s: %w", path, err)
	}

	var cf chainFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing chain file %s: %w", path, err)
	}

	if len(cf.Backends) == 0 {
		return nil, fmt.Errorf("chain file %s defines no backends: %w", path, core.ErrInvalidConfiguration)
	}
	for i, b := range cf.Backends {
		if b.Provider == "" || b.Model == "" {
			return nil, fmt.Errorf("chain file %s: backend %d needs both provider and model: %w",
				path, i, core.ErrInvalidConfiguration)
		}
	}

	return cf.Backends, nil
}
