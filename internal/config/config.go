// Package config loads service configuration from an optional YAML file
// with environment variable overrides. Precedence is environment over file
// over built-in defaults; environment keys use the HOMEPLAN_ prefix with
// underscores (e.g. HOMEPLAN_SERVER_ADDR overrides server.addr).
//
// Generation credentials are deliberately NOT part of this tree: provider
// factories read GEMINI_API_KEY (or the legacy SESSION_SECRET alias)
// directly so that availability detection stays a pure environment probe.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the service configuration root
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Backend BackendConfig `mapstructure:"backend"`
}

// ServerConfig configures the HTTP front end
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig configures structured logging
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BackendConfig configures the generation backend layer
type BackendConfig struct {
	// Provider forces one provider family; "auto" selects the highest
	// priority available one
	Provider string `mapstructure:"provider"`

	// ChainFile optionally points to a YAML file describing the fallback
	// chain; empty means the built-in default chain
	ChainFile string `mapstructure:"chain_file"`

	// Timeout bounds a single backend attempt
	Timeout time.Duration `mapstructure:"timeout"`

	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// Load reads configuration from path. A missing file is not an error when
// path is empty; a named file that does not exist is.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v)

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := v.ReadConfig(strings.NewReader(string(content))); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("HOMEPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive, got %s", c.Backend.Timeout)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("backend.provider", "auto")
	v.SetDefault("backend.chain_file", "")
	v.SetDefault("backend.timeout", 30*time.Second)
	v.SetDefault("backend.temperature", 0.7)
	v.SetDefault("backend.max_tokens", 1000)
}
