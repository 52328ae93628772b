package cli

import (
	"fmt"
	"os"

	"cuelang.org/go/cue/cuecontext"
)

// Config is the optional CUE configuration file. All fields default to
// the zero value when no file is given.
type Config struct {
	// MaxDepth caps parse and transform nesting. Zero keeps the
	// compiler defaults.
	MaxDepth int `json:"maxDepth"`

	// RelaxedIdents admits unknown identifiers as column references
	// on every target, not just SQL.
	RelaxedIdents bool `json:"relaxedIdents"`

	// Preludes overrides the built-in per-target headers.
	Preludes map[string]string `json:"preludes"`

	// Constructors lists extra type names legal in type definitions.
	Constructors []string `json:"constructors"`
}

// LoadConfig reads and evaluates a CUE config file. An empty path
// yields the zero config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	value := cuecontext.New().CompileBytes(data)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("evaluating config: %w", err)
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}
