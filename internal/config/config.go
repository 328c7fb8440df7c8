// Package config parses corvid.yaml, the per-project configuration file.
//
// The file is optional. When present it controls which warnings are fatal,
// where sources live, and whether the check command prints lowered output.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level corvid.yaml configuration.
type Config struct {
	// Name is the project name, used in diagnostics headers.
	Name string `yaml:"name,omitempty"`

	// SourceDirs lists the directories scanned for .cv files.
	// Defaults to ["src"].
	SourceDirs []string `yaml:"source_dirs,omitempty"`

	// WarningsAsErrors makes every warning fail the build.
	WarningsAsErrors bool `yaml:"warnings_as_errors,omitempty"`

	// Suppress lists diagnostic codes to drop entirely (e.g. "A100").
	Suppress []string `yaml:"suppress,omitempty"`

	// Lower controls whether run and build apply the early-return
	// lowering pass. Defaults to true; turning it off is only useful
	// when debugging the pass itself.
	Lower *bool `yaml:"lower,omitempty"`
}

// LoadConfig reads and parses a corvid.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses corvid.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for corvid.yaml starting from dir and walking up
// to parent directories. Returns the path and nil error if found, or an
// empty string and nil error if not found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, "corvid.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		candidate = filepath.Join(dir, "corvid.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Default returns the configuration used when no corvid.yaml exists.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func (c *Config) validate(path string) error {
	for i, code := range c.Suppress {
		if len(code) != 4 || (code[0] != 'A' && code[0] != 'P' && code[0] != 'L') {
			return fmt.Errorf("%s: suppress[%d]: %q is not a diagnostic code", path, i, code)
		}
	}
	for i, dir := range c.SourceDirs {
		if dir == "" {
			return fmt.Errorf("%s: source_dirs[%d]: empty path", path, i)
		}
	}
	return nil
}

func (c *Config) setDefaults() {
	if len(c.SourceDirs) == 0 {
		c.SourceDirs = []string{"src"}
	}
	if c.Lower == nil {
		t := true
		c.Lower = &t
	}
}

// ShouldLower reports whether the lowering pass is enabled.
func (c *Config) ShouldLower() bool {
	return c.Lower == nil || *c.Lower
}

// Suppressed reports whether a diagnostic code is suppressed.
func (c *Config) Suppressed(code string) bool {
	for _, s := range c.Suppress {
		if s == code {
			return true
		}
	}
	return false
}
