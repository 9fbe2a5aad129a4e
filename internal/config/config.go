// Package config loads server configuration from YAML with environment
// overrides. Limits in the file are defaults only; every tool call may
// override them per invocation.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

// Environment variables recognized by the server
const (
	EnvConfigPath = "DOCCHUNK_CONFIG"
	EnvDBPath     = "DOCCHUNK_DB_PATH"
)

// Config holds the server configuration
type Config struct {
	// DBPath is the directory holding the session database
	DBPath   string       `yaml:"db_path"`
	LogLevel string       `yaml:"log_level"`
	Limits   LimitsConfig `yaml:"limits"`
}

// LimitsConfig mirrors types.Limits in the config file
type LimitsConfig struct {
	MaxContextChars       int    `yaml:"max_context_chars"`
	ReservedResponseChars int    `yaml:"reserved_response_chars"`
	ReservedPromptChars   int    `yaml:"reserved_prompt_chars"`
	ReservedCarryChars    int    `yaml:"reserved_carry_chars"`
	OverflowPolicy        string `yaml:"overflow_policy"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		DBPath:   "~/.docchunk/sessions",
		LogLevel: "info",
		Limits: LimitsConfig{
			MaxContextChars:       96000,
			ReservedResponseChars: 16000,
			ReservedPromptChars:   4000,
			ReservedCarryChars:    8000,
			OverflowPolicy:        string(types.OverflowAllow),
		},
	}
}

// Load reads configuration from the given path, falling back to defaults
// for any omitted field. An empty path checks DOCCHUNK_CONFIG and then
// returns defaults when no file is configured.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if env := os.Getenv(EnvDBPath); env != "" {
		cfg.DBPath = env
	}

	limits := cfg.ToLimits()
	if err := limits.Validate(); err != nil {
		return nil, fmt.Errorf("invalid limits in config: %w", err)
	}

	return cfg, nil
}

// ToLimits converts the configured defaults to the domain type
func (c *Config) ToLimits() types.Limits {
	return types.Limits{
		MaxContextChars:       c.Limits.MaxContextChars,
		ReservedResponseChars: c.Limits.ReservedResponseChars,
		ReservedPromptChars:   c.Limits.ReservedPromptChars,
		ReservedCarryChars:    c.Limits.ReservedCarryChars,
		Overflow:              types.OverflowPolicy(c.Limits.OverflowPolicy),
	}
}

// ExpandDBPath resolves a leading "~" in the configured database path
func (c *Config) ExpandDBPath() (string, error) {
	path := c.DBPath
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return path, nil
}
