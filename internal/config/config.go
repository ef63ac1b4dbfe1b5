// Package config loads the decrypter configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chronos-tachyon/decrypter/internal/vigenere"
)

// Config holds all decrypter configuration.
type Config struct {
	// Input is the code file read by the first pipeline stage.
	Input string `yaml:"input"`

	// Key deciphers the assembled text.
	Key string `yaml:"key"`

	// Strict rejects bit streams that end with a partial 7-bit group.
	Strict bool `yaml:"strict"`

	// Workers > 1 corrects groups concurrently.
	Workers int `yaml:"workers"`

	// Archive, if set, receives the compressed bitstring and its table.
	Archive string `yaml:"archive"`

	// Seed for the random re-encipher key; 0 picks one from the clock.
	Seed int64 `yaml:"seed"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Input:   "code.txt",
		Key:     vigenere.DefaultKey,
		Workers: 1,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file.  A missing file yields the
// defaults.  Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
			// defaults
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("DECRYPTER_INPUT"); v != "" {
		c.Input = v
	}
	if v := os.Getenv("DECRYPTER_KEY"); v != "" {
		c.Key = v
	}
	if v := os.Getenv("DECRYPTER_STRICT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DECRYPTER_STRICT: %w", err)
		}
		c.Strict = b
	}
	if v := os.Getenv("DECRYPTER_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DECRYPTER_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v := os.Getenv("DECRYPTER_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	return nil
}

// ValidLogLevels lists the accepted values of Logging.Level.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input file not configured")
	}
	if err := vigenere.ValidateKey(c.Key); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}

	for _, level := range ValidLogLevels {
		if c.Logging.Level == level {
			return nil
		}
	}
	return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
}
