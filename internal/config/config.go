// Package config provides configuration management for Martha.
// Settings load in two layers: an optional YAML config file, then
// environment variables with the MARTHA_ prefix, which take precedence.
// Everything has a sensible default; a missing config file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration settings for the Martha pipeline.
type Config struct {
	Completion CompletionConfig `yaml:"completion"`
	Capture    CaptureConfig    `yaml:"capture"`
	User       UserConfig       `yaml:"user"`
}

// CompletionConfig configures the external completion service used for
// capture analysis. Disabled or unreachable is a normal condition: the
// pipeline falls back to deterministic extraction.
type CompletionConfig struct {
	Enabled           bool   `yaml:"enabled"`             // Use the completion service at all (default: true)
	BaseURL           string `yaml:"base_url"`            // Completion API URL (default: http://localhost:11434)
	Model             string `yaml:"model"`               // Model name (default: qwen2.5:7b)
	TimeoutSeconds    int    `yaml:"timeout_seconds"`     // Per-request timeout (default: 10)
	RequestsPerMinute int    `yaml:"requests_per_minute"` // Client-side rate limit (default: 30)
}

// CaptureConfig configures device capture behavior.
type CaptureConfig struct {
	// AllowPlaceholder permits synthesizing placeholder artifacts when no
	// device is available, so the pipeline works in degraded environments.
	// Default: true.
	AllowPlaceholder bool `yaml:"allow_placeholder"`
}

// UserConfig contains user-specific settings.
type UserConfig struct {
	// Name is the display name for the field engineer.
	// Env var: MARTHA_USER_NAME
	Name string `yaml:"name"`
}

// Timeout returns the completion timeout as a duration.
func (c CompletionConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load builds configuration from environment variables over defaults.
func Load() (*Config, error) {
	return buildBaseConfig(), nil
}

// LoadFile builds configuration from a YAML file, with environment
// variables layered on top. A missing file yields the same result as
// Load; a present but malformed file is an error.
func LoadFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

// defaultConfig returns the built-in defaults before any file or env layer.
func defaultConfig() *Config {
	return &Config{
		Completion: CompletionConfig{
			Enabled:           true,
			BaseURL:           "http://localhost:11434",
			Model:             "qwen2.5:7b",
			TimeoutSeconds:    10,
			RequestsPerMinute: 30,
		},
		Capture: CaptureConfig{
			AllowPlaceholder: true,
		},
	}
}

// buildBaseConfig constructs a Config from defaults and environment variables.
func buildBaseConfig() *Config {
	cfg := defaultConfig()
	applyEnv(cfg)
	return cfg
}

// applyEnv overlays MARTHA_ environment variables onto the config.
func applyEnv(cfg *Config) {
	cfg.Completion.Enabled = getEnvBool("MARTHA_COMPLETION_ENABLED", cfg.Completion.Enabled)
	cfg.Completion.BaseURL = getEnv("MARTHA_COMPLETION_URL", cfg.Completion.BaseURL)
	cfg.Completion.Model = getEnv("MARTHA_COMPLETION_MODEL", cfg.Completion.Model)
	cfg.Completion.TimeoutSeconds = getEnvInt("MARTHA_COMPLETION_TIMEOUT_SECONDS", cfg.Completion.TimeoutSeconds)
	cfg.Completion.RequestsPerMinute = getEnvInt("MARTHA_COMPLETION_REQUESTS_PER_MINUTE", cfg.Completion.RequestsPerMinute)
	cfg.Capture.AllowPlaceholder = getEnvBool("MARTHA_CAPTURE_ALLOW_PLACEHOLDER", cfg.Capture.AllowPlaceholder)
	cfg.User.Name = getEnv("MARTHA_USER_NAME", cfg.User.Name)
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value.
// If the environment variable exists but cannot be parsed as an integer,
// it returns the default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value.
// It recognizes "true", "1", "yes" as true and "false", "0", "no" as false (case-insensitive).
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch value {
		case "true", "1", "yes", "True", "TRUE", "Yes", "YES":
			return true
		case "false", "0", "no", "False", "FALSE", "No", "NO":
			return false
		}
	}
	return defaultValue
}
