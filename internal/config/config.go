// Package config carries runtime settings for the tool: search endpoint and
// retry policy from an optional TOML file, credentials from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultTimeoutSeconds   = 10
	defaultRetryMaxAttempts = 5
	defaultRetryIntervalMS  = 1000
	defaultPacingDelayMS    = 200
)

// Search configures the book search API client.
type Search struct {
	BaseURL          string `toml:"base_url"`
	TimeoutSeconds   int    `toml:"timeout_seconds"`
	RetryMaxAttempts int    `toml:"retry_max_attempts"`
	RetryIntervalMS  int    `toml:"retry_interval_ms"`
}

// Batch configures batch pacing.
type Batch struct {
	PacingDelayMS int `toml:"pacing_delay_ms"`
}

// Config is the full runtime configuration. Credentials never come from the
// file; they are read once from NAVER_CLIENT_ID / NAVER_CLIENT_SECRET and
// treated as immutable afterwards.
type Config struct {
	Search Search `toml:"search"`
	Batch  Batch  `toml:"batch"`

	ClientID     string `toml:"-"`
	ClientSecret string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Search: Search{
			TimeoutSeconds:   defaultTimeoutSeconds,
			RetryMaxAttempts: defaultRetryMaxAttempts,
			RetryIntervalMS:  defaultRetryIntervalMS,
		},
		Batch: Batch{
			PacingDelayMS: defaultPacingDelayMS,
		},
	}
}

// Load builds the configuration: defaults, then the TOML file when a path is
// given, then environment credentials on top.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.ClientID = strings.TrimSpace(os.Getenv("NAVER_CLIENT_ID"))
	cfg.ClientSecret = strings.TrimSpace(os.Getenv("NAVER_CLIENT_SECRET"))

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Search.RetryMaxAttempts < 1 {
		return errors.New("config: search.retry_max_attempts must be at least 1")
	}
	if c.Search.RetryIntervalMS < 0 {
		return errors.New("config: search.retry_interval_ms must not be negative")
	}
	if c.Search.TimeoutSeconds < 1 {
		return errors.New("config: search.timeout_seconds must be at least 1")
	}
	if c.Batch.PacingDelayMS < 0 {
		return errors.New("config: batch.pacing_delay_ms must not be negative")
	}
	return nil
}

// RequireCredentials verifies both credential values are present. Called by
// the workflow commands before any network work starts.
func (c Config) RequireCredentials() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return errors.New("config: NAVER_CLIENT_ID and NAVER_CLIENT_SECRET must be set (directly or via .env)")
	}
	return nil
}

// Timeout returns the HTTP client timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Search.TimeoutSeconds) * time.Second
}

// RetryInterval returns the fixed sleep between rate-limit retries.
func (c Config) RetryInterval() time.Duration {
	return time.Duration(c.Search.RetryIntervalMS) * time.Millisecond
}

// PacingDelay returns the fixed sleep after each remote lookup that keeps the
// batch under the service's rate quota.
func (c Config) PacingDelay() time.Duration {
	return time.Duration(c.Batch.PacingDelayMS) * time.Millisecond
}
