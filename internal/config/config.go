// Package config handles TOML configuration loading with environment
// variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Log       LogConfig       `toml:"log"`
	TMDB      TMDBConfig      `toml:"tmdb"`
	Database  DatabaseConfig  `toml:"database"`
	Cache     CacheConfig     `toml:"cache"`
	Retry     RetryConfig     `toml:"retry"`
	Recommend RecommendConfig `toml:"recommend"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type TMDBConfig struct {
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	Language string `toml:"language"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type CacheConfig struct {
	// TTLSeconds is a pointer so an explicit 0 (always fetch) is
	// distinguishable from an absent key (default applies).
	TTLSeconds *int `toml:"ttl_seconds"`
	ServeStale bool `toml:"serve_stale"`
}

// TTL returns the cache validity window as a duration.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLSeconds == nil {
		return 0
	}
	return time.Duration(*c.TTLSeconds) * time.Second
}

type RetryConfig struct {
	MaxAttempts   int `toml:"max_attempts"`
	BaseBackoffMS int `toml:"base_backoff_ms"`
	MaxBackoffMS  int `toml:"max_backoff_ms"`
}

func (c RetryConfig) BaseBackoff() time.Duration {
	return time.Duration(c.BaseBackoffMS) * time.Millisecond
}

func (c RetryConfig) MaxBackoff() time.Duration {
	return time.Duration(c.MaxBackoffMS) * time.Millisecond
}

type RecommendConfig struct {
	Count        int `toml:"count"`
	RecentWindow int `toml:"recent_window"`
	MaxPage      int `toml:"max_page"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a configuration with all defaults applied and no file
// read. Used when no config file exists; the API key then comes from the
// environment.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.TMDB.Language == "" {
		c.TMDB.Language = "en-US"
	}
	if c.Database.Path == "" {
		c.Database.Path = defaultDatabasePath()
	}
	if c.Cache.TTLSeconds == nil {
		ttl := 3600
		c.Cache.TTLSeconds = &ttl
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Retry.BaseBackoffMS == 0 {
		c.Retry.BaseBackoffMS = 500
	}
	if c.Retry.MaxBackoffMS == 0 {
		c.Retry.MaxBackoffMS = 10000
	}
	if c.Recommend.Count == 0 {
		c.Recommend.Count = 1
	}
	if c.Recommend.RecentWindow == 0 {
		c.Recommend.RecentWindow = 20
	}
	if c.Recommend.MaxPage == 0 {
		c.Recommend.MaxPage = 20
	}
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
// and reports the variables that are not set.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1]
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		missing = append(missing, varName)
		return match
	})
	return out, missing
}
