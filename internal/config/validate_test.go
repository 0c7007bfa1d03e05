package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults valid", func(c *Config) {}, ""},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"negative ttl", func(c *Config) { ttl := -1; c.Cache.TTLSeconds = &ttl }, "cache.ttl_seconds"},
		{"zero attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }, "retry.max_attempts"},
		{"negative backoff", func(c *Config) { c.Retry.BaseBackoffMS = -5 }, "retry.base_backoff_ms"},
		{"zero count", func(c *Config) { c.Recommend.Count = 0 }, "recommend.count"},
		{"negative window", func(c *Config) { c.Recommend.RecentWindow = -1 }, "recommend.recent_window"},
		{"max page too large", func(c *Config) { c.Recommend.MaxPage = 501 }, "recommend.max_page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			errs := cfg.Validate()
			if tt.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			found := false
			for _, e := range errs {
				if strings.HasPrefix(e, tt.wantErr) {
					found = true
				}
			}
			assert.True(t, found, "expected an error mentioning %q, got %v", tt.wantErr, errs)
		})
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{
		Path:    "/etc/reelpick/config.toml",
		Missing: []string{"TMDB_API_KEY"},
		Errors:  []string{"recommend.count: must be at least 1, got 0"},
	}
	assert.True(t, err.HasErrors())
	assert.Contains(t, err.Error(), "/etc/reelpick/config.toml")
	assert.Contains(t, err.Error(), "TMDB_API_KEY")
	assert.Contains(t, err.Error(), "recommend.count")

	assert.False(t, (&ConfigError{}).HasErrors())
	assert.Empty(t, (&ConfigError{Path: "x"}).Error())
}
