package config

import (
	"fmt"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	if c.Cache.TTLSeconds != nil && *c.Cache.TTLSeconds < 0 {
		errs = append(errs, fmt.Sprintf("cache.ttl_seconds: must not be negative, got %d", *c.Cache.TTLSeconds))
	}

	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Sprintf("retry.max_attempts: must be at least 1, got %d", c.Retry.MaxAttempts))
	}
	if c.Retry.BaseBackoffMS < 0 {
		errs = append(errs, fmt.Sprintf("retry.base_backoff_ms: must not be negative, got %d", c.Retry.BaseBackoffMS))
	}
	if c.Retry.MaxBackoffMS < 0 {
		errs = append(errs, fmt.Sprintf("retry.max_backoff_ms: must not be negative, got %d", c.Retry.MaxBackoffMS))
	}

	if c.Recommend.Count < 1 {
		errs = append(errs, fmt.Sprintf("recommend.count: must be at least 1, got %d", c.Recommend.Count))
	}
	if c.Recommend.RecentWindow < 0 {
		errs = append(errs, fmt.Sprintf("recommend.recent_window: must not be negative, got %d", c.Recommend.RecentWindow))
	}
	if c.Recommend.MaxPage < 1 || c.Recommend.MaxPage > 500 {
		errs = append(errs, fmt.Sprintf("recommend.max_page: must be between 1 and 500, got %d", c.Recommend.MaxPage))
	}

	return errs
}
