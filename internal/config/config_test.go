package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reelpick.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"

[tmdb]
api_key = "abc123"
language = "fr-FR"

[database]
path = "/tmp/reelpick-test.db"

[cache]
ttl_seconds = 120
serve_stale = true

[retry]
max_attempts = 5
base_backoff_ms = 100
max_backoff_ms = 2000

[recommend]
count = 3
recent_window = 10
max_page = 50
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "abc123", cfg.TMDB.APIKey)
	assert.Equal(t, "fr-FR", cfg.TMDB.Language)
	assert.Equal(t, "/tmp/reelpick-test.db", cfg.Database.Path)
	require.NotNil(t, cfg.Cache.TTLSeconds)
	assert.Equal(t, 120, *cfg.Cache.TTLSeconds)
	assert.True(t, cfg.Cache.ServeStale)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, 3, cfg.Recommend.Count)
	assert.Equal(t, 10, cfg.Recommend.RecentWindow)
	assert.Equal(t, 50, cfg.Recommend.MaxPage)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "en-US", cfg.TMDB.Language)
	assert.NotEmpty(t, cfg.Database.Path)
	require.NotNil(t, cfg.Cache.TTLSeconds)
	assert.Equal(t, 3600, *cfg.Cache.TTLSeconds)
	assert.False(t, cfg.Cache.ServeStale)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 500, cfg.Retry.BaseBackoffMS)
	assert.Equal(t, 10000, cfg.Retry.MaxBackoffMS)
	assert.Equal(t, 1, cfg.Recommend.Count)
	assert.Equal(t, 20, cfg.Recommend.RecentWindow)
	assert.Equal(t, 20, cfg.Recommend.MaxPage)
}

func TestLoadZeroTTLDisablesCaching(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[cache]
ttl_seconds = 0
`))
	require.NoError(t, err)

	// An explicit 0 must survive defaulting: it selects always-fetch.
	require.NotNil(t, cfg.Cache.TTLSeconds)
	assert.Equal(t, 0, *cfg.Cache.TTLSeconds)
	assert.Equal(t, "0s", cfg.Cache.TTL().String())
	assert.Empty(t, cfg.Validate())
}

func TestLoadEnvSubstitution(t *testing.T) {
	t.Setenv("REELPICK_TEST_KEY", "from-env")

	cfg, err := Load(writeConfig(t, `
[tmdb]
api_key = "${REELPICK_TEST_KEY}"
`))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TMDB.APIKey)
}

func TestLoadMissingEnvVar(t *testing.T) {
	_, err := Load(writeConfig(t, `
[tmdb]
api_key = "${REELPICK_TEST_UNSET_VAR}"
`))
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Missing, "REELPICK_TEST_UNSET_VAR")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadMalformedTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "[[[not toml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.Validate())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestDurationAccessors(t *testing.T) {
	ttl := 90
	cfg := Config{
		Cache: CacheConfig{TTLSeconds: &ttl},
		Retry: RetryConfig{BaseBackoffMS: 250, MaxBackoffMS: 4000},
	}
	assert.Equal(t, "1m30s", cfg.Cache.TTL().String())
	assert.Equal(t, "250ms", cfg.Retry.BaseBackoff().String())
	assert.Equal(t, "4s", cfg.Retry.MaxBackoff().String())
}
