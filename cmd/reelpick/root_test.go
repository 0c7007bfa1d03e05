package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/reelpick/internal/config"
	"github.com/vmunix/reelpick/pkg/tmdb"
)

func TestCredentialEnvWinsOverConfig(t *testing.T) {
	cfg := config.Default()
	cfg.TMDB.APIKey = "config-key"

	t.Setenv(tmdb.EnvAPIKey, "env-key")
	key, err := newCredential(cfg).Resolve()
	require.NoError(t, err)
	assert.Equal(t, "env-key", key)
}

func TestCredentialFallsBackToConfig(t *testing.T) {
	cfg := config.Default()
	cfg.TMDB.APIKey = "config-key"

	t.Setenv(tmdb.EnvAPIKey, "")
	key, err := newCredential(cfg).Resolve()
	require.NoError(t, err)
	assert.Equal(t, "config-key", key)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLogLevel("debug").String())
	assert.Equal(t, "WARN", parseLogLevel("WARN").String())
	assert.Equal(t, "ERROR", parseLogLevel("error").String())
	assert.Equal(t, "INFO", parseLogLevel("info").String())
	assert.Equal(t, "INFO", parseLogLevel("").String())
}
