package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefaultRoundTrips(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "template-key")

	path := filepath.Join(t.TempDir(), "nested", "reelpick.toml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "template-key", cfg.TMDB.APIKey)
	assert.Empty(t, cfg.Validate())
}

func TestConfigWrite(t *testing.T) {
	cfg := Default()
	cfg.TMDB.APIKey = "abc"
	cfg.Recommend.Count = 4

	path := filepath.Join(t.TempDir(), "out", "config.toml")
	require.NoError(t, cfg.Write(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", loaded.TMDB.APIKey)
	assert.Equal(t, 4, loaded.Recommend.Count)
}
