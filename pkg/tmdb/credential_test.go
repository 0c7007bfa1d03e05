package tmdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredential_FirstPresentWins(t *testing.T) {
	cred := NewCredential(
		StaticCredential(""),
		StaticCredential("second"),
		StaticCredential("third"),
	)

	key, err := cred.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "second", key)
}

func TestCredential_Env(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")

	key, err := NewCredential().Resolve()
	require.NoError(t, err)
	assert.Equal(t, "env-key", key)
}

func TestCredential_AbsentIsAuthFailure(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	_, err := NewCredential().Resolve()
	assert.ErrorIs(t, err, ErrAuth)
}

func TestCredential_LazyEvaluation(t *testing.T) {
	calls := 0
	cred := NewCredential(func() string {
		calls++
		return "late-key"
	})
	assert.Equal(t, 0, calls, "lookups must not run at construction")

	key, err := cred.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "late-key", key)
	assert.Equal(t, 1, calls)
}
