package tmdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpoint_CacheKeyDeterminism(t *testing.T) {
	// Identical logical requests yield identical keys.
	assert.Equal(t, Discover(3, 28).CacheKey(), Discover(3, 28).CacheKey())
	assert.Equal(t, GenreList("en-US").CacheKey(), GenreList("en-US").CacheKey())
	assert.Equal(t, MovieDetails(550).CacheKey(), MovieDetails(550).CacheKey())
}

func TestEndpoint_CacheKeyDistinguishesParameters(t *testing.T) {
	keys := map[string]bool{}
	for _, ep := range []Endpoint{
		Discover(1, 0),
		Discover(2, 0),
		Discover(1, 28),
		Discover(1, 35),
		GenreList("en-US"),
		GenreList("fr-FR"),
		MovieDetails(550),
		MovieDetails(551),
	} {
		key := ep.CacheKey()
		assert.False(t, keys[key], "duplicate cache key: %s", key)
		keys[key] = true
	}
}

func TestDiscover_OmitsGenreWhenUnset(t *testing.T) {
	ep := Discover(1, 0)
	assert.Empty(t, ep.Query.Get("with_genres"))

	ep = Discover(1, 28)
	assert.Equal(t, "28", ep.Query.Get("with_genres"))
	assert.Equal(t, "1", ep.Query.Get("page"))
}

func TestGenreList_DefaultLanguage(t *testing.T) {
	assert.Equal(t, DefaultLanguage, GenreList("").Query.Get("language"))
}

func TestMovieDetails_Path(t *testing.T) {
	assert.Equal(t, "movie/550", MovieDetails(550).Path)
	assert.Equal(t, "tmdb:movie/550", MovieDetails(550).CacheKey())
}
