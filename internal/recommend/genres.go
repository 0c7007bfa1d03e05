package recommend

import (
	"context"
	"log/slog"
	"time"

	"github.com/hbollon/go-edlib"

	"github.com/vmunix/reelpick/internal/store"
	"github.com/vmunix/reelpick/pkg/tmdb"
)

// genreTTL bounds how long the genre catalog is served from cache.
const genreTTL = 24 * time.Hour

// fuzzyThreshold is the Jaro-Winkler score required to treat a genre name
// as matching the requested filter.
const fuzzyThreshold = 0.85

// genreMap resolves genre names to catalog ids. The mapping is fetched
// lazily and cached with its own TTL; a fetch failure degrades to an empty
// mapping so filtering falls back to fuzzy text matching instead of
// failing the recommendation.
type genreMap struct {
	catalog  Catalog
	cache    *store.Store
	language string
	log      *slog.Logger
}

// fetch returns the genre catalog, from cache when valid.
func (g *genreMap) fetch(ctx context.Context) ([]tmdb.Genre, error) {
	ep := tmdb.GenreList(g.language)
	payload, _, err := g.cache.GetOrFetch(ctx, ep.CacheKey(), genreTTL, func(ctx context.Context) ([]byte, error) {
		return g.catalog.Do(ctx, ep)
	})
	if err != nil {
		return nil, err
	}
	return tmdb.DecodeGenres(payload)
}

// load is fetch with failures degraded to an empty catalog.
func (g *genreMap) load(ctx context.Context) []tmdb.Genre {
	genres, err := g.fetch(ctx)
	if err != nil {
		if g.log != nil {
			g.log.Warn("genre catalog unavailable, falling back to text matching", "error", err)
		}
		return nil
	}
	return genres
}

// resolve maps a genre name to its id: exact match on the normalized name
// first, then the best fuzzy match above the similarity threshold.
// Matching is case-insensitive and accent-insensitive.
func (g *genreMap) resolve(ctx context.Context, name string) (int, bool) {
	query := normalizeText(name)
	if query == "" {
		return 0, false
	}

	bestID, bestScore := 0, 0.0
	for _, genre := range g.load(ctx) {
		candidate := normalizeText(genre.Name)
		if candidate == query {
			return genre.ID, true
		}
		if score := float64(edlib.JaroWinklerSimilarity(query, candidate)); score > bestScore {
			bestID, bestScore = genre.ID, score
		}
	}
	if bestScore >= fuzzyThreshold {
		return bestID, true
	}
	return 0, false
}

// names returns the id → display-name mapping for post-fetch filtering.
func (g *genreMap) names(ctx context.Context) map[int]string {
	genres := g.load(ctx)
	if len(genres) == 0 {
		return nil
	}
	names := make(map[int]string, len(genres))
	for _, genre := range genres {
		names[genre.ID] = genre.Name
	}
	return names
}
