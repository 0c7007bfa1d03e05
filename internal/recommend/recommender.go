// Package recommend orchestrates the cache store and the catalog client
// to produce randomized movie picks.
package recommend

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/hbollon/go-edlib"

	"github.com/vmunix/reelpick/internal/store"
	"github.com/vmunix/reelpick/pkg/tmdb"
)

// Catalog is the remote-call capability the recommender composes with the
// cache store. *tmdb.Client satisfies it.
type Catalog interface {
	Do(ctx context.Context, ep tmdb.Endpoint) ([]byte, error)
}

const (
	// defaultMaxPage is the random-page range used until a discover
	// response reports its real total_pages.
	defaultMaxPage = 20

	defaultRecentWindow = 20
	defaultDiscoverTTL  = time.Hour
)

// Options selects what one Recommend call should produce.
type Options struct {
	Count        int    // number of picks; values below 1 mean 1
	Genre        string // optional genre filter by name
	ForceRefresh bool   // invalidate the cached page before fetching
}

// Result is one batch of picks plus how it was produced.
type Result struct {
	Movies        []tmdb.Movie
	Page          int  // discover page the picks were drawn from
	GenreNotFound bool // genre filter could not be applied; results are unfiltered
	Stale         bool // payload came from an expired cache entry
}

// Recommender produces randomized picks from the movie catalog.
// It is meant for one interactive session at a time; the stores it uses
// serialize their own access.
type Recommender struct {
	catalog Catalog
	cache   *store.Store
	genres  *genreMap
	log     *slog.Logger

	discoverTTL time.Duration
	maxPage     int
	recent      *recentSet
	rng         *rand.Rand
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(r *Recommender) {
		r.log = log.With("component", "recommend")
	}
}

// WithLanguage sets the genre catalog language (default en-US).
func WithLanguage(language string) Option {
	return func(r *Recommender) {
		r.genres.language = language
	}
}

// WithSeed seeds the random source (for testing).
func WithSeed(seed int64) Option {
	return func(r *Recommender) {
		r.rng = rand.New(rand.NewSource(seed))
	}
}

// WithDiscoverTTL sets how long discover pages are served from cache.
func WithDiscoverTTL(ttl time.Duration) Option {
	return func(r *Recommender) {
		r.discoverTTL = ttl
	}
}

// WithMaxPage sets the initial random-page range, before the catalog
// reports its real page count.
func WithMaxPage(n int) Option {
	return func(r *Recommender) {
		if n >= 1 {
			r.maxPage = n
		}
	}
}

// WithRecentWindow bounds the recently-shown exclusion set.
// Zero disables repeat avoidance.
func WithRecentWindow(n int) Option {
	return func(r *Recommender) {
		r.recent = newRecentSet(n)
	}
}

// New creates a Recommender over a catalog client and a cache store.
func New(catalog Catalog, cache *store.Store, opts ...Option) *Recommender {
	r := &Recommender{
		catalog: catalog,
		cache:   cache,
		genres: &genreMap{
			catalog:  catalog,
			cache:    cache,
			language: tmdb.DefaultLanguage,
		},
		discoverTTL: defaultDiscoverTTL,
		maxPage:     defaultMaxPage,
		recent:      newRecentSet(defaultRecentWindow),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.genres.log = r.log
	return r
}

// Recommend returns up to opts.Count randomized distinct picks.
//
// A genre name that resolves to a known id filters server-side; an
// unresolvable name falls back to fuzzy text matching over the fetched
// page, and when even that matches nothing the unfiltered picks are
// returned with GenreNotFound set. Fetch failures after retry exhaustion
// propagate as typed errors; an empty result with a nil error always
// means "nothing matched", never "fetch failed".
func (r *Recommender) Recommend(ctx context.Context, opts Options) (*Result, error) {
	if opts.Count < 1 {
		opts.Count = 1
	}

	genreID := 0
	genreKnown := true
	if opts.Genre != "" {
		genreID, genreKnown = r.genres.resolve(ctx, opts.Genre)
	}

	page := 1 + r.rng.Intn(r.maxPage)
	ep := tmdb.Discover(page, genreID)
	key := ep.CacheKey()

	if opts.ForceRefresh {
		if err := r.cache.Invalidate(ctx, key); err != nil && r.log != nil {
			r.log.Warn("invalidate before refresh failed", "key", key, "error", err)
		}
	}

	payload, stale, err := r.cache.GetOrFetch(ctx, key, r.discoverTTL, func(ctx context.Context) ([]byte, error) {
		return r.catalog.Do(ctx, ep)
	})
	if err != nil {
		return nil, err
	}

	pg, err := tmdb.DecodePage(payload)
	if err != nil {
		return nil, err
	}
	if pg.TotalPages > 0 {
		r.maxPage = min(pg.TotalPages, tmdb.MaxDiscoverPage)
	}

	pool := sanitize(pg.Results)
	result := &Result{Page: page, Stale: stale}

	if opts.Genre != "" && !genreKnown {
		filtered := r.filterByText(ctx, pool, opts.Genre)
		if len(filtered) == 0 {
			result.GenreNotFound = true
		} else {
			pool = filtered
		}
	}

	result.Movies = r.sample(pool, opts.Count)
	for _, m := range result.Movies {
		r.recent.add(m.ID)
	}

	if r.log != nil {
		r.log.Debug("recommendation produced",
			"page", page, "pool", len(pool), "picks", len(result.Movies),
			"genre", opts.Genre, "genre_not_found", result.GenreNotFound, "stale", stale)
	}
	return result, nil
}

// Genres returns the catalog's genre list, from cache when valid.
func (r *Recommender) Genres(ctx context.Context) ([]tmdb.Genre, error) {
	return r.genres.fetch(ctx)
}

// sanitize drops results without a usable id or title and dedupes by id.
func sanitize(movies []tmdb.Movie) []tmdb.Movie {
	seen := make(map[int64]struct{}, len(movies))
	out := make([]tmdb.Movie, 0, len(movies))
	for _, m := range movies {
		if m.ID == 0 || m.Title == "" {
			continue
		}
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out
}

// filterByText applies the fuzzy genre predicate: a movie matches when one
// of its genre names is similar to the query, or when the query appears in
// its title or overview.
func (r *Recommender) filterByText(ctx context.Context, pool []tmdb.Movie, genre string) []tmdb.Movie {
	query := normalizeText(genre)
	names := r.genres.names(ctx)

	var out []tmdb.Movie
	for _, m := range pool {
		if movieMatchesText(&m, query, names) {
			out = append(out, m)
		}
	}
	return out
}

func movieMatchesText(m *tmdb.Movie, query string, names map[int]string) bool {
	for _, id := range m.GenreIDs {
		name, ok := names[id]
		if !ok {
			continue
		}
		if float64(edlib.JaroWinklerSimilarity(query, normalizeText(name))) >= fuzzyThreshold {
			return true
		}
	}
	if strings.Contains(normalizeText(m.Title), query) {
		return true
	}
	return strings.Contains(normalizeText(m.Overview), query)
}

// sample picks count distinct movies without replacement. Recently-shown
// ids are excluded only when enough candidates remain to satisfy count;
// otherwise exclusion is relaxed. A pool smaller than count yields the
// whole pool.
func (r *Recommender) sample(pool []tmdb.Movie, count int) []tmdb.Movie {
	if len(pool) == 0 {
		return nil
	}

	eligible := pool
	if r.recent.size() > 0 {
		fresh := make([]tmdb.Movie, 0, len(pool))
		for _, m := range pool {
			if !r.recent.has(m.ID) {
				fresh = append(fresh, m)
			}
		}
		if len(fresh) >= count {
			eligible = fresh
		}
	}

	if count > len(eligible) {
		count = len(eligible)
	}

	picks := make([]tmdb.Movie, 0, count)
	for _, i := range r.rng.Perm(len(eligible))[:count] {
		picks = append(picks, eligible[i])
	}
	return picks
}

// recentSet is a bounded FIFO of recently-shown movie ids.
type recentSet struct {
	limit int
	order []int64
	seen  map[int64]struct{}
}

func newRecentSet(limit int) *recentSet {
	return &recentSet{
		limit: limit,
		seen:  make(map[int64]struct{}),
	}
}

func (s *recentSet) add(id int64) {
	if s.limit <= 0 {
		return
	}
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.order = append(s.order, id)
	if len(s.order) > s.limit {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.seen, oldest)
	}
}

func (s *recentSet) has(id int64) bool {
	_, ok := s.seen[id]
	return ok
}

func (s *recentSet) size() int {
	return len(s.order)
}
