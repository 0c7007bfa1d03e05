// Package store provides the durable TTL cache backing catalog API
// responses. Entries live in SQLite keyed by the endpoint cache key; when
// the database is unreadable or unwritable the store degrades to an
// in-process map for the affected calls instead of failing the request.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Clock returns the current time. Replaceable for TTL tests.
type Clock func() time.Time

// FetchFunc performs the remote call on a cache miss.
type FetchFunc func(ctx context.Context) ([]byte, error)

type entry struct {
	payload   []byte
	fetchedAt time.Time
	ttl       time.Duration
}

func (e entry) expired(now time.Time) bool {
	return e.ttl <= 0 || now.Sub(e.fetchedAt) >= e.ttl
}

// Store is a key-value cache with per-entry TTL.
//
// A single mutex serializes every read-modify-write sequence, so a
// concurrent frontend cannot lose updates. Concurrent GetOrFetch calls for
// the same key are not coalesced beyond that serialization, and two
// processes sharing the same database file are unsupported.
type Store struct {
	db         *sql.DB
	serveStale bool
	now        Clock
	log        *slog.Logger

	mu  sync.Mutex
	mem map[string]entry // fallback entries when the database is unavailable
}

// Option configures a Store.
type Option func(*Store)

// WithServeStale makes GetOrFetch return an expired entry instead of the
// fetch error when the refresh fails.
func WithServeStale() Option {
	return func(s *Store) {
		s.serveStale = true
	}
}

// WithClock sets the time source (for testing).
func WithClock(now Clock) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		s.log = log.With("component", "cache")
	}
}

// New creates a cache store over an opened database.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:  db,
		now: time.Now,
		mem: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrFetch returns the cached payload when a valid entry exists for key,
// without invoking fetch. Otherwise it invokes fetch exactly once and, on
// success, stores the result with fetched_at = now. A failed fetch never
// overwrites an existing entry; with serve-stale enabled an expired entry
// is returned in place of the fetch error, flagged stale.
//
// ttl == 0 means never serve from cache: fetch always runs and overwrites.
func (s *Store) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) (payload []byte, stale bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent, found := s.lookup(ctx, key)
	if found && ttl > 0 && !ent.expired(s.now()) {
		if s.log != nil {
			s.log.Debug("cache hit", "key", key)
		}
		return ent.payload, false, nil
	}

	if s.log != nil {
		s.log.Debug("cache miss, fetching", "key", key, "expired", found)
	}

	payload, err = fetch(ctx)
	if err != nil {
		if s.serveStale && found {
			if s.log != nil {
				s.log.Warn("fetch failed, serving stale entry", "key", key, "error", err)
			}
			return ent.payload, true, nil
		}
		return nil, false, err
	}

	s.put(ctx, key, entry{payload: payload, fetchedAt: s.now(), ttl: ttl})
	return payload, false, nil
}

// Invalidate removes a single entry (used by forced refresh).
func (s *Store) Invalidate(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.mem, key)
	if _, err := s.db.ExecContext(ctx, "DELETE FROM cache_entries WHERE key = ?", key); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// Clear removes all entries.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mem = make(map[string]entry)
	if _, err := s.db.ExecContext(ctx, "DELETE FROM cache_entries"); err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	return nil
}

// Prune removes all expired entries. Returns the number removed.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, ent := range s.mem {
		if ent.expired(now) {
			delete(s.mem, key)
		}
	}

	result, err := s.db.ExecContext(ctx,
		"DELETE FROM cache_entries WHERE fetched_at + ttl_seconds <= ?", now.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("cache prune: %w", err)
	}
	return result.RowsAffected()
}

// lookup reads an entry from the database, falling back to the in-memory
// map when the database is unavailable. Missing keys are not an error.
func (s *Store) lookup(ctx context.Context, key string) (entry, bool) {
	var payload string
	var fetchedAt, ttlSeconds int64

	err := s.db.QueryRowContext(ctx,
		"SELECT payload, fetched_at, ttl_seconds FROM cache_entries WHERE key = ?", key,
	).Scan(&payload, &fetchedAt, &ttlSeconds)

	switch {
	case err == nil:
		return entry{
			payload:   []byte(payload),
			fetchedAt: time.Unix(fetchedAt, 0),
			ttl:       time.Duration(ttlSeconds) * time.Second,
		}, true
	case errors.Is(err, sql.ErrNoRows):
		return entry{}, false
	default:
		if s.log != nil {
			s.log.Warn("cache unavailable, using in-memory entries", "key", key, "error", err)
		}
		ent, ok := s.mem[key]
		return ent, ok
	}
}

// put writes an entry, keeping the in-memory copy when the database
// rejects the write so the current process still benefits from the fetch.
func (s *Store) put(ctx context.Context, key string, ent entry) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cache_entries (key, payload, fetched_at, ttl_seconds)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   payload = excluded.payload,
		   fetched_at = excluded.fetched_at,
		   ttl_seconds = excluded.ttl_seconds`,
		key, string(ent.payload), ent.fetchedAt.Unix(), int64(ent.ttl.Seconds()),
	)
	if err != nil {
		if s.log != nil {
			s.log.Warn("cache write failed, keeping entry in memory", "key", key, "error", err)
		}
		s.mem[key] = ent
		return
	}
	delete(s.mem, key)
}
