// Package favorites persists the user's saved movies.
package favorites

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vmunix/reelpick/pkg/tmdb"
)

// ErrNotFound is returned when removing a movie that was never saved.
var ErrNotFound = errors.New("movie not in favorites")

// Favorite pairs a saved movie snapshot with the time it was saved.
type Favorite struct {
	Movie   tmdb.Movie `json:"movie"`
	SavedAt time.Time  `json:"saved_at"`
}

// Store persists favorites in SQLite, one row per movie id. Re-saving an
// id refreshes saved_at instead of duplicating. A mutex serializes
// read-modify-write sequences; cross-process sharing is unsupported.
type Store struct {
	db  *sql.DB
	now func() time.Time
	log *slog.Logger

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source (for testing).
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		s.log = log.With("component", "favorites")
	}
}

// New creates a favorites store over an opened database.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:  db,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save stores a movie snapshot. Saving an already-saved id updates its
// saved_at timestamp rather than creating a duplicate.
func (s *Store) Save(ctx context.Context, movie *tmdb.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(movie)
	if err != nil {
		return fmt.Errorf("marshal movie: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO favorites (movie_id, payload, saved_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(movie_id) DO UPDATE SET
		   payload = excluded.payload,
		   saved_at = excluded.saved_at`,
		movie.ID, string(payload), s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save favorite: %w", err)
	}

	if s.log != nil {
		s.log.Debug("saved favorite", "movie_id", movie.ID, "title", movie.Title)
	}
	return nil
}

// List returns all favorites ordered by save time, oldest first.
func (s *Store) List(ctx context.Context) ([]Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT payload, saved_at FROM favorites ORDER BY saved_at, movie_id",
	)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []Favorite
	for rows.Next() {
		var payload string
		var savedAt int64
		if err := rows.Scan(&payload, &savedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}

		var movie tmdb.Movie
		if err := json.Unmarshal([]byte(payload), &movie); err != nil {
			// A corrupt row should not hide the rest of the list.
			if s.log != nil {
				s.log.Warn("skipping unreadable favorite", "error", err)
			}
			continue
		}
		favorites = append(favorites, Favorite{
			Movie:   movie,
			SavedAt: time.Unix(savedAt, 0),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favorites, nil
}

// Remove deletes a favorite by movie id.
func (s *Store) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, "DELETE FROM favorites WHERE movie_id = ?", id)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if s.log != nil {
		s.log.Debug("removed favorite", "movie_id", id)
	}
	return nil
}
