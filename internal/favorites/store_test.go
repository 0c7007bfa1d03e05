package favorites

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/vmunix/reelpick/internal/migrations"
	"github.com/vmunix/reelpick/pkg/tmdb"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)

	_, err = db.Exec(migrations.InitialSQL)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func TestSaveListRemove_RoundTrip(t *testing.T) {
	s := New(setupTestDB(t))
	ctx := context.Background()

	movie := &tmdb.Movie{ID: 42, Title: "The Answer", ReleaseDate: "2005-04-28", VoteAverage: 7.9}
	require.NoError(t, s.Save(ctx, movie))

	favs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, int64(42), favs[0].Movie.ID)
	assert.Equal(t, "The Answer", favs[0].Movie.Title)

	require.NoError(t, s.Remove(ctx, 42))

	favs, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestSave_ResaveUpdatesSavedAt(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := New(setupTestDB(t), WithClock(func() time.Time { return now }))
	ctx := context.Background()

	movie := &tmdb.Movie{ID: 42, Title: "The Answer"}
	require.NoError(t, s.Save(ctx, movie))

	now = now.Add(time.Hour)
	require.NoError(t, s.Save(ctx, movie))

	favs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1, "re-saving the same id must not duplicate")
	assert.Equal(t, now.Unix(), favs[0].SavedAt.Unix())
}

func TestList_OrderedBySaveTime(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := New(setupTestDB(t), WithClock(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &tmdb.Movie{ID: 2, Title: "Second"}))
	now = now.Add(time.Minute)
	require.NoError(t, s.Save(ctx, &tmdb.Movie{ID: 1, Title: "First later"}))

	favs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, int64(2), favs[0].Movie.ID)
	assert.Equal(t, int64(1), favs[1].Movie.ID)
}

func TestRemove_MissingID(t *testing.T) {
	s := New(setupTestDB(t))

	err := s.Remove(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
