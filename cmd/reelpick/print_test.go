package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/vmunix/reelpick/pkg/tmdb"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 20))
	assert.Equal(t, "cut at a word...", truncate("cut at a word boundary here", 15))
	assert.Equal(t, "", truncate("", 10))
}

func TestTruncateMultiByte(t *testing.T) {
	// No spaces in the first max runes: the cut must still land on a
	// rune boundary, never mid-character.
	overview := strings.Repeat("非常好看的电影", 40)
	got := truncate(overview, 20)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, string([]rune(overview)[:20])+"...", got)

	accented := "Amélie est un film français épatant et mémorable à revoir"
	got = truncate(accented, 30)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len([]rune(got)), 33)
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "(from environment)", maskKey(""))
	assert.Equal(t, "****", maskKey("ab"))
	assert.Equal(t, "****wxyz", maskKey("abcdwxyz"))
}

func TestDetailLine(t *testing.T) {
	m := &tmdb.Movie{
		Runtime:    136,
		Genres:     []tmdb.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}},
		PosterPath: "/abc.jpg",
	}
	line := detailLine(m)
	assert.Contains(t, line, "2h16m")
	assert.Contains(t, line, "Action, Science Fiction")
	assert.Contains(t, line, "https://image.tmdb.org/t/p/w342/abc.jpg")

	assert.Empty(t, detailLine(&tmdb.Movie{}))
}
