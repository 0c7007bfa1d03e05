package tmdb

import (
	"fmt"
	"net/url"
	"strconv"
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "en-US"

// MaxDiscoverPage is TMDB's hard pagination ceiling for discover queries.
const MaxDiscoverPage = 500

// Endpoint describes one logical catalog request: a relative path plus its
// query parameters. Building one performs no I/O, and the same logical
// request always produces the same descriptor.
type Endpoint struct {
	Path  string
	Query url.Values
}

// Discover builds the discover-movies request for one page.
// genreID <= 0 means no genre constraint.
func Discover(page, genreID int) Endpoint {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("sort_by", "popularity.desc")
	q.Set("include_adult", "false")
	if genreID > 0 {
		q.Set("with_genres", strconv.Itoa(genreID))
	}
	return Endpoint{Path: "discover/movie", Query: q}
}

// GenreList builds the genre catalog request for a language.
func GenreList(language string) Endpoint {
	if language == "" {
		language = DefaultLanguage
	}
	q := url.Values{}
	q.Set("language", language)
	return Endpoint{Path: "genre/movie/list", Query: q}
}

// MovieDetails builds the single-movie request.
func MovieDetails(id int64) Endpoint {
	return Endpoint{Path: fmt.Sprintf("movie/%d", id), Query: url.Values{}}
}

// CacheKey derives a deterministic cache key from the descriptor.
// url.Values.Encode sorts parameters by key, so identical logical requests
// always yield the same key and differing parameters never collide.
func (e Endpoint) CacheKey() string {
	if len(e.Query) == 0 {
		return "tmdb:" + e.Path
	}
	return "tmdb:" + e.Path + "?" + e.Query.Encode()
}
