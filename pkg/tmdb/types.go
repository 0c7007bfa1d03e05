// Package tmdb provides a client for The Movie Database API v3.
package tmdb

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Movie represents TMDB movie metadata. Immutable once decoded.
type Movie struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"` // "1999-10-15"
	PosterPath   string  `json:"poster_path"`  // "/abc123.jpg"
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	GenreIDs     []int   `json:"genre_ids"`        // list responses
	Genres       []Genre `json:"genres,omitempty"` // detail responses
	Runtime      int     `json:"runtime,omitempty"`
}

// Genre represents a movie genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Year extracts the year from ReleaseDate. Returns 0 when unknown.
func (m *Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// PosterURL returns the full poster image URL.
// Size can be: w92, w154, w185, w342, w500, w780, original
func (m *Movie) PosterURL(size string) string {
	if m.PosterPath == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/" + size + m.PosterPath
}

// Page is one page of a discover or search response.
type Page struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// genreListResponse is the genre/movie/list API response.
type genreListResponse struct {
	Genres []Genre `json:"genres"`
}

// DecodePage decodes a discover payload, fresh or cached.
func DecodePage(data []byte) (*Page, error) {
	var p Page
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: decode discover page: %v", ErrMalformed, err)
	}
	return &p, nil
}

// DecodeGenres decodes a genre list payload, fresh or cached.
func DecodeGenres(data []byte) ([]Genre, error) {
	var resp genreListResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode genre list: %v", ErrMalformed, err)
	}
	return resp.Genres, nil
}

// DecodeMovie decodes a movie detail payload, fresh or cached.
func DecodeMovie(data []byte) (*Movie, error) {
	var m Movie
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: decode movie: %v", ErrMalformed, err)
	}
	return &m, nil
}
