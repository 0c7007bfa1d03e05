package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for TMDB API responses.
var (
	// ErrAuth indicates a missing or rejected API key. Never retried.
	ErrAuth = errors.New("authentication failed: invalid or missing API key")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMalformed indicates a 2xx response whose body could not be
	// decoded. Permanent: retrying cannot fix the response shape.
	ErrMalformed = errors.New("malformed response")

	// ErrRateLimited indicates a 429 response. Transient.
	ErrRateLimited error = transientErr("rate limited: too many requests")
)

// transientErr is a sentinel error the retry policy will retry.
type transientErr string

func (e transientErr) Error() string   { return string(e) }
func (e transientErr) Temporary() bool { return true }

// StatusError reports a non-2xx status that does not map to a sentinel.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("TMDB API error: %s", e.Status)
}

// Temporary reports whether the status class is worth retrying.
// Server errors are transient; remaining client errors are permanent.
func (e *StatusError) Temporary() bool {
	return e.Code >= 500
}

// checkResponse maps an HTTP status to the error taxonomy.
func checkResponse(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrAuth
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
}
