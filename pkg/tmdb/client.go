package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/vmunix/reelpick/pkg/retry"
)

const defaultBaseURL = "https://api.themoviedb.org/3"

// Client performs validated calls against the TMDB v3 API. Every network
// exchange runs through the retry policy, so callers only ever see
// terminal outcomes: success, a permanent failure, or retry exhaustion.
type Client struct {
	cred       *Credential
	baseURL    string
	httpClient *http.Client
	policy     *retry.Policy
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRetryPolicy sets the retry policy for transient failures.
func WithRetryPolicy(p *retry.Policy) Option {
	return func(c *Client) {
		c.policy = p
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "tmdb")
	}
}

// New creates a new TMDB client.
func New(cred *Credential, opts ...Option) *Client {
	c := &Client{
		cred:    cred,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		policy: retry.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executes one endpoint and returns the validated response body.
// Transport failures are retried; a 2xx response with an undecodable body
// is ErrMalformed and is not retried.
func (c *Client) Do(ctx context.Context, ep Endpoint) ([]byte, error) {
	start := time.Now()

	key, err := c.cred.Resolve()
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	for name, values := range ep.Query {
		q[name] = values
	}
	q.Set("api_key", key)
	requestURL := c.baseURL + "/" + ep.Path + "?" + q.Encode()

	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Timeouts and connection resets are worth retrying.
			return retry.Transient(fmt.Errorf("execute request: %w", err))
		}
		defer resp.Body.Close()

		if err := checkResponse(resp); err != nil {
			return err
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.Transient(fmt.Errorf("read response: %w", err))
		}
		if !json.Valid(data) {
			return fmt.Errorf("%w: invalid JSON body", ErrMalformed)
		}
		body = data
		return nil
	}

	if err := c.policy.Do(ctx, op); err != nil {
		return nil, err
	}

	if c.log != nil {
		c.log.Debug("request completed",
			"path", ep.Path, "bytes", len(body), "duration_ms", time.Since(start).Milliseconds())
	}
	return body, nil
}

// DiscoverMovies fetches one discover page. genreID <= 0 means unfiltered.
func (c *Client) DiscoverMovies(ctx context.Context, page, genreID int) (*Page, error) {
	data, err := c.Do(ctx, Discover(page, genreID))
	if err != nil {
		return nil, err
	}
	return DecodePage(data)
}

// Genres fetches the genre catalog for a language.
func (c *Client) Genres(ctx context.Context, language string) ([]Genre, error) {
	data, err := c.Do(ctx, GenreList(language))
	if err != nil {
		return nil, err
	}
	return DecodeGenres(data)
}

// GetMovie fetches movie details by TMDB ID.
func (c *Client) GetMovie(ctx context.Context, id int64) (*Movie, error) {
	data, err := c.Do(ctx, MovieDetails(id))
	if err != nil {
		return nil, err
	}
	return DecodeMovie(data)
}
