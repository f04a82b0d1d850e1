package github

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/inovacc/trendr/internal/model"
	"golang.org/x/oauth2"
)

const (
	DefaultWindow   = 7 * 24 * time.Hour
	DefaultPageSize = 30
)

// Source yields the current trending repositories.
type Source interface {
	Trending(ctx context.Context) ([]model.Repository, error)
}

// RetryConfig controls retries of transient failures (5xx gateway errors and
// unreachable hosts). Rate limits are never retried.
type RetryConfig struct {
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        2,
		InitialBackoff:    500 * time.Millisecond,
		MaxBackoff:        5 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// Client queries the GitHub search API.
type Client struct {
	client   *gh.Client
	window   time.Duration
	pageSize int
	retry    RetryConfig
	now      func() time.Time
	logger   *slog.Logger
}

type options struct {
	token      string
	baseURL    string
	httpClient *http.Client
	window     time.Duration
	pageSize   int
	retry      RetryConfig
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*options)

// WithToken authenticates requests; only used to raise rate limits.
func WithToken(token string) Option {
	return func(o *options) { o.token = token }
}

// WithBaseURL points the client at another API root (GitHub Enterprise, tests).
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithWindow sets how far back the creation date filter reaches.
func WithWindow(d time.Duration) Option {
	return func(o *options) { o.window = d }
}

func WithPageSize(n int) Option {
	return func(o *options) { o.pageSize = n }
}

func WithRetry(cfg RetryConfig) Option {
	return func(o *options) { o.retry = cfg }
}

// WithClock replaces time.Now when computing the query date.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// NewClient builds a Client. Without a token the API is used anonymously.
func NewClient(opts ...Option) (*Client, error) {
	o := options{
		window:   DefaultWindow,
		pageSize: DefaultPageSize,
		retry:    DefaultRetryConfig(),
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.window <= 0 {
		return nil, fmt.Errorf("window must be positive, got %s", o.window)
	}

	if o.pageSize < 1 || o.pageSize > 100 {
		return nil, fmt.Errorf("page size must be between 1 and 100, got %d", o.pageSize)
	}

	httpClient := o.httpClient
	if o.token != "" {
		ctx := context.Background()
		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}

		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: o.token})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	client := gh.NewClient(httpClient)

	if o.baseURL != "" {
		base := o.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}

		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid base url %q: %w", o.baseURL, err)
		}

		client.BaseURL = u
	}

	return &Client{
		client:   client,
		window:   o.window,
		pageSize: o.pageSize,
		retry:    o.retry,
		now:      o.now,
		logger:   o.logger,
	}, nil
}

// Query returns the search query for repositories created after now-window.
func (c *Client) Query() string {
	since := c.now().Add(-c.window).UTC()
	return "created:>" + since.Format(time.DateOnly)
}

// Trending fetches a single page of repositories, most starred first.
// Failures are returned as *FetchError.
func (c *Client) Trending(ctx context.Context) ([]model.Repository, error) {
	query := c.Query()
	opt := &gh.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: gh.ListOptions{PerPage: c.pageSize},
	}

	c.logger.Debug("searching trending repositories",
		slog.String("query", query),
		slog.Int("per_page", c.pageSize))

	var (
		result *gh.RepositoriesSearchResult
		err    error
	)

	for attempt := 0; ; attempt++ {
		result, _, err = c.client.Search.Repositories(ctx, query, opt)
		if err == nil {
			break
		}

		fetchErr := newFetchError(err)
		if attempt >= c.retry.MaxRetries || !fetchErr.transient() {
			return nil, fetchErr
		}

		backoff := c.backoff(attempt)
		c.logger.Warn("transient error, retrying",
			slog.Int("attempt", attempt+1),
			slog.Duration("backoff", backoff),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return nil, &FetchError{Err: ctx.Err()}
		case <-time.After(backoff):
		}
	}

	repos := make([]model.Repository, 0, len(result.Repositories))
	for _, r := range result.Repositories {
		repo, ok := toRepository(r)
		if !ok {
			c.logger.Warn("skipping malformed search result",
				slog.Int64("id", r.GetID()),
				slog.String("name", r.GetName()))

			continue
		}

		repos = append(repos, repo)
	}

	c.logger.Debug("fetched trending repositories",
		slog.Int("count", len(repos)),
		slog.Int("total", result.GetTotal()),
		slog.Bool("incomplete", result.GetIncompleteResults()))

	return repos, nil
}

// backoff is exponential with 10% jitter, capped at MaxBackoff.
func (c *Client) backoff(attempt int) time.Duration {
	backoff := float64(c.retry.InitialBackoff) * math.Pow(c.retry.BackoffMultiplier, float64(attempt))

	if c.retry.MaxBackoff > 0 && backoff > float64(c.retry.MaxBackoff) {
		backoff = float64(c.retry.MaxBackoff)
	}

	backoff += backoff * 0.1 * (rand.Float64()*2 - 1)

	return time.Duration(backoff)
}
