package reddit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/cache"
	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/model"
	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/util"
	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/worker"
)

// DefaultBaseURL is the public JSON endpoint host.
const DefaultBaseURL = "https://www.reddit.com"

// sleepFunc is overridable in tests to avoid real backoff sleeps.
var sleepFunc = time.Sleep

// Client reads Reddit's public JSON listings. It paces requests per host,
// honors robots.txt, and caches responses for the configured TTL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxBytes   int64

	limiter *worker.Limiter
	robots  *util.RobotsChecker // nil disables the robots check
	store   cache.Cache         // nil disables caching
	ttl     time.Duration

	auth *authenticator // nil until credentials are supplied
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different host (tests, mirrors).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithCache enables response caching.
func WithCache(store cache.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.store = store
		c.ttl = ttl
	}
}

// WithRobots enables robots.txt checking.
func WithRobots(checker *util.RobotsChecker) Option {
	return func(c *Client) { c.robots = checker }
}

// WithCredentials enables authenticated calls (posting replies).
func WithCredentials(creds Credentials) Option {
	return func(c *Client) { c.auth = newAuthenticator(c, creds) }
}

// NewClient builds a client from the HTTP configuration.
func NewClient(cfg model.HTTPConfig, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.Proxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		baseURL:   DefaultBaseURL,
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		limiter:   worker.NewLimiter(cfg.RatePerSecond, 2),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get fetches a URL with pacing, caching, and a bounded retry on transient
// upstream failures (429 and 5xx).
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if c.store != nil {
		if body, found := c.store.Get(cache.Key(rawURL)); found {
			return body, nil
		}
	}

	var crawlDelay time.Duration
	if c.robots != nil {
		allowed, delay, err := c.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("robots.txt disallows %s", rawURL)
		}
		crawlDelay = delay
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			sleepFunc(time.Duration(attempt) * 2 * time.Second)
		}
		if err := c.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}

		body, retryable, err := c.getOnce(ctx, rawURL)
		if err == nil {
			if c.store != nil {
				_ = c.store.Set(cache.Key(rawURL), body, c.ttl)
			}
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) getOnce(ctx context.Context, rawURL string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, true, fmt.Errorf("read body: %w", err)
	}
	return body, false, nil
}
