package feedcache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/pageza/recipe-feeds/backend/internal/types"
)

// Fetcher loads one increment of a feed from the server. Errors wrap
// ErrNotFound, ErrRejected or ErrTransient.
type Fetcher interface {
	Fetch(ctx context.Context, feed FeedKey, pageCount, pageSize int) (*types.FeedResponse, error)
}

// HTTPConfig configures an HTTPFetcher.
type HTTPConfig struct {
	// BaseURL is the server root, e.g. http://localhost:8080.
	BaseURL string
	// Username is sent as the viewer for book feeds.
	Username string
	Client   *http.Client
	// Timeout bounds one request. Default 10s.
	Timeout time.Duration
	// FailureThreshold consecutive failures open the breaker. Default 5.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open. Default 30s.
	OpenTimeout time.Duration
}

// HTTPFetcher fetches feed increments from the recipe API behind a
// circuit breaker.
type HTTPFetcher struct {
	base     string
	username string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker[*types.FeedResponse]
}

// NewHTTPFetcher creates an HTTPFetcher.
func NewHTTPFetcher(cfg HTTPConfig) *HTTPFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	breaker := gobreaker.NewCircuitBreaker[*types.FeedResponse](gobreaker.Settings{
		Name:    "feeds",
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// Client errors are answers, not server failures.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrRejected)
		},
	})

	return &HTTPFetcher{
		base:     strings.TrimRight(cfg.BaseURL, "/"),
		username: cfg.Username,
		client:   client,
		breaker:  breaker,
	}
}

// State reports the breaker state: closed, half-open or open.
func (f *HTTPFetcher) State() string {
	return f.breaker.State().String()
}

// Fetch posts a FeedRequest for one increment of feed.
func (f *HTTPFetcher) Fetch(ctx context.Context, feed FeedKey, pageCount, pageSize int) (*types.FeedResponse, error) {
	path, username, err := f.route(feed)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(types.FeedRequest{PageCount: pageCount, PageSize: pageSize, Username: username})
	if err != nil {
		return nil, fmt.Errorf("encode feed request: %w", err)
	}

	resp, err := f.breaker.Execute(func() (*types.FeedResponse, error) {
		return f.post(ctx, path, body)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return resp, err
}

func (f *HTTPFetcher) route(feed FeedKey) (path, username string, err error) {
	if err := feed.Validate(); err != nil {
		return "", "", err
	}
	switch feed.Kind {
	case KindPublic:
		return "/api/v1/feeds/public", "", nil
	case KindPopular:
		return "/api/v1/feeds/popular", "", nil
	case KindRecommended:
		return "/api/v1/feeds/recommended", feed.Subject, nil
	case KindUser:
		return "/api/v1/feeds/users/" + url.PathEscape(feed.Subject), "", nil
	default:
		return "/api/v1/feeds/books/" + feed.Subject, f.username, nil
	}
}

func (f *HTTPFetcher) post(ctx context.Context, path string, body []byte) (*types.FeedResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.base+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(res.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTransient, err)
	}

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, errorMessage(payload, res.Status))
	case res.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: %s", ErrTransient, errorMessage(payload, res.Status))
	case res.StatusCode >= 400 && res.StatusCode < 500:
		return nil, fmt.Errorf("%w: %s", ErrRejected, errorMessage(payload, res.Status))
	case res.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: %s", ErrTransient, errorMessage(payload, res.Status))
	}

	var out types.FeedResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrTransient, err)
	}
	if out.Recipes == nil {
		out.Recipes = []types.Recipe{}
	}
	return &out, nil
}

func errorMessage(payload []byte, status string) string {
	var e types.ErrorResponse
	if json.Unmarshal(payload, &e) == nil && e.Error != "" {
		return status + ": " + e.Error
	}
	return status
}
