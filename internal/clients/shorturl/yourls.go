// Package shorturl talks to a YOURLS instance and caches its answers.
package shorturl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	"newsletter-server/internal/observability"
)

var (
	ErrShortenFailed = errors.New("failed to shorten url")
	ErrStatsFailed   = errors.New("failed to get click stats")
)

// Shortener maps long URLs to short ones and reports click counts.
type Shortener interface {
	Shorten(ctx context.Context, longURL string) (string, error)
	GetClicks(ctx context.Context, shortURL string) (uint64, error)
}

type shortenResponse struct {
	ShortURL string `json:"shorturl"`
	Status   string `json:"status"`
	Message  string `json:"message"`
	URL      *struct {
		ShortURL string `json:"shorturl"`
	} `json:"url"`
}

type statsResponse struct {
	Link *struct {
		Clicks string `json:"clicks"`
	} `json:"link"`
	Message string `json:"message"`
}

// YourlsClient implements Shortener against the YOURLS HTTP API.
type YourlsClient struct {
	apiURL     string
	signature  string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[string]
	group      singleflight.Group
	logger     *observability.Logger
}

// NewYourlsClient creates a client. After five consecutive failures the
// breaker opens for 30s and calls fail fast.
func NewYourlsClient(apiURL, signature string, logger *observability.Logger) *YourlsClient {
	c := &YourlsClient{
		apiURL:    apiURL,
		signature: signature,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "yourls",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn(observability.WithFields(context.Background(),
				observability.Field{Key: "breaker", Value: name},
				observability.Field{Key: "from", Value: from.String()},
				observability.Field{Key: "to", Value: to.String()},
			), "shortener circuit breaker changed state")
		},
	})
	return c
}

// Shorten asks YOURLS for a short URL. Concurrent calls for the same URL share
// one request.
func (c *YourlsClient) Shorten(ctx context.Context, longURL string) (string, error) {
	v, err, _ := c.group.Do(longURL, func() (interface{}, error) {
		return c.breaker.Execute(func() (string, error) {
			return c.shorten(ctx, longURL)
		})
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *YourlsClient) shorten(ctx context.Context, longURL string) (string, error) {
	form := url.Values{
		"action":    {"shorturl"},
		"url":       {longURL},
		"format":    {"json"},
		"signature": {c.signature},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrShortenFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrShortenFailed, err)
	}
	defer resp.Body.Close()

	var body shortenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrShortenFailed, err)
	}

	switch {
	case body.ShortURL != "":
		return body.ShortURL, nil
	case body.URL != nil && body.URL.ShortURL != "":
		return body.URL.ShortURL, nil
	case body.Message != "":
		return "", fmt.Errorf("%w: %s", ErrShortenFailed, body.Message)
	default:
		return "", fmt.Errorf("%w: no short url returned", ErrShortenFailed)
	}
}

// GetClicks returns the YOURLS click counter for a short URL. A missing or
// unparsable counter reads as zero.
func (c *YourlsClient) GetClicks(ctx context.Context, shortURL string) (uint64, error) {
	q := url.Values{
		"action":    {"url-stats"},
		"shorturl":  {shortURL},
		"format":    {"json"},
		"signature": {c.signature},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStatsFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStatsFailed, err)
	}
	defer resp.Body.Close()

	var body statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStatsFailed, err)
	}

	if body.Link == nil {
		return 0, nil
	}
	clicks, err := strconv.ParseUint(body.Link.Clicks, 10, 64)
	if err != nil {
		return 0, nil
	}
	return clicks, nil
}
