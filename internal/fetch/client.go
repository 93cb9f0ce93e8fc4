// Package fetch acquires trend items from the public surfaces of each
// platform: reddit .json endpoints, the Hacker News Firebase API, YouTube
// Atom feeds plus Invidious, the Google Trends daily RSS feed and Nitter
// search pages. Everything is keyless and best-effort.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/internalerr"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36"
	acceptLanguage = "en-US,en;q=0.9"

	maxAttempts    = 3
	errorRetryWait = time.Second
)

// Client is a shared HTTP client with browser-ish headers and a small
// retry loop. 429 responses back off exponentially; transport errors
// retry after a fixed pause.
type Client struct {
	http *http.Client

	// sleep is swappable so tests don't wait out backoffs.
	sleep func(time.Duration)
}

// NewClient builds a Client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		http:  &http.Client{Timeout: timeout},
		sleep: time.Sleep,
	}
}

// Get fetches url and returns the response body. It retries up to three
// times, waiting 2^(attempt+1) seconds after a 429.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept-Language", acceptLanguage)

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if attempt < maxAttempts-1 {
				c.sleep(errorRetryWait)
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				return nil, fmt.Errorf("read body: %w", readErr)
			}
			return body, nil
		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("http 429")
			c.sleep(time.Duration(1<<(attempt+1)) * time.Second)
		default:
			return nil, fmt.Errorf("%w: %s returned http %d",
				internalerr.ErrSourceFailed, url, resp.StatusCode)
		}
	}
	return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrSourceFailed, url, lastErr)
}

// GetJSON fetches url and decodes the body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
