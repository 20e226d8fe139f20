// Package joke fetches jokes from a plain-text HTTP source.
package joke

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	maxJokeBytes = 8 << 10
	userAgent    = "roomrelay (https://github.com/vovakirdan/roomrelay)"
)

// ErrFetch matches every failure returned by Client.Fetch.
var ErrFetch = errors.New("joke fetch failed")

// Client requests one joke per call with a GET and Accept: text/plain.
type Client struct {
	url     string
	timeout time.Duration
	http    *http.Client
}

// NewClient builds a client for url. A zero timeout leaves the deadline to
// the caller's context; a nil httpClient uses http.DefaultClient.
func NewClient(url string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{url: url, timeout: timeout, http: httpClient}
}

// Fetch returns the response body as the joke. Network errors, non-2xx
// statuses and timeouts are wrapped in ErrFetch. An empty body is a valid joke.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: timed out", ErrFetch)
		}
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxJokeBytes))
		return "", fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxJokeBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrFetch, err)
	}
	return strings.TrimSpace(string(body)), nil
}
