// Package net fetches page resources over HTTP. The rendering pipeline
// itself never touches the network; callers fetch first and hand the
// bytes in.
package net

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const userAgent = "finch/1.0 (compatible; Go)"

// DefaultTimeout bounds a single fetch including body read.
const DefaultTimeout = 30 * time.Second

// Client wraps an HTTP client with the fetch policy pages need: a
// User-Agent, a timeout, and no retries. Any non-2xx status is an error;
// a failed page load is surfaced to the user, not papered over.
type Client struct {
	http *http.Client
	log  *zap.Logger
}

// NewClient creates a fetch client. A nil logger disables logging.
func NewClient(timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// Fetch retrieves the content at the given URL via HTTP/HTTPS. It
// returns the response body, the Content-Type header, and any transport
// or status error.
func (c *Client) Fetch(rawURL string) (body []byte, contentType string, err error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("fetch failed", zap.String("url", rawURL), zap.Error(err))
		return nil, "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("fetch rejected",
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode))
		return nil, "", fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, rawURL)
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading response body: %w", err)
	}

	c.log.Debug("fetched",
		zap.String("url", rawURL),
		zap.Int("bytes", len(body)),
		zap.String("content_type", resp.Header.Get("Content-Type")),
		zap.Duration("elapsed", time.Since(start)))
	return body, resp.Header.Get("Content-Type"), nil
}

// ResolveURL resolves a possibly-relative URI against a base URL. If
// either side fails to parse, ref is returned unchanged.
func ResolveURL(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// IsNetworkURL reports whether the string looks like an HTTP or HTTPS
// URL rather than a local path.
func IsNetworkURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
