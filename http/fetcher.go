// Package http provides an HTTP-based implementation of linkpost.Fetcher
// that impersonates a desktop browser.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/linkpost"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultMaxRedirects caps redirect following.
const DefaultMaxRedirects = 10

// Ensure Fetcher implements linkpost.Fetcher at compile time.
var _ linkpost.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests with
// browser-like headers. It does not execute JavaScript; pages that answer
// with an anti-bot challenge can be handed to a challenge fetcher that does.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxRedirects int
	userAgent    func() string
	challenge    linkpost.Fetcher
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxRedirects sets how many redirects are followed.
// Defaults to DefaultMaxRedirects if not specified.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		f.maxRedirects = n
	}
}

// WithUserAgent sets the function that picks the User-Agent for each
// request. Defaults to linkpost.RandomUserAgent.
func WithUserAgent(fn func() string) Option {
	return func(f *Fetcher) {
		f.userAgent = fn
	}
}

// WithChallengeFetcher sets the fetcher used when a page answers with an
// anti-bot JavaScript challenge. Without one, challenge pages are errors.
func WithChallengeFetcher(next linkpost.Fetcher) Option {
	return func(f *Fetcher) {
		f.challenge = next
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		maxRedirects: DefaultMaxRedirects,
		userAgent:    linkpost.RandomUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= f.maxRedirects {
				return fmt.Errorf("stopped after %d redirects", f.maxRedirects)
			}
			return nil
		},
	}

	return f
}

// Fetch retrieves the HTML content from the given URL, decoded to UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	target, err := linkpost.ParseArticleURL(rawURL)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header = BrowserHeaders(target, f.userAgent())

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := decodeBody(resp)
	if err != nil {
		return "", err
	}

	if isChallengeStatus(resp.StatusCode) && linkpost.IsChallengePage(body) {
		if f.challenge == nil {
			return "", fmt.Errorf("HTTP %d anti-bot challenge for %s", resp.StatusCode, rawURL)
		}
		return f.challenge.Fetch(ctx, rawURL)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	return body, nil
}

// Close releases idle connections. The challenge fetcher is owned by the
// caller and is not closed.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// BrowserHeaders returns the request headers of a desktop Chrome navigation
// to target, with the site's origin as Referer.
// Accept-Encoding is left to the transport so it can decompress gzip.
func BrowserHeaders(target *url.URL, userAgent string) http.Header {
	h := make(http.Header)
	h.Set("User-Agent", userAgent)
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("Cache-Control", "no-cache")
	h.Set("Pragma", "no-cache")
	h.Set("Sec-Ch-Ua", `"Not_A Brand";v="8", "Chromium";v="120", "Google Chrome";v="120"`)
	h.Set("Sec-Ch-Ua-Mobile", "?0")
	h.Set("Sec-Ch-Ua-Platform", `"Windows"`)
	h.Set("Sec-Fetch-Dest", "document")
	h.Set("Sec-Fetch-Mode", "navigate")
	h.Set("Sec-Fetch-Site", "none")
	h.Set("Sec-Fetch-User", "?1")
	h.Set("Upgrade-Insecure-Requests", "1")
	h.Set("Referer", Origin(target)+"/")
	return h
}

// Origin returns the scheme and host of u.
func Origin(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}

// decodeBody reads the response body and converts it to UTF-8 using the
// declared charset, falling back to <meta> tags and content sniffing.
func decodeBody(resp *http.Response) (string, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", nil
	}

	r, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decoding body: %w", err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("decoding body: %w", err)
	}
	return string(body), nil
}

func isChallengeStatus(code int) bool {
	return code == http.StatusForbidden ||
		code == http.StatusTooManyRequests ||
		code == http.StatusServiceUnavailable
}
