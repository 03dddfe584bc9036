// Package rod provides a headless Chrome implementation of linkpost.Fetcher
// that runs JavaScript, which lets it get past anti-bot challenge pages.
package rod

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/linkpost"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Defaults for NewFetcher.
const (
	DefaultFetchTimeout  = 30 * time.Second
	DefaultChallengeWait = 10 * time.Second
	DefaultMaxPages      = 75
)

// pollInterval is how often a page is re-read while a challenge runs.
const pollInterval = 250 * time.Millisecond

// Ensure Fetcher implements linkpost.Fetcher at compile time.
var _ linkpost.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// When a page is an anti-bot challenge it waits for the challenge script to
// finish and return the real page.
//
// Chrome's memory use grows with every page, so the browser is relaunched
// after maxPages pages. Fetcher is safe for concurrent use.
type Fetcher struct {
	timeout       time.Duration
	challengeWait time.Duration
	maxPages      int
	userAgent     func() string

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	closed   atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each Fetch call, including challenge waits.
// Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithChallengeWait sets how long a challenge page may take to clear.
// Defaults to DefaultChallengeWait.
func WithChallengeWait(d time.Duration) Option {
	return func(f *Fetcher) {
		f.challengeWait = d
	}
}

// WithMaxPages sets how many pages are loaded before the browser is
// relaunched. Defaults to DefaultMaxPages.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// WithUserAgent sets the function that picks the browser user agent.
// Defaults to linkpost.RandomUserAgent.
func WithUserAgent(fn func() string) Option {
	return func(f *Fetcher) {
		f.userAgent = fn
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:       DefaultFetchTimeout,
		challengeWait: DefaultChallengeWait,
		maxPages:      DefaultMaxPages,
		userAgent:     linkpost.RandomUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	if err := f.launch(); err != nil {
		return nil, err
	}
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML once any
// challenge page has cleared.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f.closed.Load() {
		return "", linkpost.Errorf(linkpost.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target, err := linkpost.ParseArticleURL(rawURL)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	browser, err := f.acquire()
	if err != nil {
		return "", err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      f.userAgent(),
		AcceptLanguage: "en-US,en;q=0.9",
	}); err != nil {
		return "", err
	}
	if _, err := page.SetExtraHeaders([]string{"Referer", origin(target) + "/"}); err != nil {
		return "", err
	}

	if err := page.Navigate(target.String()); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	return f.waitForContent(ctx, page)
}

// waitForContent polls the page until it is no longer a challenge page.
// Challenges that reload the page can make HTML fail mid-navigation; those
// errors only count once the wait is over.
func (f *Fetcher) waitForContent(ctx context.Context, page *rod.Page) (string, error) {
	deadline := time.Now().Add(f.challengeWait)
	for {
		html, err := page.HTML()
		if err == nil && !linkpost.IsChallengePage(html) {
			return html, nil
		}
		if time.Now().After(deadline) {
			if err != nil {
				return "", err
			}
			return "", fmt.Errorf("anti-bot challenge did not clear within %s", f.challengeWait)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.shutdown()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.launcher == nil {
		return 0
	}
	return f.launcher.PID()
}

// acquire returns the browser for the next page, relaunching it first when
// it has served maxPages pages. A failed relaunch keeps the old browser.
func (f *Fetcher) acquire() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser == nil {
		return nil, linkpost.Errorf(linkpost.EINVALID, "fetcher is closed")
	}

	if f.pages >= f.maxPages {
		oldBrowser, oldLauncher := f.browser, f.launcher
		if err := f.launch(); err != nil {
			f.browser, f.launcher = oldBrowser, oldLauncher
		} else {
			_ = oldBrowser.Close()
			oldLauncher.Kill()
			f.pages = 0
		}
	}

	f.pages++
	return f.browser, nil
}

// launch starts a new browser instance with stability flags.
func (f *Fetcher) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-blink-features", "AutomationControlled").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return nil
}

// shutdown closes the browser and kills the launcher.
// Must be called with mu held.
func (f *Fetcher) shutdown() error {
	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}

func origin(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}
