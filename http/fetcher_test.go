package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/fwojciec/linkpost"
	lphttp "github.com/fwojciec/linkpost/http"
	"github.com/fwojciec/linkpost/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const challengeHTML = `<!DOCTYPE html><html><head><title>Just a moment...</title></head>
<body><script src="/cdn-cgi/challenge-platform/h/b/orchestrate/jsch/v1"></script></body></html>`

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := lphttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
	})

	t.Run("sends browser headers with origin referer", func(t *testing.T) {
		t.Parallel()

		var got http.Header
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := lphttp.NewFetcher(lphttp.WithUserAgent(func() string { return "TestBrowser/1.0" }))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL+"/blog/post?id=1")
		require.NoError(t, err)
		assert.Equal(t, "TestBrowser/1.0", got.Get("User-Agent"))
		assert.Equal(t, server.URL+"/", got.Get("Referer"))
		assert.Contains(t, got.Get("Accept"), "text/html")
		assert.Equal(t, "navigate", got.Get("Sec-Fetch-Mode"))
		assert.Equal(t, "no-cache", got.Get("Cache-Control"))
	})

	t.Run("uses random user agent by default", func(t *testing.T) {
		t.Parallel()

		var ua string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := lphttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Contains(t, linkpost.UserAgents, ua)
	})

	t.Run("decodes declared charset", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			_, _ = w.Write([]byte("<p>caf\xe9</p>"))
		}))
		defer server.Close()

		fetcher := lphttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<p>café</p>", html)
	})

	t.Run("detects charset from meta tag", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><head><meta charset=\"windows-1252\"></head><body>na\xefve</body></html>"))
		}))
		defer server.Close()

		fetcher := lphttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Contains(t, html, "naïve")
	})

	t.Run("follows redirects", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
		})
		mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("moved here"))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		fetcher := lphttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL+"/old")
		require.NoError(t, err)
		assert.Equal(t, "moved here", html)
	})

	t.Run("stops redirect loops", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, r.URL.Path, http.StatusFound)
		}))
		defer server.Close()

		fetcher := lphttp.NewFetcher(lphttp.WithMaxRedirects(3))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL+"/loop")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stopped after 3 redirects")
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := lphttp.NewFetcher(lphttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := lphttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("rejects non-HTTP URLs", func(t *testing.T) {
		t.Parallel()

		fetcher := lphttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "ftp://example.com/file")
		require.Error(t, err)
		assert.Equal(t, linkpost.EINVALID, linkpost.ErrorCode(err))
	})

	t.Run("returns error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := lphttp.NewFetcher(lphttp.WithTimeout(100 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
	})

	t.Run("returns error for non-2xx status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		fetcher := lphttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("returns error for empty error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		fetcher := lphttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("returns error for challenge page without challenge fetcher", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(challengeHTML))
		}))
		defer server.Close()

		fetcher := lphttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "anti-bot challenge")
	})

	t.Run("hands challenge pages to challenge fetcher", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(challengeHTML))
		}))
		defer server.Close()

		var calledWith string
		browser := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				calledWith = url
				return "<html>solved</html>", nil
			},
		}

		fetcher := lphttp.NewFetcher(lphttp.WithChallengeFetcher(browser))
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html>solved</html>", html)
		assert.Equal(t, server.URL, calledWith)
	})

	t.Run("does not use challenge fetcher for plain errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("<html>Access denied</html>"))
		}))
		defer server.Close()

		browser := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				t.Error("challenge fetcher should not be called")
				return "", nil
			},
		}

		fetcher := lphttp.NewFetcher(lphttp.WithChallengeFetcher(browser))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})
}

func TestBrowserHeaders(t *testing.T) {
	t.Parallel()

	target, err := url.Parse("https://blog.example.com/posts/42?ref=home")
	require.NoError(t, err)

	h := lphttp.BrowserHeaders(target, "Agent/2.0")

	assert.Equal(t, "Agent/2.0", h.Get("User-Agent"))
	assert.Equal(t, "https://blog.example.com/", h.Get("Referer"))
	assert.Equal(t, "1", h.Get("Upgrade-Insecure-Requests"))
	assert.Empty(t, h.Get("Accept-Encoding"))
}

// Compile-time verification that Fetcher implements linkpost.Fetcher
var _ linkpost.Fetcher = (*lphttp.Fetcher)(nil)
