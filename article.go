package linkpost

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Excerpt limits.
const (
	MaxExcerptLength = 4000
	MinExcerptLength = 100
)

// Article is the readable text extracted from a web page.
type Article struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Strategy string `json:"strategy"`
}

// ArticleService fetches pages and extracts their readable text.
type ArticleService interface {
	// FetchArticle retrieves the page at url and returns its excerpt.
	// Returns ECONTENT if the page cannot be retrieved or holds no
	// meaningful text.
	FetchArticle(ctx context.Context, url string) (*Article, error)
}

// ContentSuggestions lists sites known to extract well. It is shown to
// users whenever content extraction fails.
var ContentSuggestions = []string{
	"Medium.com articles",
	"Dev.to blog posts",
	"GitHub blog posts",
	"HackerNews posts",
	"Reddit r/technology posts",
}

// ContentErrorDetail renders an ECONTENT error for display, followed by the
// numbered list of ContentSuggestions.
func ContentErrorDetail(err error) string {
	var sb strings.Builder
	sb.WriteString("Error processing URL: ")
	sb.WriteString(ErrorMessage(err))
	sb.WriteString(". Try these sites instead:")
	for i, s := range ContentSuggestions {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, s)
	}
	return sb.String()
}

// ErrorDetail renders err for display to users. Content failures carry the
// list of suggested sites. Errors that are not application errors are shown
// as-is.
func ErrorDetail(err error) string {
	var e *Error
	switch {
	case ErrorCode(err) == ECONTENT:
		return ContentErrorDetail(err)
	case errors.As(err, &e):
		return e.Message
	default:
		return err.Error()
	}
}

// ParseArticleURL parses raw as an absolute http or https URL.
func ParseArticleURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, Errorf(EINVALID, "invalid URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, Errorf(EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, Errorf(EINVALID, "URL %q has no host", raw)
	}
	return u, nil
}

// Excerpt collapses whitespace in text and bounds it to MaxExcerptLength
// characters, cutting after the last full stop inside the limit when there
// is one. Returns ECONTENT if fewer than MinExcerptLength characters remain.
func Excerpt(text string) (string, error) {
	text = strings.Join(strings.Fields(text), " ")

	if utf8.RuneCountInString(text) > MaxExcerptLength {
		runes := []rune(text)[:MaxExcerptLength]
		cut := string(runes)
		if i := strings.LastIndex(cut, "."); i > 0 {
			cut = cut[:i+1]
		}
		text = cut
	}

	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinExcerptLength {
		return "", Errorf(ECONTENT, "No meaningful content found on the page")
	}
	return text, nil
}
