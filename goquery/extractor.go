// Package goquery implements the content extraction cascade on top of
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/linkpost"
	"golang.org/x/net/html"
)

// Ensure Extractor implements linkpost.Extractor at compile time.
var _ linkpost.Extractor = (*Extractor)(nil)

// Text length thresholds, in characters.
const (
	// MinDivTextLength is the stripped text a div needs before the
	// largest-div strategy considers it.
	MinDivTextLength = 200

	// MinFragmentLength is the length a heading, paragraph or list item
	// must exceed to be kept.
	MinFragmentLength = 20
)

// FallbackStrategy names the whole-document paragraph scan used when no
// strategy finds a container.
const FallbackStrategy = "paragraphs"

// noiseElements never hold article text and are removed before searching.
const noiseElements = "script, style, meta, link, noscript, header, footer, nav, aside, iframe"

// textElements are collected from the content container, in document order.
const textElements = "p, h1, h2, h3, h4, h5, h6, li"

// ContentSelectors are common CMS content container selectors, most
// specific first. Each is tried on div elements, then article elements.
var ContentSelectors = []string{
	".article-content",
	".article__content",
	".post-content",
	".entry-content",
	".content",
	".main-content",
	".post__content",
	".post-container",
	".article-body",
	".article__body",
	`[data-component-name="ArticleContent"]`,
	"#main-content",
	"#article-content",
	"#post-content",
	`[role="main"]`,
	`[itemprop="articleBody"]`,
}

// Strategy locates a content container in a parsed document.
// Find returns an empty selection when the strategy does not apply.
type Strategy struct {
	Name string
	Find func(doc *goquery.Document) *goquery.Selection
}

// DefaultStrategies returns the extraction cascade: each content selector,
// then the largest article, then main, then the largest text-heavy div.
func DefaultStrategies() []Strategy {
	strategies := make([]Strategy, 0, len(ContentSelectors)+3)
	for _, sel := range ContentSelectors {
		strategies = append(strategies, Strategy{Name: sel, Find: firstOf("div"+sel, "article"+sel)})
	}
	return append(strategies,
		Strategy{Name: "article", Find: largestArticle},
		Strategy{Name: "main", Find: firstOf("main")},
		Strategy{Name: "div", Find: largestDiv},
	)
}

// Extractor finds the main content container of a page by running a
// cascade of strategies and collects the readable text inside it.
type Extractor struct {
	strategies []Strategy
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithStrategies replaces the default cascade.
func WithStrategies(s []Strategy) Option {
	return func(e *Extractor) {
		e.strategies = s
	}
}

// NewExtractor creates a new Extractor using DefaultStrategies.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{strategies: DefaultStrategies()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses rawHTML and returns the text of its content container.
// The first strategy that matches wins. When none match, every paragraph
// in the document is used.
func (e *Extractor) Extract(rawHTML string) (*linkpost.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, linkpost.Errorf(linkpost.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, linkpost.Errorf(linkpost.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find(noiseElements).Remove()

	for _, s := range e.strategies {
		if container := s.Find(doc); container.Length() > 0 {
			return &linkpost.ExtractResult{
				Title:    title,
				Text:     collectText(container.First().Find(textElements)),
				Strategy: s.Name,
			}, nil
		}
	}

	return &linkpost.ExtractResult{
		Title:    title,
		Text:     collectText(doc.Find("p")),
		Strategy: FallbackStrategy,
	}, nil
}

// firstOf returns a strategy that yields the first element matching the
// earliest selector that matches anything.
func firstOf(selectors ...string) func(*goquery.Document) *goquery.Selection {
	return func(doc *goquery.Document) *goquery.Selection {
		for _, s := range selectors {
			if sel := doc.Find(s).First(); sel.Length() > 0 {
				return sel
			}
		}
		return doc.Selection.Slice(0, 0)
	}
}

// largestArticle picks the article with the longest serialized HTML.
func largestArticle(doc *goquery.Document) *goquery.Selection {
	return largest(doc.Find("article"), func(s *goquery.Selection) int {
		h, err := goquery.OuterHtml(s)
		if err != nil {
			return 0
		}
		return utf8.RuneCountInString(h)
	}, 0)
}

// largestDiv picks the div with the most stripped text, among divs with
// more than MinDivTextLength characters of it.
func largestDiv(doc *goquery.Document) *goquery.Selection {
	return largest(doc.Find("div"), func(s *goquery.Selection) int {
		return utf8.RuneCountInString(strippedText(s))
	}, MinDivTextLength)
}

// largest returns the element of sel with the highest size above
// threshold. Ties go to the element that comes first.
func largest(sel *goquery.Selection, size func(*goquery.Selection) int, threshold int) *goquery.Selection {
	best := sel.Slice(0, 0)
	bestSize := threshold
	sel.Each(func(_ int, s *goquery.Selection) {
		if n := size(s); n > bestSize {
			best, bestSize = s, n
		}
	})
	return best
}

// collectText joins the stripped text of each element longer than
// MinFragmentLength with blank lines.
func collectText(sel *goquery.Selection) string {
	var parts []string
	sel.Each(func(_ int, s *goquery.Selection) {
		text := strippedText(s)
		if utf8.RuneCountInString(text) > MinFragmentLength {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n\n")
}

// strippedText concatenates every descendant text node with surrounding
// whitespace trimmed and no separator.
func strippedText(sel *goquery.Selection) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(strings.TrimSpace(n.Data))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return sb.String()
}
