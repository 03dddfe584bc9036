// Package readability implements linkpost.Extractor with go-readability's
// port of Mozilla Readability.
package readability

import (
	"strings"

	"github.com/fwojciec/linkpost"
	"github.com/go-shiori/go-readability"
)

// Strategy is reported in ExtractResult.Strategy.
const Strategy = "readability"

// Ensure Extractor implements linkpost.Extractor at compile time.
var _ linkpost.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the text of the main content.
func (e *Extractor) Extract(rawHTML string) (*linkpost.ExtractResult, error) {
	if rawHTML == "" {
		return nil, linkpost.Errorf(linkpost.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &linkpost.ExtractResult{
		Title:    article.Title,
		Text:     article.TextContent,
		Strategy: Strategy,
	}, nil
}
