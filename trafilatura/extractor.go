// Package trafilatura implements linkpost.Extractor with go-trafilatura.
package trafilatura

import (
	"errors"
	"strings"

	"github.com/fwojciec/linkpost"
	"github.com/markusmobius/go-trafilatura"
)

// Strategy is reported in ExtractResult.Strategy.
const Strategy = "trafilatura"

// Ensure Extractor implements linkpost.Extractor at compile time.
var _ linkpost.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the text of the main content.
func (e *Extractor) Extract(rawHTML string) (*linkpost.ExtractResult, error) {
	if rawHTML == "" {
		return nil, errors.New("empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	return &linkpost.ExtractResult{
		Title:    result.Metadata.Title,
		Text:     result.ContentText,
		Strategy: Strategy,
	}, nil
}
