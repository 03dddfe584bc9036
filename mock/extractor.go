package mock

import "github.com/fwojciec/linkpost"

var _ linkpost.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of linkpost.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*linkpost.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*linkpost.ExtractResult, error) {
	return e.ExtractFn(html)
}
