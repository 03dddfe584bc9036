package mock

import (
	"context"

	"github.com/fwojciec/linkpost"
)

var _ linkpost.Generator = (*Generator)(nil)

// Generator is a mock implementation of linkpost.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, article, url string) (string, error)
}

func (g *Generator) Generate(ctx context.Context, article, url string) (string, error) {
	return g.GenerateFn(ctx, article, url)
}
