package mock

import (
	"context"

	"github.com/fwojciec/linkpost"
)

var _ linkpost.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of linkpost.ArticleService.
type ArticleService struct {
	FetchArticleFn func(ctx context.Context, url string) (*linkpost.Article, error)
}

func (s *ArticleService) FetchArticle(ctx context.Context, url string) (*linkpost.Article, error) {
	return s.FetchArticleFn(ctx, url)
}
