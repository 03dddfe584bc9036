// Package pipeline wires fetchers, extractors and generators into the
// services behind the linkpost surfaces.
package pipeline

import (
	"context"

	"github.com/fwojciec/linkpost"
)

// Ensure ArticleService implements linkpost.ArticleService at compile time.
var _ linkpost.ArticleService = (*ArticleService)(nil)

// ArticleService fetches a page, extracts its content and bounds the text.
// Every failure is reported as ECONTENT.
type ArticleService struct {
	Fetcher   linkpost.Fetcher
	Extractor linkpost.Extractor
}

// NewArticleService creates a new ArticleService.
func NewArticleService(fetcher linkpost.Fetcher, extractor linkpost.Extractor) *ArticleService {
	return &ArticleService{Fetcher: fetcher, Extractor: extractor}
}

// FetchArticle retrieves the page at url and returns its excerpt.
func (s *ArticleService) FetchArticle(ctx context.Context, url string) (*linkpost.Article, error) {
	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, contentError(err)
	}

	result, err := s.Extractor.Extract(html)
	if err != nil {
		return nil, contentError(err)
	}

	text, err := linkpost.Excerpt(result.Text)
	if err != nil {
		return nil, err
	}

	return &linkpost.Article{
		URL:      url,
		Title:    result.Title,
		Text:     text,
		Strategy: result.Strategy,
	}, nil
}

// contentError converts err to ECONTENT, keeping the most useful message.
func contentError(err error) error {
	if linkpost.ErrorCode(err) == linkpost.ECONTENT {
		return err
	}
	if linkpost.ErrorCode(err) == linkpost.EINTERNAL {
		return linkpost.Errorf(linkpost.ECONTENT, "%s", err.Error())
	}
	return linkpost.Errorf(linkpost.ECONTENT, "%s", linkpost.ErrorMessage(err))
}
