package pipeline

import (
	"context"

	"github.com/fwojciec/linkpost"
)

// Ensure PostService implements linkpost.PostService at compile time.
var _ linkpost.PostService = (*PostService)(nil)

// PostService turns a request into a generated post.
type PostService struct {
	Articles  linkpost.ArticleService
	Generator linkpost.Generator
}

// NewPostService creates a new PostService.
func NewPostService(articles linkpost.ArticleService, generator linkpost.Generator) *PostService {
	return &PostService{Articles: articles, Generator: generator}
}

// CreatePost fetches the article when the request has a URL, otherwise it
// uses the request message, and generates a post from the text.
// A failed fetch stops the request before the generator is called.
func (s *PostService) CreatePost(ctx context.Context, req *linkpost.Request) (*linkpost.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	article := req.Message
	if req.URL != "" {
		a, err := s.Articles.FetchArticle(ctx, req.URL)
		if err != nil {
			return nil, err
		}
		article = a.Text
	}

	text, err := s.Generator.Generate(ctx, article, req.URL)
	if err != nil {
		return nil, err
	}

	return &linkpost.Post{Text: text}, nil
}
