package mock

import (
	"context"

	"github.com/fwojciec/linkpost"
)

var _ linkpost.PostService = (*PostService)(nil)

// PostService is a mock implementation of linkpost.PostService.
type PostService struct {
	CreatePostFn func(ctx context.Context, req *linkpost.Request) (*linkpost.Post, error)
}

func (s *PostService) CreatePost(ctx context.Context, req *linkpost.Request) (*linkpost.Post, error) {
	return s.CreatePostFn(ctx, req)
}
