package linkpost

import "context"

// Generator produces a social media post about an article.
type Generator interface {
	// Generate renders the post prompt for article and url and returns the
	// model's completion unmodified.
	// Returns ECONFIG if no API credential is configured.
	Generate(ctx context.Context, article, url string) (string, error)
}

// PostService runs the fetch-then-generate pipeline for a request.
type PostService interface {
	// CreatePost fetches the request URL if present, otherwise uses its
	// message, and generates a post from the resulting text.
	CreatePost(ctx context.Context, req *Request) (*Post, error)
}
