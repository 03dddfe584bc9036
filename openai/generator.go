// Package openai implements linkpost.Generator on the OpenAI chat
// completion API.
package openai

import (
	"context"
	"os"

	"github.com/fwojciec/linkpost"
	"github.com/sashabaranov/go-openai"
)

// Generation defaults.
const (
	DefaultModel       = "gpt-4-1106-preview"
	DefaultTemperature = float32(0.7)
)

// APIKeyEnv is the environment variable holding the API key.
const APIKeyEnv = "OPENAI_API_KEY"

// Ensure Generator implements linkpost.Generator at compile time.
var _ linkpost.Generator = (*Generator)(nil)

// Generator writes posts with an OpenAI chat model.
// The API key is looked up and a client is built on every call, so a key
// added to the environment after startup is picked up.
type Generator struct {
	model   string
	baseURL string
	apiKey  func() string
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel sets the chat model. Defaults to DefaultModel.
func WithModel(model string) Option {
	return func(g *Generator) {
		g.model = model
	}
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(url string) Option {
	return func(g *Generator) {
		g.baseURL = url
	}
}

// WithAPIKeyFunc sets how the API key is looked up.
// Defaults to reading APIKeyEnv.
func WithAPIKeyFunc(fn func() string) Option {
	return func(g *Generator) {
		g.apiKey = fn
	}
}

// NewGenerator creates a new Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		model:  DefaultModel,
		apiKey: func() string { return os.Getenv(APIKeyEnv) },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders the post prompt and returns the model's completion.
// Provider errors are returned as-is.
func (g *Generator) Generate(ctx context.Context, article, url string) (string, error) {
	key := g.apiKey()
	if key == "" {
		return "", linkpost.Errorf(linkpost.ECONFIG, "OpenAI API key not found")
	}

	config := openai.DefaultConfig(key)
	if g.baseURL != "" {
		config.BaseURL = g.baseURL
	}
	client := openai.NewClientWithConfig(config)

	resp, err := client.CreateChatCompletion(ctx, BuildRequest(g.model, article, url))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", linkpost.Errorf(linkpost.EINTERNAL, "openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// BuildRequest returns the chat completion request for an article. The
// rendered prompt is the only message.
func BuildRequest(model, article, url string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: linkpost.RenderPrompt(article, url)},
		},
		Temperature: DefaultTemperature,
	}
}
