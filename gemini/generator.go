// Package gemini implements linkpost.Generator on Google Gemini.
package gemini

import (
	"context"
	"os"

	"github.com/fwojciec/linkpost"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// APIKeyEnv is the environment variable holding the API key.
const APIKeyEnv = "GEMINI_API_KEY"

// Ensure Generator implements linkpost.Generator at compile time.
var _ linkpost.Generator = (*Generator)(nil)

// Generator writes posts with Google Gemini.
// The API key is read and a client is created on every call.
type Generator struct {
	model  string
	apiKey func() string
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel sets the Gemini model. Defaults to DefaultModel.
func WithModel(model string) Option {
	return func(g *Generator) {
		g.model = model
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

// Generate renders the post prompt and returns Gemini's response text.
func (g *Generator) Generate(ctx context.Context, article, url string) (string, error) {
	key := g.apiKey()
	if key == "" {
		return "", linkpost.Errorf(linkpost.ECONFIG, "Gemini API key not found")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", err
	}

	result, err := client.Models.GenerateContent(ctx, g.model, BuildContents(article, url), BuildConfig())
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", linkpost.Errorf(linkpost.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.7)
	return &genai.GenerateContentConfig{
		Temperature: &temp,
	}
}

// BuildContents returns the request contents: the rendered post prompt as
// a single user turn. Gemini requires at least one content entry, so the
// prompt is not sent as a system instruction.
func BuildContents(article, url string) []*genai.Content {
	return []*genai.Content{
		genai.NewContentFromText(linkpost.RenderPrompt(article, url), genai.RoleUser),
	}
}
