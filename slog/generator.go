package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/linkpost"
)

// Ensure LoggingGenerator implements linkpost.Generator.
var _ linkpost.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging.
// Article and post text are never logged, only their sizes.
type LoggingGenerator struct {
	next     linkpost.Generator
	provider string
	logger   *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator. The provider name is
// attached to every log line.
func NewLoggingGenerator(next linkpost.Generator, provider string, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, provider: provider, logger: logger}
}

// Generate delegates to the wrapped generator.
func (g *LoggingGenerator) Generate(ctx context.Context, article, url string) (post string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"provider", g.provider,
			"url", url,
			"article_chars", len([]rune(article)),
			"post_chars", len([]rune(post)),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, article, url)
}
