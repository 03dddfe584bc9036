package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/linkpost"
)

// Ensure LoggingExtractor implements linkpost.Extractor.
var _ linkpost.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and logs which strategy matched.
type LoggingExtractor struct {
	next   linkpost.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next linkpost.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor.
func (e *LoggingExtractor) Extract(html string) (result *linkpost.ExtractResult, err error) {
	defer func(begin time.Time) {
		var strategy string
		var chars int
		if result != nil {
			strategy = result.Strategy
			chars = len([]rune(result.Text))
		}
		e.logger.Info("extract",
			"strategy", strategy,
			"chars", chars,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
