package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mapsrc"
)

// Ensure LoggingSource implements mapsrc.Source.
var _ mapsrc.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source with logging.
type LoggingSource struct {
	next   mapsrc.Source
	name   string
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next mapsrc.Source, name string, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, name: name, logger: logger}
}

// Fetch delegates to the wrapped source and logs the operation.
func (s *LoggingSource) Fetch(ctx context.Context, scope mapsrc.Scope, page *mapsrc.Pagination) (result *mapsrc.Result, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"source", s.name,
			"duration", time.Since(begin),
		}
		if result != nil {
			attrs = append(attrs,
				"items", len(result.Items),
				"categories", countCategories(result.CategoryTree),
			)
		}
		if page.Bounded() {
			attrs = append(attrs,
				"offset", page.Offset,
				"limit", page.Limit,
				"affected", page.AffectedRows,
			)
		}
		if err != nil {
			s.logger.Warn("source fetch", append(attrs, "code", mapsrc.ErrorCode(err), "err", err)...)
			return
		}
		s.logger.Info("source fetch", attrs...)
	}(time.Now())
	return s.next.Fetch(ctx, scope, page)
}

func countCategories(tree mapsrc.CategoryTree) int {
	n := 0
	for _, children := range tree {
		n += len(children)
	}
	return n
}
