package slog

import (
	"log/slog"

	"github.com/fwojciec/mapsrc"
)

// Ensure LoggingRouteResolver implements mapsrc.RouteResolver.
var _ mapsrc.RouteResolver = (*LoggingRouteResolver)(nil)

// LoggingRouteResolver wraps a RouteResolver and logs failed lookups at
// debug level.
type LoggingRouteResolver struct {
	next   mapsrc.RouteResolver
	logger *slog.Logger
}

// NewLoggingRouteResolver creates a new LoggingRouteResolver.
func NewLoggingRouteResolver(next mapsrc.RouteResolver, logger *slog.Logger) *LoggingRouteResolver {
	return &LoggingRouteResolver{next: next, logger: logger}
}

// ItemRoute delegates to the wrapped resolver.
func (r *LoggingRouteResolver) ItemRoute(id int, alias string, categoryID int) (string, error) {
	link, err := r.next.ItemRoute(id, alias, categoryID)
	if err != nil {
		r.logger.Debug("item route failed",
			"id", id,
			"category", categoryID,
			"err", err,
		)
	}
	return link, err
}

// CategoryRoute delegates to the wrapped resolver.
func (r *LoggingRouteResolver) CategoryRoute(categoryID int) (string, error) {
	link, err := r.next.CategoryRoute(categoryID)
	if err != nil {
		r.logger.Debug("category route failed",
			"category", categoryID,
			"err", err,
		)
	}
	return link, err
}
