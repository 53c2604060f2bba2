package mock

import (
	"context"

	"github.com/fwojciec/mapsrc"
)

var _ mapsrc.Source = (*Source)(nil)

// Source is a mock implementation of mapsrc.Source.
type Source struct {
	FetchFn func(ctx context.Context, scope mapsrc.Scope, page *mapsrc.Pagination) (*mapsrc.Result, error)
}

func (s *Source) Fetch(ctx context.Context, scope mapsrc.Scope, page *mapsrc.Pagination) (*mapsrc.Result, error) {
	return s.FetchFn(ctx, scope, page)
}
