package mock

import (
	"context"

	"github.com/fwojciec/mapsrc"
)

var _ mapsrc.ContentStore = (*ContentStore)(nil)

// ContentStore is a mock implementation of mapsrc.ContentStore.
type ContentStore struct {
	AvailableFn            func(ctx context.Context) error
	QueryItemsFn           func(ctx context.Context, q mapsrc.ItemQuery) ([]*mapsrc.Item, error)
	QueryCategoriesFn      func(ctx context.Context, q mapsrc.CategoryQuery) ([]*mapsrc.Category, error)
	QueryCategoryParentsFn func(ctx context.Context, q mapsrc.CategoryQuery) (map[int]int, error)
}

func (s *ContentStore) Available(ctx context.Context) error {
	return s.AvailableFn(ctx)
}

func (s *ContentStore) QueryItems(ctx context.Context, q mapsrc.ItemQuery) ([]*mapsrc.Item, error) {
	return s.QueryItemsFn(ctx, q)
}

func (s *ContentStore) QueryCategories(ctx context.Context, q mapsrc.CategoryQuery) ([]*mapsrc.Category, error) {
	return s.QueryCategoriesFn(ctx, q)
}

func (s *ContentStore) QueryCategoryParents(ctx context.Context, q mapsrc.CategoryQuery) (map[int]int, error) {
	return s.QueryCategoryParentsFn(ctx, q)
}
