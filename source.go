package mapsrc

import "context"

// ContentStore is a queryable store of content items and categories.
type ContentStore interface {
	// Available returns EUNAVAILABLE if the content type is not installed.
	Available(ctx context.Context) error

	// QueryItems returns published items matching the query, ordered by
	// category title then item title.
	QueryItems(ctx context.Context, q ItemQuery) ([]*Item, error)

	// QueryCategories returns the distinct published categories matching
	// the query, ordered by tree position.
	QueryCategories(ctx context.Context, q CategoryQuery) ([]*Category, error)

	// QueryCategoryParents returns a child id to parent id mapping for the
	// categories matching the query.
	QueryCategoryParents(ctx context.Context, q CategoryQuery) (map[int]int, error)
}

// RouteResolver maps items and categories to canonical URL paths.
type RouteResolver interface {
	// ItemRoute returns the path of an item. Returns EROUTE if no route exists.
	ItemRoute(id int, alias string, categoryID int) (string, error)

	// CategoryRoute returns the path of a category. Returns EROUTE if no
	// route exists.
	CategoryRoute(categoryID int) (string, error)
}

// Source produces sitemap-eligible content from one content domain.
type Source interface {
	// Fetch queries the source within scope.
	//
	// When page is bounded, Fetch retrieves a single chunk and sets
	// page.AffectedRows. A nil page fetches everything.
	//
	// Returns EUNAVAILABLE when the backing content type is missing,
	// EUNAUTHORIZED when scope has no access context, and EQUERY when the
	// store fails.
	Fetch(ctx context.Context, scope Scope, page *Pagination) (*Result, error)
}
