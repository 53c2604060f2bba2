package mock

import "github.com/fwojciec/mapsrc"

var _ mapsrc.RouteResolver = (*RouteResolver)(nil)

// RouteResolver is a mock implementation of mapsrc.RouteResolver.
type RouteResolver struct {
	ItemRouteFn     func(id int, alias string, categoryID int) (string, error)
	CategoryRouteFn func(categoryID int) (string, error)
}

func (r *RouteResolver) ItemRoute(id int, alias string, categoryID int) (string, error) {
	return r.ItemRouteFn(id, alias, categoryID)
}

func (r *RouteResolver) CategoryRoute(categoryID int) (string, error) {
	return r.CategoryRouteFn(categoryID)
}
