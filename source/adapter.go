// Package source implements a sitemap content source on top of a
// ContentStore and a RouteResolver.
package source

import (
	"context"
	"time"

	"github.com/fwojciec/mapsrc"
)

// DefaultDomain is the category domain queried when Adapter.Domain is empty.
const DefaultDomain = "content"

// SystemDomain holds categories shared by every content domain, including
// the hierarchy root.
const SystemDomain = "system"

var _ mapsrc.Source = (*Adapter)(nil)

// Adapter produces sitemap content from a ContentStore.
type Adapter struct {
	Store  mapsrc.ContentStore
	Routes mapsrc.RouteResolver

	// Domain is the category domain of the content type.
	Domain string

	// Now returns the current time for publish-down checks.
	// Defaults to time.Now.
	Now func() time.Time
}

// Fetch queries published items and categories within scope, routes them and
// shapes them into a Result.
func (a *Adapter) Fetch(ctx context.Context, scope mapsrc.Scope, page *mapsrc.Pagination) (*mapsrc.Result, error) {
	if err := a.Store.Available(ctx); err != nil {
		if mapsrc.ErrorCode(err) == mapsrc.EUNAVAILABLE {
			return nil, err
		}
		return nil, queryError(err)
	}

	if scope.Access == nil {
		return nil, mapsrc.Errorf(mapsrc.EUNAUTHORIZED, "no access context")
	}

	catScope := mapsrc.CategoryScope{Exclude: scope.ExcludeCategories, IDs: scope.CategoryIDs}
	access := mapsrc.AccessIn{Levels: scope.Access.AuthorizedLevels()}

	q := mapsrc.ItemQuery{
		Clauses: []mapsrc.Clause{
			access,
			catScope,
			mapsrc.LanguageIn{Tag: scope.Access.LanguageTag()},
			mapsrc.NotExpired{At: a.now()},
		},
	}
	if page.Bounded() {
		q.Offset = page.Offset
		q.Limit = page.Limit
	}

	items, err := a.Store.QueryItems(ctx, q)
	if err != nil {
		return nil, queryError(err)
	}

	if page.Bounded() {
		page.AffectedRows = len(items)
	}

	result := &mapsrc.Result{}

	routed := a.routeItems(items)
	if len(routed) > 0 {
		mapsrc.SortItemsByLink(routed)
		result.Items = routed
		result.ItemsByCategory = mapsrc.GroupItemsByCategory(routed)
	}

	cq := mapsrc.CategoryQuery{
		Clauses: []mapsrc.Clause{
			mapsrc.DomainIn{Names: []string{a.domain(), SystemDomain}},
			catScope,
			access,
		},
	}

	categories, err := a.Store.QueryCategories(ctx, cq)
	if err != nil {
		return nil, queryError(err)
	}

	parents, err := a.Store.QueryCategoryParents(ctx, cq)
	if err != nil {
		return nil, queryError(err)
	}

	result.CategoryTree = mapsrc.BuildCategoryTree(a.routeCategories(categories), parents)

	return result, nil
}

// routeItems sets Link on each item and drops the ones without a route.
func (a *Adapter) routeItems(items []*mapsrc.Item) []*mapsrc.Item {
	routed := items[:0]
	for _, item := range items {
		link, err := a.Routes.ItemRoute(item.ID, item.Alias, item.CategoryID)
		if err != nil || link == "" {
			continue
		}
		item.Link = link
		routed = append(routed, item)
	}
	return routed
}

// routeCategories sets Link on each category and drops the ones without a
// route.
func (a *Adapter) routeCategories(categories []*mapsrc.Category) []*mapsrc.Category {
	routed := categories[:0]
	for _, cat := range categories {
		link, err := a.Routes.CategoryRoute(cat.ID)
		if err != nil || link == "" {
			continue
		}
		cat.Link = link
		routed = append(routed, cat)
	}
	return routed
}

func (a *Adapter) domain() string {
	if a.Domain == "" {
		return DefaultDomain
	}
	return a.Domain
}

func (a *Adapter) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// queryError wraps a store failure as EQUERY, keeping the store's message.
func queryError(err error) error {
	if mapsrc.ErrorCode(err) == mapsrc.EQUERY {
		return err
	}
	return mapsrc.Errorf(mapsrc.EQUERY, "retrieving data from content source: %s", err.Error())
}
