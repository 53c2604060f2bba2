// Package route resolves canonical URL paths for content items and categories.
package route

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/fwojciec/mapsrc"
)

// Ensure Resolver implements mapsrc.RouteResolver.
var _ mapsrc.RouteResolver = (*Resolver)(nil)

// Resolver builds search-engine friendly paths.
//
// Categories with a menu entry are routed under the menu path; all others
// fall back to /category/{id}. Items are routed below their category as
// {id}-{alias}.
type Resolver struct {
	menu map[int]string
}

// NewResolver creates a Resolver with the given category menu paths.
// A nil menu routes every category to its fallback path.
func NewResolver(menu map[int]string) *Resolver {
	m := make(map[int]string, len(menu))
	for id, p := range menu {
		p = strings.Trim(p, "/")
		if p != "" {
			m[id] = p
		}
	}
	return &Resolver{menu: m}
}

// ItemRoute returns the path of an item inside its category.
func (r *Resolver) ItemRoute(id int, alias string, categoryID int) (string, error) {
	if id <= 0 {
		return "", mapsrc.Errorf(mapsrc.EROUTE, "invalid item id %d", id)
	}
	catPath, err := r.CategoryRoute(categoryID)
	if err != nil {
		return "", err
	}

	slug := strconv.Itoa(id)
	if alias != "" {
		slug += "-" + url.PathEscape(alias)
	}
	return catPath + "/" + slug, nil
}

// CategoryRoute returns the path of a category.
func (r *Resolver) CategoryRoute(categoryID int) (string, error) {
	if categoryID <= 0 {
		return "", mapsrc.Errorf(mapsrc.EROUTE, "invalid category id %d", categoryID)
	}
	if p, ok := r.menu[categoryID]; ok {
		return "/" + p, nil
	}
	return "/category/" + strconv.Itoa(categoryID), nil
}

// ParseMenu parses "id=path" pairs into a menu map.
func ParseMenu(pairs []string) (map[int]string, error) {
	menu := make(map[int]string, len(pairs))
	for _, pair := range pairs {
		idStr, p, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, mapsrc.Errorf(mapsrc.EINVALID, "menu entry %q must be id=path", pair)
		}
		id, err := strconv.Atoi(strings.TrimSpace(idStr))
		if err != nil || id <= 0 {
			return nil, mapsrc.Errorf(mapsrc.EINVALID, "menu entry %q has invalid category id", pair)
		}
		menu[id] = strings.TrimSpace(p)
	}
	return menu, nil
}
