package mapsrc

import (
	"sort"
	"time"
)

// RootCategoryID is the id of the category hierarchy root. The root is never
// emitted as a tree node.
const RootCategoryID = 1

// TopLevelKey is the CategoryTree key that holds the direct children of the
// root category.
const TopLevelKey = 0

// Item represents one content record included in the sitemap.
type Item struct {
	ID           int       `json:"id"`
	Alias        string    `json:"alias"`
	Title        string    `json:"title"`
	CategoryID   int       `json:"categoryId"`
	LastModified time.Time `json:"lastModified"`
	PublishUp    time.Time `json:"publishUp"`
	MetaKeywords string    `json:"metaKeywords,omitempty"`
	Access       int       `json:"access"`

	// Link is the routed URL path. It is empty until a RouteResolver runs.
	Link string `json:"link"`
}

// Restricted reports whether the item requires registration to view.
func (i *Item) Restricted() bool {
	return i.Access > 1
}

// Category represents one content grouping node.
type Category struct {
	ID           int        `json:"id"`
	Alias        string     `json:"alias"`
	Title        string     `json:"title"`
	ParentID     int        `json:"parentId"`
	LastModified *time.Time `json:"lastModified,omitempty"`
	Link         string     `json:"link"`
}

// CategoryTree maps a parent category id to its ordered children.
// Children of the root category live under TopLevelKey.
type CategoryTree map[int][]*Category

// ItemsByCategory maps a category id to the ordered items it contains.
type ItemsByCategory map[int][]*Item

// Result is the output of a single Source fetch.
//
// Items is sorted by Link. ItemsByCategory preserves that order within each
// bucket. Items and ItemsByCategory are nil when nothing matched.
type Result struct {
	Items           []*Item         `json:"items,omitempty"`
	ItemsByCategory ItemsByCategory `json:"itemsByCategory,omitempty"`
	CategoryTree    CategoryTree    `json:"categoryTree"`
}

// SortItemsByLink sorts items by Link ascending. Items with equal links keep
// their relative order.
func SortItemsByLink(items []*Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Link < items[j].Link
	})
}

// GroupItemsByCategory buckets items by CategoryID in a single pass,
// preserving input order within each bucket. Returns nil for no items.
func GroupItemsByCategory(items []*Item) ItemsByCategory {
	if len(items) == 0 {
		return nil
	}
	grouped := make(ItemsByCategory)
	for _, item := range items {
		grouped[item.CategoryID] = append(grouped[item.CategoryID], item)
	}
	return grouped
}

// BuildCategoryTree groups categories under their parent.
// Categories with parent 0 are the hierarchy root and are skipped; categories
// whose parent is RootCategoryID are placed under TopLevelKey.
// The parents map overrides Category.ParentID when it has an entry.
func BuildCategoryTree(categories []*Category, parents map[int]int) CategoryTree {
	tree := make(CategoryTree)
	for _, cat := range categories {
		parent := cat.ParentID
		if p, ok := parents[cat.ID]; ok {
			parent = p
		}
		if parent == 0 {
			continue
		}
		if parent == RootCategoryID {
			parent = TopLevelKey
		}
		tree[parent] = append(tree[parent], cat)
	}
	return tree
}

// Merge appends the items of other to r, restores link order and rebuilds the
// category grouping. The category tree of r is kept unless it is empty.
// Merge is used to combine the chunks of a paginated fetch.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	if len(other.Items) > 0 {
		r.Items = append(r.Items, other.Items...)
		SortItemsByLink(r.Items)
		r.ItemsByCategory = GroupItemsByCategory(r.Items)
	}
	if len(r.CategoryTree) == 0 {
		r.CategoryTree = other.CategoryTree
	}
}
