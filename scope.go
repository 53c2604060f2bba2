package mapsrc

import "time"

// AccessContext supplies the caller's authorization and language.
type AccessContext interface {
	// AuthorizedLevels returns the access levels the caller may view.
	AuthorizedLevels() []int

	// LanguageTag returns the active language tag (e.g., "en-GB").
	LanguageTag() string
}

// StaticAccess is an AccessContext with fixed values.
type StaticAccess struct {
	Levels   []int
	Language string
}

// AuthorizedLevels returns the configured levels.
func (a StaticAccess) AuthorizedLevels() []int { return a.Levels }

// LanguageTag returns the configured language.
func (a StaticAccess) LanguageTag() string { return a.Language }

// Scope is the filter configuration for one fetch.
type Scope struct {
	// ExcludeCategories selects the mode for CategoryIDs: true filters out the
	// listed categories, false keeps only them.
	ExcludeCategories bool

	// CategoryIDs restricts categories according to ExcludeCategories.
	// An empty set means no category restriction.
	CategoryIDs []int

	// Access is required; a nil Access fails the fetch with EUNAUTHORIZED.
	Access AccessContext
}

// Pagination is the caller-owned cursor for chunked retrieval.
//
// A zero Limit means an unbounded single-shot fetch. With a positive Limit
// the source fetches at most Limit rows starting at Offset and records the
// number of rows it actually got in AffectedRows.
type Pagination struct {
	Offset       int
	Limit        int
	AffectedRows int
}

// Bounded reports whether the cursor requests a chunked fetch.
func (p *Pagination) Bounded() bool {
	return p != nil && p.Limit > 0
}

// Exhausted reports whether the last bounded fetch returned fewer rows than
// requested, meaning no more data remains.
func (p *Pagination) Exhausted() bool {
	return !p.Bounded() || p.AffectedRows < p.Limit
}

// Advance moves the cursor to the next chunk.
func (p *Pagination) Advance() {
	p.Offset += p.Limit
	p.AffectedRows = 0
}

// Clause is a single filter predicate. Store implementations translate each
// clause into their own query language; values are always bound as
// parameters, never interpolated.
type Clause interface {
	clause()
}

// CategoryScope restricts the containing category. Empty IDs is a no-op.
type CategoryScope struct {
	Exclude bool
	IDs     []int
}

// AccessIn requires the access level to be one of Levels. On item queries it
// applies to both the item and its category. An empty set matches nothing.
type AccessIn struct {
	Levels []int
}

// LanguageIn matches items in the wildcard language, with no language, or in
// Tag.
type LanguageIn struct {
	Tag string
}

// NotExpired matches items whose publish-down time is after At or is unset.
type NotExpired struct {
	At time.Time
}

// DomainIn restricts categories to the given content domains.
type DomainIn struct {
	Names []string
}

func (CategoryScope) clause() {}
func (AccessIn) clause() {}
func (LanguageIn) clause() {}
func (NotExpired) clause() {}
func (DomainIn) clause() {}

// ItemQuery describes a query for published items.
// Limit of 0 means all rows.
type ItemQuery struct {
	Clauses []Clause
	Offset  int
	Limit   int
}

// CategoryQuery describes a query for published categories.
type CategoryQuery struct {
	Clauses []Clause
}
