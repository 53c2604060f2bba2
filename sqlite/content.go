package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/mapsrc"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ mapsrc.ContentStore = (*ContentStore)(nil)

// ContentStore implements mapsrc.ContentStore using SQLite.
type ContentStore struct {
	db        *DB
	extension string
}

// NewContentStore creates a new ContentStore for the named content extension.
func NewContentStore(db *DB, extension string) *ContentStore {
	return &ContentStore{db: db, extension: extension}
}

// Available returns EUNAVAILABLE unless the extension is registered and enabled.
func (s *ContentStore) Available(ctx context.Context) error {
	var enabled bool
	err := s.db.QueryRowContext(ctx, `
		SELECT enabled FROM extensions WHERE name = ?
	`, s.extension).Scan(&enabled)

	if err == sql.ErrNoRows || (err == nil && !enabled) {
		return mapsrc.Errorf(mapsrc.EUNAVAILABLE, "extension %q is not installed", s.extension)
	}
	return err
}

// QueryItems returns published items in published categories matching q.
func (s *ContentStore) QueryItems(ctx context.Context, q mapsrc.ItemQuery) ([]*mapsrc.Item, error) {
	var w where
	w.add("cat.published = 1")
	w.add("c.state = 1")
	if err := w.apply(targetItems, q.Clauses); err != nil {
		return nil, err
	}

	var query strings.Builder
	query.WriteString(`SELECT c.id, c.alias, c.title, c.catid, c.modified, c.publish_up, c.metakey, c.access
		FROM content c JOIN categories cat ON c.catid = cat.id`)
	w.writeTo(&query)
	query.WriteString(" ORDER BY cat.title ASC, c.title ASC, c.id ASC")

	args := w.args
	appendPagination(&query, &args, q.Limit, q.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*mapsrc.Item
	for rows.Next() {
		var item mapsrc.Item
		var modified, publishUp string

		if err := rows.Scan(&item.ID, &item.Alias, &item.Title, &item.CategoryID,
			&modified, &publishUp, &item.MetaKeywords, &item.Access); err != nil {
			return nil, err
		}

		if item.LastModified, err = parseRFC3339(modified, "modified"); err != nil {
			return nil, err
		}
		if item.PublishUp, err = parseRFC3339(publishUp, "publish_up"); err != nil {
			return nil, err
		}

		items = append(items, &item)
	}

	return items, rows.Err()
}

// QueryCategories returns published categories matching q in tree order.
func (s *ContentStore) QueryCategories(ctx context.Context, q mapsrc.CategoryQuery) ([]*mapsrc.Category, error) {
	var w where
	w.add("cat.published = 1")
	if err := w.apply(targetCategories, q.Clauses); err != nil {
		return nil, err
	}

	var query strings.Builder
	query.WriteString("SELECT DISTINCT cat.id, cat.alias, cat.title, cat.parent_id, cat.modified_time, cat.lft FROM categories cat")
	w.writeTo(&query)
	query.WriteString(" ORDER BY cat.lft ASC, cat.id ASC")

	rows, err := s.db.QueryContext(ctx, query.String(), w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*mapsrc.Category
	for rows.Next() {
		var cat mapsrc.Category
		var modified sql.NullString
		var lft int

		if err := rows.Scan(&cat.ID, &cat.Alias, &cat.Title, &cat.ParentID, &modified, &lft); err != nil {
			return nil, err
		}

		if cat.LastModified, err = parseNullRFC3339(modified, "modified_time"); err != nil {
			return nil, err
		}

		categories = append(categories, &cat)
	}

	return categories, rows.Err()
}

// QueryCategoryParents returns the child to parent mapping for categories
// matching q.
func (s *ContentStore) QueryCategoryParents(ctx context.Context, q mapsrc.CategoryQuery) (map[int]int, error) {
	var w where
	w.add("cat.published = 1")
	if err := w.apply(targetCategories, q.Clauses); err != nil {
		return nil, err
	}

	var query strings.Builder
	query.WriteString("SELECT cat.id, cat.parent_id FROM categories cat")
	w.writeTo(&query)

	rows, err := s.db.QueryContext(ctx, query.String(), w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parents := make(map[int]int)
	for rows.Next() {
		var child, parent int
		if err := rows.Scan(&child, &parent); err != nil {
			return nil, err
		}
		parents[child] = parent
	}

	return parents, rows.Err()
}

// execer is satisfied by both *DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// EnableExtension registers the store's extension as installed.
func (s *ContentStore) EnableExtension(ctx context.Context) error {
	return s.enableExtension(ctx, s.db)
}

func (s *ContentStore) enableExtension(ctx context.Context, ex execer) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO extensions (name, enabled) VALUES (?, 1)
		ON CONFLICT(name) DO UPDATE SET enabled = 1
	`, s.extension)
	return err
}

// CategoryRecord is a category row with its storage-only attributes.
type CategoryRecord struct {
	mapsrc.Category

	// Extension is the content domain; empty uses the store's extension.
	Extension   string `json:"extension,omitempty"`
	Unpublished bool   `json:"unpublished,omitempty"`
	Access      int    `json:"access,omitempty"`
	Position    int    `json:"position,omitempty"`
}

// CreateCategory inserts a category row.
// Returns ECONFLICT if the id is taken.
func (s *ContentStore) CreateCategory(ctx context.Context, rec *CategoryRecord) error {
	return s.createCategory(ctx, s.db, rec)
}

func (s *ContentStore) createCategory(ctx context.Context, ex execer, rec *CategoryRecord) error {
	if rec.ID <= 0 {
		return mapsrc.Errorf(mapsrc.EINVALID, "category id required")
	}

	extension := rec.Extension
	if extension == "" {
		extension = s.extension
	}
	access := rec.Access
	if access == 0 {
		access = 1
	}

	var modified any
	if rec.LastModified != nil {
		modified = formatTime(*rec.LastModified)
	}

	_, err := ex.ExecContext(ctx, `
		INSERT INTO categories (id, parent_id, lft, extension, alias, title, published, access, modified_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.ParentID, rec.Position, extension, rec.Alias, rec.Title,
		!rec.Unpublished, access, modified)

	return constraintError(err)
}

// ItemRecord is a content row with its storage-only attributes.
type ItemRecord struct {
	mapsrc.Item

	// Language defaults to the wildcard "*".
	Language    string     `json:"language,omitempty"`
	Unpublished bool       `json:"unpublished,omitempty"`
	PublishDown *time.Time `json:"publishDown,omitempty"`
}

// CreateItem inserts a content row.
// Returns ECONFLICT if the id is taken and EINVALID if the category is unknown.
func (s *ContentStore) CreateItem(ctx context.Context, rec *ItemRecord) error {
	return s.createItem(ctx, s.db, rec)
}

func (s *ContentStore) createItem(ctx context.Context, ex execer, rec *ItemRecord) error {
	if rec.ID <= 0 {
		return mapsrc.Errorf(mapsrc.EINVALID, "item id required")
	}
	if rec.CategoryID <= 0 {
		return mapsrc.Errorf(mapsrc.EINVALID, "item category id required")
	}

	language := rec.Language
	if language == "" {
		language = "*"
	}
	access := rec.Access
	if access == 0 {
		access = 1
	}

	var publishDown any
	if rec.PublishDown != nil {
		publishDown = formatTime(*rec.PublishDown)
	}

	_, err := ex.ExecContext(ctx, `
		INSERT INTO content (id, catid, alias, title, state, access, language, modified, publish_up, publish_down, metakey)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.CategoryID, rec.Alias, rec.Title, !rec.Unpublished, access, language,
		formatTime(rec.LastModified), formatTime(rec.PublishUp), publishDown, rec.MetaKeywords)

	return constraintError(err)
}

// ImportError identifies the record that failed an Import.
type ImportError struct {
	Kind string // "category" or "item"
	ID   int
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Kind, e.ID, mapsrc.ErrorMessage(e.Err))
}

func (e *ImportError) Unwrap() error { return e.Err }

// Import enables the extension and inserts categories then items in a single
// transaction. On any failure nothing is written and the returned
// *ImportError names the offending record.
func (s *ContentStore) Import(ctx context.Context, categories []*CategoryRecord, items []*ItemRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.enableExtension(ctx, tx); err != nil {
		return fmt.Errorf("failed to enable extension: %w", err)
	}
	for _, rec := range categories {
		if err := s.createCategory(ctx, tx, rec); err != nil {
			return &ImportError{Kind: "category", ID: rec.ID, Err: err}
		}
	}
	for _, rec := range items {
		if err := s.createItem(ctx, tx, rec); err != nil {
			return &ImportError{Kind: "item", ID: rec.ID, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// constraintError maps SQLite constraint violations to domain errors.
func constraintError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sqlite3.CONSTRAINT_PRIMARYKEY), errors.Is(err, sqlite3.CONSTRAINT_UNIQUE):
		return mapsrc.Errorf(mapsrc.ECONFLICT, "id already exists")
	case errors.Is(err, sqlite3.CONSTRAINT_FOREIGNKEY):
		return mapsrc.Errorf(mapsrc.EINVALID, "unknown category")
	}
	return err
}
