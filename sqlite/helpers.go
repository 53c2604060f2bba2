package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/mapsrc"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// parseNullRFC3339 parses an optional timestamp column.
func parseNullRFC3339(value sql.NullString, fieldName string) (*time.Time, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	t, err := parseRFC3339(value.String, fieldName)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// formatTime formats t for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
// SQLite requires a LIMIT before OFFSET, so an offset without a limit uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// target selects the tables a clause is translated against.
type target int

const (
	targetItems target = iota
	targetCategories
)

// where accumulates AND-ed predicates and their bound arguments.
type where struct {
	parts []string
	args  []any
}

// add appends a predicate with its arguments.
func (w *where) add(pred string, args ...any) {
	w.parts = append(w.parts, pred)
	w.args = append(w.args, args...)
}

// addIn appends "column IN (?, ...)" or its negation. An empty set matches
// nothing for IN and everything for NOT IN.
func (w *where) addIn(column string, not bool, values []any) {
	if len(values) == 0 {
		if !not {
			w.add("1 = 0")
		}
		return
	}
	op := "IN"
	if not {
		op = "NOT IN"
	}
	w.add(fmt.Sprintf("%s %s (%s)", column, op, placeholders(len(values))), values...)
}

// apply translates each clause into a predicate for the given target.
func (w *where) apply(t target, clauses []mapsrc.Clause) error {
	for _, c := range clauses {
		switch c := c.(type) {
		case mapsrc.CategoryScope:
			if len(c.IDs) == 0 {
				continue
			}
			w.addIn("cat.id", c.Exclude, intArgs(c.IDs))
		case mapsrc.AccessIn:
			if t == targetItems {
				w.addIn("c.access", false, intArgs(c.Levels))
			}
			w.addIn("cat.access", false, intArgs(c.Levels))
		case mapsrc.DomainIn:
			w.addIn("cat.extension", false, stringArgs(c.Names))
		case mapsrc.LanguageIn:
			if t != targetItems {
				return mapsrc.Errorf(mapsrc.EINVALID, "language clause not supported on categories")
			}
			w.add("(c.language = '*' OR c.language = '' OR c.language = ?)", c.Tag)
		case mapsrc.NotExpired:
			if t != targetItems {
				return mapsrc.Errorf(mapsrc.EINVALID, "expiry clause not supported on categories")
			}
			w.add("(c.publish_down IS NULL OR c.publish_down > ?)", formatTime(c.At))
		default:
			return mapsrc.Errorf(mapsrc.EINVALID, "unsupported clause %T", c)
		}
	}
	return nil
}

// writeTo writes the accumulated predicates as a WHERE clause.
func (w *where) writeTo(query *strings.Builder) {
	if len(w.parts) == 0 {
		return
	}
	query.WriteString(" WHERE ")
	query.WriteString(strings.Join(w.parts, " AND "))
}

// placeholders returns n comma-separated bind markers.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func intArgs(values []int) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}

func stringArgs(values []string) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}
