// Package aggregate builds a sitemap from one or more content sources.
// It drives each source through the chunked precache protocol, merges the
// chunks, and excludes failing sources instead of failing the whole build.
package aggregate

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/mapsrc"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Entry is a registered source with its own filter scope.
type Entry struct {
	Name   string
	Source mapsrc.Source
	Scope  mapsrc.Scope
}

// Output is the merged contribution of one source.
type Output struct {
	Name   string
	Result *mapsrc.Result
}

// Warning reports a source that was excluded from the sitemap.
type Warning struct {
	Source  string
	Code    string
	Message string
}

// Sitemap is the merged result of a build.
type Sitemap struct {
	RunID string

	// Sources holds one output per registered source, in registration order.
	// Excluded sources have an empty result.
	Sources []*Output

	Warnings []Warning
}

// Items returns the items of all sources in source order.
func (s *Sitemap) Items() []*mapsrc.Item {
	var items []*mapsrc.Item
	for _, out := range s.Sources {
		items = append(items, out.Result.Items...)
	}
	return items
}

// Categories returns the categories of all sources in source order, each
// source's tree walked depth first from the top level. Categories unreachable
// from the top level are omitted.
func (s *Sitemap) Categories() []*mapsrc.Category {
	var categories []*mapsrc.Category
	for _, out := range s.Sources {
		visited := make(map[int]bool)
		categories = walk(out.Result.CategoryTree, mapsrc.TopLevelKey, visited, categories)
	}
	return categories
}

func walk(tree mapsrc.CategoryTree, parent int, visited map[int]bool, acc []*mapsrc.Category) []*mapsrc.Category {
	for _, cat := range tree[parent] {
		if visited[cat.ID] {
			continue
		}
		visited[cat.ID] = true
		acc = append(acc, cat)
		acc = walk(tree, cat.ID, visited, acc)
	}
	return acc
}

// Aggregator builds sitemaps from registered sources.
type Aggregator struct {
	// ChunkSize is the number of items fetched per precache call.
	// Zero fetches each source in a single unbounded call.
	ChunkSize int

	// RPS caps the chunk fetches per second of each source, without
	// bursting. Sources are paced independently. Zero disables pacing.
	RPS float64

	// RetryDelays are the waits between attempts of a chunk that failed
	// with EQUERY. Empty disables retries.
	RetryDelays []time.Duration

	// Concurrency is the number of sources fetched in parallel.
	// Defaults to 1.
	Concurrency int

	Logger *slog.Logger

	entries []Entry
}

// Register adds a named source. Returns ECONFLICT if the name is taken.
func (a *Aggregator) Register(name string, src mapsrc.Source, scope mapsrc.Scope) error {
	if name == "" {
		return mapsrc.Errorf(mapsrc.EINVALID, "source name required")
	}
	for _, e := range a.entries {
		if e.Name == name {
			return mapsrc.Errorf(mapsrc.ECONFLICT, "source %q already registered", name)
		}
	}
	a.entries = append(a.entries, Entry{Name: name, Source: src, Scope: scope})
	return nil
}

// Build fetches every registered source and merges the results.
// A failing source is logged, reported in Sitemap.Warnings and contributes
// nothing. Build only returns an error when ctx is done.
func (a *Aggregator) Build(ctx context.Context) (*Sitemap, error) {
	runID := uuid.New().String()
	logger := a.logger().With("run", runID)

	outputs := make([]*Output, len(a.entries))
	warnings := make([]*Warning, len(a.entries))

	concurrency := a.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, e := range a.entries {
		i, e := i, e
		var limiter *rate.Limiter
		if a.RPS > 0 {
			limiter = rate.NewLimiter(rate.Limit(a.RPS), 1)
		}
		g.Go(func() error {
			result, err := a.collect(gctx, e, limiter, logger)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Warn("source excluded from sitemap",
					"source", e.Name,
					"code", mapsrc.ErrorCode(err),
					"err", err,
				)
				warnings[i] = &Warning{
					Source:  e.Name,
					Code:    mapsrc.ErrorCode(err),
					Message: err.Error(),
				}
				result = nil
			}
			if result == nil {
				result = &mapsrc.Result{CategoryTree: mapsrc.CategoryTree{}}
			}
			outputs[i] = &Output{Name: e.Name, Result: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sitemap := &Sitemap{RunID: runID, Sources: outputs}
	for _, w := range warnings {
		if w != nil {
			sitemap.Warnings = append(sitemap.Warnings, *w)
		}
	}

	logger.Info("sitemap built",
		"sources", len(outputs),
		"items", len(sitemap.Items()),
		"warnings", len(sitemap.Warnings),
	)

	return sitemap, nil
}

// collect fetches all content of one source, chunk by chunk when ChunkSize
// is set. The caller-owned cursor advances until a chunk comes back short.
// A non-nil limiter is waited on before every chunk.
func (a *Aggregator) collect(ctx context.Context, e Entry, limiter *rate.Limiter, logger *slog.Logger) (*mapsrc.Result, error) {
	if a.ChunkSize <= 0 {
		return fetchWithRetry(ctx, e, &mapsrc.Pagination{}, a.RetryDelays, logger)
	}

	page := &mapsrc.Pagination{Limit: a.ChunkSize}
	var merged *mapsrc.Result
	for {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		result, err := fetchWithRetry(ctx, e, page, a.RetryDelays, logger)
		if err != nil {
			return nil, err
		}

		if merged == nil {
			merged = &mapsrc.Result{}
			if result != nil {
				merged = result
			}
		} else {
			merged.Merge(result)
		}

		if page.Exhausted() {
			return merged, nil
		}
		page.Advance()
	}
}

func (a *Aggregator) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.Logger
}
