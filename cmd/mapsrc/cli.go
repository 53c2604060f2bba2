package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/mapsrc"
	"github.com/fwojciec/mapsrc/aggregate"
	"github.com/fwojciec/mapsrc/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Store      *sqlite.ContentStore
	Source     mapsrc.Source
	SourceName string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB        string   `name:"db" help:"Path to the content database (default: $MAPSRC_DB or ~/.mapsrc/content.db)"`
	Extension string   `default:"content" help:"Content extension to read"`
	Menu      []string `name:"menu" help:"Category menu route as id=path (repeatable)"`
	Verbose   bool     `short:"v" help:"Enable debug logging"`

	XML    XMLCmd    `cmd:"" name:"xml" help:"Write an XML or news sitemap"`
	HTML   HTMLCmd   `cmd:"" name:"html" help:"Write an HTML sitemap"`
	List   ListCmd   `cmd:"" help:"Print the category tree with its items"`
	Import ImportCmd `cmd:"" help:"Import categories and items from a JSON file"`
}

// ScopeFlags configures the source scope and precaching.
type ScopeFlags struct {
	Cats      []int   `help:"Category ids selected by --cats-scope"`
	CatsScope string  `name:"cats-scope" enum:"exclude,include" default:"exclude" help:"Whether --cats lists categories to exclude or the only ones to include (${enum})"`
	Levels    []int   `default:"1" help:"Authorized access levels"`
	Lang      string  `default:"en-GB" help:"Active language tag"`
	Chunk     int     `help:"Precache chunk size (0 fetches everything at once)"`
	RPS       float64 `name:"rps" help:"Maximum chunk fetches per second for each source (0 disables pacing)"`
}

// XMLCmd is the "xml" subcommand.
type XMLCmd struct {
	ScopeFlags `embed:""`

	BaseURL     string `name:"base-url" required:"" help:"Absolute site URL prefixed to every link"`
	Out         string `short:"o" help:"Output file (default: stdout)"`
	News        bool   `help:"Write a Google News sitemap"`
	Publication string `help:"News publication name"`
	NewsLang    string `name:"news-lang" default:"en" help:"News publication language"`
}

// HTMLCmd is the "html" subcommand.
type HTMLCmd struct {
	ScopeFlags `embed:""`

	BaseURL string `name:"base-url" required:"" help:"Absolute site URL prefixed to every link"`
	Title   string `default:"Sitemap" help:"Page title"`
	Out     string `short:"o" help:"Output file (default: stdout)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	ScopeFlags `embed:""`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"JSON file with categories and items"`
}

// buildSitemap runs the configured source through an aggregator and reports
// excluded sources on stderr.
func buildSitemap(deps *Dependencies, f ScopeFlags) (*aggregate.Sitemap, error) {
	agg := &aggregate.Aggregator{
		ChunkSize:   f.Chunk,
		RetryDelays: aggregate.DefaultRetryDelays(),
		RPS:         f.RPS,
		Logger:      deps.Logger,
	}

	name := deps.SourceName
	if name == "" {
		name = "content"
	}

	scope := mapsrc.Scope{
		ExcludeCategories: f.CatsScope != "include",
		CategoryIDs:       f.Cats,
		Access:            mapsrc.StaticAccess{Levels: f.Levels, Language: f.Lang},
	}
	if err := agg.Register(name, deps.Source, scope); err != nil {
		return nil, err
	}

	sitemap, err := agg.Build(deps.Ctx)
	if err != nil {
		return nil, err
	}

	for _, w := range sitemap.Warnings {
		fmt.Fprintf(deps.Stderr, "warning: source %q excluded: %s\n", w.Source, w.Message)
	}

	return sitemap, nil
}
