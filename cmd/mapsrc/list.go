package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/mapsrc"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	sitemap, err := buildSitemap(deps, c.ScopeFlags)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mapsrc.ErrorMessage(err))
		return err
	}

	for _, out := range sitemap.Sources {
		res := out.Result
		if len(res.Items) == 0 && len(res.CategoryTree) == 0 {
			fmt.Fprintf(deps.Stdout, "%s: no content found\n", out.Name)
			continue
		}

		fmt.Fprintf(deps.Stdout, "%s (%d items)\n", out.Name, len(res.Items))
		printTree(deps.Stdout, res, mapsrc.TopLevelKey, 1, make(map[int]bool))
	}

	return nil
}

func printTree(w io.Writer, res *mapsrc.Result, parent, depth int, visited map[int]bool) {
	indent := strings.Repeat("  ", depth)
	for _, cat := range res.CategoryTree[parent] {
		if visited[cat.ID] {
			continue
		}
		visited[cat.ID] = true

		fmt.Fprintf(w, "%s%s  %s\n", indent, cat.Title, cat.Link)
		for _, item := range res.ItemsByCategory[cat.ID] {
			fmt.Fprintf(w, "%s  - %s  %s\n", indent, item.Title, item.Link)
		}
		printTree(w, res, cat.ID, depth+1, visited)
	}
}
