package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fwojciec/mapsrc"
	"github.com/fwojciec/mapsrc/fs"
	"github.com/fwojciec/mapsrc/html"
)

// Run executes the html command.
func (c *HTMLCmd) Run(deps *Dependencies) error {
	sitemap, err := buildSitemap(deps, c.ScopeFlags)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mapsrc.ErrorMessage(err))
		return err
	}

	var buf bytes.Buffer
	if err := html.NewRenderer(c.BaseURL, c.Title).Render(&buf, sitemap); err != nil {
		return err
	}

	if c.Out == "" {
		_, err = io.Copy(deps.Stdout, &buf)
		return err
	}

	f := fs.NewFile(c.Out)
	written, err := f.Write(buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", f.Path(), err)
	}
	if !written {
		fmt.Fprintf(deps.Stderr, "%s unchanged\n", f.Path())
		return nil
	}
	fmt.Fprintf(deps.Stderr, "Wrote %s\n", f.Path())
	return nil
}
