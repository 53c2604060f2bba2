package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fwojciec/mapsrc"
	"github.com/fwojciec/mapsrc/etree"
	"github.com/fwojciec/mapsrc/fs"
)

// Run executes the xml command.
func (c *XMLCmd) Run(deps *Dependencies) error {
	if c.News && c.Publication == "" {
		fmt.Fprintln(deps.Stderr, "error: --publication is required with --news")
		return mapsrc.Errorf(mapsrc.EINVALID, "news publication name required")
	}

	sitemap, err := buildSitemap(deps, c.ScopeFlags)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mapsrc.ErrorMessage(err))
		return err
	}

	items := sitemap.Items()
	w := etree.NewWriter(c.BaseURL)

	var buf bytes.Buffer
	var sum uint64
	if c.News {
		sum, err = w.WriteNews(&buf, items, etree.NewsOptions{
			PublicationName: c.Publication,
			Language:        c.NewsLang,
		})
	} else {
		sum, err = w.WriteSitemap(&buf, sitemap.Categories(), items)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mapsrc.ErrorMessage(err))
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
		fmt.Fprintf(deps.Stderr, "%s unchanged (checksum %016x)\n", f.Path(), sum)
		return nil
	}
	fmt.Fprintf(deps.Stderr, "Wrote %d items to %s (checksum %016x)\n", len(items), f.Path(), sum)
	return nil
}
