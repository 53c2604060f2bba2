// Package etree writes XML and Google News sitemaps.
package etree

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/mapsrc"
)

// XML namespaces.
const (
	SitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
	NewsNS    = "http://www.google.com/schemas/sitemap-news/0.9"
)

// DefaultNewsMaxAge is the publication window of a news sitemap.
const DefaultNewsMaxAge = 48 * time.Hour

// NewsOptions configures a news sitemap.
type NewsOptions struct {
	// PublicationName is the name of the news publication.
	PublicationName string

	// Language is the publication language (e.g., "en").
	Language string

	// MaxAge excludes items published earlier than Now-MaxAge.
	// Defaults to DefaultNewsMaxAge.
	MaxAge time.Duration

	// Now is the reference time. Defaults to time.Now().
	Now time.Time
}

// Writer renders items as sitemap XML.
type Writer struct {
	baseURL string
}

// NewWriter creates a Writer that prefixes every link with baseURL.
func NewWriter(baseURL string) *Writer {
	return &Writer{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// WriteSitemap writes a standard urlset listing the category pages followed
// by the items, and returns the xxhash64 checksum of the bytes written.
// Duplicate links are written once.
func (w *Writer) WriteSitemap(out io.Writer, categories []*mapsrc.Category, items []*mapsrc.Item) (uint64, error) {
	doc, urlset := newURLSet()

	seen := make(map[string]bool)
	add := func(link string, lastmod time.Time) {
		if link == "" || seen[link] {
			return
		}
		seen[link] = true

		u := urlset.CreateElement("url")
		u.CreateElement("loc").SetText(w.loc(link))
		if !lastmod.IsZero() {
			u.CreateElement("lastmod").SetText(lastmod.UTC().Format(time.RFC3339))
		}
	}

	for _, cat := range categories {
		var lastmod time.Time
		if cat.LastModified != nil {
			lastmod = *cat.LastModified
		}
		add(cat.Link, lastmod)
	}
	for _, item := range items {
		add(item.Link, item.LastModified)
	}

	return write(out, doc)
}

// WriteNews writes a Google News sitemap containing the items published
// within opts.MaxAge and returns the checksum of the bytes written.
// Restricted items are marked with access "Registration".
func (w *Writer) WriteNews(out io.Writer, items []*mapsrc.Item, opts NewsOptions) (uint64, error) {
	if opts.PublicationName == "" {
		return 0, mapsrc.Errorf(mapsrc.EINVALID, "news publication name required")
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = DefaultNewsMaxAge
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	cutoff := opts.Now.Add(-opts.MaxAge)

	doc, urlset := newURLSet()
	urlset.CreateAttr("xmlns:news", NewsNS)

	seen := make(map[string]bool)
	for _, item := range items {
		if item.Link == "" || seen[item.Link] {
			continue
		}
		if item.PublishUp.Before(cutoff) || item.PublishUp.After(opts.Now) {
			continue
		}
		seen[item.Link] = true

		u := urlset.CreateElement("url")
		u.CreateElement("loc").SetText(w.loc(item.Link))

		news := u.CreateElement("news:news")
		pub := news.CreateElement("news:publication")
		pub.CreateElement("news:name").SetText(opts.PublicationName)
		pub.CreateElement("news:language").SetText(opts.Language)
		if item.Restricted() {
			news.CreateElement("news:access").SetText("Registration")
		}
		news.CreateElement("news:publication_date").SetText(item.PublishUp.UTC().Format(time.RFC3339))
		news.CreateElement("news:title").SetText(item.Title)
		if item.MetaKeywords != "" {
			news.CreateElement("news:keywords").SetText(item.MetaKeywords)
		}
	}

	return write(out, doc)
}

func (w *Writer) loc(link string) string {
	if strings.HasPrefix(link, "/") {
		return w.baseURL + link
	}
	return w.baseURL + "/" + link
}

func newURLSet() (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", SitemapNS)
	return doc, urlset
}

func write(out io.Writer, doc *etree.Document) (uint64, error) {
	doc.Indent(2)

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return 0, err
	}
	sum := xxhash.Sum64(buf.Bytes())
	if _, err := out.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return sum, nil
}
