package html_test

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mapsrc"
	"github.com/fwojciec/mapsrc/aggregate"
	"github.com/fwojciec/mapsrc/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, r *html.Renderer, sitemap *aggregate.Sitemap) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, sitemap))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func newResult(items []*mapsrc.Item, categories []*mapsrc.Category) *mapsrc.Result {
	return &mapsrc.Result{
		Items:           items,
		ItemsByCategory: mapsrc.GroupItemsByCategory(items),
		CategoryTree:    mapsrc.BuildCategoryTree(categories, nil),
	}
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("nests categories and items", func(t *testing.T) {
		t.Parallel()

		result := newResult(
			[]*mapsrc.Item{
				{ID: 10, Title: "Launch", CategoryID: 2, Link: "/news/10-launch"},
				{ID: 11, Title: "Match", CategoryID: 3, Link: "/news/sport/11-match"},
			},
			[]*mapsrc.Category{
				{ID: 2, Title: "News", ParentID: 1, Link: "/news"},
				{ID: 3, Title: "Sport", ParentID: 2, Link: "/news/sport"},
			},
		)
		sitemap := &aggregate.Sitemap{Sources: []*aggregate.Output{{Name: "content", Result: result}}}

		doc := render(t, html.NewRenderer("https://example.com/", "Site Map"), sitemap)

		assert.Equal(t, "Site Map", doc.Find("title").Text())
		section := doc.Find(`section[data-source="content"]`)
		require.Equal(t, 1, section.Length())

		news := section.Find(`li.category[data-category="2"]`)
		require.Equal(t, 1, news.Length())
		href, _ := news.Children().First().Attr("href")
		assert.Equal(t, "https://example.com/news", href)

		launch := news.ChildrenFiltered("ul.items").Find("li.item a")
		require.Equal(t, 1, launch.Length())
		assert.Equal(t, "Launch", launch.Text())

		sport := news.Find(`ul.categories > li.category[data-category="3"]`)
		require.Equal(t, 1, sport.Length())
		match := sport.Find("li.item a")
		assert.Equal(t, "Match", match.Text())
		href, _ = match.Attr("href")
		assert.Equal(t, "https://example.com/news/sport/11-match", href)

		assert.Equal(t, 0, section.ChildrenFiltered("ul.items").Length())
	})

	t.Run("lists items outside the tree after it", func(t *testing.T) {
		t.Parallel()

		result := newResult(
			[]*mapsrc.Item{{ID: 10, Title: "Orphan", CategoryID: 9, Link: "/orphan"}},
			[]*mapsrc.Category{{ID: 2, Title: "News", ParentID: 1, Link: "/news"}},
		)
		sitemap := &aggregate.Sitemap{Sources: []*aggregate.Output{{Name: "content", Result: result}}}

		doc := render(t, html.NewRenderer("https://example.com", ""), sitemap)

		assert.Equal(t, "Sitemap", doc.Find("h1").Text())
		loose := doc.Find("section > ul.items > li.item a")
		require.Equal(t, 1, loose.Length())
		assert.Equal(t, "Orphan", loose.Text())
	})

	t.Run("renders one section per source", func(t *testing.T) {
		t.Parallel()

		sitemap := &aggregate.Sitemap{Sources: []*aggregate.Output{
			{Name: "articles", Result: newResult(nil, nil)},
			{Name: "events", Result: nil},
		}}

		doc := render(t, html.NewRenderer("https://example.com", ""), sitemap)

		names := doc.Find("section h2").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
		assert.Equal(t, []string{"articles", "events"}, names)
		assert.Equal(t, 0, doc.Find("li").Length())
	})

	t.Run("survives cyclic hierarchy", func(t *testing.T) {
		t.Parallel()

		result := &mapsrc.Result{CategoryTree: mapsrc.CategoryTree{
			0: {{ID: 2, Title: "A"}},
			2: {{ID: 3, Title: "B"}},
			3: {{ID: 2, Title: "A"}},
		}}
		sitemap := &aggregate.Sitemap{Sources: []*aggregate.Output{{Name: "content", Result: result}}}

		doc := render(t, html.NewRenderer("https://example.com", ""), sitemap)

		assert.Equal(t, 2, doc.Find("li.category").Length())
	})

	t.Run("escapes titles", func(t *testing.T) {
		t.Parallel()

		result := newResult(
			[]*mapsrc.Item{{ID: 1, Title: "<script>x</script>", CategoryID: 9, Link: "/x"}},
			nil,
		)
		sitemap := &aggregate.Sitemap{Sources: []*aggregate.Output{{Name: "content", Result: result}}}

		var buf bytes.Buffer
		require.NoError(t, html.NewRenderer("https://example.com", "").Render(&buf, sitemap))

		assert.NotContains(t, buf.String(), "<script>")
		assert.Contains(t, buf.String(), "&lt;script&gt;")
	})
}
