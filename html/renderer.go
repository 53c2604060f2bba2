// Package html renders human-readable sitemaps with items nested under
// their category hierarchy.
package html

import (
	"html/template"
	"io"
	"strings"

	"github.com/fwojciec/mapsrc"
	"github.com/fwojciec/mapsrc/aggregate"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{- range .Sections}}
<section class="source" data-source="{{.Name}}">
<h2>{{.Name}}</h2>
{{- if .Nodes}}
<ul class="categories">
{{- range .Nodes}}{{template "node" .}}{{end}}
</ul>
{{- end}}
{{- if .Loose}}
<ul class="items">
{{- range .Loose}}{{template "item" .}}{{end}}
</ul>
{{- end}}
</section>
{{- end}}
</body>
</html>
{{define "item"}}
<li class="item"><a href="{{.URL}}">{{.Title}}</a></li>
{{- end}}
{{define "node"}}
<li class="category" data-category="{{.ID}}"><a href="{{.URL}}">{{.Title}}</a>
{{- if .Items}}
<ul class="items">
{{- range .Items}}{{template "item" .}}{{end}}
</ul>
{{- end}}
{{- if .Children}}
<ul class="categories">
{{- range .Children}}{{template "node" .}}{{end}}
</ul>
{{- end}}
</li>
{{- end}}
`))

// Renderer renders sitemaps as HTML pages.
type Renderer struct {
	baseURL string
	title   string
}

// NewRenderer creates a Renderer that prefixes every link with baseURL.
func NewRenderer(baseURL, title string) *Renderer {
	if title == "" {
		title = "Sitemap"
	}
	return &Renderer{baseURL: strings.TrimSuffix(baseURL, "/"), title: title}
}

type page struct {
	Title    string
	Sections []section
}

type section struct {
	Name  string
	Nodes []*node
	Loose []link
}

type node struct {
	ID       int
	Title    string
	URL      string
	Items    []link
	Children []*node
}

type link struct {
	Title string
	URL   string
}

// Render writes the sitemap as an HTML page. Each source becomes a section
// listing its category tree from the top level down, with each category's
// items in link order. Items whose category is not in the tree are listed
// after the tree.
func (r *Renderer) Render(w io.Writer, sitemap *aggregate.Sitemap) error {
	p := page{Title: r.title}
	for _, out := range sitemap.Sources {
		p.Sections = append(p.Sections, r.section(out))
	}
	return pageTemplate.Execute(w, p)
}

func (r *Renderer) section(out *aggregate.Output) section {
	s := section{Name: out.Name}
	if out.Result == nil {
		return s
	}

	placed := make(map[int]bool)
	visited := make(map[int]bool)
	s.Nodes = r.nodes(out.Result, mapsrc.TopLevelKey, placed, visited)

	for _, item := range out.Result.Items {
		if !placed[item.CategoryID] {
			s.Loose = append(s.Loose, r.link(item.Title, item.Link))
		}
	}
	return s
}

// nodes builds the subtree under parent. visited guards against cycles in
// malformed hierarchies.
func (r *Renderer) nodes(res *mapsrc.Result, parent int, placed, visited map[int]bool) []*node {
	var nodes []*node
	for _, cat := range res.CategoryTree[parent] {
		if visited[cat.ID] {
			continue
		}
		visited[cat.ID] = true
		placed[cat.ID] = true

		n := &node{ID: cat.ID, Title: cat.Title, URL: r.url(cat.Link)}
		for _, item := range res.ItemsByCategory[cat.ID] {
			n.Items = append(n.Items, r.link(item.Title, item.Link))
		}
		n.Children = r.nodes(res, cat.ID, placed, visited)
		nodes = append(nodes, n)
	}
	return nodes
}

func (r *Renderer) link(title, path string) link {
	return link{Title: title, URL: r.url(path)}
}

func (r *Renderer) url(path string) string {
	if strings.HasPrefix(path, "/") {
		return r.baseURL + path
	}
	return r.baseURL + "/" + path
}
