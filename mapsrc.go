// Package mapsrc provides a content-source adapter for sitemap generation.
// It queries a content store and its category hierarchy, applies
// visibility, access and language filters, resolves canonical URLs, and
// shapes the result for a sitemap aggregator.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, etree/, slog/).
package mapsrc
