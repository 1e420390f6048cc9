// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/schema-builder/internal/rdf"
)

// staticPages are documentation pages listed in the sitemap after the terms.
var staticPages = []string{
	"docs/schemas.html",
	"docs/full.html",
	"docs/gs.html",
	"docs/about.html",
	"docs/howwework.html",
	"docs/releases.html",
	"docs/faq.html",
	"docs/datamodel.html",
	"docs/developers.html",
	"docs/extension.html",
	"docs/meddocs.html",
	"docs/hotels.html",
}

const sitemapNode = ` <url>
   <loc>%s%s</loc>
   <lastmod>%s</lastmod>
 </url>
`

func (b *Builder) sitemap(_ context.Context, _ string) (string, error) {
	site := b.cfg.SiteURL
	if site == "" {
		site = b.src.VocabURI()
	}
	if !strings.HasSuffix(site, "/") {
		site += "/"
	}
	site = rdf.EscapeXMLText(site)

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="utf-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
`)
	for _, t := range b.src.AllTerms() {
		if t.External() {
			continue
		}
		fmt.Fprintf(&sb, sitemapNode, site, rdf.EscapeXMLText(t.ID), b.release.Date)
	}
	for _, page := range staticPages {
		fmt.Fprintf(&sb, sitemapNode, site, page, b.release.Date)
	}
	sb.WriteString("</urlset>\n")
	return sb.String(), nil
}
