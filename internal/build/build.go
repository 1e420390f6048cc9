// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package build generates the distributable files of a vocabulary release:
// RDF dumps, CSV tables, the JSON-LD context and tree, counts, sitemap, OWL,
// shapes, and the examples file. Every run recomputes its outputs from the
// whole term set.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/pdiddy/schema-builder/internal/rdf"
	"github.com/pdiddy/schema-builder/internal/release"
	"github.com/pdiddy/schema-builder/internal/termsource"
	"github.com/pdiddy/schema-builder/pkg/types"
)

// generator produces the content of a target. Generators that write their
// own files return an empty string.
type generator func(b *Builder, ctx context.Context, name string) (string, error)

type target struct {
	gen generator
	// paths returns output paths relative to the output directory, given
	// the release directory ("releases/29.0").
	paths func(releaseDir string) []string
}

func none(string) []string { return nil }

var targets = map[string]target{
	"Context": {(*Builder).jsonLDContext, func(rd string) []string {
		return []string{
			"docs/jsonldcontext.jsonld",
			"docs/jsonldcontext.json",
			"docs/jsonldcontext.json.txt",
			rd + "/schemaorgcontext.jsonld",
		}
	}},
	"Tree":        {(*Builder).jsonLDTree, func(string) []string { return []string{"docs/tree.jsonld"} }},
	"jsoncounts":  {(*Builder).jsonCounts, func(string) []string { return []string{"docs/jsoncounts.json"} }},
	"jsonpcounts": {(*Builder).jsonpCounts, func(string) []string { return []string{"docs/jsonpcounts.js"} }},
	"Owl": {(*Builder).owl, func(rd string) []string {
		return []string{"docs/schemaorg.owl", rd + "/schemaorg.owl"}
	}},
	"Httpequivs":        {(*Builder).httpEquivs, func(rd string) []string { return []string{rd + "/httpequivs.ttl"} }},
	"Sitemap":           {(*Builder).sitemap, func(string) []string { return []string{"docs/sitemap.xml"} }},
	"RDFExports":        {(*Builder).exportRDF, none},
	"RDFExport.turtle":  {(*Builder).exportRDF, none},
	"RDFExport.rdf":     {(*Builder).exportRDF, none},
	"RDFExport.nt":      {(*Builder).exportRDF, none},
	"RDFExport.nquads":  {(*Builder).exportRDF, none},
	"RDFExport.json-ld": {(*Builder).exportRDF, none},
	"Shex_Shacl":        {(*Builder).exportShapes, none},
	"CSVExports":        {(*Builder).exportCSV, none},
	"Examples": {(*Builder).examplesFile, func(rd string) []string {
		return []string{rd + "/schemaorg-all-examples.txt"}
	}},
}

// allNames are the build names that select every target.
var allNames = []string{"ALL", "All", "all"}

// Targets returns the names of every build target, sorted.
func Targets() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builder generates release files for one term source and release. The
// JSON-LD context, the export graphs, and the set of RDF formats already
// written are computed once and reused across targets.
type Builder struct {
	cfg      types.BuildConfig
	src      *termsource.Source
	release  release.Info
	examples []types.Example
	logger   *slog.Logger

	protocol    string
	altProtocol string

	contextDoc   string
	allGraph     *rdf.Graph
	currentGraph *rdf.Graph
	completed    map[rdf.Format]bool
}

// New returns a Builder writing under cfg.OutputDir.
func New(cfg types.BuildConfig, src *termsource.Source, rel release.Info, examples []types.Example, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	protocol, alt := Protocols(src.VocabURI())
	return &Builder{
		cfg:         cfg,
		src:         src,
		release:     rel,
		examples:    examples,
		logger:      logger,
		protocol:    protocol,
		altProtocol: alt,
		completed:   make(map[rdf.Format]bool),
	}
}

// Build generates the named targets in order. Any of "ALL", "All" or "all"
// selects every target. Unknown names are logged and skipped.
func (b *Builder) Build(ctx context.Context, names []string) error {
	for _, a := range allNames {
		if slices.Contains(names, a) {
			names = Targets()
			break
		}
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		b.logger.Info("preparing file", "name", name)

		t, ok := targets[name]
		if !ok {
			b.logger.Warn("unknown file name", "name", name)
			continue
		}

		content, err := t.gen(b, ctx, name)
		if err != nil {
			return fmt.Errorf("building %s: %w", name, err)
		}
		if content == "" {
			continue
		}
		for _, rel := range t.paths(b.release.Dir()) {
			path, err := b.writeFile(rel, content)
			if err != nil {
				return fmt.Errorf("building %s: %w", name, err)
			}
			b.logger.Info("created", "path", path)
		}
	}
	return nil
}
