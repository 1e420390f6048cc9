// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"context"

	"github.com/pdiddy/schema-builder/internal/rdf"
	"github.com/pdiddy/schema-builder/internal/termsource"
)

// httpEquivs declares every live term's http and https IRIs equivalent
// to each other, in both directions.
func (b *Builder) httpEquivs(_ context.Context, _ string) (string, error) {
	httpNS := "http://" + b.src.Host() + "/"
	httpsNS := "https://" + b.src.Host() + "/"

	g := rdf.NewGraph()
	g.Bind("schema_p", httpNS)
	g.Bind("schema_s", httpsNS)

	for _, t := range b.src.AllTerms() {
		if !termsource.InVocabulary(t) || t.Retired() {
			continue
		}
		equiv := rdf.OWLEquivalentClass
		if t.IsProperty() {
			equiv = rdf.OWLEquivalentProperty
		}
		p := rdf.NewIRI(httpNS + t.ID)
		s := rdf.NewIRI(httpsNS + t.ID)
		g.Add(p, equiv, s)
		g.Add(s, equiv, p)
		b.logger.Debug("equivalence", "term", t.ID)
	}
	return g.String(rdf.FormatTurtle)
}
