// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package termsource

import (
	"github.com/pdiddy/schema-builder/internal/rdf"
	"github.com/pdiddy/schema-builder/pkg/types"
)

// Graph builds the RDF graph of every term in the source, external
// references included. The vocabulary namespace is bound to "schema".
func (s *Source) Graph() *rdf.Graph {
	g := rdf.NewGraph()
	g.Bind("schema", s.vocabURI)

	iri := func(id string) rdf.Term { return rdf.NewIRI(s.URI(id)) }
	schema := func(local string) rdf.Term { return rdf.NewIRI(s.vocabURI + local) }

	for _, t := range s.AllTerms() {
		subj := iri(t.ID)

		switch t.Type {
		case types.TermClass, types.TermEnumeration:
			g.Add(subj, rdf.RDFType, rdf.RDFSClass)
		case types.TermDataType:
			g.Add(subj, rdf.RDFType, rdf.RDFSClass)
			g.Add(subj, rdf.RDFType, schema(dataTypeRoot))
		case types.TermProperty:
			g.Add(subj, rdf.RDFType, rdf.RDFProperty)
		case types.TermEnumerationValue:
			if t.Enumeration != "" {
				g.Add(subj, rdf.RDFType, iri(t.Enumeration))
			}
		}

		if t.Label != "" {
			g.Add(subj, rdf.RDFSLabel, rdf.NewLiteral(t.Label))
		}
		if t.Comment != "" {
			g.Add(subj, rdf.RDFSComment, rdf.NewLiteral(t.Comment))
		}

		superPred, equivPred := rdf.RDFSSubClassOf, rdf.OWLEquivalentClass
		if t.IsProperty() {
			superPred, equivPred = rdf.RDFSSubPropertyOf, rdf.OWLEquivalentProperty
		}
		for _, sup := range t.Supers {
			g.Add(subj, superPred, iri(sup))
		}
		for _, eq := range t.Equivalents {
			g.Add(subj, equivPred, rdf.NewIRI(eq))
		}

		for _, d := range t.DomainIncludes {
			g.Add(subj, schema("domainIncludes"), iri(d))
		}
		for _, r := range t.RangeIncludes {
			g.Add(subj, schema("rangeIncludes"), iri(r))
		}
		if t.InverseOf != "" {
			g.Add(subj, schema("inverseOf"), iri(t.InverseOf))
		}
		for _, sup := range t.Supersedes {
			g.Add(subj, schema("supersedes"), iri(sup))
		}
		for _, sup := range t.SupersededBy {
			g.Add(subj, schema("supersededBy"), iri(sup))
		}
		if t.Layer != "" {
			g.Add(subj, schema("isPartOf"), rdf.NewIRI(s.LayerURI(t.Layer)))
		}
	}
	return g
}
