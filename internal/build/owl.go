// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/schema-builder/internal/rdf"
	"github.com/pdiddy/schema-builder/internal/termsource"
	"github.com/pdiddy/schema-builder/pkg/types"
)

// owlWriter renders the vocabulary as an OWL ontology in RDF/XML.
type owlWriter struct {
	b  *Builder
	sb strings.Builder
}

func (b *Builder) owl(_ context.Context, _ string) (string, error) {
	w := &owlWriter{b: b}
	w.header()
	for _, t := range b.src.AllTerms() {
		if !termsource.InVocabulary(t) {
			continue
		}
		switch t.Type {
		case types.TermClass, types.TermEnumeration, types.TermDataType:
			w.class(t)
		case types.TermProperty:
			w.property(t)
		case types.TermEnumerationValue:
			w.individual(t)
		}
	}
	w.sb.WriteString("</rdf:RDF>\n")
	return w.sb.String(), nil
}

func (w *owlWriter) header() {
	src := w.b.src
	fmt.Fprintf(&w.sb, `<?xml version="1.0" encoding="utf-8"?>
<rdf:RDF
   xmlns:dc="%s"
   xmlns:owl="%s"
   xmlns:rdf="%s"
   xmlns:rdfs="%s"
   xmlns:schema="%s"
   xmlns:xsd="%s"
>
  <owl:Ontology rdf:about="%s">
    <owl:versionInfo rdf:datatype="%sstring">%s</owl:versionInfo>
    <rdfs:label>Schema.org Vocabulary</rdfs:label>
    <dc:modified rdf:datatype="%sdate">%s</dc:modified>
    <rdfs:comment>This is a conversion of the vocabulary to OWL; it is a release artifact, not a normative definition.</rdfs:comment>
  </owl:Ontology>
`,
		rdf.DCT, rdf.OWL, rdf.RDF, rdf.RDFS, rdf.EscapeXMLAttr(src.VocabURI()), rdf.XSD,
		rdf.EscapeXMLAttr(src.VocabURI()),
		rdf.XSD, rdf.EscapeXMLText(w.b.release.Version),
		rdf.XSD, rdf.EscapeXMLText(w.b.release.Date),
	)
}

func (w *owlWriter) open(element, iri string) {
	fmt.Fprintf(&w.sb, "  <%s rdf:about=\"%s\">\n", element, rdf.EscapeXMLAttr(iri))
}

func (w *owlWriter) close(element string) {
	fmt.Fprintf(&w.sb, "  </%s>\n", element)
}

func (w *owlWriter) resource(pred, iri string) {
	fmt.Fprintf(&w.sb, "    <%s rdf:resource=\"%s\"/>\n", pred, rdf.EscapeXMLAttr(iri))
}

// annotations writes the label, comment, provenance and deprecation of t.
func (w *owlWriter) annotations(t *types.Term) {
	src := w.b.src
	if t.Label != "" {
		fmt.Fprintf(&w.sb, "    <rdfs:label xml:lang=\"en\">%s</rdfs:label>\n", rdf.EscapeXMLText(t.Label))
	}
	if t.Comment != "" {
		fmt.Fprintf(&w.sb, "    <rdfs:comment xml:lang=\"en\">%s</rdfs:comment>\n", rdf.EscapeXMLText(t.Comment))
	}
	for _, id := range t.SupersededBy {
		w.resource("schema:supersededBy", src.URI(id))
	}
	if t.Layer != "" {
		w.resource("schema:isPartOf", src.LayerURI(t.Layer))
	}
	if t.Retired() {
		fmt.Fprintf(&w.sb, "    <owl:deprecated rdf:datatype=\"%sboolean\">true</owl:deprecated>\n", rdf.XSD)
	}
}

func (w *owlWriter) class(t *types.Term) {
	src := w.b.src
	w.open("owl:Class", src.URI(t.ID))
	w.annotations(t)
	for _, sup := range t.Supers {
		w.resource("rdfs:subClassOf", src.URI(sup))
	}
	for _, eq := range t.Equivalents {
		w.resource("owl:equivalentClass", eq)
	}
	w.close("owl:Class")
}

// propertyKind classifies a property by its ranges: only datatypes makes a
// DatatypeProperty, no datatypes an ObjectProperty, a mix an rdf:Property.
func (w *owlWriter) propertyKind(t *types.Term) string {
	var data, object int
	for _, r := range t.RangeIncludes {
		if w.b.src.IsDataType(r) {
			data++
		} else {
			object++
		}
	}
	switch {
	case data > 0 && object == 0:
		return "owl:DatatypeProperty"
	case object > 0 && data == 0:
		return "owl:ObjectProperty"
	}
	return "rdf:Property"
}

func (w *owlWriter) property(t *types.Term) {
	src := w.b.src
	element := w.propertyKind(t)
	w.open(element, src.URI(t.ID))
	w.annotations(t)
	for _, sup := range t.Supers {
		w.resource("rdfs:subPropertyOf", src.URI(sup))
	}
	for _, eq := range t.Equivalents {
		w.resource("owl:equivalentProperty", eq)
	}

	domains := make([]string, len(t.DomainIncludes))
	for i, d := range t.DomainIncludes {
		domains[i] = src.URI(d)
	}
	w.union("rdfs:domain", domains)

	ranges := make([]string, len(t.RangeIncludes))
	for i, r := range t.RangeIncludes {
		ranges[i] = src.URI(r)
		if element == "owl:DatatypeProperty" {
			if x, ok := xsdTypes[r]; ok {
				ranges[i] = x
			}
		}
	}
	w.union("rdfs:range", ranges)

	if t.InverseOf != "" {
		w.resource("owl:inverseOf", src.URI(t.InverseOf))
	}
	w.close(element)
}

// union writes pred pointing at a single class, or at an anonymous
// owl:unionOf class when there are several.
func (w *owlWriter) union(pred string, iris []string) {
	switch len(iris) {
	case 0:
		return
	case 1:
		w.resource(pred, iris[0])
		return
	}
	fmt.Fprintf(&w.sb, "    <%s>\n      <owl:Class>\n        <owl:unionOf rdf:parseType=\"Collection\">\n", pred)
	for _, iri := range iris {
		fmt.Fprintf(&w.sb, "          <owl:Class rdf:about=\"%s\"/>\n", rdf.EscapeXMLAttr(iri))
	}
	fmt.Fprintf(&w.sb, "        </owl:unionOf>\n      </owl:Class>\n    </%s>\n", pred)
}

func (w *owlWriter) individual(t *types.Term) {
	src := w.b.src
	w.open("owl:NamedIndividual", src.URI(t.ID))
	if t.Enumeration != "" {
		w.resource("rdf:type", src.URI(t.Enumeration))
	}
	w.annotations(t)
	w.close("owl:NamedIndividual")
}
