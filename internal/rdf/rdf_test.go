// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rdf

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schema = "https://schema.org/"

func thingGraph() *Graph {
	g := NewGraph()
	g.Bind("schema", schema)
	thing := NewIRI(schema + "Thing")
	g.Add(thing, RDFType, RDFSClass)
	g.Add(thing, RDFSLabel, NewLiteral("Thing"))
	g.Add(thing, RDFSComment, NewLiteral("The most generic type of item."))
	return g
}

func TestGraphSetSemantics(t *testing.T) {
	g := NewGraph()
	s := NewIRI(schema + "name")
	g.Add(s, RDFType, RDFProperty)
	g.Add(s, RDFType, RDFProperty)
	assert.Equal(t, 1, g.Len())

	g.Remove(Triple{S: s, P: RDFType, O: RDFProperty})
	assert.Equal(t, 0, g.Len())
}

func TestGraphMergeAndClone(t *testing.T) {
	a := thingGraph()
	b := NewGraph()
	b.Bind("ex", "http://example.org/")
	b.Add(NewIRI("http://example.org/x"), RDFSLabel, NewLiteral("x"))

	c := a.Clone()
	c.Merge(b)
	assert.Equal(t, 3, a.Len(), "clone must not share storage")
	assert.Equal(t, 4, c.Len())

	prefixes := map[string]string{}
	for _, ns := range c.Namespaces() {
		prefixes[ns.Prefix] = ns.IRI
	}
	assert.Equal(t, "http://example.org/", prefixes["ex"])
	assert.Equal(t, schema, prefixes["schema"])
}

func TestUpdate(t *testing.T) {
	attic := NewIRI("https://attic.schema.org")
	isPartOf := NewIRI(schema + "isPartOf")

	tests := []struct {
		name        string
		patterns    []Pattern
		wantRemoved int
		wantLeft    []string
	}{
		{
			name:        "drops subjects outside the vocabulary",
			patterns:    []Pattern{SubjectNotPrefixed("https://schema.org")},
			wantRemoved: 1,
			wantLeft:    []string{schema + "Thing", schema + "OldThing"},
		},
		{
			name:        "drops attic subjects",
			patterns:    []Pattern{SubjectHas(isPartOf, attic)},
			wantRemoved: 2,
			wantLeft:    []string{schema + "Thing", "http://purl.org/dc/terms/title"},
		},
		{
			name:        "applies patterns in order",
			patterns:    []Pattern{SubjectNotPrefixed("https://schema.org"), SubjectHas(isPartOf, attic)},
			wantRemoved: 3,
			wantLeft:    []string{schema + "Thing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraph()
			g.Add(NewIRI(schema+"Thing"), RDFType, RDFSClass)
			g.Add(NewIRI(schema+"OldThing"), RDFType, RDFSClass)
			g.Add(NewIRI(schema+"OldThing"), isPartOf, attic)
			g.Add(NewIRI("http://purl.org/dc/terms/title"), RDFSLabel, NewLiteral("title"))

			removed := g.Update(tt.patterns...)
			assert.Equal(t, tt.wantRemoved, removed)

			var left []string
			for _, s := range g.Subjects() {
				left = append(left, s.Value)
			}
			assert.ElementsMatch(t, tt.wantLeft, left)
		})
	}
}

func TestSubjectNotPrefixedKeepsBlankNodes(t *testing.T) {
	g := NewGraph()
	g.Add(NewBlank("b0"), RDFSLabel, NewLiteral("anon"))
	assert.Equal(t, 0, g.Update(SubjectNotPrefixed("https://schema.org")))
}

// roundTrip serializes g and parses the result back.
func roundTrip(t *testing.T, g *Graph, format Format) (string, *Graph) {
	t.Helper()
	out, err := g.String(format)
	require.NoError(t, err)
	parsed, err := Parse(strings.NewReader(out), format)
	require.NoError(t, err, out)
	return out, parsed
}

func assertSameTriples(t *testing.T, want, got *Graph) {
	t.Helper()
	assert.ElementsMatch(t, want.Triples(), got.Triples())
}

func TestTurtle(t *testing.T) {
	g := thingGraph()
	out, parsed := roundTrip(t, g, FormatTurtle)
	assertSameTriples(t, g, parsed)
	assert.Contains(t, out, "schema:Thing")
	assert.NotContains(t, out, "<https://schema.org/Thing>")
}

func TestTurtleLiteralsAndFallbackIRIs(t *testing.T) {
	g := NewGraph()
	g.Bind("schema", schema)
	s := NewIRI(schema + "3DModel")
	g.Add(s, RDFSComment, NewLiteral("line one\nsays \"hi\""))
	g.Add(s, NewIRI("http://purl.org/dc/terms/modified"), NewTypedLiteral("2024-01-02", XSD+"date"))
	g.Add(s, RDFSLabel, NewLangLiteral("Modèle", "fr"))
	g.Add(s, NewIRI(schema+"isPartOf"), NewIRI("https://attic.schema.org"))

	_, parsed := roundTrip(t, g, FormatTurtle)
	assertSameTriples(t, g, parsed)
}

func TestTurtleBlankNodes(t *testing.T) {
	g := NewGraph()
	g.Bind("sh", SH)
	shape := NewIRI("http://schema.org/shape/Person")
	prop := NewBlank("Person-name")
	g.Add(shape, NewIRI(SH+"property"), prop)
	g.Add(prop, NewIRI(SH+"path"), NewIRI("http://schema.org/name"))

	_, parsed := roundTrip(t, g, FormatTurtle)
	assert.Equal(t, 2, parsed.Len())
	objs := parsed.Objects(shape, NewIRI(SH+"property"))
	require.Len(t, objs, 1)
	assert.True(t, objs[0].IsBlank())
}

func TestInvalidTerm(t *testing.T) {
	g := NewGraph()
	g.Add(NewLiteral("x"), RDFSLabel, NewLiteral("y"))
	_, err := g.String(FormatNTriples)
	assert.ErrorIs(t, err, ErrInvalidTerm)
}

func TestNTriplesSorted(t *testing.T) {
	g := thingGraph()
	out, parsed := roundTrip(t, g, FormatNTriples)
	assertSameTriples(t, g, parsed)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], `<https://schema.org/Thing> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> `), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `<https://schema.org/Thing> <http://www.w3.org/2000/01/rdf-schema#comment> `), lines[1])
}

func TestNQuadsGraphName(t *testing.T) {
	g := thingGraph()
	var sb strings.Builder
	require.NoError(t, g.SerializeQuads(&sb, "https://schema.org/29.0"))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.True(t, strings.HasSuffix(line, " <https://schema.org/29.0> ."), line)
	}

	parsed, err := Parse(strings.NewReader(sb.String()), FormatNQuads)
	require.NoError(t, err)
	assertSameTriples(t, g, parsed)
}

func TestJSONLD(t *testing.T) {
	g := thingGraph()
	g.Add(NewIRI(schema+"Person"), RDFSSubClassOf, NewIRI(schema+"Thing"))

	out, parsed := roundTrip(t, g, FormatJSONLD)
	assertSameTriples(t, g, parsed)

	var doc struct {
		Context map[string]string `json:"@context"`
		Graph   []map[string]any  `json:"@graph"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, schema, doc.Context["schema"])
	require.Len(t, doc.Graph, 2)
	assert.Equal(t, "schema:Person", doc.Graph[0]["@id"])
	assert.Equal(t, map[string]any{"@id": "schema:Thing"}, doc.Graph[0]["rdfs:subClassOf"])
	assert.Equal(t, "schema:Thing", doc.Graph[1]["@id"])
	assert.Equal(t, "rdfs:Class", doc.Graph[1]["@type"])
	assert.Equal(t, "Thing", doc.Graph[1]["rdfs:label"])
}

func TestRDFXML(t *testing.T) {
	g := thingGraph()
	g.Add(NewIRI(schema+"Thing"), NewIRI(schema+"isPartOf"), NewIRI("https://meta.schema.org"))
	g.Add(NewIRI(schema+"Thing"), RDFSComment, NewLiteral("a < b & c"))

	out, err := g.String(FormatRDFXML)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="utf-8"?>`))
	assert.Contains(t, out, `xmlns:schema="https://schema.org/"`)
	assert.Contains(t, out, `<rdfs:Class rdf:about="https://schema.org/Thing">`)
	assert.Contains(t, out, `<schema:isPartOf rdf:resource="https://meta.schema.org"/>`)
	assert.Contains(t, out, `<rdfs:comment>a &lt; b &amp; c</rdfs:comment>`)
	assert.Contains(t, out, "</rdf:RDF>\n")

	parsed, err := Parse(strings.NewReader(out), FormatRDFXML)
	require.NoError(t, err)
	assertSameTriples(t, g, parsed)
}

func TestRDFXMLGeneratesPrefixes(t *testing.T) {
	g := NewGraph()
	g.Add(NewIRI("http://example.org/a"), NewIRI("http://example.org/vocab#knows"), NewIRI("http://example.org/b"))

	out, err := g.String(FormatRDFXML)
	require.NoError(t, err)
	assert.Contains(t, out, `xmlns:ns1="http://example.org/vocab#"`)
	assert.Contains(t, out, `<ns1:knows rdf:resource="http://example.org/b"/>`)
	assert.Contains(t, out, `<rdf:Description rdf:about="http://example.org/a">`)
}

func TestUnknownFormat(t *testing.T) {
	_, err := NewGraph().String(Format("trix"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Parse(strings.NewReader(""), Format("trix"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatRegistry(t *testing.T) {
	for format, ext := range map[Format]string{
		FormatJSONLD:   ".jsonld",
		FormatTurtle:   ".ttl",
		FormatNTriples: ".nt",
		FormatNQuads:   ".nq",
		FormatRDFXML:   ".rdf",
		FormatXML:      ".xml",
	} {
		info, ok := GetFormatInfo(format)
		require.True(t, ok, format)
		assert.Equal(t, ext, info.Extension)
	}
}
