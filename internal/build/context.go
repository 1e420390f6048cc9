// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pdiddy/schema-builder/internal/termsource"
	"github.com/pdiddy/schema-builder/pkg/types"
)

// contextPrefixes are the namespace prefixes declared in the JSON-LD
// context besides "schema".
var contextPrefixes = []struct{ prefix, iri string }{
	{"brick", "https://brickschema.org/schema/Brick#"},
	{"csvw", "http://www.w3.org/ns/csvw#"},
	{"dc", "http://purl.org/dc/elements/1.1/"},
	{"dcam", "http://purl.org/dc/dcam/"},
	{"dcat", "http://www.w3.org/ns/dcat#"},
	{"dcmitype", "http://purl.org/dc/dcmitype/"},
	{"dcterms", "http://purl.org/dc/terms/"},
	{"doap", "http://usefulinc.com/ns/doap#"},
	{"foaf", "http://xmlns.com/foaf/0.1/"},
	{"odrl", "http://www.w3.org/ns/odrl/2/"},
	{"org", "http://www.w3.org/ns/org#"},
	{"owl", "http://www.w3.org/2002/07/owl#"},
	{"prof", "http://www.w3.org/ns/dx/prof/"},
	{"prov", "http://www.w3.org/ns/prov#"},
	{"qb", "http://purl.org/linked-data/cube#"},
	{"rdf", "http://www.w3.org/1999/02/22-rdf-syntax-ns#"},
	{"rdfs", "http://www.w3.org/2000/01/rdf-schema#"},
	{"sh", "http://www.w3.org/ns/shacl#"},
	{"skos", "http://www.w3.org/2004/02/skos/core#"},
	{"sosa", "http://www.w3.org/ns/sosa/"},
	{"ssn", "http://www.w3.org/ns/ssn/"},
	{"time", "http://www.w3.org/2006/time#"},
	{"vann", "http://purl.org/vocab/vann/"},
	{"void", "http://rdfs.org/ns/void#"},
	{"xsd", "http://www.w3.org/2001/XMLSchema#"},
}

func (b *Builder) jsonLDContext(_ context.Context, _ string) (string, error) {
	if b.contextDoc == "" {
		b.contextDoc = JSONLDContext(b.src)
	}
	return b.contextDoc, nil
}

// JSONLDContext renders the JSON-LD context document of the vocabulary:
// keyword aliases, @vocab, namespace prefixes, and one entry per vocabulary
// term. Properties whose range includes URL are typed "@id"; Date and
// DateTime ranges type the value accordingly.
func JSONLDContext(src *termsource.Source) string {
	var sb strings.Builder
	sb.WriteString("{\n  \"@context\": {\n")

	var entries []string
	entries = append(entries,
		`"type": "@type"`,
		`"id": "@id"`,
		`"HTML": {"@id": "rdf:HTML"}`,
		`"@vocab": `+quote(src.VocabURI()),
	)
	for _, p := range contextPrefixes {
		entries = append(entries, quote(p.prefix)+": "+quote(p.iri))
	}
	entries = append(entries, `"schema": `+quote(src.VocabURI()))

	for _, t := range src.AllTerms() {
		if !termsource.InVocabulary(t) {
			continue
		}
		entry := `{"@id": ` + quote("schema:"+t.ID)
		if t.IsProperty() {
			if vt := contextValueType(t); vt != "" {
				entry += `, "@type": ` + quote(vt)
			}
		}
		entries = append(entries, quote(t.ID)+": "+entry+"}")
	}

	sb.WriteString("    ")
	sb.WriteString(strings.Join(entries, ",\n    "))
	sb.WriteString("\n  }\n}\n")
	return sb.String()
}

func contextValueType(t *types.Term) string {
	var date, dateTime bool
	for _, r := range t.RangeIncludes {
		switch r {
		case "URL":
			return "@id"
		case "Date":
			date = true
		case "DateTime":
			dateTime = true
		}
	}
	switch {
	case date:
		return "Date"
	case dateTime:
		return "DateTime"
	}
	return ""
}

func quote(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}
