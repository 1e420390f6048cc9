// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rdf

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/piprate/json-gold/ld"
)

const defaultGraph = "@default"

// jsonLDLocal is the local-name rule for compact IRIs in the @context.
var jsonLDLocal = turtleLocal

func ldNode(t Term) ld.Node {
	switch {
	case t.IsIRI():
		return ld.NewIRI(t.Value)
	case t.IsBlank():
		return ld.NewBlankNode("_:" + t.Value)
	case t.Lang != "":
		return ld.NewLiteral(t.Value, RDF+"langString", t.Lang)
	case t.Datatype != "":
		return ld.NewLiteral(t.Value, t.Datatype, "")
	default:
		return ld.NewLiteral(t.Value, XSD+"string", "")
	}
}

// writeJSONLD converts g to expanded JSON-LD and compacts it against a
// @context of the prefixes in use. Nodes in @graph are sorted by @id.
func writeJSONLD(w io.Writer, g *Graph) error {
	ds := ld.NewRDFDataset()
	var quads []*ld.Quad
	for _, t := range g.Triples() {
		quads = append(quads, ld.NewQuad(ldNode(t.S), ldNode(t.P), ldNode(t.O), defaultGraph))
	}
	ds.Graphs[defaultGraph] = quads

	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions("")
	expanded, err := proc.FromRDF(ds, opts)
	if err != nil {
		return fmt.Errorf("converting to JSON-LD: %w", err)
	}

	compact := func(iri string) (string, string, bool) {
		return g.ns.compact(iri, jsonLDLocal)
	}
	context := make(map[string]any)
	for p, iri := range g.usedNamespaces(g.iris(), compact) {
		context[p] = iri
	}
	doc, err := proc.Compact(expanded, map[string]any{"@context": context}, opts)
	if err != nil {
		return fmt.Errorf("compacting JSON-LD: %w", err)
	}
	if nodes, ok := doc["@graph"].([]any); ok {
		sort.SliceStable(nodes, func(i, j int) bool { return nodeID(nodes[i]) < nodeID(nodes[j]) })
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func nodeID(node any) string {
	m, _ := node.(map[string]any)
	id, _ := m["@id"].(string)
	return id
}

func parseJSONLD(r io.Reader, g *Graph) error {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("parsing %s: %w", FormatJSONLD, err)
	}
	out, err := ld.NewJsonLdProcessor().ToRDF(doc, ld.NewJsonLdOptions(""))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", FormatJSONLD, err)
	}
	ds, ok := out.(*ld.RDFDataset)
	if !ok {
		return fmt.Errorf("parsing %s: unexpected result %T", FormatJSONLD, out)
	}
	for _, quads := range ds.Graphs {
		for _, q := range quads {
			g.Add(fromLDNode(q.Subject), fromLDNode(q.Predicate), fromLDNode(q.Object))
		}
	}
	return nil
}

func fromLDNode(n ld.Node) Term {
	switch v := n.(type) {
	case *ld.IRI:
		return NewIRI(v.Value)
	case *ld.BlankNode:
		return NewBlank(strings.TrimPrefix(v.Attribute, "_:"))
	case *ld.Literal:
		if v.Language != "" {
			return NewLangLiteral(v.Value, v.Language)
		}
		return NewTypedLiteral(v.Value, v.Datatype)
	default:
		return Term{}
	}
}
