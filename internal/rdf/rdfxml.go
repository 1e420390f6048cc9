// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rdf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

var (
	xmlTextEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	xmlAttrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "\n", "&#10;", "\r", "&#13;", "\t", "&#9;")
)

// EscapeXMLText escapes character data for an XML element body.
func EscapeXMLText(s string) string { return xmlTextEscaper.Replace(s) }

// EscapeXMLAttr escapes a value for a double-quoted XML attribute.
func EscapeXMLAttr(s string) string { return xmlAttrEscaper.Replace(s) }

// xmlWriter renders a graph as pretty RDF/XML. Subjects with a compactable
// rdf:type become typed node elements; everything else is an
// rdf:Description.
type xmlWriter struct {
	ns namespaces
}

func writeRDFXML(w io.Writer, g *Graph) error {
	xw := &xmlWriter{ns: make(namespaces)}
	xw.ns["rdf"] = RDF

	// Every predicate must be a QName; bind generated prefixes for the
	// namespaces that have none.
	gen := 0
	for _, t := range g.Triples() {
		if err := xw.need(g, t.P.Value, &gen, true); err != nil {
			return err
		}
		if t.P == RDFType && t.O.IsIRI() {
			xw.need(g, t.O.Value, &gen, false)
		}
	}

	bw := bufio.NewWriter(w)
	bw.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<rdf:RDF\n")
	for _, ns := range xw.ns.sorted() {
		fmt.Fprintf(bw, "   xmlns:%s=\"%s\"\n", ns.Prefix, EscapeXMLAttr(ns.IRI))
	}
	bw.WriteString(">\n")

	for _, group := range g.bySubject() {
		xw.writeNode(bw, group)
	}
	bw.WriteString("</rdf:RDF>\n")
	return bw.Flush()
}

// need makes sure iri can be written as a QName. Graph bindings are used
// first; otherwise a "nsN" prefix is generated. required reports whether
// failure is an error (predicates) or merely falls back (node types).
func (xw *xmlWriter) need(g *Graph, iri string, gen *int, required bool) error {
	if _, _, ok := xw.ns.compact(iri, xmlLocal); ok {
		return nil
	}
	if p, _, ok := g.ns.compact(iri, xmlLocal); ok {
		xw.ns[p] = g.ns[p]
		return nil
	}
	base, _, ok := splitIRI(iri)
	if !ok {
		if required {
			return fmt.Errorf("predicate %s cannot be written as an XML QName", iri)
		}
		return nil
	}
	*gen++
	xw.ns[fmt.Sprintf("ns%d", *gen)] = base
	return nil
}

func (xw *xmlWriter) qname(iri string) (string, bool) {
	p, l, ok := xw.ns.compact(iri, xmlLocal)
	if !ok {
		return "", false
	}
	return p + ":" + l, true
}

func (xw *xmlWriter) writeNode(bw *bufio.Writer, triples []Triple) {
	subject := triples[0].S

	element := "rdf:Description"
	var typed Triple
	for _, t := range triples {
		if t.P == RDFType && t.O.IsIRI() {
			if q, ok := xw.qname(t.O.Value); ok {
				element, typed = q, t
				break
			}
		}
	}

	bw.WriteString("  <" + element)
	if subject.IsBlank() {
		bw.WriteString(` rdf:nodeID="` + EscapeXMLAttr(subject.Value) + `"`)
	} else {
		bw.WriteString(` rdf:about="` + EscapeXMLAttr(subject.Value) + `"`)
	}
	bw.WriteString(">\n")

	for _, t := range triples {
		if t == typed {
			continue
		}
		pred, _ := xw.qname(t.P.Value)
		bw.WriteString("    <" + pred)
		switch {
		case t.O.IsIRI():
			bw.WriteString(` rdf:resource="` + EscapeXMLAttr(t.O.Value) + "\"/>\n")
		case t.O.IsBlank():
			bw.WriteString(` rdf:nodeID="` + EscapeXMLAttr(t.O.Value) + "\"/>\n")
		default:
			if t.O.Lang != "" {
				bw.WriteString(` xml:lang="` + EscapeXMLAttr(t.O.Lang) + `"`)
			} else if t.O.Datatype != "" {
				bw.WriteString(` rdf:datatype="` + EscapeXMLAttr(t.O.Datatype) + `"`)
			}
			bw.WriteString(">" + EscapeXMLText(t.O.Value) + "</" + pred + ">\n")
		}
	}
	bw.WriteString("  </" + element + ">\n")
}
