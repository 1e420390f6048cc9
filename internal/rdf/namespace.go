// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rdf

import (
	"regexp"
	"sort"
	"strings"
)

// Well-known namespace IRIs.
const (
	RDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"
	OWL  = "http://www.w3.org/2002/07/owl#"
	XSD  = "http://www.w3.org/2001/XMLSchema#"
	SH   = "http://www.w3.org/ns/shacl#"
	DCT  = "http://purl.org/dc/terms/"
)

// Frequently used predicate and class IRIs.
var (
	RDFType               = NewIRI(RDF + "type")
	RDFProperty           = NewIRI(RDF + "Property")
	RDFSClass             = NewIRI(RDFS + "Class")
	RDFSLabel             = NewIRI(RDFS + "label")
	RDFSComment           = NewIRI(RDFS + "comment")
	RDFSSubClassOf        = NewIRI(RDFS + "subClassOf")
	RDFSSubPropertyOf     = NewIRI(RDFS + "subPropertyOf")
	OWLEquivalentClass    = NewIRI(OWL + "equivalentClass")
	OWLEquivalentProperty = NewIRI(OWL + "equivalentProperty")
)

// Namespace is a prefix binding.
type Namespace struct {
	Prefix string
	IRI    string
}

// defaultNamespaces are bound on every new graph.
var defaultNamespaces = map[string]string{
	"rdf":  RDF,
	"rdfs": RDFS,
	"owl":  OWL,
	"xsd":  XSD,
}

var (
	// turtleLocal approximates PN_LOCAL without escapes.
	turtleLocal = regexp.MustCompile(`^[A-Za-z0-9_]([A-Za-z0-9_.-]*[A-Za-z0-9_-])?$`)
	// xmlLocal is an NCName restricted to ASCII.
	xmlLocal = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)
)

// namespaces is a prefix to IRI table with longest-match compaction.
type namespaces map[string]string

func (n namespaces) sorted() []Namespace {
	out := make([]Namespace, 0, len(n))
	for p, iri := range n {
		out = append(out, Namespace{Prefix: p, IRI: iri})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out
}

// byIRI inverts the table. When two prefixes share an IRI the
// alphabetically first one is kept.
func (n namespaces) byIRI() map[string]string {
	out := make(map[string]string, len(n))
	for _, ns := range n.sorted() {
		if _, ok := out[ns.IRI]; !ok {
			out[ns.IRI] = ns.Prefix
		}
	}
	return out
}

// compact splits iri into a bound prefix and a local name accepted by valid.
// When several namespaces match the longest one wins; ties go to the
// alphabetically first prefix.
func (n namespaces) compact(iri string, valid *regexp.Regexp) (prefix, local string, ok bool) {
	best := -1
	for _, ns := range n.sorted() {
		if !strings.HasPrefix(iri, ns.IRI) || len(ns.IRI) <= best {
			continue
		}
		l := iri[len(ns.IRI):]
		if l != "" && !valid.MatchString(l) {
			continue
		}
		if l == "" && valid == xmlLocal {
			continue
		}
		best = len(ns.IRI)
		prefix, local, ok = ns.Prefix, l, true
	}
	return prefix, local, ok
}

// splitIRI splits an IRI after its last '#' or '/' so that the remainder
// is usable as an XML local name.
func splitIRI(iri string) (ns, local string, ok bool) {
	i := strings.LastIndexAny(iri, "#/")
	if i < 0 || i == len(iri)-1 {
		return "", "", false
	}
	ns, local = iri[:i+1], iri[i+1:]
	if !xmlLocal.MatchString(local) {
		return "", "", false
	}
	return ns, local, true
}
