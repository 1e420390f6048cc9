// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rdf

import (
	"slices"
	"strings"
)

// Graph is a set of triples plus prefix bindings used when serializing.
// A Graph is not safe for concurrent mutation.
type Graph struct {
	triples map[Triple]struct{}
	ns      namespaces
}

// NewGraph returns an empty graph with the rdf, rdfs, owl, and xsd
// prefixes bound.
func NewGraph() *Graph {
	g := &Graph{
		triples: make(map[Triple]struct{}),
		ns:      make(namespaces, len(defaultNamespaces)),
	}
	for p, iri := range defaultNamespaces {
		g.ns[p] = iri
	}
	return g
}

// Bind associates prefix with a namespace IRI, replacing any previous
// binding for the prefix.
func (g *Graph) Bind(prefix, iri string) {
	g.ns[prefix] = iri
}

// Namespaces returns the prefix bindings sorted by prefix.
func (g *Graph) Namespaces() []Namespace {
	return g.ns.sorted()
}

// Add inserts a triple. Adding a triple already present is a no-op.
func (g *Graph) Add(s, p, o Term) {
	g.triples[Triple{S: s, P: p, O: o}] = struct{}{}
}

// AddTriple inserts t.
func (g *Graph) AddTriple(t Triple) {
	g.triples[t] = struct{}{}
}

// Remove deletes t if present.
func (g *Graph) Remove(t Triple) {
	delete(g.triples, t)
}

// Has reports whether t is in the graph.
func (g *Graph) Has(t Triple) bool {
	_, ok := g.triples[t]
	return ok
}

// Len returns the number of triples.
func (g *Graph) Len() int { return len(g.triples) }

// Triples returns every triple in sorted order.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, 0, len(g.triples))
	for t := range g.triples {
		out = append(out, t)
	}
	slices.SortFunc(out, compareTriples)
	return out
}

// Subjects returns the distinct subjects in sorted order.
func (g *Graph) Subjects() []Term {
	seen := make(map[Term]struct{})
	for t := range g.triples {
		seen[t.S] = struct{}{}
	}
	out := make([]Term, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	slices.SortFunc(out, compareTerms)
	return out
}

// Objects returns the sorted objects of (s, p, ?).
func (g *Graph) Objects(s, p Term) []Term {
	var out []Term
	for t := range g.triples {
		if t.S == s && t.P == p {
			out = append(out, t.O)
		}
	}
	slices.SortFunc(out, compareTerms)
	return out
}

// Merge adds every triple of other to g. Prefixes bound in other are
// copied unless g already binds the prefix.
func (g *Graph) Merge(other *Graph) {
	for t := range other.triples {
		g.triples[t] = struct{}{}
	}
	for p, iri := range other.ns {
		if _, ok := g.ns[p]; !ok {
			g.ns[p] = iri
		}
	}
}

// Clone returns an independent copy of g.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		triples: make(map[Triple]struct{}, len(g.triples)),
		ns:      make(namespaces, len(g.ns)),
	}
	for t := range g.triples {
		c.triples[t] = struct{}{}
	}
	for p, iri := range g.ns {
		c.ns[p] = iri
	}
	return c
}

// bySubject groups the sorted triples of g by subject.
func (g *Graph) bySubject() [][]Triple {
	var groups [][]Triple
	for _, t := range g.Triples() {
		n := len(groups)
		if n > 0 && groups[n-1][0].S == t.S {
			groups[n-1] = append(groups[n-1], t)
			continue
		}
		groups = append(groups, []Triple{t})
	}
	return groups
}

// usedNamespaces returns the bindings that compact at least one IRI in g
// under the given local-name rule.
func (g *Graph) usedNamespaces(iris []string, compactFn func(string) (string, string, bool)) namespaces {
	used := make(namespaces)
	for _, iri := range iris {
		if p, _, ok := compactFn(iri); ok {
			used[p] = g.ns[p]
		}
	}
	return used
}

// iris returns every IRI appearing in g, including literal datatypes.
func (g *Graph) iris() []string {
	seen := make(map[string]struct{})
	for t := range g.triples {
		for _, term := range []Term{t.S, t.P, t.O} {
			switch {
			case term.IsIRI():
				seen[term.Value] = struct{}{}
			case term.IsLiteral() && term.Datatype != "":
				seen[term.Datatype] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for iri := range seen {
		out = append(out, iri)
	}
	slices.SortFunc(out, strings.Compare)
	return out
}
