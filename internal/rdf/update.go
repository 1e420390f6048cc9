// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rdf

import "strings"

// Pattern selects subjects for deletion. It is evaluated against the
// graph as it stands when the pattern is applied.
type Pattern func(g *Graph, subject Term) bool

// SubjectNotPrefixed matches subjects whose string form does not start
// with prefix. Blank node subjects never match, as str() is undefined for
// them. It is the equivalent of
//
//	DELETE {?s ?p ?o} WHERE {?s ?p ?o . FILTER (!strstarts(str(?s), prefix))}
func SubjectNotPrefixed(prefix string) Pattern {
	return func(_ *Graph, s Term) bool {
		return s.IsIRI() && !strings.HasPrefix(s.Value, prefix)
	}
}

// SubjectHas matches subjects carrying the statement (s, p, o). It is the
// equivalent of
//
//	DELETE {?s ?p ?o} WHERE {?s ?p ?o ; p o .}
func SubjectHas(p, o Term) Pattern {
	return func(g *Graph, s Term) bool {
		return g.Has(Triple{S: s, P: p, O: o})
	}
}

// Update applies each pattern in turn, removing every triple whose subject
// the pattern matches. It returns the number of triples removed.
func (g *Graph) Update(patterns ...Pattern) int {
	removed := 0
	for _, match := range patterns {
		doomed := make(map[Term]bool)
		for _, s := range g.Subjects() {
			if match(g, s) {
				doomed[s] = true
			}
		}
		for t := range g.triples {
			if doomed[t.S] {
				delete(g.triples, t)
				removed++
			}
		}
	}
	return removed
}
