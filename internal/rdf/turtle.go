// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rdf

import (
	"io"

	knakk "github.com/knakk/rdf"
)

// writeTurtle writes g as Turtle. Subjects are grouped in sorted order and
// the graph's prefix bindings are used for compact IRIs.
func writeTurtle(w io.Writer, g *Graph) error {
	triples, err := g.encodeTriples()
	if err != nil {
		return err
	}
	enc := knakk.NewTripleEncoder(w, knakk.Turtle)
	enc.Namespaces = g.ns.byIRI()
	for _, t := range triples {
		if err := enc.Encode(t); err != nil {
			return err
		}
	}
	return enc.Close()
}
