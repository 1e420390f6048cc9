// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rdf

import (
	"fmt"
	"io"

	knakk "github.com/knakk/rdf"
)

// writeNTriples writes one statement per line in sorted triple order.
func writeNTriples(w io.Writer, g *Graph) error {
	triples, err := g.encodeTriples()
	if err != nil {
		return err
	}
	enc := knakk.NewTripleEncoder(w, knakk.NTriples)
	for _, t := range triples {
		if err := enc.Encode(t); err != nil {
			return err
		}
	}
	return enc.Close()
}

// writeNQuads writes every triple of g into the named graph.
func writeNQuads(w io.Writer, g *Graph, graphName string) error {
	ctx, err := knakk.NewIRI(graphName)
	if err != nil {
		return fmt.Errorf("%w: graph name %q: %v", ErrInvalidTerm, graphName, err)
	}
	triples, err := g.encodeTriples()
	if err != nil {
		return err
	}
	enc := knakk.NewQuadEncoder(w, knakk.NQuads)
	for _, t := range triples {
		if err := enc.Encode(knakk.Quad{Triple: t, Ctx: ctx}); err != nil {
			return err
		}
	}
	return enc.Close()
}
