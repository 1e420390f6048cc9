// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rdf

import (
	"errors"
	"fmt"
	"io"
	"strings"

	knakk "github.com/knakk/rdf"
)

// ErrInvalidTerm is returned when a triple cannot be encoded, such as a
// literal in subject position.
var ErrInvalidTerm = errors.New("invalid RDF term")

// encodeTerm converts t for the knakk/rdf encoders.
func encodeTerm(t Term) (knakk.Term, error) {
	var out knakk.Term
	var err error
	switch {
	case t.IsIRI():
		out, err = knakk.NewIRI(t.Value)
	case t.IsBlank():
		out, err = knakk.NewBlank(t.Value)
	case t.Lang != "":
		out, err = knakk.NewLangLiteral(t.Value, t.Lang)
	case t.Datatype != "":
		var dt knakk.IRI
		if dt, err = knakk.NewIRI(t.Datatype); err == nil {
			out = knakk.NewTypedLiteral(t.Value, dt)
		}
	default:
		out, err = knakk.NewLiteral(t.Value)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTerm, t, err)
	}
	return out, nil
}

func encodeTriple(t Triple) (knakk.Triple, error) {
	var out knakk.Triple
	s, err := encodeTerm(t.S)
	if err != nil {
		return out, err
	}
	p, err := encodeTerm(t.P)
	if err != nil {
		return out, err
	}
	o, err := encodeTerm(t.O)
	if err != nil {
		return out, err
	}

	var ok bool
	if out.Subj, ok = s.(knakk.Subject); !ok {
		return out, fmt.Errorf("%w: subject %s", ErrInvalidTerm, t.S)
	}
	if out.Pred, ok = p.(knakk.Predicate); !ok {
		return out, fmt.Errorf("%w: predicate %s", ErrInvalidTerm, t.P)
	}
	if out.Obj, ok = o.(knakk.Object); !ok {
		return out, fmt.Errorf("%w: object %s", ErrInvalidTerm, t.O)
	}
	return out, nil
}

// encodeTriples returns the triples of g in sorted order.
func (g *Graph) encodeTriples() ([]knakk.Triple, error) {
	triples := g.Triples()
	out := make([]knakk.Triple, len(triples))
	for i, t := range triples {
		kt, err := encodeTriple(t)
		if err != nil {
			return nil, err
		}
		out[i] = kt
	}
	return out, nil
}

func decodeTerm(t knakk.Term) (Term, error) {
	switch v := t.(type) {
	case knakk.IRI:
		return NewIRI(v.String()), nil
	case knakk.Blank:
		return NewBlank(strings.TrimPrefix(v.String(), "_:")), nil
	case knakk.Literal:
		if v.Lang() != "" {
			return NewLangLiteral(v.String(), v.Lang()), nil
		}
		return NewTypedLiteral(v.String(), v.DataType.String()), nil
	default:
		return Term{}, fmt.Errorf("%w: %v", ErrInvalidTerm, t)
	}
}

func (g *Graph) addDecoded(t knakk.Triple) error {
	s, err := decodeTerm(t.Subj)
	if err != nil {
		return err
	}
	p, err := decodeTerm(t.Pred)
	if err != nil {
		return err
	}
	o, err := decodeTerm(t.Obj)
	if err != nil {
		return err
	}
	g.Add(s, p, o)
	return nil
}

// Parse reads a document in the given format into a new graph. Graph names
// in N-Quads input are dropped.
func Parse(r io.Reader, format Format) (*Graph, error) {
	g := NewGraph()
	switch format {
	case FormatJSONLD:
		return g, parseJSONLD(r, g)
	case FormatNQuads:
		quads, err := knakk.NewQuadDecoder(r, knakk.NQuads).DecodeAll()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", format, err)
		}
		for _, q := range quads {
			if err := g.addDecoded(q.Triple); err != nil {
				return nil, err
			}
		}
		return g, nil
	}

	var kf knakk.Format
	switch format {
	case FormatTurtle:
		kf = knakk.Turtle
	case FormatNTriples:
		kf = knakk.NTriples
	case FormatRDFXML, FormatXML:
		kf = knakk.RDFXML
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	triples, err := knakk.NewTripleDecoder(r, kf).DecodeAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", format, err)
	}
	for _, t := range triples {
		if err := g.addDecoded(t); err != nil {
			return nil, err
		}
	}
	return g, nil
}
