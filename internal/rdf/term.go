// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rdf is a small in-memory RDF graph: triple storage with set
// semantics, pattern-based delete updates, and deterministic serializers
// for Turtle, N-Triples, N-Quads, RDF/XML, and JSON-LD.
package rdf

import (
	"strings"
)

// Kind distinguishes the three kinds of RDF term.
type Kind int

const (
	KindIRI Kind = iota
	KindBlank
	KindLiteral
)

// Term is an RDF term. Term values are comparable and can be used as map keys.
type Term struct {
	Kind Kind

	// Value is the IRI, the blank node label, or the literal lexical form.
	Value string

	// Lang is the language tag of a literal.
	Lang string

	// Datatype is the datatype IRI of a typed literal. Plain and language
	// tagged literals leave it empty.
	Datatype string
}

// NewIRI returns an IRI term.
func NewIRI(iri string) Term { return Term{Kind: KindIRI, Value: iri} }

// NewBlank returns a blank node with the given label.
func NewBlank(label string) Term { return Term{Kind: KindBlank, Value: label} }

// NewLiteral returns a plain literal.
func NewLiteral(v string) Term { return Term{Kind: KindLiteral, Value: v} }

// NewLangLiteral returns a language tagged literal.
func NewLangLiteral(v, lang string) Term { return Term{Kind: KindLiteral, Value: v, Lang: lang} }

// NewTypedLiteral returns a literal with an explicit datatype. An
// xsd:string datatype is normalized to a plain literal.
func NewTypedLiteral(v, datatype string) Term {
	if datatype == XSD+"string" {
		datatype = ""
	}
	return Term{Kind: KindLiteral, Value: v, Datatype: datatype}
}

func (t Term) IsIRI() bool     { return t.Kind == KindIRI }
func (t Term) IsBlank() bool   { return t.Kind == KindBlank }
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }

// String returns the term in N-Triples syntax.
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return "_:" + t.Value
	default:
		s := `"` + escapeLiteral(t.Value) + `"`
		if t.Lang != "" {
			return s + "@" + t.Lang
		}
		if t.Datatype != "" {
			return s + "^^<" + t.Datatype + ">"
		}
		return s
	}
}

// compareTerms orders IRIs before blank nodes before literals, then by value.
func compareTerms(a, b Term) int {
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}
	if c := strings.Compare(a.Value, b.Value); c != 0 {
		return c
	}
	if c := strings.Compare(a.Datatype, b.Datatype); c != 0 {
		return c
	}
	return strings.Compare(a.Lang, b.Lang)
}

// Triple is a single subject, predicate, object statement.
type Triple struct {
	S, P, O Term
}

func compareTriples(a, b Triple) int {
	if c := compareTerms(a.S, b.S); c != 0 {
		return c
	}
	if c := compareTerms(a.P, b.P); c != 0 {
		return c
	}
	return compareTerms(a.O, b.O)
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func escapeLiteral(s string) string {
	return literalEscaper.Replace(s)
}
