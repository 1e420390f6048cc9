// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// TermType classifies a vocabulary term.
type TermType string

const (
	TermClass            TermType = "Class"
	TermProperty         TermType = "Property"
	TermDataType         TermType = "DataType"
	TermEnumeration      TermType = "Enumeration"
	TermEnumerationValue TermType = "EnumerationValue"
	TermReference        TermType = "Reference"
)

// Extension layers a term can belong to. LayerAttic marks retired terms.
const (
	LayerAttic         = "attic"
	LayerAuto          = "auto"
	LayerBib           = "bib"
	LayerHealthLifesci = "health-lifesci"
	LayerMeta          = "meta"
	LayerPending       = "pending"
)

// Layers lists every extension layer, in the order used for host rewrites.
var Layers = []string{LayerAttic, LayerAuto, LayerBib, LayerHealthLifesci, LayerMeta, LayerPending}

// Term is a single vocabulary definition: a type, property, datatype,
// enumeration, enumeration member, or a reference to an external IRI.
type Term struct {
	// ID is the local name ("Thing", "name") or an absolute IRI for
	// external references.
	ID string `json:"id" yaml:"id"`

	Type TermType `json:"type" yaml:"type"`

	Label   string `json:"label" yaml:"label"`
	Comment string `json:"comment" yaml:"comment"`

	// Supers holds subClassOf targets for types and subPropertyOf targets
	// for properties.
	Supers []string `json:"supers,omitempty" yaml:"supers,omitempty"`

	// Subs is derived from Supers across the whole term set.
	Subs []string `json:"subs,omitempty" yaml:"-"`

	// Enumeration is the parent enumeration of an enumeration value.
	Enumeration string `json:"enumeration,omitempty" yaml:"enumeration,omitempty"`

	DomainIncludes []string `json:"domainIncludes,omitempty" yaml:"domainIncludes,omitempty"`
	RangeIncludes  []string `json:"rangeIncludes,omitempty" yaml:"rangeIncludes,omitempty"`
	InverseOf      string   `json:"inverseOf,omitempty" yaml:"inverseOf,omitempty"`

	Supersedes   []string `json:"supersedes,omitempty" yaml:"supersedes,omitempty"`
	SupersededBy []string `json:"supersededBy,omitempty" yaml:"supersededBy,omitempty"`

	// Equivalents are absolute IRIs of equivalent classes or properties in
	// other vocabularies.
	Equivalents []string `json:"equivalents,omitempty" yaml:"equivalents,omitempty"`

	// Layer is the extension the term is part of; empty for core terms.
	Layer string `json:"layer,omitempty" yaml:"layer,omitempty"`
}

// Retired reports whether the term has been moved to the attic.
func (t *Term) Retired() bool { return t.Layer == LayerAttic }

// Pending reports whether the term is in the pending extension.
func (t *Term) Pending() bool { return t.Layer == LayerPending }

// External reports whether the term id is an absolute IRI rather than a
// name inside the vocabulary.
func (t *Term) External() bool { return IsAbsoluteIRI(t.ID) }

// IsProperty reports whether the term is a property.
func (t *Term) IsProperty() bool { return t.Type == TermProperty }

// IsAbsoluteIRI reports whether id starts with an http or https scheme.
func IsAbsoluteIRI(id string) bool {
	return strings.HasPrefix(id, "http://") || strings.HasPrefix(id, "https://")
}

// TermFile is the on-disk layout of a term definition file.
type TermFile struct {
	Terms []Term `json:"terms" yaml:"terms"`
}

// TermCounts holds the number of live vocabulary terms by kind.
type TermCounts struct {
	Types              int `json:"types"`
	Properties         int `json:"properties"`
	DataTypes          int `json:"datatypes"`
	Enumerations       int `json:"enumerations"`
	EnumerationMembers int `json:"enumerationmembers"`
	All                int `json:"all"`
}
