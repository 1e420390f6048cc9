// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package termsource indexes vocabulary term definitions and answers the
// structural questions exporters ask: hierarchy, property domains, counts,
// and the RDF graph of the whole vocabulary.
package termsource

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strings"

	"github.com/pdiddy/schema-builder/pkg/types"
)

// dataTypeRoot is the id of the class every datatype descends from.
const dataTypeRoot = "DataType"

// ErrUnknownTerm is returned when a term id is not in the source.
var ErrUnknownTerm = errors.New("unknown term")

// Source is an immutable index over a vocabulary's terms.
type Source struct {
	vocabURI string
	protocol string
	host     string

	terms   map[string]*types.Term
	ids     []string
	domains map[string][]string
	members map[string][]string
}

// New indexes terms under the vocabulary namespace vocabURI. A term that
// appears more than once is merged: list fields are unioned and non-empty
// scalars from later definitions win. Subs are derived from Supers.
func New(terms []types.Term, vocabURI string) (*Source, error) {
	u, err := url.Parse(vocabURI)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("vocabulary URI %q must be an absolute http(s) URI", vocabURI)
	}

	s := &Source{
		vocabURI: vocabURI,
		protocol: u.Scheme,
		host:     u.Host,
		terms:    make(map[string]*types.Term, len(terms)),
		domains:  make(map[string][]string),
		members:  make(map[string][]string),
	}

	for i := range terms {
		t := terms[i]
		if t.ID == "" {
			return nil, fmt.Errorf("term %d (%q): missing id", i, t.Label)
		}
		if existing, ok := s.terms[t.ID]; ok {
			mergeTerm(existing, &t)
			continue
		}
		t.Subs = nil
		cloneLists(&t)
		s.terms[t.ID] = &t
		s.ids = append(s.ids, t.ID)
	}
	sort.Strings(s.ids)

	for _, id := range s.ids {
		t := s.terms[id]
		if !validType(t.Type) {
			return nil, fmt.Errorf("term %s: unknown type %q", id, t.Type)
		}
		for _, sup := range t.Supers {
			if parent, ok := s.terms[sup]; ok {
				parent.Subs = appendUnique(parent.Subs, id)
			}
		}
		if t.Type == types.TermEnumerationValue && t.Enumeration != "" {
			s.members[t.Enumeration] = append(s.members[t.Enumeration], id)
		}
		if t.IsProperty() {
			for _, d := range t.DomainIncludes {
				s.domains[d] = append(s.domains[d], id)
			}
		}
	}
	for _, t := range s.terms {
		sort.Strings(t.Subs)
	}

	return s, nil
}

func validType(tt types.TermType) bool {
	switch tt {
	case types.TermClass, types.TermProperty, types.TermDataType,
		types.TermEnumeration, types.TermEnumerationValue, types.TermReference:
		return true
	}
	return false
}

func mergeTerm(dst, src *types.Term) {
	setIf := func(d *string, v string) {
		if v != "" {
			*d = v
		}
	}
	if src.Type != "" {
		dst.Type = src.Type
	}
	setIf(&dst.Label, src.Label)
	setIf(&dst.Comment, src.Comment)
	setIf(&dst.Enumeration, src.Enumeration)
	setIf(&dst.InverseOf, src.InverseOf)
	setIf(&dst.Layer, src.Layer)

	dst.Supers = appendUnique(dst.Supers, src.Supers...)
	dst.DomainIncludes = appendUnique(dst.DomainIncludes, src.DomainIncludes...)
	dst.RangeIncludes = appendUnique(dst.RangeIncludes, src.RangeIncludes...)
	dst.Supersedes = appendUnique(dst.Supersedes, src.Supersedes...)
	dst.SupersededBy = appendUnique(dst.SupersededBy, src.SupersededBy...)
	dst.Equivalents = appendUnique(dst.Equivalents, src.Equivalents...)
}

// cloneLists detaches t's slices from the caller's backing arrays.
func cloneLists(t *types.Term) {
	t.Supers = slices.Clone(t.Supers)
	t.DomainIncludes = slices.Clone(t.DomainIncludes)
	t.RangeIncludes = slices.Clone(t.RangeIncludes)
	t.Supersedes = slices.Clone(t.Supersedes)
	t.SupersededBy = slices.Clone(t.SupersededBy)
	t.Equivalents = slices.Clone(t.Equivalents)
}

func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(list, v) {
			list = append(list, v)
		}
	}
	return list
}

// VocabURI returns the vocabulary namespace IRI.
func (s *Source) VocabURI() string { return s.vocabURI }

// Protocol returns the scheme of the vocabulary URI ("http" or "https").
func (s *Source) Protocol() string { return s.protocol }

// Host returns the host of the vocabulary URI ("schema.org").
func (s *Source) Host() string { return s.host }

// URI returns the IRI of a term id. Absolute ids are returned unchanged.
func (s *Source) URI(id string) string {
	if types.IsAbsoluteIRI(id) {
		return id
	}
	return s.vocabURI + id
}

// LayerURI returns the IRI of an extension layer, e.g.
// "https://attic.schema.org".
func (s *Source) LayerURI(layer string) string {
	return s.protocol + "://" + layer + "." + s.host
}

// Term returns the term with the given id.
func (s *Source) Term(id string) (*types.Term, error) {
	t, ok := s.terms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTerm, id)
	}
	return t, nil
}

// AllTerms returns every term sorted by id.
func (s *Source) AllTerms() []*types.Term {
	out := make([]*types.Term, len(s.ids))
	for i, id := range s.ids {
		out[i] = s.terms[id]
	}
	return out
}

// Members returns the sorted enumeration values of an enumeration.
func (s *Source) Members(enumID string) []string {
	out := slices.Clone(s.members[enumID])
	sort.Strings(out)
	return out
}

// Ancestors returns id followed by every transitive super of id, breadth
// first, without repeats.
func (s *Source) Ancestors(id string) []string {
	seen := map[string]bool{id: true}
	out := []string{id}
	for i := 0; i < len(out); i++ {
		t, ok := s.terms[out[i]]
		if !ok {
			continue
		}
		for _, sup := range t.Supers {
			if !seen[sup] {
				seen[sup] = true
				out = append(out, sup)
			}
		}
	}
	return out
}

// Properties returns the sorted ids of the properties usable on typeID:
// those whose domainIncludes names the type or one of its ancestors.
func (s *Source) Properties(typeID string) []string {
	set := make(map[string]bool)
	for _, a := range s.Ancestors(typeID) {
		for _, p := range s.domains[a] {
			set[p] = true
		}
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// IsDataType reports whether id is a datatype: a DataType term or a class
// descending from one.
func (s *Source) IsDataType(id string) bool {
	for _, a := range s.Ancestors(id) {
		if a == dataTypeRoot {
			return true
		}
		if t, ok := s.terms[a]; ok && t.Type == types.TermDataType {
			return true
		}
	}
	return false
}

// InVocabulary reports whether t is a vocabulary term, as opposed to an
// external reference.
func InVocabulary(t *types.Term) bool {
	return t.Type != types.TermReference && !t.External()
}

// Counts returns the number of live (non-retired) vocabulary terms by kind.
// Classes descending from DataType are counted as datatypes.
func (s *Source) Counts() types.TermCounts {
	var c types.TermCounts
	for _, t := range s.AllTerms() {
		if !InVocabulary(t) || t.Retired() {
			continue
		}
		switch t.Type {
		case types.TermClass, types.TermDataType:
			if s.IsDataType(t.ID) {
				c.DataTypes++
			} else {
				c.Types++
			}
		case types.TermProperty:
			c.Properties++
		case types.TermEnumeration:
			c.Enumerations++
		case types.TermEnumerationValue:
			c.EnumerationMembers++
		}
	}
	c.All = c.Types + c.Properties + c.DataTypes + c.Enumerations + c.EnumerationMembers
	return c
}

// WithProtocol returns iri with the vocabulary host switched to protocol.
func (s *Source) WithProtocol(iri, protocol string) string {
	for _, p := range []string{"http", "https"} {
		prefix := p + "://" + s.host
		if strings.HasPrefix(iri, prefix) {
			return protocol + "://" + s.host + iri[len(prefix):]
		}
	}
	return iri
}
