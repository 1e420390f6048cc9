// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Format names a serialization.
type Format string

const (
	FormatJSONLD   Format = "json-ld"
	FormatTurtle   Format = "turtle"
	FormatNTriples Format = "nt"
	FormatNQuads   Format = "nquads"
	FormatRDFXML   Format = "rdf"
	FormatXML      Format = "xml"
)

// ErrUnknownFormat is returned for a format with no serializer.
var ErrUnknownFormat = errors.New("unknown RDF format")

// FormatInfo provides metadata about a serialization format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
	},
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
	FormatNQuads: {
		Name:        FormatNQuads,
		MIMEType:    "application/n-quads",
		Extension:   ".nq",
		Description: "N-Quads - Line-based RDF dataset format",
	},
	FormatRDFXML: {
		Name:        FormatRDFXML,
		MIMEType:    "application/rdf+xml",
		Extension:   ".rdf",
		Description: "RDF/XML - pretty printed with typed node elements",
	},
	FormatXML: {
		Name:        FormatXML,
		MIMEType:    "application/rdf+xml",
		Extension:   ".xml",
		Description: "RDF/XML",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// Serialize writes g to w in the given format. N-Quads output places every
// triple in the default graph; use SerializeQuads to name the graph.
func (g *Graph) Serialize(w io.Writer, format Format) error {
	switch format {
	case FormatTurtle:
		return writeTurtle(w, g)
	case FormatNTriples, FormatNQuads:
		return writeNTriples(w, g)
	case FormatRDFXML, FormatXML:
		return writeRDFXML(w, g)
	case FormatJSONLD:
		return writeJSONLD(w, g)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// SerializeQuads writes g as N-Quads with every triple in the named graph.
func (g *Graph) SerializeQuads(w io.Writer, graphName string) error {
	return writeNQuads(w, g, graphName)
}

// String serializes g to a string.
func (g *Graph) String(format Format) (string, error) {
	var buf bytes.Buffer
	if err := g.Serialize(&buf, format); err != nil {
		return "", err
	}
	return buf.String(), nil
}
