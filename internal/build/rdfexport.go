// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/schema-builder/internal/rdf"
)

const rdfExportPrefix = "RDFExport."

// exportFormats are written by the RDFExports target, in this order.
var exportFormats = []rdf.Format{
	rdf.FormatJSONLD,
	rdf.FormatNQuads,
	rdf.FormatNTriples,
	rdf.FormatRDFXML,
	rdf.FormatTurtle,
}

// exportGraphs builds the "all" and "current" graphs on first use. "all"
// holds every triple whose subject is in the vocabulary namespace;
// "current" additionally drops terms that are part of the attic. Superseded
// terms stay in "current".
func (b *Builder) exportGraphs() (all, current *rdf.Graph) {
	if b.allGraph != nil {
		return b.allGraph, b.currentGraph
	}

	vocab := b.src.VocabURI()
	all = rdf.NewGraph()
	all.Bind("schema", vocab)
	all.Merge(b.src.Graph())
	dropped := all.Update(rdf.SubjectNotPrefixed(b.protocol + "://" + b.src.Host()))
	b.logger.Debug("removed non-vocabulary triples", "count", dropped)

	current = all.Clone()
	dropped = current.Update(rdf.SubjectHas(
		rdf.NewIRI(vocab+"isPartOf"),
		rdf.NewIRI(b.src.LayerURI("attic")),
	))
	b.logger.Debug("removed attic triples", "count", dropped)

	b.allGraph, b.currentGraph = all, current
	return all, current
}

func (b *Builder) exportRDF(_ context.Context, name string) (string, error) {
	if name == "RDFExports" {
		for _, f := range exportFormats {
			if err := b.writeRDF(f); err != nil {
				return "", err
			}
		}
		return "", nil
	}
	format := rdf.Format(strings.TrimPrefix(name, rdfExportPrefix))
	for _, f := range exportFormats {
		if f == format {
			return "", b.writeRDF(f)
		}
	}
	return "", fmt.Errorf("%w: %s", rdf.ErrUnknownFormat, name)
}

// writeRDF writes format for the current and all graphs under both
// protocols. A format is written at most once per Builder; a failed
// write leaves it to be retried.
func (b *Builder) writeRDF(format rdf.Format) error {
	if b.completed[format] {
		return nil
	}

	info, ok := rdf.GetFormatInfo(format)
	if !ok {
		return fmt.Errorf("%w: %s", rdf.ErrUnknownFormat, format)
	}
	all, current := b.exportGraphs()
	version := b.release.Version

	for _, selection := range []struct {
		name  string
		graph *rdf.Graph
	}{{"current", current}, {"all", all}} {
		var buf bytes.Buffer
		var err error
		if format == rdf.FormatNQuads {
			graphName := b.protocol + "://" + b.src.Host() + "/" + version
			err = selection.graph.SerializeQuads(&buf, graphName)
		} else {
			err = selection.graph.Serialize(&buf, format)
		}
		if err != nil {
			return fmt.Errorf("serializing %s %s: %w", selection.name, format, err)
		}

		name := func(protocol string) string {
			return fmt.Sprintf("%s/schemaorg-%s-%s%s", b.release.Dir(), selection.name, protocol, info.Extension)
		}
		if err := b.writeProtocolPair(name, buf.String()); err != nil {
			return err
		}
	}
	b.completed[format] = true
	return nil
}
