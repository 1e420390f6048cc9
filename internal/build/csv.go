// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/schema-builder/internal/termsource"
	"github.com/pdiddy/schema-builder/pkg/types"
)

var typeFields = []string{
	"id",
	"label",
	"comment",
	"subTypeOf",
	"enumerationtype",
	"equivalentClass",
	"properties",
	"subTypes",
	"supersedes",
	"supersededBy",
	"isPartOf",
}

var propertyFields = []string{
	"id",
	"label",
	"comment",
	"subPropertyOf",
	"equivalentProperty",
	"subproperties",
	"domainIncludes",
	"rangeIncludes",
	"inverseOf",
	"supersedes",
	"supersededBy",
	"isPartOf",
}

type csvRow map[string]string

// exportCSV writes the types and properties tables for the current and all
// term sets under both protocols.
func (b *Builder) exportCSV(_ context.Context, _ string) (string, error) {
	var typesCurrent, typesAll, propsCurrent, propsAll []csvRow

	for _, t := range b.src.AllTerms() {
		if !termsource.InVocabulary(t) {
			continue
		}
		row := csvRow{
			"id":           b.src.URI(t.ID),
			"label":        t.Label,
			"comment":      t.Comment,
			"supersedes":   b.uriList(t.Supersedes),
			"supersededBy": b.uriList(t.SupersededBy),
		}
		if t.Layer != "" {
			row["isPartOf"] = b.src.LayerURI(t.Layer)
		}

		if t.IsProperty() {
			row["subPropertyOf"] = b.uriList(t.Supers)
			row["equivalentProperty"] = strings.Join(t.Equivalents, ", ")
			row["subproperties"] = b.uriList(t.Subs)
			row["domainIncludes"] = b.uriList(t.DomainIncludes)
			row["rangeIncludes"] = b.uriList(t.RangeIncludes)
			if t.InverseOf != "" {
				row["inverseOf"] = b.src.URI(t.InverseOf)
			}
			propsAll = append(propsAll, row)
			if !t.Retired() {
				propsCurrent = append(propsCurrent, row)
			}
			continue
		}

		row["subTypeOf"] = b.uriList(t.Supers)
		if t.Type == types.TermEnumerationValue {
			if t.Enumeration != "" {
				row["enumerationtype"] = b.src.URI(t.Enumeration)
			}
		} else {
			row["properties"] = b.uriList(b.src.Properties(t.ID))
		}
		row["equivalentClass"] = strings.Join(t.Equivalents, ", ")
		row["subTypes"] = b.uriList(t.Subs)
		typesAll = append(typesAll, row)
		if !t.Retired() {
			typesCurrent = append(typesCurrent, row)
		}
	}

	for _, out := range []struct {
		kind, selection string
		rows            []csvRow
		fields          []string
	}{
		{"properties", "current", propsCurrent, propertyFields},
		{"properties", "all", propsAll, propertyFields},
		{"types", "current", typesCurrent, typeFields},
		{"types", "all", typesAll, typeFields},
	} {
		name := func(protocol string) string {
			return fmt.Sprintf("%s/schemaorg-%s-%s-%s.csv", b.release.Dir(), out.selection, protocol, out.kind)
		}
		b.logger.Debug("writing csv", "kind", out.kind, "selection", out.selection, "rows", len(out.rows))
		if err := b.writeProtocolPair(name, quoteAllCSV(out.fields, out.rows)); err != nil {
			return "", err
		}
	}
	return "", nil
}

// uriList expands ids to vocabulary IRIs and joins them with ", ".
func (b *Builder) uriList(ids []string) string {
	uris := make([]string, len(ids))
	for i, id := range ids {
		uris[i] = b.src.URI(id)
	}
	return strings.Join(uris, ", ")
}

// quoteAllCSV renders a header and rows with every field quoted and "\n"
// line endings. Missing fields are empty.
func quoteAllCSV(fields []string, rows []csvRow) string {
	var sb strings.Builder
	writeRecord := func(values func(i int) string) {
		for i := range fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('"')
			sb.WriteString(strings.ReplaceAll(values(i), `"`, `""`))
			sb.WriteByte('"')
		}
		sb.WriteByte('\n')
	}
	writeRecord(func(i int) string { return fields[i] })
	for _, row := range rows {
		writeRecord(func(i int) string { return row[fields[i]] })
	}
	return sb.String()
}
