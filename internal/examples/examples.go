// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package examples loads markup examples and serialises them in the
// block text format used for the published examples file.
package examples

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/schema-builder/internal/termsource"
	"github.com/pdiddy/schema-builder/pkg/types"
)

// LoadFiles reads every example file matched by patterns. Examples are
// returned sorted by id so output does not depend on file layout.
func LoadFiles(patterns []string) ([]types.Example, error) {
	files, err := termsource.ExpandPatterns(patterns)
	if err != nil {
		return nil, err
	}
	var all []types.Example
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading example file: %w", err)
		}
		var ef types.ExampleFile
		if err := yaml.Unmarshal(data, &ef); err != nil {
			return nil, fmt.Errorf("parsing example file %s: %w", f, err)
		}
		all = append(all, ef.Examples...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

// Serialise renders examples one after another, each as
//
//	TYPES: #id Term1, Term2
//
//	PRE-MARKUP:
//	...
//
//	MICRODATA:
//	...
//
//	RDFA:
//	...
//
//	JSON:
//	...
func Serialise(examples []types.Example) string {
	var sb strings.Builder
	for _, ex := range examples {
		sb.WriteString("TYPES: ")
		if ex.ID != "" {
			sb.WriteString("#" + ex.ID + " ")
		}
		sb.WriteString(strings.Join(ex.Terms, ", "))
		sb.WriteString("\n\n")
		writeSection(&sb, "PRE-MARKUP", ex.Pre)
		writeSection(&sb, "MICRODATA", ex.Microdata)
		writeSection(&sb, "RDFA", ex.RDFa)
		writeSection(&sb, "JSON", ex.JSONLD)
	}
	return sb.String()
}

func writeSection(sb *strings.Builder, name, body string) {
	sb.WriteString(name + ":\n")
	if body = strings.TrimSpace(body); body != "" {
		sb.WriteString(body + "\n")
	}
	sb.WriteString("\n")
}
