// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package termsource

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/schema-builder/pkg/types"
)

// ExpandPatterns resolves doublestar glob patterns ("data/**/*.yaml") to a
// sorted, de-duplicated file list. A pattern without glob characters that
// names a missing file is an error.
func ExpandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expanding pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 && !containsGlob(pattern) {
			return nil, fmt.Errorf("term file %s: %w", pattern, os.ErrNotExist)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

func containsGlob(pattern string) bool {
	for _, r := range pattern {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// LoadFile reads a single term definition file.
func LoadFile(path string) ([]types.Term, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading term file: %w", err)
	}
	var tf types.TermFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing term file %s: %w", path, err)
	}
	return tf.Terms, nil
}

// LoadFiles reads every term file matched by patterns, in file order.
func LoadFiles(patterns []string) ([]types.Term, error) {
	files, err := ExpandPatterns(patterns)
	if err != nil {
		return nil, err
	}
	var terms []types.Term
	for _, f := range files {
		ts, err := LoadFile(f)
		if err != nil {
			return nil, err
		}
		terms = append(terms, ts...)
	}
	return terms, nil
}
