// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/schema-builder/pkg/types"
)

const exportLimit = 1000000

// ExportYAML writes the catalog, or the subset matched by opts, to path as
// a term file that can be imported again.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions, path string) error {
	tf, err := s.exportTerms(ctx, opts)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(tf)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return writeExport(path, data)
}

// ExportJSON writes the catalog, or the subset matched by opts, to path.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions, path string) error {
	tf, err := s.exportTerms(ctx, opts)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return writeExport(path, data)
}

func (s *Store) exportTerms(ctx context.Context, opts QueryOptions) (types.TermFile, error) {
	opts.MaxResults = exportLimit
	results, err := s.Retrieve(ctx, opts)
	if err != nil {
		return types.TermFile{}, fmt.Errorf("querying for export: %w", err)
	}
	tf := types.TermFile{Terms: make([]types.Term, len(results))}
	for i, r := range results {
		tf.Terms[i] = r.Term
		tf.Terms[i].Subs = nil
	}
	return tf, nil
}

func writeExport(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
