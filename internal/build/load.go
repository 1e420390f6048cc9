// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pdiddy/schema-builder/internal/catalog"
	"github.com/pdiddy/schema-builder/internal/examples"
	"github.com/pdiddy/schema-builder/internal/release"
	"github.com/pdiddy/schema-builder/internal/termsource"
	"github.com/pdiddy/schema-builder/pkg/types"
)

// Load reads terms, examples and release information for cfg and returns a
// Builder over them. Terms come from the catalog when one is configured,
// otherwise from the term files.
func Load(ctx context.Context, cfg types.BuildConfig, logger *slog.Logger) (*Builder, error) {
	if logger == nil {
		logger = slog.Default()
	}

	terms, err := loadTerms(ctx, cfg)
	if err != nil {
		return nil, err
	}
	src, err := termsource.New(terms, cfg.VocabURI)
	if err != nil {
		return nil, fmt.Errorf("indexing terms: %w", err)
	}

	var exs []types.Example
	if len(cfg.ExampleFiles) > 0 {
		exs, err = examples.LoadFiles(cfg.ExampleFiles)
		if err != nil {
			return nil, fmt.Errorf("loading examples: %w", err)
		}
	}

	rel, err := release.Load(cfg.Release)
	if err != nil {
		return nil, err
	}

	logger.Info("loaded vocabulary",
		"terms", len(src.AllTerms()),
		"examples", len(exs),
		"version", rel.Version)

	return New(cfg, src, rel, exs, logger), nil
}

func loadTerms(ctx context.Context, cfg types.BuildConfig) ([]types.Term, error) {
	if cfg.Catalog != "" {
		store, err := catalog.NewStore(types.CatalogConfig{Path: cfg.Catalog})
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Terms(ctx)
	}
	if len(cfg.TermFiles) == 0 {
		return nil, fmt.Errorf("no term files configured")
	}
	terms, err := termsource.LoadFiles(cfg.TermFiles)
	if err != nil {
		return nil, fmt.Errorf("loading terms: %w", err)
	}
	return terms, nil
}
