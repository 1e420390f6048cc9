// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pdiddy/schema-builder/pkg/types"
)

type countsDoc struct {
	types.TermCounts
	SchemaOrgVersion string `json:"schemaorgversion"`
}

const jsonpTemplate = `
    COUNTS = '%s';

    insertschemacounts ( COUNTS );
    `

func (b *Builder) jsonCounts(_ context.Context, _ string) (string, error) {
	data, err := json.Marshal(countsDoc{TermCounts: b.src.Counts(), SchemaOrgVersion: b.release.Version})
	if err != nil {
		return "", fmt.Errorf("encoding counts: %w", err)
	}
	return string(data), nil
}

func (b *Builder) jsonpCounts(ctx context.Context, name string) (string, error) {
	counts, err := b.jsonCounts(ctx, name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(jsonpTemplate, counts), nil
}
