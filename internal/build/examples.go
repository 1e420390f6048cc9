// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"context"

	"github.com/pdiddy/schema-builder/internal/examples"
)

func (b *Builder) examplesFile(_ context.Context, _ string) (string, error) {
	return examples.Serialise(b.examples), nil
}
