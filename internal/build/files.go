// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"fmt"
	"os"
	"path/filepath"
)

// absolutePath resolves rel under the output directory and creates its
// parent directory.
func (b *Builder) absolutePath(rel string) (string, error) {
	path := filepath.Join(b.cfg.OutputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", rel, err)
	}
	return path, nil
}

// writeFile writes content to rel under the output directory and returns
// the path written.
func (b *Builder) writeFile(rel, content string) (string, error) {
	path, err := b.absolutePath(rel)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// writeProtocolPair writes content under the primary protocol's file name
// and its protocol-swapped copy under the alternate protocol's. name maps
// a protocol to a relative path.
func (b *Builder) writeProtocolPair(name func(protocol string) string, content string) error {
	path, err := b.writeFile(name(b.protocol), content)
	if err != nil {
		return err
	}
	altPath, err := b.writeFile(name(b.altProtocol), ProtocolSwap(content, b.protocol, b.altProtocol, b.src.Host()))
	if err != nil {
		return err
	}
	b.logger.Info("exported", "path", path, "alt_path", altPath)
	return nil
}
