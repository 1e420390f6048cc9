// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package release provides the version and date stamped on release files.
package release

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/schema-builder/pkg/types"
)

// DefaultVersionsFile is read when no versions file is configured.
const DefaultVersionsFile = "versions.json"

const dateLayout = "2006-01-02"

// ErrNoReleaseDate is returned when the release log has no date for the
// selected version and none is configured.
var ErrNoReleaseDate = errors.New("no release date for version")

// versionsFile is the layout of versions.json. YAML is a superset of
// JSON, so the same decoder reads either syntax.
type versionsFile struct {
	SchemaVersion string            `yaml:"schemaversion"`
	ReleaseLog    map[string]string `yaml:"releaseLog"`
}

// Info identifies a release.
type Info struct {
	Version string
	Date    string
}

// Dir returns the release directory relative to the output root,
// e.g. "releases/29.0".
func (i Info) Dir() string { return "releases/" + i.Version }

// Load resolves the release from cfg. Configured values override the
// versions file; the file is only required for values not configured.
func Load(cfg types.ReleaseConfig) (Info, error) {
	info := Info{Version: cfg.Version, Date: cfg.Date}
	if info.Version != "" && info.Date != "" {
		return info, validate(info)
	}

	path := cfg.VersionsFile
	if path == "" {
		path = DefaultVersionsFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("reading versions file: %w", err)
	}
	var vf versionsFile
	if err := yaml.Unmarshal(data, &vf); err != nil {
		return Info{}, fmt.Errorf("parsing versions file %s: %w", path, err)
	}

	if info.Version == "" {
		info.Version = vf.SchemaVersion
	}
	if info.Version == "" {
		return Info{}, fmt.Errorf("versions file %s: missing schemaversion", path)
	}
	if info.Date == "" {
		date, ok := vf.ReleaseLog[info.Version]
		if !ok || date == "" {
			return Info{}, fmt.Errorf("%w %s", ErrNoReleaseDate, info.Version)
		}
		info.Date = date
	}
	return info, validate(info)
}

func validate(info Info) error {
	if _, err := time.Parse(dateLayout, info.Date); err != nil {
		return fmt.Errorf("release date %q for version %s: %w", info.Date, info.Version, err)
	}
	return nil
}
