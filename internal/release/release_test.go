// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package release

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/schema-builder/pkg/types"
)

func writeVersions(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "versions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	jsonVersions := `{
  "schemaversion": "29.1",
  "releaseLog": {
    "29.0": "2025-03-24",
    "29.1": "2025-06-12"
  }
}`

	tests := []struct {
		name    string
		cfg     func(t *testing.T) types.ReleaseConfig
		want    Info
		wantErr error
	}{
		{
			name: "reads current version from JSON",
			cfg: func(t *testing.T) types.ReleaseConfig {
				return types.ReleaseConfig{VersionsFile: writeVersions(t, jsonVersions)}
			},
			want: Info{Version: "29.1", Date: "2025-06-12"},
		},
		{
			name: "version override looks up its date",
			cfg: func(t *testing.T) types.ReleaseConfig {
				return types.ReleaseConfig{VersionsFile: writeVersions(t, jsonVersions), Version: "29.0"}
			},
			want: Info{Version: "29.0", Date: "2025-03-24"},
		},
		{
			name: "reads YAML",
			cfg: func(t *testing.T) types.ReleaseConfig {
				return types.ReleaseConfig{VersionsFile: writeVersions(t, "schemaversion: \"3.0\"\nreleaseLog:\n  \"3.0\": \"2024-01-01\"\n")}
			},
			want: Info{Version: "3.0", Date: "2024-01-01"},
		},
		{
			name: "full override needs no file",
			cfg: func(t *testing.T) types.ReleaseConfig {
				return types.ReleaseConfig{VersionsFile: "/nonexistent/versions.json", Version: "1.0", Date: "2020-02-02"}
			},
			want: Info{Version: "1.0", Date: "2020-02-02"},
		},
		{
			name: "unknown version has no date",
			cfg: func(t *testing.T) types.ReleaseConfig {
				return types.ReleaseConfig{VersionsFile: writeVersions(t, jsonVersions), Version: "99.0"}
			},
			wantErr: ErrNoReleaseDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.cfg(t))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "releases/"+tt.want.Version, got.Dir())
		})
	}
}

func TestLoadRejectsBadDate(t *testing.T) {
	_, err := Load(types.ReleaseConfig{Version: "1.0", Date: "June 1st"})
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(types.ReleaseConfig{VersionsFile: filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)
}
