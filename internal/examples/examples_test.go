// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package examples

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/schema-builder/pkg/types"
)

func TestLoadFilesSortsByID(t *testing.T) {
	exs, err := LoadFiles([]string{"testdata/*.yaml"})
	require.NoError(t, err)
	require.Len(t, exs, 2)
	assert.Equal(t, "eg-0001", exs[0].ID)
	assert.Equal(t, []string{"Organization", "member"}, exs[1].Terms)
}

func TestSerialise(t *testing.T) {
	got := Serialise([]types.Example{{
		ID:     "eg-0009",
		Terms:  []string{"Person", "name"},
		Pre:    "Jane\n",
		JSONLD: `{"name": "Jane"}`,
	}})

	want := `TYPES: #eg-0009 Person, name

PRE-MARKUP:
Jane

MICRODATA:

RDFA:

JSON:
{"name": "Jane"}

`
	assert.Equal(t, want, got)
}

func TestSerialiseConcatenates(t *testing.T) {
	exs, err := LoadFiles([]string{"testdata/*.yaml"})
	require.NoError(t, err)

	out := Serialise(exs)
	assert.Equal(t, 2, strings.Count(out, "TYPES: "))
	assert.Less(t, strings.Index(out, "#eg-0001"), strings.Index(out, "#eg-0002"))
}
