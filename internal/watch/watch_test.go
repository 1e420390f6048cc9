// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseDirs(t *testing.T) {
	got := BaseDirs([]string{
		"data/**/*.yaml",
		"data/ext/*.yaml",
		"examples/people.yaml",
		"*.yaml",
		"data/**/*.yaml",
	})
	assert.Equal(t, []string{".", "data", "data/ext", "examples"}, got)
}

func TestMatches(t *testing.T) {
	w := &Watcher{patterns: []string{"data/**/*.yaml", "examples/people.yaml"}}
	assert.True(t, w.matches("data/core.yaml"))
	assert.True(t, w.matches("data/ext/attic.yaml"))
	assert.True(t, w.matches("examples/people.yaml"))
	assert.False(t, w.matches("data/notes.txt"))
	assert.False(t, w.matches("examples/other.yaml"))
}

func TestRunRebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ext"), 0o755))

	var builds atomic.Int32
	rebuilt := make(chan struct{}, 10)
	rebuild := func(context.Context) error {
		builds.Add(1)
		rebuilt <- struct{}{}
		return nil
	}

	w, err := New([]string{filepath.Join(dir, "**", "*.yaml")}, 50*time.Millisecond, rebuild, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Several writes within the debounce interval produce one rebuild.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ext", "terms.yaml"), []byte("terms: []\n"), 0o644))
	}

	select {
	case <-rebuilt:
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after change")
	}

	// Files that match no pattern are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), builds.Load())

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
