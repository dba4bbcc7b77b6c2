package heatmap

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePoints(t *testing.T, path string, points []Point) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, points))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.json")
	writePoints(t, path, []Point{{Z: 1}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := Loader{}.Watch(ctx, path)
	require.NoError(t, err)

	want := []Point{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}}
	writePoints(t, path, want)

	select {
	case got := <-updates:
		assert.Equal(t, want, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}

	cancel()
	select {
	case _, ok := <-updates:
		for ok {
			_, ok = <-updates
		}
	case <-time.After(5 * time.Second):
		t.Fatal("updates not closed after cancel")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	_, err := Loader{}.Watch(context.Background(), filepath.Join(t.TempDir(), "gone", "points.json"))
	assert.Error(t, err)
}

func TestDeliverKeepsLatest(t *testing.T) {
	out := make(chan []Point, 1)
	deliver(out, []Point{{Z: 1}})
	deliver(out, []Point{{Z: 2}})

	assert.Equal(t, []Point{{Z: 2}}, <-out)
}
