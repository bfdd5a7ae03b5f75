package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{"prefabs/player.yaml", ChangePrefab, true},
		{"prefabs/arena.YML", ChangePrefab, true},
		{"prefabs/scripts/door.tengo", ChangeScript, true},
		{"prefabs/scripts/door.lua", 0, false},
		{"prefabs/.player.yaml", 0, false},
		{"prefabs/player.yaml.swp", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			kind, ok := Classify(tt.path)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.kind, kind)
			}
		})
	}
}

func nextChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case change := <-w.Events:
		return change
	case <-time.After(2 * time.Second):
		t.Fatalf("no change reported")
	}
	return Change{}
}

func TestWatcherCollapsesBurstIntoOneChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "player.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: a\n"), 0o644))

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("name: b\n"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	change := nextChange(t, w)
	assert.Equal(t, "player.yaml", change.Name)
	assert.Equal(t, ChangePrefab, change.Kind)
	assert.False(t, change.Removed)

	select {
	case extra := <-w.Events:
		t.Fatalf("burst should settle into one change, got %+v", extra)
	case <-time.After(3 * settleDelay):
	}

	require.NoError(t, os.Remove(path))
	removed := nextChange(t, w)
	assert.Equal(t, "player.yaml", removed.Name)
	assert.True(t, removed.Removed)
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, open := <-w.Events
	assert.False(t, open)
}
