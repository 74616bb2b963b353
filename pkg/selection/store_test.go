package selection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.yaml"), nil)

	set, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestStoreRoundTrip(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state", "selection.yaml")
	store := NewStore(statePath, nil)

	set := NewSet()
	set.Add("/project/src/a.go", "/project/README.md")
	require.NoError(t, store.Save(set))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, set.Paths(), loaded.Paths())
	assert.Equal(t, 2, loaded.CountUnder("/project"))
}

func TestStoreLoadRejectsMalformedState(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "selection.yaml")
	require.NoError(t, os.WriteFile(statePath, []byte("files: {not: a list}"), 0o644))

	_, err := NewStore(statePath, nil).Load()
	assert.Error(t, err)
}

func TestAutoSavePersistsEveryMutation(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "selection.yaml")
	store := NewStore(statePath, nil)

	set := NewSet()
	set.Subscribe(store.AutoSave(set))

	set.Add("/project/a.go")

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"/project/a.go"}, loaded.Paths())

	set.Remove("/project/a.go")

	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}
