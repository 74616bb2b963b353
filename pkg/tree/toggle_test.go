package tree

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treectx/pkg/selection"
)

func fileEntry(root string, rel string) PathEntry {
	abs := selection.Normalize(filepath.Join(root, filepath.FromSlash(rel)))
	return PathEntry{Name: filepath.Base(abs), AbsolutePath: abs, Kind: KindFile}
}

func dirEntry(root string, rel string) PathEntry {
	abs := selection.Normalize(filepath.Join(root, filepath.FromSlash(rel)))
	return PathEntry{Name: filepath.Base(abs), AbsolutePath: abs, Kind: KindDirectory}
}

func TestToggleFileIsAnInvolution(t *testing.T) {
	root, policy := newFixture(t)
	set := selection.NewSet()
	toggler := NewToggler(root, policy, set, nil)

	entry := fileEntry(root, "README.md")

	require.NoError(t, toggler.Toggle(entry))
	assert.True(t, set.Contains(entry.AbsolutePath))

	require.NoError(t, toggler.Toggle(entry))
	assert.False(t, set.Contains(entry.AbsolutePath))
	assert.Equal(t, 0, set.Len())
}

func TestToggleDirectorySelectsAllDescendants(t *testing.T) {
	root, policy := newFixture(t)
	set := selection.NewSet()
	toggler := NewToggler(root, policy, set, nil)

	require.NoError(t, toggler.Toggle(dirEntry(root, "src")))

	// skip.log is excluded and never enters the selection.
	assert.True(t, set.Contains(filepath.Join(root, "src", "a.ts")))
	assert.True(t, set.Contains(filepath.Join(root, "src", "sub", "b.ts")))
	assert.False(t, set.Contains(filepath.Join(root, "src", "skip.log")))
	assert.Equal(t, 2, set.Len())
}

func TestTogglePartialDirectorySelectsTheRest(t *testing.T) {
	root, policy := newFixture(t)
	set := selection.NewSet()
	toggler := NewToggler(root, policy, set, nil)
	m := NewMaterializer(root, policy, set, nil)

	// Partially select src, then toggle the directory: it becomes fully
	// selected, not deselected.
	set.Add(filepath.Join(root, "src", "a.ts"))
	require.NoError(t, toggler.Toggle(dirEntry(root, "src")))

	entries, err := m.ListChildren(root)
	require.NoError(t, err)
	assert.Equal(t, Checked, findEntry(t, entries, "src").State)

	// A fully checked directory toggles to empty, and toggling twice from
	// fully checked returns to fully checked.
	require.NoError(t, toggler.Toggle(dirEntry(root, "src")))
	assert.Equal(t, 0, set.Len())

	require.NoError(t, toggler.Toggle(dirEntry(root, "src")))
	require.NoError(t, toggler.Toggle(dirEntry(root, "src")))
	require.NoError(t, toggler.Toggle(dirEntry(root, "src")))
	entries, err = m.ListChildren(root)
	require.NoError(t, err)
	assert.Equal(t, Checked, findEntry(t, entries, "src").State)
}

func TestToggleEmptyDirectoryIsANoOp(t *testing.T) {
	root, policy := newFixture(t)
	set := selection.NewSet()
	toggler := NewToggler(root, policy, set, nil)

	require.NoError(t, toggler.Toggle(dirEntry(root, "empty")))
	assert.Equal(t, 0, set.Len())
}

func TestToggleUnreadableDirectoryMutatesNothing(t *testing.T) {
	root, policy := newFixture(t)
	set := selection.NewSet()
	set.Add(filepath.Join(root, "README.md"))
	toggler := NewToggler(root, policy, set, nil)

	before := set.Paths()
	err := toggler.Toggle(dirEntry(root, "does-not-exist"))
	assert.ErrorIs(t, err, ErrDirectoryUnreadable)
	assert.Equal(t, before, set.Paths())
}
