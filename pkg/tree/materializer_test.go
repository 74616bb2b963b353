package tree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treectx/pkg/exclude"
	"treectx/pkg/selection"
)

// newFixture creates a project tree on disk:
//
//	README.md
//	Zebra.md
//	apple/a.ts
//	Banana/b.ts
//	src/a.ts
//	src/sub/b.ts
//	src/skip.log        (excluded by file name)
//	build/out.js        (excluded by path prefix)
//	empty/              (directory with no files)
//	.hidden/h.txt       (excluded by hidden rule)
func newFixture(t *testing.T) (string, *exclude.Policy) {
	t.Helper()
	root := t.TempDir()

	files := []string{
		"README.md",
		"Zebra.md",
		"apple/a.ts",
		"Banana/b.ts",
		"src/a.ts",
		"src/sub/b.ts",
		"src/skip.log",
		"build/out.js",
		".hidden/h.txt",
	}
	for _, rel := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(rel), 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	policy := exclude.NewPolicy(exclude.Rules{
		Files:  []string{"skip.log"},
		Paths:  []string{"build"},
		Hidden: true,
	})
	return root, policy
}

func names(entries []PathEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func findEntry(t *testing.T, entries []PathEntry, name string) PathEntry {
	t.Helper()
	for _, e := range entries {
		if e.Name == name {
			return e
		}
	}
	t.Fatalf("entry %q not found in %v", name, names(entries))
	return PathEntry{}
}

func TestListChildrenOrderingAndExclusion(t *testing.T) {
	root, policy := newFixture(t)
	m := NewMaterializer(root, policy, selection.NewSet(), nil)

	entries, err := m.ListChildren(root)
	require.NoError(t, err)

	// Directories first, then files, case-insensitive within each group.
	// build/ and .hidden/ are excluded.
	assert.Equal(t, []string{"apple", "Banana", "empty", "src", "README.md", "Zebra.md"}, names(entries))

	// Repeated calls with unchanged state are identical.
	again, err := m.ListChildren(root)
	require.NoError(t, err)
	assert.Equal(t, entries, again)
}

func TestListChildrenUnreadableDirectory(t *testing.T) {
	root, policy := newFixture(t)
	m := NewMaterializer(root, policy, selection.NewSet(), nil)

	_, err := m.ListChildren(filepath.Join(root, "does-not-exist"))
	assert.ErrorIs(t, err, ErrDirectoryUnreadable)
}

func TestDirectoryTriState(t *testing.T) {
	root, policy := newFixture(t)
	set := selection.NewSet()
	m := NewMaterializer(root, policy, set, nil)

	srcA := selection.Normalize(filepath.Join(root, "src", "a.ts"))
	srcB := selection.Normalize(filepath.Join(root, "src", "sub", "b.ts"))

	entries, err := m.ListChildren(root)
	require.NoError(t, err)
	assert.Equal(t, Unchecked, findEntry(t, entries, "src").State)
	assert.Equal(t, Unchecked, findEntry(t, entries, "empty").State)

	set.Add(srcA)
	entries, err = m.ListChildren(root)
	require.NoError(t, err)
	assert.Equal(t, Partial, findEntry(t, entries, "src").State)

	// skip.log is excluded, so a.ts + sub/b.ts is "all descendants".
	set.Add(srcB)
	entries, err = m.ListChildren(root)
	require.NoError(t, err)
	assert.Equal(t, Checked, findEntry(t, entries, "src").State)

	// A directory with no descendant files is Unchecked, never Partial.
	assert.Equal(t, Unchecked, findEntry(t, entries, "empty").State)

	set.Remove(srcA, srcB)
	entries, err = m.ListChildren(root)
	require.NoError(t, err)
	assert.Equal(t, Unchecked, findEntry(t, entries, "src").State)
}

func TestFileCheckedState(t *testing.T) {
	root, policy := newFixture(t)
	set := selection.NewSet()
	m := NewMaterializer(root, policy, set, nil)

	readme := selection.Normalize(filepath.Join(root, "README.md"))
	set.Add(readme)

	entries, err := m.ListChildren(root)
	require.NoError(t, err)
	assert.Equal(t, Checked, findEntry(t, entries, "README.md").State)
	assert.Equal(t, Unchecked, findEntry(t, entries, "Zebra.md").State)
}

func TestCheckedFilesSkipsStaleEntries(t *testing.T) {
	root, policy := newFixture(t)
	set := selection.NewSet()
	m := NewMaterializer(root, policy, set, nil)

	readme := selection.Normalize(filepath.Join(root, "README.md"))
	vanished := selection.Normalize(filepath.Join(root, "gone.txt"))
	dirPath := selection.Normalize(filepath.Join(root, "src"))
	set.Add(readme, vanished, dirPath)

	entries := m.CheckedFiles()
	require.Len(t, entries, 1)
	assert.Equal(t, readme, entries[0].AbsolutePath)
	assert.Equal(t, KindFile, entries[0].Kind)
	assert.Equal(t, Checked, entries[0].State)

	// Stale paths stay in the set until explicitly removed.
	assert.True(t, set.Contains(vanished))
}
