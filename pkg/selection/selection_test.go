package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRemoveContains(t *testing.T) {
	set := NewSet()

	assert.False(t, set.Contains("/project/a.go"))
	set.Add("/project/a.go")
	assert.True(t, set.Contains("/project/a.go"))
	assert.Equal(t, 1, set.Len())

	// Adding twice does not double-count.
	set.Add("/project/a.go")
	assert.Equal(t, 1, set.Len())
	assert.Equal(t, 1, set.CountUnder("/project"))

	set.Remove("/project/a.go")
	assert.False(t, set.Contains("/project/a.go"))
	assert.Equal(t, 0, set.Len())
}

func TestToggleInvolution(t *testing.T) {
	set := NewSet()
	set.Add("/project/src/a.go")

	before := set.Paths()

	set.Add("/project/b.go")
	set.Remove("/project/b.go")

	assert.Equal(t, before, set.Paths())
}

func TestCountUnderTracksAncestors(t *testing.T) {
	set := NewSet()
	set.Add("/project/src/a.go", "/project/src/sub/b.go", "/project/c.go")

	assert.Equal(t, 3, set.CountUnder("/project"))
	assert.Equal(t, 2, set.CountUnder("/project/src"))
	assert.Equal(t, 1, set.CountUnder("/project/src/sub"))
	assert.Equal(t, 0, set.CountUnder("/project/other"))

	set.Remove("/project/src/sub/b.go")
	assert.Equal(t, 2, set.CountUnder("/project"))
	assert.Equal(t, 1, set.CountUnder("/project/src"))
	assert.Equal(t, 0, set.CountUnder("/project/src/sub"))

	set.Clear()
	assert.Equal(t, 0, set.CountUnder("/project"))
	assert.Equal(t, 0, set.Len())
}

func TestContainsAll(t *testing.T) {
	set := NewSet()
	set.Add("/p/a", "/p/b")

	assert.True(t, set.ContainsAll([]string{"/p/a", "/p/b"}))
	assert.False(t, set.ContainsAll([]string{"/p/a", "/p/c"}))

	// An empty file list is never "all selected".
	assert.False(t, set.ContainsAll(nil))
}

func TestPathsSortedAndNormalized(t *testing.T) {
	set := NewSet()
	set.Add("/p/z.go", "/p/a.go", "/p//b/../b.go")

	require.Equal(t, []string{"/p/a.go", "/p/b.go", "/p/z.go"}, set.Paths())
}

func TestObserversNotifiedOncePerMutation(t *testing.T) {
	set := NewSet()
	notified := 0
	set.Subscribe(ObserverFunc(func() { notified++ }))

	set.Add("/p/a", "/p/b")
	assert.Equal(t, 1, notified)

	// No-op mutations do not notify.
	set.Add("/p/a")
	set.Remove("/p/missing")
	assert.Equal(t, 1, notified)

	set.Remove("/p/a")
	assert.Equal(t, 2, notified)

	set.Clear()
	assert.Equal(t, 3, notified)

	set.Clear()
	assert.Equal(t, 3, notified)
}

func TestObserverMayReadSet(t *testing.T) {
	set := NewSet()
	var seen int
	set.Subscribe(ObserverFunc(func() { seen = set.Len() }))

	set.Add("/p/a", "/p/b")
	assert.Equal(t, 2, seen)
}
