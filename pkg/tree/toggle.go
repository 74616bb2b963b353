package tree

import (
	"fmt"

	"go.uber.org/zap"

	"treectx/pkg/exclude"
	"treectx/pkg/selection"
)

// Toggler flips selection membership for files and whole directory subtrees.
type Toggler struct {
	root   string
	policy *exclude.Policy
	set    *selection.Set
	logger *zap.Logger
}

// NewToggler returns a toggler rooted at the given project directory.
func NewToggler(root string, policy *exclude.Policy, set *selection.Set, logger *zap.Logger) *Toggler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Toggler{
		root:   selection.Normalize(root),
		policy: policy,
		set:    set,
		logger: logger,
	}
}

// Toggle mutates the selection set for the given entry.
//
// A file flips its own membership. A directory expands to its descendant
// files: when every one of them is already selected they are all removed,
// otherwise they are all added — so a partially selected directory toggles to
// fully selected ("select the rest"), not to empty. The update is
// all-or-nothing: if the descendant enumeration fails, the set is untouched
// and the failure is returned.
func (t *Toggler) Toggle(entry PathEntry) error {
	if entry.Kind == KindFile {
		if t.set.Contains(entry.AbsolutePath) {
			t.set.Remove(entry.AbsolutePath)
		} else {
			t.set.Add(entry.AbsolutePath)
		}
		return nil
	}

	files, err := descendantFiles(entry.AbsolutePath, t.root, t.policy, t.logger)
	if err != nil {
		return fmt.Errorf("enumerate descendants of %s: %w", entry.AbsolutePath, err)
	}
	if len(files) == 0 {
		t.logger.Debug("Toggle on directory with no descendant files",
			zap.String("directory", entry.AbsolutePath))
		return nil
	}

	if t.set.ContainsAll(files) {
		t.set.Remove(files...)
		t.logger.Debug("Deselected directory subtree",
			zap.String("directory", entry.AbsolutePath), zap.Int("files", len(files)))
	} else {
		t.set.Add(files...)
		t.logger.Debug("Selected directory subtree",
			zap.String("directory", entry.AbsolutePath), zap.Int("files", len(files)))
	}
	return nil
}
