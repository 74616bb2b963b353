package tree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"treectx/pkg/exclude"
	"treectx/pkg/selection"
)

// ErrDirectoryUnreadable marks a directory whose entries could not be listed.
// Callers surface a warning and treat the listing as empty; it is never fatal.
var ErrDirectoryUnreadable = errors.New("directory unreadable")

// Materializer lists directory children with exclusion rules applied and
// checked state derived from the selection set.
type Materializer struct {
	root   string
	policy *exclude.Policy
	set    *selection.Set
	logger *zap.Logger
}

// NewMaterializer returns a materializer rooted at the given project
// directory. root must be absolute.
func NewMaterializer(root string, policy *exclude.Policy, set *selection.Set, logger *zap.Logger) *Materializer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Materializer{
		root:   selection.Normalize(root),
		policy: policy,
		set:    set,
		logger: logger,
	}
}

// Root returns the project root the materializer was built with.
func (m *Materializer) Root() string {
	return m.root
}

// ListChildren lists the immediate children of dir, sorted directories first
// and case-insensitively by name within each group. Ties between names that
// differ only in case keep the raw directory-listing order. Entries that are
// excluded or cannot be inspected are dropped silently.
func (m *Materializer) ListChildren(dir string) ([]PathEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDirectoryUnreadable, dir, err)
	}

	entries := make([]PathEntry, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		name := dirEntry.Name()
		absPath := selection.Normalize(filepath.Join(dir, name))

		relPath, relErr := m.relToRoot(absPath)
		if relErr != nil {
			m.logger.Debug("Skipping entry outside project root", zap.String("path", absPath))
			continue
		}
		if m.policy.IsExcluded(relPath, name) {
			continue
		}

		info, statErr := os.Stat(filepath.FromSlash(absPath))
		if statErr != nil {
			m.logger.Debug("Skipping entry that cannot be inspected",
				zap.String("path", absPath), zap.Error(statErr))
			continue
		}

		entry := PathEntry{Name: name, AbsolutePath: absPath}
		if info.IsDir() {
			entry.Kind = KindDirectory
			entry.State = m.directoryState(absPath)
		} else {
			entry.Kind = KindFile
			if m.set.Contains(absPath) {
				entry.State = Checked
			}
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		left, right := strings.ToLower(entries[i].Name), strings.ToLower(entries[j].Name)
		return left < right
	})

	return entries, nil
}

// CheckedFiles flattens the selection set into file entries. Paths that have
// vanished from disk or turned into directories since they were selected are
// skipped silently; they remain in the set until toggled off or cleared.
func (m *Materializer) CheckedFiles() []PathEntry {
	paths := m.set.Paths()
	entries := make([]PathEntry, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(filepath.FromSlash(p))
		if err != nil {
			m.logger.Debug("Skipping stale selection entry", zap.String("path", p), zap.Error(err))
			continue
		}
		if info.IsDir() {
			m.logger.Debug("Skipping selection entry that is now a directory", zap.String("path", p))
			continue
		}
		entries = append(entries, PathEntry{
			Name:         filepath.Base(p),
			AbsolutePath: p,
			Kind:         KindFile,
			State:        Checked,
		})
	}
	return entries
}

// directoryState derives the tri-state status of a directory from its
// descendant files. The selection set's per-directory counts answer the
// common Unchecked case without touching the filesystem; only directories
// with at least one selected descendant are walked.
func (m *Materializer) directoryState(dir string) CheckState {
	if m.set.CountUnder(dir) == 0 {
		return Unchecked
	}

	files, err := descendantFiles(dir, m.root, m.policy, m.logger)
	if err != nil {
		m.logger.Warn("Cannot derive directory state", zap.String("directory", dir), zap.Error(err))
		return Unchecked
	}
	if len(files) == 0 {
		return Unchecked
	}

	selected := 0
	for _, f := range files {
		if m.set.Contains(f) {
			selected++
		}
	}
	switch {
	case selected == len(files):
		return Checked
	case selected > 0:
		return Partial
	default:
		return Unchecked
	}
}

// relToRoot computes the forward-slash path of abs relative to the project
// root.
func (m *Materializer) relToRoot(abs string) (string, error) {
	rel, err := filepath.Rel(filepath.FromSlash(m.root), filepath.FromSlash(abs))
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("path %s is outside root %s", abs, m.root)
	}
	return rel, nil
}
