package tree

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"treectx/pkg/exclude"
	"treectx/pkg/selection"
)

// descendantFiles enumerates every non-excluded file beneath dir, depth
// first. Exclusion is evaluated against paths relative to the project root,
// the same way listings are filtered, so a directory's derived state and the
// compiled output always agree on which files count.
//
// An unreadable subdirectory or unstattable entry is skipped with a debug
// log; only a failure to read dir itself is returned as an error.
func descendantFiles(dir, root string, policy *exclude.Policy, logger *zap.Logger) ([]string, error) {
	var files []string
	osDir := filepath.FromSlash(dir)

	walkErr := filepath.WalkDir(osDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == osDir {
				return fmt.Errorf("%w: %s: %v", ErrDirectoryUnreadable, dir, err)
			}
			logger.Debug("Skipping unreadable entry during walk",
				zap.String("path", path), zap.Error(err))
			return nil
		}
		if path == osDir {
			return nil
		}

		absPath := selection.Normalize(path)
		relPath, relErr := filepath.Rel(filepath.FromSlash(root), path)
		if relErr != nil {
			logger.Debug("Skipping entry with unresolvable relative path",
				zap.String("path", path), zap.Error(relErr))
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if policy.IsExcluded(filepath.ToSlash(relPath), d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.IsDir() && d.Type().IsRegular() {
			files = append(files, absPath)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return files, nil
}
