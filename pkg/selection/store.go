package selection

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Store persists a selection set to a YAML state file. The schema is nothing
// more than a list of path strings.
type Store struct {
	path   string
	logger *zap.Logger
}

type stateFile struct {
	Files []string `yaml:"files"`
}

// NewStore returns a store backed by the given file path.
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the backing file path.
func (st *Store) Path() string {
	return st.path
}

// Load reads the state file into a fresh set. A missing file yields an empty
// set rather than an error.
func (st *Store) Load() (*Set, error) {
	set := NewSet()

	data, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			st.logger.Debug("No selection state file, starting empty", zap.String("path", st.path))
			return set, nil
		}
		return nil, fmt.Errorf("read selection state %s: %w", st.path, err)
	}

	var state stateFile
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode selection state %s: %w", st.path, err)
	}

	set.Add(state.Files...)
	st.logger.Debug("Loaded selection state",
		zap.String("path", st.path),
		zap.Int("files", set.Len()))
	return set, nil
}

// Save writes the set to the state file, creating parent directories as
// needed.
func (st *Store) Save(set *Set) error {
	data, err := yaml.Marshal(stateFile{Files: set.Paths()})
	if err != nil {
		return fmt.Errorf("encode selection state: %w", err)
	}

	if dir := filepath.Dir(st.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create selection state directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(st.path, data, 0o644); err != nil {
		return fmt.Errorf("write selection state %s: %w", st.path, err)
	}

	st.logger.Debug("Saved selection state",
		zap.String("path", st.path),
		zap.Int("files", set.Len()))
	return nil
}

// AutoSave returns an observer that persists the set after every mutation.
// Write failures are logged, never fatal: the in-memory selection stays
// authoritative for the session.
func (st *Store) AutoSave(set *Set) Observer {
	return ObserverFunc(func() {
		if err := st.Save(set); err != nil {
			st.logger.Warn("Failed to persist selection state", zap.Error(err))
		}
	})
}
