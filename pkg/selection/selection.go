// Package selection owns the set of explicitly checked file paths.
//
// The set is the only persisted state in the application. Directories are
// never members; their checked status is derived elsewhere from the files
// beneath them. Alongside the raw membership the set maintains a count of
// selected files under every ancestor directory, updated on each mutation,
// so callers can answer "is anything selected below this directory?" without
// walking the filesystem.
package selection

import (
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Observer is notified after every mutation of the selection set.
type Observer interface {
	SelectionChanged()
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func()

// SelectionChanged calls the wrapped function.
func (f ObserverFunc) SelectionChanged() { f() }

// Set is a mutex-guarded collection of normalized absolute file paths.
type Set struct {
	mu        sync.Mutex
	paths     map[string]struct{}
	dirCounts map[string]int
	observers []Observer
}

// NewSet returns an empty selection set.
func NewSet() *Set {
	return &Set{
		paths:     make(map[string]struct{}),
		dirCounts: make(map[string]int),
	}
}

// Normalize converts a path into the canonical slash-separated form used as
// the set's identity key.
func Normalize(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// Contains reports whether the file path is selected.
func (s *Set) Contains(p string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.paths[Normalize(p)]
	return ok
}

// Len returns the number of selected files.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.paths)
}

// Paths returns a sorted copy of the selected file paths.
func (s *Set) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.paths))
	for p := range s.paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// CountUnder returns the number of selected files at or below dir.
func (s *Set) CountUnder(dir string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirCounts[Normalize(dir)]
}

// ContainsAll reports whether every given path is selected. An empty input
// yields false: a selection of nothing is never "all selected".
func (s *Set) ContainsAll(paths []string) bool {
	if len(paths) == 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range paths {
		if _, ok := s.paths[Normalize(p)]; !ok {
			return false
		}
	}
	return true
}

// Add inserts the given file paths. Observers are notified once if anything
// actually changed.
func (s *Set) Add(paths ...string) {
	s.mu.Lock()
	changed := false
	for _, p := range paths {
		key := Normalize(p)
		if _, ok := s.paths[key]; ok {
			continue
		}
		s.paths[key] = struct{}{}
		s.bumpAncestors(key, 1)
		changed = true
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Remove deletes the given file paths. Observers are notified once if
// anything actually changed.
func (s *Set) Remove(paths ...string) {
	s.mu.Lock()
	changed := false
	for _, p := range paths {
		key := Normalize(p)
		if _, ok := s.paths[key]; !ok {
			continue
		}
		delete(s.paths, key)
		s.bumpAncestors(key, -1)
		changed = true
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Clear deselects everything.
func (s *Set) Clear() {
	s.mu.Lock()
	changed := len(s.paths) > 0
	s.paths = make(map[string]struct{})
	s.dirCounts = make(map[string]int)
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Subscribe registers an observer for mutation notifications.
func (s *Set) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// bumpAncestors adjusts the selected-descendant count for every directory
// above the file path. Caller holds the lock.
func (s *Set) bumpAncestors(file string, delta int) {
	dir := path.Dir(file)
	for {
		s.dirCounts[dir] += delta
		if s.dirCounts[dir] == 0 {
			delete(s.dirCounts, dir)
		}
		parent := path.Dir(dir)
		if parent == dir || strings.HasSuffix(dir, ":") {
			return
		}
		dir = parent
	}
}

// notify runs outside the lock so observers may call back into the set.
func (s *Set) notify() {
	s.mu.Lock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()
	for _, o := range observers {
		o.SelectionChanged()
	}
}
