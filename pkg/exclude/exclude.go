// Package exclude decides which project paths are hidden from selection
// and from the compiled context document.
package exclude

import (
	"path"
	"strings"
)

// Rules is the externally supplied exclusion configuration. It is treated as
// a read-only snapshot for the lifetime of a Policy.
type Rules struct {
	Files  []string // exact base names, e.g. "package-lock.json"
	Paths  []string // path prefixes relative to the project root, e.g. "build"
	Hidden bool     // exclude any path containing a dot-prefixed segment
}

// Policy answers exclusion queries. It performs no I/O and never fails.
type Policy struct {
	files    map[string]struct{}
	prefixes [][]string
	hidden   bool
}

// NewPolicy compiles a rule snapshot into a Policy.
func NewPolicy(rules Rules) *Policy {
	policy := &Policy{
		files:  make(map[string]struct{}, len(rules.Files)),
		hidden: rules.Hidden,
	}
	for _, name := range rules.Files {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		policy.files[name] = struct{}{}
	}
	for _, prefix := range rules.Paths {
		segments := splitSegments(prefix)
		if len(segments) > 0 {
			policy.prefixes = append(policy.prefixes, segments)
		}
	}
	return policy
}

// IsExcluded reports whether the entry at relPath (forward-slash, relative to
// the project root) with the given base name is excluded. The project root
// itself is never excluded.
func (p *Policy) IsExcluded(relPath, baseName string) bool {
	if _, ok := p.files[baseName]; ok {
		return true
	}

	segments := splitSegments(relPath)
	if len(segments) == 0 {
		return false
	}

	for _, prefix := range p.prefixes {
		if hasSegmentPrefix(segments, prefix) {
			return true
		}
	}

	if p.hidden {
		for _, segment := range segments {
			if strings.HasPrefix(segment, ".") {
				return true
			}
		}
	}

	return false
}

// splitSegments normalizes a slash path and splits it into segments.
// "" and "." both describe the root and yield no segments.
func splitSegments(raw string) []string {
	cleaned := path.Clean(strings.ReplaceAll(raw, "\\", "/"))
	cleaned = strings.Trim(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return nil
	}
	return strings.Split(cleaned, "/")
}

// hasSegmentPrefix reports whether prefix matches the leading segments of
// segments exactly. "build" matches "build" and "build/x" but never "build2".
func hasSegmentPrefix(segments, prefix []string) bool {
	if len(prefix) > len(segments) {
		return false
	}
	for i, part := range prefix {
		if segments[i] != part {
			return false
		}
	}
	return true
}
