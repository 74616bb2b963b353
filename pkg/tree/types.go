// Package tree materializes directory listings with derived tri-state
// selection status and applies selection toggles.
package tree

// Kind classifies a filesystem node surfaced to the UI.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

// CheckState is the aggregate selection status of a node. Files are binary;
// only directories derive Partial.
type CheckState int

const (
	Unchecked CheckState = iota
	Checked
	Partial
)

// Marker renders the state as a checkbox for terminal output.
func (c CheckState) Marker() string {
	switch c {
	case Checked:
		return "[x]"
	case Partial:
		return "[~]"
	default:
		return "[ ]"
	}
}

// PathEntry is one filesystem node. Entries are built fresh on every listing
// call and never cached, so the view always reflects current disk state and
// the current selection.
type PathEntry struct {
	Name         string
	AbsolutePath string // slash-normalized identity key
	Kind         Kind
	State        CheckState
}

// IsDir reports whether the entry is a directory.
func (e PathEntry) IsDir() bool {
	return e.Kind == KindDirectory
}
