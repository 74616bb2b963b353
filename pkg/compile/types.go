// Package compile turns an explicit list of selected files into the context
// document: a connector-drawn file tree followed by each file's content.
package compile

import "errors"

// ErrEmptySelection signals that there was nothing to serialize. The caller
// surfaces it as a warning and writes nothing.
var ErrEmptySelection = errors.New("no files selected")

// SelectedFile identifies one file to include in the document.
type SelectedFile struct {
	AbsolutePath string
}

// Document is the fully assembled context document. The text is built in
// memory before anything touches disk, so a failed run never leaves a
// truncated output file behind.
type Document struct {
	Text      string
	FileCount int
}
