package compile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"treectx/pkg/selection"
)

const (
	treeHeader    = "File Tree:\n"
	filesHeader   = "\nFiles:\n"
	delimiterOpen = "--- Start of "
	delimiterEnd  = " ---"
)

// Serializer builds context documents. It is pure over its explicit inputs:
// exclusion and selection are assumed already applied by the caller.
type Serializer struct {
	logger     *zap.Logger
	maxReaders int
}

// NewSerializer returns a serializer that reads file bodies with at most one
// goroutine per CPU. Output order always matches input order regardless of
// read scheduling.
func NewSerializer(logger *zap.Logger) *Serializer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Serializer{logger: logger, maxReaders: runtime.NumCPU()}
}

// Serialize assembles the document for the given files. The tree section is
// sorted; the files section preserves the input order exactly. An individual
// unreadable file degrades to an inline error message and never aborts the
// batch. An empty input returns ErrEmptySelection.
func (s *Serializer) Serialize(ctx context.Context, rootPath string, files []SelectedFile) (Document, error) {
	if len(files) == 0 {
		return Document{}, ErrEmptySelection
	}

	root := selection.Normalize(rootPath)

	var builder strings.Builder
	builder.WriteString(treeHeader)
	builder.WriteString(renderTree(buildTree(root, files)))
	builder.WriteString(filesHeader)

	sections := make([]string, len(files))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(s.maxReaders)
	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sections[i] = s.fileSection(root, file)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Document{}, err
	}
	for _, section := range sections {
		builder.WriteString(section)
	}

	return Document{Text: builder.String(), FileCount: len(files)}, nil
}

// fileSection frames one file's content with its delimiter. Read failures
// are inlined in place of the content.
func (s *Serializer) fileSection(root string, file SelectedFile) string {
	rel := relativeTo(root, file.AbsolutePath)

	var section strings.Builder
	section.WriteString("\n")
	section.WriteString(delimiterOpen)
	section.WriteString(rel)
	section.WriteString(delimiterEnd)
	section.WriteString("\n")

	content, err := os.ReadFile(filepath.FromSlash(file.AbsolutePath))
	if err != nil {
		s.logger.Warn("Failed to read selected file, inlining error",
			zap.String("path", file.AbsolutePath), zap.Error(err))
		section.WriteString(fmt.Sprintf("Error reading file: %v", err))
	} else {
		section.Write(content)
	}
	section.WriteString("\n")
	return section.String()
}

// treeNode is the ephemeral hierarchy built from the selected files' relative
// paths for a single serialize call.
type treeNode struct {
	name     string
	isFile   bool
	children map[string]*treeNode
}

func newTreeNode(name string) *treeNode {
	return &treeNode{name: name, children: make(map[string]*treeNode)}
}

// buildTree inserts each file's relative path as a descending chain under a
// synthetic root, creating intermediate directory nodes on demand.
func buildTree(root string, files []SelectedFile) *treeNode {
	top := newTreeNode("")
	for _, file := range files {
		segments := strings.Split(relativeTo(root, file.AbsolutePath), "/")
		node := top
		for i, segment := range segments {
			child, ok := node.children[segment]
			if !ok {
				child = newTreeNode(segment)
				node.children[segment] = child
			}
			if i == len(segments)-1 {
				child.isFile = true
			}
			node = child
		}
	}
	return top
}

// renderTree serializes the hierarchy depth-first with box-drawing
// connectors. Children sort case-insensitively by name; names equal under
// folding put directories first, then byte order, so the rendering is total.
func renderTree(top *treeNode) string {
	var builder strings.Builder
	renderChildren(&builder, top, "")
	return builder.String()
}

func renderChildren(builder *strings.Builder, node *treeNode, prefix string) {
	children := sortedChildren(node)
	for i, child := range children {
		connector := "├── "
		extension := "│   "
		if i == len(children)-1 {
			connector = "└── "
			extension = "    "
		}

		name := child.name
		if !child.isFile {
			name += "/"
		}
		builder.WriteString(prefix)
		builder.WriteString(connector)
		builder.WriteString(name)
		builder.WriteString("\n")

		if !child.isFile {
			renderChildren(builder, child, prefix+extension)
		}
	}
}

func sortedChildren(node *treeNode) []*treeNode {
	children := make([]*treeNode, 0, len(node.children))
	for _, child := range node.children {
		children = append(children, child)
	}
	sort.Slice(children, func(i, j int) bool {
		left, right := strings.ToLower(children[i].name), strings.ToLower(children[j].name)
		if left != right {
			return left < right
		}
		if children[i].isFile != children[j].isFile {
			return !children[i].isFile
		}
		return children[i].name < children[j].name
	})
	return children
}

// relativeTo computes the forward-slash path of abs relative to root,
// falling back to the absolute path itself when no relative form exists.
func relativeTo(root, abs string) string {
	rel, err := filepath.Rel(filepath.FromSlash(root), filepath.FromSlash(abs))
	if err != nil {
		return selection.Normalize(abs)
	}
	return filepath.ToSlash(rel)
}
