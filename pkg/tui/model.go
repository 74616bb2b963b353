// Package tui is the interactive terminal front end for selecting files.
// It renders one directory level at a time with tri-state checkboxes and
// drives the selection through the same toggler the CLI commands use.
package tui

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"treectx/pkg/tree"
)

// Model is the bubbletea model for the selection browser.
type Model struct {
	materializer *tree.Materializer
	toggler      *tree.Toggler
	logger       *zap.Logger

	cwd          string
	entries      []tree.PathEntry
	cursor       int
	scrollOffset int
	width        int
	height       int

	keys KeyMap
	help help.Model

	status string

	// CompileRequested reports whether the user left the browser with the
	// compile key; the caller runs the compile step after the program exits.
	CompileRequested bool
}

// NewModel returns a browser rooted at the materializer's project root.
func NewModel(materializer *tree.Materializer, toggler *tree.Toggler, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := Model{
		materializer: materializer,
		toggler:      toggler,
		logger:       logger,
		cwd:          materializer.Root(),
		keys:         DefaultKeyMap(),
		help:         help.New(),
	}
	m.reload()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.ensureCursorVisible()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			m.ensureCursorVisible()
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
			m.ensureCursorVisible()
			return m, nil

		case key.Matches(msg, m.keys.Enter):
			if entry, ok := m.current(); ok && entry.IsDir() {
				m.cwd = entry.AbsolutePath
				m.cursor = 0
				m.scrollOffset = 0
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Back):
			if m.cwd != m.materializer.Root() {
				m.cwd = filepath.ToSlash(filepath.Dir(filepath.FromSlash(m.cwd)))
				m.cursor = 0
				m.scrollOffset = 0
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			if entry, ok := m.current(); ok {
				if err := m.toggler.Toggle(entry); err != nil {
					m.status = fmt.Sprintf("Toggle failed: %v", err)
					m.logger.Warn("Toggle failed", zap.Error(err))
				} else {
					m.status = ""
				}
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.Compile):
			m.CompileRequested = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// current returns the entry under the cursor.
func (m Model) current() (tree.PathEntry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return tree.PathEntry{}, false
	}
	return m.entries[m.cursor], true
}

// reload re-lists the current directory so checkboxes reflect the latest
// selection and disk state.
func (m *Model) reload() {
	entries, err := m.materializer.ListChildren(filepath.FromSlash(m.cwd))
	if err != nil {
		if errors.Is(err, tree.ErrDirectoryUnreadable) {
			m.status = fmt.Sprintf("Cannot read %s", m.cwd)
			m.logger.Warn("Directory unreadable", zap.String("directory", m.cwd), zap.Error(err))
		} else {
			m.status = err.Error()
		}
		m.entries = nil
		m.cursor = 0
		m.scrollOffset = 0
		return
	}
	m.entries = entries
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	viewport := m.viewportHeight()
	if viewport <= 0 {
		return
	}
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+viewport {
		m.scrollOffset = m.cursor - viewport + 1
	}
}

func (m Model) viewportHeight() int {
	// Header, spacer, status, and help each take a line.
	h := m.height - 4
	if h < 1 {
		h = 10
	}
	return h
}

// Run drives the browser to completion and reports whether the user asked
// for a compile on the way out.
func Run(materializer *tree.Materializer, toggler *tree.Toggler, logger *zap.Logger) (bool, error) {
	program := tea.NewProgram(NewModel(materializer, toggler, logger), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("selection browser failed: %w", err)
	}
	model, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return model.CompileRequested, nil
}
