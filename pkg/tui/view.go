package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	directoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	checkedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	partialStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle       = lipgloss.NewStyle().Faint(true)
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	location := m.cwd
	if rel, err := filepath.Rel(filepath.FromSlash(m.materializer.Root()), filepath.FromSlash(m.cwd)); err == nil && rel != "." {
		location = filepath.ToSlash(rel)
	} else if rel == "." {
		location = "."
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("treectx — %s", location)))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(dimStyle.Render("(empty directory)"))
		b.WriteString("\n")
	} else {
		viewport := m.viewportHeight()
		end := m.scrollOffset + viewport
		if end > len(m.entries) {
			end = len(m.entries)
		}
		for i := m.scrollOffset; i < end; i++ {
			entry := m.entries[i]

			cursor := "  "
			if i == m.cursor {
				cursor = cursorStyle.Render("▶ ")
			}

			marker := entry.State.Marker()
			switch marker {
			case "[x]":
				marker = checkedStyle.Render(marker)
			case "[~]":
				marker = partialStyle.Render(marker)
			}

			name := entry.Name
			if entry.IsDir() {
				name = directoryStyle.Render(name + "/")
			}

			b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, marker, name))
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))

	return b.String()
}
