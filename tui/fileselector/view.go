package fileselector

import (
	"strings"

	"github.com/CrestNiraj12/thumbpick/tui/common"
)

// View renders the path field, its fuzzy jumps and, while focused, the browser.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	for i, s := range m.suggestions {
		label := s.name
		if s.isDir {
			label += "/"
		}
		b.WriteString("\n  ")
		if i == m.cursor {
			b.WriteString(common.LinkActiveStyle.Render("› " + label))
		} else {
			b.WriteString(common.ContentStyle.Render("  " + label))
		}
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(common.ErrorStyle.Render(m.status))
	}
	if !m.focused {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(m.picker.View())
	if m.browse {
		b.WriteString(common.HelpStyle.Render("enter: open/select • ←: up a directory • /: type a path"))
	} else {
		b.WriteString(common.HelpStyle.Render("↓: browse files"))
	}
	return b.String()
}
