package modal

import (
	"fmt"
	"strings"

	"github.com/CrestNiraj12/thumbpick/domain"
	"github.com/CrestNiraj12/thumbpick/tui/common"
)

const pathDisplayWidth = 56

// View renders the open dialog, or "" when closed.
func (m Model) View() string {
	if !m.open {
		return ""
	}

	var title, body string
	switch m.id {
	case domain.ModalConfirmThumbnailUpload:
		title = "Upload thumbnail"
		body = fmt.Sprintf("Are you sure you want to upload this thumbnail?\n\n  %s",
			common.Truncate(m.props.File, pathDisplayWidth))
	case domain.ModalAutoGenerateThumbnail:
		path := ""
		if m.props.FilePath != nil {
			path = m.props.FilePath.LocalPath()
		}
		if path == "" {
			path = "(unsaved video)"
		}
		title = "Take a snapshot"
		body = fmt.Sprintf("Capture a frame of your video to use as the thumbnail?\n\n  %s",
			common.Truncate(path, pathDisplayWidth))
	}

	var b strings.Builder
	b.WriteString(common.LabelStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(common.ContentStyle.Render(body))
	b.WriteString("\n\n")
	b.WriteString(common.HelpStyle.Render("y/enter: confirm • n/esc: cancel"))
	return common.ModalStyle.Render(b.String())
}
