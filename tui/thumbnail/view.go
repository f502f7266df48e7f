package thumbnail

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/thumbpick/domain"
	"github.com/CrestNiraj12/thumbpick/tui/common"
)

const urlDisplayWidth = 60

// View renders the block for the current status followed by the help line.
func (m Model) View() string {
	var b strings.Builder

	switch m.props.Status {
	case domain.StatusAPIDown, domain.StatusManual:
		b.WriteString(m.renderManual())
	case domain.StatusReady:
		b.WriteString(m.renderReady())
	case domain.StatusComplete:
		if m.props.Thumbnail != "" {
			b.WriteString(m.renderComplete())
		}
	case domain.StatusInProgress:
		b.WriteString(m.spinner.View() + " " + common.ContentStyle.Render("Uploading thumbnail..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(common.HelpStyle.Render(m.helpText()))
	return b.String()
}

func (m Model) helpText() string {
	if m.props.Status == domain.StatusAPIDown {
		return "Enter a URL for your thumbnail."
	}
	return "Upload your thumbnail to " + m.deps.HostName + ". Recommended size is 16:9."
}

func (m Model) isFocused(c control) bool {
	got, ok := m.focused()
	return ok && got == c
}

func (m Model) renderPreview(src string) string {
	body, ok := m.previews[src]
	if !ok {
		body = common.HelpStyle.Render("Loading preview...")
	}
	return common.PreviewStyle.Render(body)
}

func (m Model) renderManual() string {
	field := m.input.View()
	if m.props.FormDisabled {
		field = common.DisabledStyle.Render(m.input.Prompt + m.props.Thumbnail)
	}
	column := lipgloss.JoinVertical(lipgloss.Left,
		common.LabelStyle.Render("Thumbnail Preview"),
		field,
		"",
		common.Link("Use thumbnail upload tool", m.isFocused(controlUploadTool)),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderPreview(m.PreviewSource()), "  ", column) + "\n"
}

func (m Model) renderReady() string {
	var b strings.Builder
	b.WriteString(m.selector.View())
	b.WriteString("\n\n")

	links := []string{common.Link("Enter a thumbnail URL", m.isFocused(controlManualLink))}
	if m.IsSupportedVideo() {
		links = append(links, common.Link("Take a snapshot from your video", m.isFocused(controlSnapshotLink)))
	}
	b.WriteString(strings.Join(links, "   "))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderComplete() string {
	column := lipgloss.JoinVertical(lipgloss.Left,
		common.SuccessStyle.Render("Upload complete."),
		common.ContentStyle.Render(common.Truncate(m.props.Thumbnail, urlDisplayWidth)),
		common.Link("View it", m.isFocused(controlViewLink)),
		"",
		common.Link("New thumbnail", m.isFocused(controlNewThumbnail)),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderPreview(m.props.Thumbnail), "  ", column) + "\n"
}
