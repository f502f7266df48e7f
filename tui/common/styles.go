package common

import "github.com/charmbracelet/lipgloss"

var (
	// AppTitleStyle styles the application title. Rendered at call site with content.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6600")).
			Padding(1, 2, 0, 1)

	// LabelStyle styles field labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7DC4E4")).
			Bold(true)

	// HelpStyle styles help text under the form.
	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")). // Dimmed grey
			Italic(true)

	// ContentStyle styles plain text.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// PreviewStyle frames thumbnail previews.
	PreviewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A"))

	// LinkActiveStyle styles the focused link.
	LinkActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6600")).
			Bold(true).
			Underline(true)

	// LinkInactiveStyle styles unfocused links.
	LinkInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8AADF4")).
				Underline(true)

	// DisabledStyle greys out disabled controls.
	DisabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#45475A"))

	// ModalStyle frames dialogs.
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF6600")).
			Padding(1, 2)

	// SpinnerStyle colors in-flight indicators.
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6600"))

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Padding(1, 0, 0, 0)

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// SuccessStyle styles success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)
)

// Link renders a link label, highlighted when focused.
func Link(label string, focused bool) string {
	if focused {
		return LinkActiveStyle.Render("› " + label)
	}
	return LinkInactiveStyle.Render(label)
}
