package thumbnail

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/thumbpick/domain"
)

// --- Messages sent to the form owner ---

// UpdatePublishFormMsg asks the publish form to merge Patch into its state.
type UpdatePublishFormMsg struct {
	Patch domain.FormPatch
}

// OpenModalMsg asks the modal manager to open a dialog.
type OpenModalMsg struct {
	ID    domain.ModalID
	Props domain.ModalProps
}

// ResetThumbnailStatusMsg asks the form to reset the upload status.
type ResetThumbnailStatusMsg struct{}

// --- Internal ---

// PreviewLoadedMsg carries the outcome of a preview load. Check loads belong
// to the manual-entry preview and their failures set the error flag.
type PreviewLoadedMsg struct {
	Src     string
	Preview string
	Err     error
	Check   bool
}

// emit wraps msg into a tea.Cmd for immediate delivery.
func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
