package modal

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/thumbpick/domain"
	"github.com/CrestNiraj12/thumbpick/tui/common"
)

// --- Messages ---

// ConfirmUploadMsg is sent when the user accepts uploading Path.
type ConfirmUploadMsg struct {
	Path string
}

// ConfirmSnapshotMsg is sent when the user accepts capturing a frame of File.
type ConfirmSnapshotMsg struct {
	File domain.FileRef
}

// ClosedMsg is sent when a modal is dismissed without confirming.
type ClosedMsg struct {
	ID domain.ModalID
}

// --- Model ---

// Model is the modal manager. At most one dialog is open.
type Model struct {
	id    domain.ModalID
	props domain.ModalProps
	open  bool
	keys  common.KeyMap
}

// New creates a closed modal manager.
func New() Model {
	return Model{keys: common.DefaultKeyMap()}
}

// Open shows the dialog id, replacing any open one. Unknown ids are ignored.
func (m Model) Open(id domain.ModalID, props domain.ModalProps) Model {
	switch id {
	case domain.ModalConfirmThumbnailUpload, domain.ModalAutoGenerateThumbnail:
	default:
		return m
	}
	m.id = id
	m.props = props
	m.open = true
	return m
}

// IsOpen reports whether a dialog is showing.
func (m Model) IsOpen() bool { return m.open }

// ID returns the open dialog, or "" when closed.
func (m Model) ID() domain.ModalID {
	if !m.open {
		return ""
	}
	return m.id
}

// Update handles confirm/cancel keys while open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.open {
		return m, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		m.open = false
		switch m.id {
		case domain.ModalConfirmThumbnailUpload:
			path := m.props.File
			return m, func() tea.Msg { return ConfirmUploadMsg{Path: path} }
		case domain.ModalAutoGenerateThumbnail:
			file := m.props.FilePath
			return m, func() tea.Msg { return ConfirmSnapshotMsg{File: file} }
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Cancel):
		m.open = false
		id := m.id
		return m, func() tea.Msg { return ClosedMsg{ID: id} }
	}
	return m, nil
}
