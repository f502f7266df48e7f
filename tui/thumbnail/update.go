package thumbnail

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/thumbpick/domain"
	"github.com/CrestNiraj12/thumbpick/tui/common"
	"github.com/CrestNiraj12/thumbpick/tui/fileselector"
)

// Update handles messages for the selector.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		// Ticks stop once the upload is no longer in progress.
		if m.props.Status != domain.StatusInProgress {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PreviewLoadedMsg:
		return m.handlePreviewLoaded(msg)

	case fileselector.FileChosenMsg:
		if m.props.Status != domain.StatusReady {
			return m, nil
		}
		return m, m.ChooseFile(msg.Path)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blinks and similar widget messages.
	var inputCmd, selectorCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.selector, selectorCmd = m.selector.Update(msg)
	return m, tea.Batch(inputCmd, selectorCmd)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	n := len(m.controls())
	if n == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.focus = (m.focus + 1) % n
		cmd := m.applyFocus()
		return m, cmd
	case key.Matches(msg, m.keys.Prev):
		m.focus = (m.focus - 1 + n) % n
		cmd := m.applyFocus()
		return m, cmd
	}

	c, ok := m.focused()
	if !ok {
		return m, nil
	}

	switch c {
	case controlInput:
		if m.props.FormDisabled {
			return m, nil
		}
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if after := m.input.Value(); after != before {
			var changeCmd tea.Cmd
			m, changeCmd = m.HandleThumbnailChange(after)
			return m, tea.Batch(cmd, changeCmd)
		}
		return m, cmd

	case controlFileSelector:
		var cmd tea.Cmd
		m.selector, cmd = m.selector.Update(msg)
		return m, cmd
	}

	if !key.Matches(msg, m.keys.Activate) {
		return m, nil
	}
	switch c {
	case controlUploadTool:
		return m, m.UseUploadTool()
	case controlManualLink:
		return m, m.EnterURL()
	case controlSnapshotLink:
		return m, m.TakeSnapshot()
	case controlViewLink:
		return m, common.OpenURL(m.props.Thumbnail)
	case controlNewThumbnail:
		return m, m.NewThumbnail()
	}
	return m, nil
}
