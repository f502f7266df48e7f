package thumbnail

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/thumbpick/app"
	"github.com/CrestNiraj12/thumbpick/domain"
	"github.com/CrestNiraj12/thumbpick/tui/common"
	"github.com/CrestNiraj12/thumbpick/tui/fileselector"
)

const (
	previewWidth  = 16
	previewHeight = 9
	loadTimeout   = 8 * time.Second
)

// Props is the publish-form state the selector renders. The form owns all of it.
type Props struct {
	FilePath      domain.FileRef
	FileInfos     map[string]domain.FileInfo
	MyClaim       *domain.Claim
	Thumbnail     string // "" when unset
	FormDisabled  bool
	Status        domain.ThumbnailStatus
	ThumbnailPath string
}

// Deps holds the selector's collaborators.
type Deps struct {
	Media    app.MediaTyper
	Preview  app.PreviewRenderer
	HostName string // Shown in the upload hint
}

type control int

const (
	controlInput control = iota
	controlUploadTool
	controlFileSelector
	controlManualLink
	controlSnapshotLink
	controlViewLink
	controlNewThumbnail
)

// Model is the thumbnail selector. Its only state of its own is
// thumbnailError; everything else is derived from Props.
type Model struct {
	props Props
	deps  Deps
	keys  common.KeyMap

	thumbnailError bool

	input    textinput.Model
	selector fileselector.Model
	spinner  spinner.Model
	focus    int

	checkedSrc string            // Source of the last check issued
	previews   map[string]string // Rendered previews of the sources still in use
	requested  map[string]bool   // Non-check preview loads in flight or done

	// Last URL edit sent to the form, the field text that produced it, and
	// every value sent while the field has had focus.
	emitted    string
	emittedRaw string
	sent       map[string]bool
}

// New creates a selector for the given props.
func New(props Props, deps Deps) Model {
	ti := textinput.New()
	ti.Prompt = "URL: "
	ti.Placeholder = "https://spee.ch/mylogo"
	ti.SetValue(props.Thumbnail)
	ti.CursorEnd()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = common.SpinnerStyle

	if deps.HostName == "" {
		deps.HostName = "the thumbnail host"
	}

	return Model{
		props:     props,
		deps:      deps,
		keys:      common.DefaultKeyMap(),
		input:     ti,
		selector:  fileselector.New("Thumbnail", "Choose a thumbnail", props.ThumbnailPath, domain.AcceptedImageExtensions),
		spinner:   s,
		previews:  make(map[string]string),
		requested: make(map[string]bool),
	}
}

// Start focuses the first control and issues the initial preview loads.
func (m Model) Start() (Model, tea.Cmd) {
	m.focus = 0
	focusCmd := m.applyFocus()
	previewCmd := m.ensurePreviews()
	var tickCmd tea.Cmd
	if m.props.Status == domain.StatusInProgress {
		tickCmd = m.spinner.Tick
	}
	return m, tea.Batch(focusCmd, previewCmd, tickCmd)
}

// Props returns the props last supplied by the form.
func (m Model) Props() Props { return m.props }

// ThumbnailError reports whether the current preview failed to load.
func (m Model) ThumbnailError() bool { return m.thumbnailError }

// Editing reports whether a text field currently has keyboard focus.
func (m Model) Editing() bool {
	return m.input.Focused() || m.selector.Typing()
}

// SetProps replaces the props after the form applied a change.
func (m Model) SetProps(p Props) (Model, tea.Cmd) {
	old := m.props
	m.props = p
	if m.shouldSyncInput(p.Thumbnail) {
		m.input.SetValue(p.Thumbnail)
		m.input.CursorEnd()
	}
	var pathCmd tea.Cmd
	if old.ThumbnailPath != p.ThumbnailPath {
		m.selector, pathCmd = m.selector.SetPath(p.ThumbnailPath)
	}

	var focusCmd tea.Cmd
	if old.Status != p.Status || old.FormDisabled != p.FormDisabled || m.focus >= len(m.controls()) {
		m.focus = 0
		focusCmd = m.applyFocus()
	}
	previewCmd := m.ensurePreviews()
	var tickCmd tea.Cmd
	if p.Status == domain.StatusInProgress && old.Status != domain.StatusInProgress {
		tickCmd = m.spinner.Tick
	}
	return m, tea.Batch(pathCmd, focusCmd, previewCmd, tickCmd)
}

// shouldSyncInput reports whether the URL field should take the form's
// value v. Echoes of earlier edits are ignored; the echo of the latest edit
// applies only if no keystroke landed after it.
func (m Model) shouldSyncInput(v string) bool {
	if v == m.input.Value() {
		return false
	}
	if !m.input.Focused() || !m.sent[v] {
		return true
	}
	return v == m.emitted && m.input.Value() == m.emittedRaw
}

// --- Derived values ---

func (m Model) manualView() bool {
	return m.props.Status == domain.StatusAPIDown || m.props.Status == domain.StatusManual
}

// PreviewSource resolves what the manual-entry preview shows.
func (m Model) PreviewSource() string {
	switch {
	case m.props.Thumbnail == "":
		return domain.MissingThumbnailAsset
	case m.thumbnailError:
		return domain.BrokenThumbnailAsset
	default:
		return m.props.Thumbnail
	}
}

// Outpoint returns the lookup key of the user's claim, or "" without one.
func (m Model) Outpoint() string {
	if m.props.MyClaim == nil {
		return ""
	}
	return m.props.MyClaim.Outpoint()
}

// ActiveFile is the chosen file, falling back to the download path of the
// claim's previously downloaded file.
func (m Model) ActiveFile() domain.FileRef {
	if !isEmptyRef(m.props.FilePath) {
		return m.props.FilePath
	}
	if op := m.Outpoint(); op != "" {
		if info, ok := m.props.FileInfos[op]; ok && info.DownloadPath != "" {
			return domain.FilePath(info.DownloadPath)
		}
	}
	return nil
}

// IsSupportedVideo reports whether the active file is a video.
func (m Model) IsSupportedVideo() bool {
	switch f := m.ActiveFile().(type) {
	case domain.FilePath:
		if m.deps.Media == nil {
			return false
		}
		return m.deps.Media.MediaType("", string(f)) == "video"
	case domain.FileDescriptor:
		if f.Type == "" {
			return false
		}
		major, _, _ := strings.Cut(f.Type, "/")
		return major == "video"
	}
	return false
}

func isEmptyRef(f domain.FileRef) bool {
	switch v := f.(type) {
	case nil:
		return true
	case domain.FilePath:
		return v == ""
	case domain.FileDescriptor:
		return v == (domain.FileDescriptor{})
	}
	return false
}

// controls lists the focusable controls of the current status block.
func (m Model) controls() []control {
	switch m.props.Status {
	case domain.StatusAPIDown, domain.StatusManual:
		if m.props.FormDisabled {
			return []control{controlUploadTool}
		}
		return []control{controlInput, controlUploadTool}
	case domain.StatusReady:
		c := []control{controlFileSelector, controlManualLink}
		if m.IsSupportedVideo() {
			c = append(c, controlSnapshotLink)
		}
		return c
	case domain.StatusComplete:
		if m.props.Thumbnail == "" {
			return nil
		}
		return []control{controlViewLink, controlNewThumbnail}
	}
	return nil
}

func (m Model) focused() (control, bool) {
	c := m.controls()
	if m.focus < 0 || m.focus >= len(c) {
		return 0, false
	}
	return c[m.focus], true
}

// applyFocus moves keyboard focus to the widget of the focused control.
func (m *Model) applyFocus() tea.Cmd {
	m.sent = nil
	m.input.Blur()
	m.selector = m.selector.Blur()
	c, ok := m.focused()
	if !ok {
		return nil
	}
	switch c {
	case controlInput:
		return m.input.Focus()
	case controlFileSelector:
		var cmd tea.Cmd
		m.selector, cmd = m.selector.Focus()
		return cmd
	}
	return nil
}

// --- Preview loading ---

// ensurePreviews issues the loads the current view needs: a check whenever
// the manual preview source changes, and a one-off load of the hosted
// thumbnail in the success view.
func (m *Model) ensurePreviews() tea.Cmd {
	if m.deps.Preview == nil {
		return nil
	}
	m.prunePreviews()
	switch {
	case m.manualView():
		src := m.PreviewSource()
		if src == m.checkedSrc {
			return nil
		}
		m.checkedSrc = src
		return m.load(src, true)
	case m.props.Status == domain.StatusComplete && m.props.Thumbnail != "":
		src := m.props.Thumbnail
		if m.requested[src] {
			return nil
		}
		m.requested[src] = true
		return m.load(src, false)
	}
	return nil
}

// inUse reports whether src can still be on screen.
func (m Model) inUse(src string) bool {
	switch src {
	case domain.MissingThumbnailAsset, domain.BrokenThumbnailAsset, m.props.Thumbnail:
		return true
	}
	return false
}

// prunePreviews drops cached previews of URLs that are no longer set.
func (m *Model) prunePreviews() {
	for src := range m.previews {
		if !m.inUse(src) {
			delete(m.previews, src)
		}
	}
	for src := range m.requested {
		if !m.inUse(src) {
			delete(m.requested, src)
		}
	}
}

func (m Model) load(src string, check bool) tea.Cmd {
	r := m.deps.Preview
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		out, err := r.Render(ctx, src, previewWidth, previewHeight)
		return PreviewLoadedMsg{Src: src, Preview: out, Err: err, Check: check}
	}
}

// handlePreviewLoaded records a finished load. Only a failed check of the
// source currently on screen sets the error flag.
func (m Model) handlePreviewLoaded(msg PreviewLoadedMsg) (Model, tea.Cmd) {
	if msg.Err == nil {
		if m.inUse(msg.Src) {
			m.previews[msg.Src] = msg.Preview
		}
		return m, nil
	}
	if !msg.Check {
		delete(m.requested, msg.Src)
		return m, nil
	}
	if !m.manualView() || msg.Src != m.PreviewSource() {
		return m, nil
	}
	m.thumbnailError = true
	cmd := m.ensurePreviews()
	return m, cmd
}

// --- Handlers ---

// HandleThumbnailChange propagates an edit of the URL field. Only the first
// space is removed. The error flag is cleared on every change; the new URL
// is checked once the form hands it back.
func (m Model) HandleThumbnailChange(raw string) (Model, tea.Cmd) {
	newThumbnail := strings.Replace(raw, " ", "", 1)
	m.thumbnailError = false
	m.emitted = newThumbnail
	m.emittedRaw = raw
	if m.sent == nil {
		m.sent = make(map[string]bool)
	}
	m.sent[newThumbnail] = true
	return m, emit(UpdatePublishFormMsg{Patch: domain.PatchThumbnail(newThumbnail)})
}

// ChooseFile requests the upload confirmation for a picked image.
func (m Model) ChooseFile(path string) tea.Cmd {
	return emit(OpenModalMsg{
		ID:    domain.ModalConfirmThumbnailUpload,
		Props: domain.ModalProps{File: path},
	})
}

// UseUploadTool switches from manual entry to the upload tool.
func (m Model) UseUploadTool() tea.Cmd {
	return emit(UpdatePublishFormMsg{Patch: domain.PatchStatus(domain.StatusReady)})
}

// EnterURL switches from the upload tool to manual URL entry.
func (m Model) EnterURL() tea.Cmd {
	return emit(UpdatePublishFormMsg{Patch: domain.PatchStatus(domain.StatusManual)})
}

// TakeSnapshot requests a frame capture of the active video. It is a no-op
// unless the active file is a video.
func (m Model) TakeSnapshot() tea.Cmd {
	if !m.IsSupportedVideo() {
		return nil
	}
	return emit(OpenModalMsg{
		ID:    domain.ModalAutoGenerateThumbnail,
		Props: domain.ModalProps{FilePath: m.ActiveFile()},
	})
}

// NewThumbnail asks the form to start over.
func (m Model) NewThumbnail() tea.Cmd {
	return emit(ResetThumbnailStatusMsg{})
}
