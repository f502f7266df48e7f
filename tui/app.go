package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gildas/go-logger"

	"github.com/CrestNiraj12/thumbpick/app"
	"github.com/CrestNiraj12/thumbpick/domain"
	"github.com/CrestNiraj12/thumbpick/tui/common"
	"github.com/CrestNiraj12/thumbpick/tui/modal"
	"github.com/CrestNiraj12/thumbpick/tui/publish"
	"github.com/CrestNiraj12/thumbpick/tui/thumbnail"
)

const (
	uploadTimeout       = 60 * time.Second
	snapshotTimeout     = 30 * time.Second
	availabilityTimeout = 5 * time.Second
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Media       app.MediaTyper
	Preview     app.PreviewRenderer
	Uploader    app.ThumbnailUploader
	Snapshotter app.Snapshotter
	Log         *logger.Logger
	HostName    string
	Form        publish.Form // Initial form state
}

// UploadResultMsg carries the outcome of a thumbnail upload.
type UploadResultMsg struct {
	Path string
	URL  string
	Err  error
}

// SnapshotResultMsg carries the outcome of a video frame capture.
type SnapshotResultMsg struct {
	Path string
	Err  error
}

// availabilityMsg carries the result of an upload-host check before a reset.
type availabilityMsg struct {
	Available bool
}

// App is the root Bubble Tea model. It owns the publish form and routes
// requests from the thumbnail selector to the services.
type App struct {
	deps     Deps
	log      *logger.Logger
	form     publish.Form
	selector thumbnail.Model
	modal    modal.Model
	keys     common.KeyMap
	spinner  spinner.Model
	status   string // Transient status message (e.g. "Thumbnail uploaded!")
	initCmd  tea.Cmd

	capturing bool   // A frame capture is running
	frame     string // Captured frame awaiting upload or cancel
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	log := deps.Log
	if log == nil {
		log = logger.Create("thumbpick", &logger.NilStream{})
	}
	selector, cmd := thumbnail.New(deps.Form.SelectorProps(), thumbnail.Deps{
		Media:    deps.Media,
		Preview:  deps.Preview,
		HostName: deps.HostName,
	}).Start()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = common.SpinnerStyle

	return App{
		deps:     deps,
		log:      log.Child("tui", "app"),
		form:     deps.Form,
		selector: selector,
		modal:    modal.New(),
		keys:     common.DefaultKeyMap(),
		spinner:  s,
		initCmd:  cmd,
	}
}

// Init returns the selector's startup commands.
func (a App) Init() tea.Cmd {
	return a.initCmd
}

// Form returns the current publish-form state.
func (a App) Form() publish.Form { return a.form }

// Status returns the transient status message.
func (a App) Status() string { return a.status }

// Modal returns the modal manager.
func (a App) Modal() modal.Model { return a.modal }

// Capturing reports whether a video frame is being captured.
func (a App) Capturing() bool { return a.capturing }

// Update handles messages and routes them to the modal or the selector.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		if a.modal.IsOpen() {
			var cmd tea.Cmd
			a.modal, cmd = a.modal.Update(msg)
			return a, cmd
		}
		if key.Matches(msg, a.keys.Quit) && !a.selector.Editing() {
			return a, tea.Quit
		}

	case thumbnail.UpdatePublishFormMsg:
		a.form = a.form.Apply(msg.Patch)
		if msg.Patch.UploadThumbnailStatus != nil {
			a.log.Debugf("Thumbnail status changed to %s", *msg.Patch.UploadThumbnailStatus)
			a.status = ""
		}
		return a.syncSelector()

	case thumbnail.OpenModalMsg:
		a.log.Debugf("Opening modal %s", msg.ID)
		a.modal = a.modal.Open(msg.ID, msg.Props)
		return a, nil

	case thumbnail.ResetThumbnailStatusMsg:
		return a, a.checkAvailability()

	case availabilityMsg:
		a.form = a.form.Reset(msg.Available)
		a.status = ""
		if !msg.Available {
			a.log.Warnf("Thumbnail host unavailable, falling back to manual entry")
		}
		return a.syncSelector()

	case modal.ConfirmUploadMsg:
		a.log.Infof("Uploading thumbnail %s", msg.Path)
		a.form = a.form.BeginUpload(msg.Path)
		a.status = ""
		next, cmd := a.syncSelector()
		return next, tea.Batch(cmd, a.upload(msg.Path))

	case spinner.TickMsg:
		var spinCmd, selectorCmd tea.Cmd
		if a.capturing {
			a.spinner, spinCmd = a.spinner.Update(msg)
		}
		a.selector, selectorCmd = a.selector.Update(msg)
		return a, tea.Batch(spinCmd, selectorCmd)

	case UploadResultMsg:
		a.form = a.form.FinishUpload(msg.URL, msg.Err)
		discardCmd := a.discardFrame(msg.Path)
		if msg.Err != nil {
			a.log.Errorf("Failed to upload %s", msg.Path, msg.Err)
			a.status = "Error uploading: " + msg.Err.Error()
		} else {
			a.log.Infof("Uploaded %s to %s", msg.Path, msg.URL)
			a.status = "Thumbnail uploaded!"
		}
		next, cmd := a.syncSelector()
		return next, tea.Batch(cmd, discardCmd)

	case modal.ConfirmSnapshotMsg:
		a.status = "Capturing frame..."
		a.capturing = true
		return a, tea.Batch(a.snapshot(msg.File), a.spinner.Tick)

	case SnapshotResultMsg:
		a.capturing = false
		if msg.Err != nil {
			a.log.Errorf("Failed to capture frame", msg.Err)
			a.status = "Error capturing frame: " + msg.Err.Error()
			return a, nil
		}
		a.status = ""
		a.frame = msg.Path
		a.modal = a.modal.Open(domain.ModalConfirmThumbnailUpload, domain.ModalProps{File: msg.Path})
		return a, nil

	case modal.ClosedMsg:
		a.status = "Cancelled."
		if msg.ID == domain.ModalConfirmThumbnailUpload {
			return a, a.discardFrame(a.frame)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.selector, cmd = a.selector.Update(msg)
	return a, cmd
}

// syncSelector pushes the form state back down to the selector.
func (a App) syncSelector() (App, tea.Cmd) {
	var cmd tea.Cmd
	a.selector, cmd = a.selector.SetProps(a.form.SelectorProps())
	return a, cmd
}

func (a App) checkAvailability() tea.Cmd {
	uploader := a.deps.Uploader
	return func() tea.Msg {
		if uploader == nil {
			return availabilityMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), availabilityTimeout)
		defer cancel()
		return availabilityMsg{Available: uploader.Available(ctx)}
	}
}

func (a App) upload(path string) tea.Cmd {
	uploader := a.deps.Uploader
	return func() tea.Msg {
		if uploader == nil {
			return UploadResultMsg{Path: path, Err: domain.ErrNoUploader}
		}
		ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
		defer cancel()
		url, err := uploader.Upload(ctx, path)
		return UploadResultMsg{Path: path, URL: url, Err: err}
	}
}

// discardFrame removes the captured frame once path, its upload, is done
// with. It clears the pending frame as a side effect.
func (a *App) discardFrame(path string) tea.Cmd {
	if a.frame == "" || path != a.frame {
		return nil
	}
	a.frame = ""
	snapshotter := a.deps.Snapshotter
	log := a.log
	return func() tea.Msg {
		if snapshotter == nil {
			return nil
		}
		if err := snapshotter.Discard(path); err != nil {
			log.Record("err", err).Warnf("Failed to remove frame %s", path)
		}
		return nil
	}
}

func (a App) snapshot(file domain.FileRef) tea.Cmd {
	snapshotter := a.deps.Snapshotter
	return func() tea.Msg {
		if snapshotter == nil {
			return SnapshotResultMsg{Err: domain.ErrNoFFmpeg}
		}
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		defer cancel()
		path, err := snapshotter.Snapshot(ctx, file)
		return SnapshotResultMsg{Path: path, Err: err}
	}
}

// View renders the selector, the open modal and the status bar.
func (a App) View() string {
	s := common.AppTitleStyle.Render("Thumbnail") + "\n\n" + a.selector.View()

	if a.modal.IsOpen() {
		s += "\n\n" + a.modal.View()
	}

	// Append transient status if present.
	if a.status != "" {
		style := common.StatusBarStyle
		if a.form.Err != nil {
			style = common.ErrorStyle
		}
		status := a.status
		if a.capturing {
			status = a.spinner.View() + " " + status
		}
		s += "\n" + style.Render(status)
	}

	return s
}
