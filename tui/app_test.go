package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/thumbpick/domain"
	"github.com/CrestNiraj12/thumbpick/tui/modal"
	"github.com/CrestNiraj12/thumbpick/tui/publish"
	"github.com/CrestNiraj12/thumbpick/tui/thumbnail"
)

type stubUploader struct {
	mu        sync.Mutex
	url       string
	err       error
	available bool
	uploaded  []string
}

func (s *stubUploader) Upload(_ context.Context, path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploaded = append(s.uploaded, path)
	return s.url, s.err
}

func (s *stubUploader) Available(context.Context) bool { return s.available }

type stubSnapshotter struct {
	mu        sync.Mutex
	path      string
	err       error
	got       domain.FileRef
	discarded []string
}

func (s *stubSnapshotter) Snapshot(_ context.Context, file domain.FileRef) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = file
	return s.path, s.err
}

func (s *stubSnapshotter) Discard(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discarded = append(s.discarded, path)
	return nil
}

func (s *stubSnapshotter) Discarded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.discarded...)
}

func drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, drain(t, c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}

func find[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func step(t *testing.T, a App, msg tea.Msg) (App, []tea.Msg) {
	t.Helper()
	next, cmd := a.Update(msg)
	return next.(App), drain(t, cmd)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// newTestApp leaves a nil stub out of Deps so the interface stays nil.
func newTestApp(form publish.Form, up *stubUploader, snap *stubSnapshotter) App {
	deps := Deps{HostName: "spee.ch", Form: form}
	if up != nil {
		deps.Uploader = up
	}
	if snap != nil {
		deps.Snapshotter = snap
	}
	return NewApp(deps)
}

func TestUploadFlow_ConfirmUploadCompleteAndReset(t *testing.T) {
	up := &stubUploader{url: "https://spee.ch/abc.png", available: true}
	a := newTestApp(publish.Form{Status: domain.StatusReady}, up, nil)

	a, _ = step(t, a, thumbnail.OpenModalMsg{
		ID:    domain.ModalConfirmThumbnailUpload,
		Props: domain.ModalProps{File: "/pics/logo.png"},
	})
	if a.Modal().ID() != domain.ModalConfirmThumbnailUpload {
		t.Fatalf("expected upload confirmation to open")
	}

	a, msgs := step(t, a, runes("y"))
	confirm, ok := find[modal.ConfirmUploadMsg](msgs)
	if !ok || confirm.Path != "/pics/logo.png" {
		t.Fatalf("expected confirm message, got %#v", msgs)
	}

	a, msgs = step(t, a, confirm)
	if a.Form().Status != domain.StatusInProgress || a.Form().ThumbnailPath != "/pics/logo.png" {
		t.Fatalf("expected upload in progress, got %#v", a.Form())
	}
	if !strings.Contains(a.View(), "Uploading thumbnail") {
		t.Fatalf("expected progress view: %q", a.View())
	}
	result, ok := find[UploadResultMsg](msgs)
	if !ok || result.Err != nil || result.URL != up.url {
		t.Fatalf("expected upload result, got %#v", msgs)
	}

	a, _ = step(t, a, result)
	if a.Form().Status != domain.StatusComplete || a.Form().Thumbnail != up.url {
		t.Fatalf("expected completed upload, got %#v", a.Form())
	}
	if a.Status() != "Thumbnail uploaded!" {
		t.Fatalf("unexpected status %q", a.Status())
	}

	a, msgs = step(t, a, thumbnail.ResetThumbnailStatusMsg{})
	avail, ok := find[availabilityMsg](msgs)
	if !ok || !avail.Available {
		t.Fatalf("expected availability check, got %#v", msgs)
	}
	a, _ = step(t, a, avail)
	if a.Form().Status != domain.StatusReady || a.Form().ThumbnailPath != "" {
		t.Fatalf("expected reset to READY, got %#v", a.Form())
	}
	if a.Form().Thumbnail != up.url {
		t.Fatalf("reset must keep the previous thumbnail URL")
	}
}

func TestUploadFailure_FallsBackToManualEntry(t *testing.T) {
	up := &stubUploader{err: errors.New("host unreachable")}
	a := newTestApp(publish.Form{Status: domain.StatusReady}, up, nil)

	a, msgs := step(t, a, modal.ConfirmUploadMsg{Path: "/pics/logo.png"})
	result, ok := find[UploadResultMsg](msgs)
	if !ok {
		t.Fatalf("expected upload result")
	}
	a, _ = step(t, a, result)
	if a.Form().Status != domain.StatusAPIDown || a.Form().Err == nil {
		t.Fatalf("expected API_DOWN with error, got %#v", a.Form())
	}
	if !strings.Contains(a.Status(), "host unreachable") {
		t.Fatalf("expected error in status bar, got %q", a.Status())
	}
	if !strings.Contains(a.View(), "Enter a URL for your thumbnail.") {
		t.Fatalf("expected manual entry view")
	}
}

func TestReset_UnavailableHostGoesToAPIDown(t *testing.T) {
	a := newTestApp(publish.Form{Status: domain.StatusComplete, Thumbnail: "https://spee.ch/a.png"}, &stubUploader{}, nil)

	a, msgs := step(t, a, thumbnail.ResetThumbnailStatusMsg{})
	avail, ok := find[availabilityMsg](msgs)
	if !ok || avail.Available {
		t.Fatalf("expected unavailable host, got %#v", msgs)
	}
	a, _ = step(t, a, avail)
	if a.Form().Status != domain.StatusAPIDown {
		t.Fatalf("expected API_DOWN, got %s", a.Form().Status)
	}
}

func TestSnapshotFlow_OpensUploadConfirmation(t *testing.T) {
	snap := &stubSnapshotter{path: "/tmp/frame.png"}
	video := domain.FilePath("/videos/clip.mp4")
	a := newTestApp(publish.Form{Status: domain.StatusReady, FilePath: video}, &stubUploader{}, snap)

	a, msgs := step(t, a, modal.ConfirmSnapshotMsg{File: video})
	if a.Status() != "Capturing frame..." {
		t.Fatalf("unexpected status %q", a.Status())
	}
	result, ok := find[SnapshotResultMsg](msgs)
	if !ok || result.Path != "/tmp/frame.png" {
		t.Fatalf("expected snapshot result, got %#v", msgs)
	}
	if snap.got != domain.FileRef(video) {
		t.Fatalf("snapshot of wrong file: %#v", snap.got)
	}

	a, _ = step(t, a, result)
	if a.Modal().ID() != domain.ModalConfirmThumbnailUpload {
		t.Fatalf("expected upload confirmation for the frame")
	}
	if !strings.Contains(a.View(), "/tmp/frame.png") {
		t.Fatalf("expected frame path in dialog")
	}
}

func TestSnapshotFailure_ShowsError(t *testing.T) {
	a := newTestApp(publish.Form{Status: domain.StatusReady}, &stubUploader{}, nil)

	a, msgs := step(t, a, modal.ConfirmSnapshotMsg{File: domain.FilePath("/v.mp4")})
	result, ok := find[SnapshotResultMsg](msgs)
	if !ok || !errors.Is(result.Err, domain.ErrNoFFmpeg) {
		t.Fatalf("expected ffmpeg error, got %#v", msgs)
	}
	a, _ = step(t, a, result)
	if a.Modal().IsOpen() || !strings.Contains(a.Status(), "Error capturing frame") {
		t.Fatalf("expected error status without modal, got %q", a.Status())
	}
}

func TestModalCancel(t *testing.T) {
	a := newTestApp(publish.Form{Status: domain.StatusReady}, &stubUploader{}, nil)
	a, _ = step(t, a, thumbnail.OpenModalMsg{ID: domain.ModalConfirmThumbnailUpload, Props: domain.ModalProps{File: "/a.png"}})

	a, msgs := step(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	closed, ok := find[modal.ClosedMsg](msgs)
	if !ok {
		t.Fatalf("expected closed message, got %#v", msgs)
	}
	a, _ = step(t, a, closed)
	if a.Modal().IsOpen() || a.Status() != "Cancelled." {
		t.Fatalf("expected cancelled dialog, got %q", a.Status())
	}
	if a.Form().Status != domain.StatusReady {
		t.Fatalf("cancel must not change the form")
	}
}

func TestStatusPatch_AppliedToForm(t *testing.T) {
	a := newTestApp(publish.Form{Status: domain.StatusReady}, &stubUploader{}, nil)
	a, _ = step(t, a, thumbnail.UpdatePublishFormMsg{Patch: domain.PatchStatus(domain.StatusManual)})
	if a.Form().Status != domain.StatusManual {
		t.Fatalf("expected MANUAL, got %s", a.Form().Status)
	}
	a, _ = step(t, a, thumbnail.UpdatePublishFormMsg{Patch: domain.PatchThumbnail("https://spee.ch/x.png")})
	if a.Form().Thumbnail != "https://spee.ch/x.png" {
		t.Fatalf("expected thumbnail patch applied, got %q", a.Form().Thumbnail)
	}
}

func TestQuit(t *testing.T) {
	// Disabled manual entry leaves no text field focused.
	a := newTestApp(publish.Form{Status: domain.StatusAPIDown, Disabled: true}, &stubUploader{}, nil)
	_, msgs := step(t, a, runes("q"))
	if _, ok := find[tea.QuitMsg](msgs); !ok {
		t.Fatalf("expected quit, got %#v", msgs)
	}

	// q is text while the URL field has focus.
	a = newTestApp(publish.Form{Status: domain.StatusManual}, &stubUploader{}, nil)
	_, msgs = step(t, a, runes("q"))
	if _, ok := find[tea.QuitMsg](msgs); ok {
		t.Fatalf("q must not quit while editing")
	}

	_, msgs = step(t, a, tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, ok := find[tea.QuitMsg](msgs); !ok {
		t.Fatalf("ctrl+c must always quit")
	}
}

func TestSnapshotFlow_SpinsWhileCapturing(t *testing.T) {
	video := domain.FilePath("/videos/clip.mp4")
	a := newTestApp(publish.Form{Status: domain.StatusReady, FilePath: video}, &stubUploader{}, &stubSnapshotter{path: "/tmp/frame.png"})

	a, msgs := step(t, a, modal.ConfirmSnapshotMsg{File: video})
	if !a.Capturing() {
		t.Fatalf("expected capture in progress")
	}
	result, _ := find[SnapshotResultMsg](msgs)
	tick, ok := find[spinner.TickMsg](msgs)
	if !ok {
		t.Fatalf("expected spinner tick, got %#v", msgs)
	}
	before := a.View()
	a, msgs = step(t, a, tick)
	if _, ok := find[spinner.TickMsg](msgs); !ok {
		t.Fatalf("expected the spinner to keep ticking, got %#v", msgs)
	}
	if a.View() == before {
		t.Fatalf("expected the spinner frame to advance")
	}
	if !strings.Contains(a.View(), "Capturing frame...") {
		t.Fatalf("expected capture status in view")
	}

	a, _ = step(t, a, result)
	if a.Capturing() {
		t.Fatalf("capture must end with its result")
	}
	_, msgs = step(t, a, tick)
	if _, ok := find[spinner.TickMsg](msgs); ok {
		t.Fatalf("spinner must stop once the capture is done")
	}
}

func TestSnapshotFlow_UploadedFrameIsDiscarded(t *testing.T) {
	snap := &stubSnapshotter{path: "/tmp/frame.png"}
	up := &stubUploader{url: "https://spee.ch/frame.png", available: true}
	video := domain.FilePath("/videos/clip.mp4")
	a := newTestApp(publish.Form{Status: domain.StatusReady, FilePath: video}, up, snap)

	a, _ = step(t, a, SnapshotResultMsg{Path: "/tmp/frame.png"})
	a, msgs := step(t, a, runes("y"))
	confirm, ok := find[modal.ConfirmUploadMsg](msgs)
	if !ok {
		t.Fatalf("expected confirm message, got %#v", msgs)
	}
	a, msgs = step(t, a, confirm)
	result, ok := find[UploadResultMsg](msgs)
	if !ok {
		t.Fatalf("expected upload result, got %#v", msgs)
	}
	if got := snap.Discarded(); len(got) != 0 {
		t.Fatalf("frame discarded before upload finished: %v", got)
	}

	a, _ = step(t, a, result)
	if got := snap.Discarded(); len(got) != 1 || got[0] != "/tmp/frame.png" {
		t.Fatalf("expected frame discarded after upload, got %v", got)
	}

	// A repeated result finds no pending frame.
	_, _ = step(t, a, UploadResultMsg{Path: "/tmp/frame.png", URL: "https://spee.ch/frame.png"})
	if got := snap.Discarded(); len(got) != 1 {
		t.Fatalf("frame discarded twice: %v", got)
	}
}

func TestSnapshotFlow_CancelledFrameIsDiscarded(t *testing.T) {
	snap := &stubSnapshotter{path: "/tmp/frame.png"}
	a := newTestApp(publish.Form{Status: domain.StatusReady}, &stubUploader{}, snap)

	a, _ = step(t, a, SnapshotResultMsg{Path: "/tmp/frame.png"})
	a, msgs := step(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	closed, ok := find[modal.ClosedMsg](msgs)
	if !ok {
		t.Fatalf("expected closed message, got %#v", msgs)
	}
	_, _ = step(t, a, closed)
	if got := snap.Discarded(); len(got) != 1 || got[0] != "/tmp/frame.png" {
		t.Fatalf("expected cancelled frame discarded, got %v", got)
	}
}

func TestModalCancel_UserFileIsKept(t *testing.T) {
	snap := &stubSnapshotter{}
	a := newTestApp(publish.Form{Status: domain.StatusReady}, &stubUploader{}, snap)
	a, _ = step(t, a, thumbnail.OpenModalMsg{ID: domain.ModalConfirmThumbnailUpload, Props: domain.ModalProps{File: "/pics/a.png"}})

	a, msgs := step(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	closed, _ := find[modal.ClosedMsg](msgs)
	_, _ = step(t, a, closed)
	if got := snap.Discarded(); len(got) != 0 {
		t.Fatalf("user files must never be discarded, got %v", got)
	}
}
