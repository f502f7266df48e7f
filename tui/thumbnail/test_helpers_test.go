package thumbnail

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/thumbpick/domain"
)

type stubMedia struct {
	mu    sync.Mutex
	kinds map[string]string
	calls []string
}

func (s *stubMedia) MediaType(_ string, fileName string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, fileName)
	if k, ok := s.kinds[fileName]; ok {
		return k
	}
	return "unknown"
}

type stubPreview struct {
	mu    sync.Mutex
	fail  map[string]bool
	calls []string
}

var errBrokenImage = errors.New("broken image")

func (s *stubPreview) Render(_ context.Context, src string, _, _ int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, src)
	if s.fail[src] {
		return "", errBrokenImage
	}
	return "PREVIEW:" + src, nil
}

func (s *stubPreview) rendered() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func newTestModel(props Props) (Model, *stubMedia, *stubPreview) {
	media := &stubMedia{kinds: map[string]string{}}
	preview := &stubPreview{fail: map[string]bool{}}
	return New(props, Deps{Media: media, Preview: preview, HostName: "spee.ch"}), media, preview
}

// drain runs cmd and any batched commands, returning the messages that
// arrive promptly. Slow commands such as cursor blinks are dropped.
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

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func findPreviewMsg(msgs []tea.Msg, src string) (PreviewLoadedMsg, bool) {
	for _, msg := range msgs {
		if v, ok := msg.(PreviewLoadedMsg); ok && v.Src == src {
			return v, true
		}
	}
	return PreviewLoadedMsg{}, false
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func statusOf(p domain.FormPatch) domain.ThumbnailStatus {
	if p.UploadThumbnailStatus == nil {
		return ""
	}
	return *p.UploadThumbnailStatus
}
