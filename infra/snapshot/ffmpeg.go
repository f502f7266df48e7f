package snapshot

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/gildas/go-logger"

	"github.com/CrestNiraj12/thumbpick/domain"
)

// FFmpeg captures video frames by shelling out to ffmpeg.
type FFmpeg struct {
	binary  string
	offset  time.Duration
	timeout time.Duration
	log     *logger.Logger

	lookPath func(string) (string, error)

	mu     sync.Mutex
	frames map[string]bool // Frames written and not yet discarded
}

// NewFFmpeg creates an FFmpeg snapshotter. binary defaults to "ffmpeg";
// offset is how far into the video the frame is taken.
func NewFFmpeg(binary string, offset time.Duration, log *logger.Logger) *FFmpeg {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	return &FFmpeg{
		binary:   binary,
		offset:   offset,
		timeout:  15 * time.Second,
		log:      log.Child("snapshot", "ffmpeg"),
		lookPath: exec.LookPath,
		frames:   make(map[string]bool),
	}
}

// Snapshot writes one PNG frame of file to a temp file and returns its path.
func (f *FFmpeg) Snapshot(ctx context.Context, file domain.FileRef) (string, error) {
	if file == nil || strings.TrimSpace(file.LocalPath()) == "" {
		return "", domain.ErrNoMediaPath
	}
	bin, err := f.lookPath(f.binary)
	if err != nil {
		return "", domain.ErrNoFFmpeg
	}

	tmp, err := os.CreateTemp("", "thumbpick-snapshot-*.png")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	out := tmp.Name()
	tmp.Close()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, f.args(file.LocalPath(), out)...)
	if combined, err := cmd.CombinedOutput(); err != nil {
		os.Remove(out)
		f.log.Errorf("ffmpeg failed on %s: %s", file.LocalPath(), strings.TrimSpace(string(combined)), err)
		return "", fmt.Errorf("ffmpeg: %w", err)
	}
	f.log.Infof("Captured frame of %s at %s into %s", file.LocalPath(), f.offset, out)
	f.mu.Lock()
	f.frames[out] = true
	f.mu.Unlock()
	return out, nil
}

// Discard removes a frame written by Snapshot. Other paths are left alone.
func (f *FFmpeg) Discard(path string) error {
	f.mu.Lock()
	owned := f.frames[path]
	delete(f.frames, path)
	f.mu.Unlock()
	if !owned {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	f.log.Debugf("Removed frame %s", path)
	return nil
}

func (f *FFmpeg) args(input, output string) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-ss", fmt.Sprintf("%.3f", f.offset.Seconds()),
		"-i", input,
		"-frames:v", "1",
		output,
	}
}
