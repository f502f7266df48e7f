package preview

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"image"
	"image/color"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gildas/go-errors"
	"github.com/gildas/go-logger"
)

//go:embed assets/*.png
var assets embed.FS

const (
	assetScheme  = "asset:"
	maxImageSize = 8 * 1024 * 1024
)

// Renderer loads thumbnail sources and renders them as truecolor ANSI blocks.
// A load or decode failure is reported as an error, which callers treat as
// the image's load-error event.
type Renderer struct {
	client *http.Client
	log    *logger.Logger
}

// NewRenderer creates a Renderer whose remote fetches give up after timeout.
func NewRenderer(timeout time.Duration, log *logger.Logger) *Renderer {
	if timeout <= 0 {
		timeout = 6 * time.Second
	}
	return &Renderer{
		client: &http.Client{Timeout: timeout},
		log:    log.Child("preview", "render"),
	}
}

// Render loads src and renders it into a width x height cell box.
// The image is cropped to fill the box rather than letterboxed.
func (r *Renderer) Render(ctx context.Context, src string, width, height int) (string, error) {
	data, err := r.load(ctx, src)
	if err != nil {
		r.log.Record("err", err).Debugf("Failed to load %s", src)
		return "", err
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		r.log.Record("err", err).Debugf("Failed to decode %s", src)
		return "", fmt.Errorf("decoding %s: %w", src, err)
	}
	return renderANSI(img, width, height), nil
}

func (r *Renderer) load(ctx context.Context, src string) ([]byte, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, errors.ArgumentMissing.With("src")
	}
	if name, ok := strings.CutPrefix(src, assetScheme); ok {
		data, err := assets.ReadFile("assets/" + name)
		if err != nil {
			return nil, errors.NotFound.With("asset", name).(errors.Error).Wrap(err)
		}
		return data, nil
	}

	u, err := url.Parse(src)
	if err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return r.fetch(ctx, u.String())
		case "file":
			return readFile(u.Path)
		case "":
		default:
			return nil, errors.ArgumentInvalid.With("src", src)
		}
	}
	return readFile(src)
}

func (r *Renderer) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("preview status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NotFound.With("path", path).(errors.Error).Wrap(err)
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxImageSize))
}

// renderANSI paints one cell per pixel of the image filled to w x h.
func renderANSI(img image.Image, w, h int) string {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ""
	}
	if w < 4 {
		w = 4
	}
	if h < 2 {
		h = 2
	}
	filled := imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
	var out strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(filled.At(x, y)).(color.NRGBA)
			fmt.Fprintf(&out, "\x1b[48;2;%d;%d;%dm  \x1b[0m", c.R, c.G, c.B)
		}
		if y < h-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}
