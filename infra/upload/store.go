package upload

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gildas/go-errors"
	"github.com/gildas/go-logger"
	"github.com/google/uuid"

	"github.com/CrestNiraj12/thumbpick/domain"
)

// LocalStore hosts thumbnails in a directory, optionally served under a public URL.
type LocalStore struct {
	dir       string
	publicURL string
	log       *logger.Logger
}

// NewLocalStore creates a LocalStore rooted at dir. publicURL may be empty,
// in which case Upload returns file:// URLs.
func NewLocalStore(dir, publicURL string, log *logger.Logger) *LocalStore {
	return &LocalStore{
		dir:       dir,
		publicURL: strings.TrimRight(publicURL, "/"),
		log:       log.Child("upload", "store"),
	}
}

// Upload decodes the image at path, re-encodes it under a fresh name and
// returns the URL it is reachable at.
func (s *LocalStore) Upload(ctx context.Context, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.ArgumentMissing.With("path")
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(domain.AcceptedImageExtensions, ext) {
		s.log.Warnf("Rejected thumbnail %s", path)
		return "", domain.ErrUnsupportedImage
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		s.log.Errorf("Failed to open %s", path, err)
		return "", errors.NotFound.With("path", path).(errors.Error).Wrap(err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(s.dir, name)
	if err := imaging.Save(img, dst); err != nil {
		s.log.Errorf("Failed to write %s", dst, err)
		return "", err
	}
	s.log.Infof("Stored thumbnail %s as %s", path, dst)

	if s.publicURL != "" {
		return s.publicURL + "/" + url.PathEscape(name), nil
	}
	abs, err := filepath.Abs(dst)
	if err != nil {
		abs = dst
	}
	return (&url.URL{Scheme: "file", Path: abs}).String(), nil
}

// Available reports whether the store directory exists (or can be created) and is writable.
func (s *LocalStore) Available(ctx context.Context) bool {
	if s.dir == "" {
		return false
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.log.Record("err", err).Warnf("Storage %s unavailable", s.dir)
		return false
	}
	f, err := os.CreateTemp(s.dir, ".writable-*")
	if err != nil {
		s.log.Record("err", err).Warnf("Storage %s is not writable", s.dir)
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
