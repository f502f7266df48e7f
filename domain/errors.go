package domain

import "github.com/gildas/go-errors"

var (
	// ErrUnsupportedImage indicates a thumbnail file outside the accepted image types.
	ErrUnsupportedImage = errors.ArgumentInvalid.With("thumbnail")

	// ErrNoMediaPath indicates a file reference without a local path.
	ErrNoMediaPath = errors.ArgumentMissing.With("path")

	// ErrNoFFmpeg indicates ffmpeg is not installed.
	ErrNoFFmpeg = errors.NotFound.With("ffmpeg")

	// ErrNoUploader indicates no thumbnail host is configured.
	ErrNoUploader = errors.NotFound.With("uploader")
)
