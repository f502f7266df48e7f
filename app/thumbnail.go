package app

import (
	"context"

	"github.com/CrestNiraj12/thumbpick/domain"
)

// ThumbnailUploader hosts thumbnail images.
type ThumbnailUploader interface {
	// Upload stores the image at path and returns its public URL.
	Upload(ctx context.Context, path string) (string, error)

	// Available reports whether uploads can currently be accepted.
	Available(ctx context.Context) bool
}

// Snapshotter captures a still frame from a video.
type Snapshotter interface {
	// Snapshot writes a frame of the referenced video to an image file and returns its path.
	Snapshot(ctx context.Context, file domain.FileRef) (string, error)

	// Discard removes a frame returned by Snapshot once it is no longer needed.
	Discard(path string) error
}
