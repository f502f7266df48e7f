package app

import "context"

// MediaTyper classifies media by file name and content type.
type MediaTyper interface {
	// MediaType returns a coarse kind such as "video", "image" or "unknown".
	MediaType(contentType, fileName string) string
}

// PreviewRenderer turns an image source into a terminal preview.
// Implemented by infra/preview. A returned error is the load-failure signal.
type PreviewRenderer interface {
	Render(ctx context.Context, src string, width, height int) (string, error)
}
