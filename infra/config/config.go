package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gildas/go-core"
	"github.com/gildas/go-errors"
	"github.com/joho/godotenv"
)

// Config holds application-level configuration.
type Config struct {
	StorageDir     string        // Where uploaded thumbnails are stored
	PublicURL      string        // Base URL the storage dir is served from, optional
	LogPath        string        // Log file; empty disables logging
	FFmpegPath     string        // ffmpeg binary used for video snapshots
	SnapshotOffset time.Duration // Position of the captured frame
	PreviewTimeout time.Duration // Remote preview fetch timeout
	APIDown        bool          // Force manual URL entry
	FileInfosPath  string        // JSON table of downloaded files, optional
}

// Load reads configuration from a .env file (if any) and environment variables.
//
//	THUMBPICK_STORAGE_DIR      thumbnail storage (default: ~/.local/share/thumbpick/thumbnails)
//	THUMBPICK_PUBLIC_URL       absolute http(s) URL serving the storage dir
//	THUMBPICK_LOG_PATH         log file path
//	THUMBPICK_FFMPEG           ffmpeg binary (default: "ffmpeg")
//	THUMBPICK_SNAPSHOT_OFFSET  e.g. "2s" (default: 1s)
//	THUMBPICK_PREVIEW_TIMEOUT  e.g. "6s" (default: 6s)
//	THUMBPICK_API_DOWN         "true" to start in manual mode
//	THUMBPICK_FILE_INFOS       path to the file-info JSON table
func Load() (Config, error) {
	_ = godotenv.Load()

	storageDir := core.GetEnvAsString("THUMBPICK_STORAGE_DIR", "")
	if storageDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, errors.ArgumentMissing.With("THUMBPICK_STORAGE_DIR").(errors.Error).Wrap(err)
		}
		storageDir = filepath.Join(home, ".local", "share", "thumbpick", "thumbnails")
	}

	publicURL := strings.TrimSpace(core.GetEnvAsString("THUMBPICK_PUBLIC_URL", ""))
	if publicURL != "" {
		parsed, err := url.Parse(publicURL)
		if err != nil || parsed.Host == "" || (parsed.Scheme != "https" && parsed.Scheme != "http") {
			return Config{}, errors.ArgumentInvalid.With("THUMBPICK_PUBLIC_URL", publicURL)
		}
		publicURL = strings.TrimRight(parsed.String(), "/")
	}

	offset := core.GetEnvAsDuration("THUMBPICK_SNAPSHOT_OFFSET", time.Second)
	if offset < 0 {
		return Config{}, errors.ArgumentInvalid.With("THUMBPICK_SNAPSHOT_OFFSET", offset)
	}

	return Config{
		StorageDir:     storageDir,
		PublicURL:      publicURL,
		LogPath:        core.GetEnvAsString("THUMBPICK_LOG_PATH", ""),
		FFmpegPath:     core.GetEnvAsString("THUMBPICK_FFMPEG", "ffmpeg"),
		SnapshotOffset: offset,
		PreviewTimeout: core.GetEnvAsDuration("THUMBPICK_PREVIEW_TIMEOUT", 6*time.Second),
		APIDown:        core.GetEnvAsBool("THUMBPICK_API_DOWN", false),
		FileInfosPath:  core.GetEnvAsString("THUMBPICK_FILE_INFOS", ""),
	}, nil
}
