package domain

import (
	"strconv"
	"strings"

	"github.com/gildas/go-errors"
)

// FileRef is the file chosen for publishing: either a FilePath or a
// FileDescriptor. A nil FileRef means no file.
type FileRef interface {
	// LocalPath returns the on-disk path, or "" when unknown.
	LocalPath() string
}

// FilePath is a plain filesystem path.
type FilePath string

func (p FilePath) LocalPath() string { return string(p) }

// FileDescriptor is a file-like value that carries a MIME type.
type FileDescriptor struct {
	Path string
	Type string // e.g. "video/mp4"
}

func (d FileDescriptor) LocalPath() string { return d.Path }

// FileInfo describes a previously downloaded file.
type FileInfo struct {
	DownloadPath string `json:"download_path"`
	MimeType     string `json:"mime_type,omitempty"`
	FileName     string `json:"file_name,omitempty"`
}

// Claim identifies the user's existing claim for the URI being published.
type Claim struct {
	TxID string `json:"txid"`
	Nout int    `json:"nout"`
}

// Outpoint returns the "txid:nout" lookup key.
func (c Claim) Outpoint() string {
	return c.TxID + ":" + strconv.Itoa(c.Nout)
}

// ParseClaim parses a "txid:nout" outpoint.
func ParseClaim(s string) (Claim, error) {
	txid, nout, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || txid == "" {
		return Claim{}, errors.ArgumentInvalid.With("claim", s)
	}
	n, err := strconv.Atoi(nout)
	if err != nil || n < 0 {
		return Claim{}, errors.ArgumentInvalid.With("claim", s)
	}
	return Claim{TxID: txid, Nout: n}, nil
}
