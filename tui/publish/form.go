package publish

import (
	"github.com/CrestNiraj12/thumbpick/domain"
	"github.com/CrestNiraj12/thumbpick/tui/thumbnail"
)

// Form is the publish-form state. It owns the thumbnail fields and every
// status transition; views only request changes.
type Form struct {
	FilePath      domain.FileRef
	FileInfos     map[string]domain.FileInfo
	MyClaim       *domain.Claim
	Thumbnail     string
	ThumbnailPath string
	Status        domain.ThumbnailStatus
	Disabled      bool
	Err           error // Last upload error, cleared on the next transition
}

// Apply merges the set fields of p.
func (f Form) Apply(p domain.FormPatch) Form {
	if p.Thumbnail != nil {
		f.Thumbnail = *p.Thumbnail
	}
	if p.ThumbnailPath != nil {
		f.ThumbnailPath = *p.ThumbnailPath
	}
	if p.UploadThumbnailStatus != nil {
		f.Status = *p.UploadThumbnailStatus
		f.Err = nil
	}
	return f
}

// Reset starts thumbnail selection over: READY when uploads are available,
// API_DOWN otherwise.
func (f Form) Reset(apiAvailable bool) Form {
	f.Status = domain.StatusReady
	if !apiAvailable {
		f.Status = domain.StatusAPIDown
	}
	f.ThumbnailPath = ""
	f.Err = nil
	return f
}

// BeginUpload marks path as being uploaded.
func (f Form) BeginUpload(path string) Form {
	f.Status = domain.StatusInProgress
	f.ThumbnailPath = path
	f.Err = nil
	return f
}

// FinishUpload records the upload outcome. A failure falls back to manual
// URL entry.
func (f Form) FinishUpload(url string, err error) Form {
	if err != nil {
		f.Status = domain.StatusAPIDown
		f.Err = err
		return f
	}
	f.Status = domain.StatusComplete
	f.Thumbnail = url
	f.Err = nil
	return f
}

// SelectorProps projects the form onto the thumbnail selector's props.
func (f Form) SelectorProps() thumbnail.Props {
	return thumbnail.Props{
		FilePath:      f.FilePath,
		FileInfos:     f.FileInfos,
		MyClaim:       f.MyClaim,
		Thumbnail:     f.Thumbnail,
		FormDisabled:  f.Disabled,
		Status:        f.Status,
		ThumbnailPath: f.ThumbnailPath,
	}
}
