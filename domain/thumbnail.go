package domain

// ThumbnailStatus is the thumbnail-acquisition mode of the publish form.
// The form owns it; views only read it and request transitions.
type ThumbnailStatus string

const (
	StatusAPIDown    ThumbnailStatus = "API_DOWN"
	StatusManual     ThumbnailStatus = "MANUAL"
	StatusReady      ThumbnailStatus = "READY"
	StatusInProgress ThumbnailStatus = "IN_PROGRESS"
	StatusComplete   ThumbnailStatus = "COMPLETE"
)

// Valid reports whether s is one of the known statuses.
func (s ThumbnailStatus) Valid() bool {
	switch s {
	case StatusAPIDown, StatusManual, StatusReady, StatusInProgress, StatusComplete:
		return true
	}
	return false
}

// ModalID names a dialog the modal manager knows how to open.
type ModalID string

const (
	ModalConfirmThumbnailUpload ModalID = "CONFIRM_THUMBNAIL_UPLOAD"
	ModalAutoGenerateThumbnail  ModalID = "AUTO_GENERATE_THUMBNAIL"
)

// ModalProps carries the payload for a modal.
type ModalProps struct {
	File     string  // Chosen image path (confirm upload)
	FilePath FileRef // Media to snapshot (auto-generate)
}

// FormPatch is a partial publish-form update. Nil fields are left untouched.
type FormPatch struct {
	Thumbnail             *string
	ThumbnailPath         *string
	UploadThumbnailStatus *ThumbnailStatus
}

// PatchThumbnail returns a patch that sets only the thumbnail URL.
func PatchThumbnail(url string) FormPatch {
	return FormPatch{Thumbnail: &url}
}

// PatchStatus returns a patch that sets only the upload status.
func PatchStatus(s ThumbnailStatus) FormPatch {
	return FormPatch{UploadThumbnailStatus: &s}
}

// Placeholder preview sources, resolved by the preview renderer.
const (
	MissingThumbnailAsset = "asset:thumbnail-missing.png"
	BrokenThumbnailAsset  = "asset:thumbnail-broken.png"
)

// AcceptedImageExtensions lists the file types a thumbnail upload accepts.
var AcceptedImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}
