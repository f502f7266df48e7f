package publish

import (
	"errors"
	"testing"

	"github.com/CrestNiraj12/thumbpick/domain"
)

func TestApply_MergesOnlySetFields(t *testing.T) {
	f := Form{Thumbnail: "https://a", ThumbnailPath: "/x/a.png", Status: domain.StatusManual}

	f = f.Apply(domain.PatchThumbnail("https://b"))
	if f.Thumbnail != "https://b" || f.Status != domain.StatusManual || f.ThumbnailPath != "/x/a.png" {
		t.Fatalf("thumbnail patch touched other fields: %#v", f)
	}

	f.Err = errors.New("boom")
	f = f.Apply(domain.PatchStatus(domain.StatusReady))
	if f.Status != domain.StatusReady || f.Thumbnail != "https://b" {
		t.Fatalf("status patch mismatch: %#v", f)
	}
	if f.Err != nil {
		t.Fatalf("status transition must clear the last error")
	}

	if got := f.Apply(domain.FormPatch{}); got.Thumbnail != f.Thumbnail || got.Status != f.Status {
		t.Fatalf("empty patch must be a no-op")
	}
}

func TestReset(t *testing.T) {
	f := Form{Status: domain.StatusComplete, Thumbnail: "https://a", ThumbnailPath: "/x/a.png"}

	if got := f.Reset(true); got.Status != domain.StatusReady || got.ThumbnailPath != "" {
		t.Fatalf("reset with api available: %#v", got)
	}
	if got := f.Reset(false); got.Status != domain.StatusAPIDown {
		t.Fatalf("reset with api down: %#v", got)
	}
	if got := f.Reset(true); got.Thumbnail != "https://a" {
		t.Fatalf("reset must keep the thumbnail value")
	}
}

func TestUploadLifecycle(t *testing.T) {
	f := Form{Status: domain.StatusReady}.BeginUpload("/x/logo.png")
	if f.Status != domain.StatusInProgress || f.ThumbnailPath != "/x/logo.png" {
		t.Fatalf("begin upload: %#v", f)
	}

	ok := f.FinishUpload("https://cdn/logo.png", nil)
	if ok.Status != domain.StatusComplete || ok.Thumbnail != "https://cdn/logo.png" {
		t.Fatalf("finish upload: %#v", ok)
	}

	failed := f.FinishUpload("", errors.New("disk full"))
	if failed.Status != domain.StatusAPIDown || failed.Err == nil || failed.Thumbnail != "" {
		t.Fatalf("failed upload: %#v", failed)
	}
}

func TestSelectorProps(t *testing.T) {
	claim := &domain.Claim{TxID: "t", Nout: 2}
	f := Form{
		FilePath:      domain.FilePath("/x/clip.mp4"),
		FileInfos:     map[string]domain.FileInfo{"t:2": {DownloadPath: "/x/clip.mp4"}},
		MyClaim:       claim,
		Thumbnail:     "https://a",
		ThumbnailPath: "/x/a.png",
		Status:        domain.StatusReady,
		Disabled:      true,
	}
	p := f.SelectorProps()
	if p.FilePath != f.FilePath || p.MyClaim != claim || p.Thumbnail != "https://a" || p.ThumbnailPath != "/x/a.png" {
		t.Fatalf("unexpected props: %#v", p)
	}
	if p.Status != domain.StatusReady || !p.FormDisabled || len(p.FileInfos) != 1 {
		t.Fatalf("unexpected props: %#v", p)
	}
}
