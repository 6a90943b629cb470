package pipeline

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("status 500")
	err := Wrap(ErrUpload, "acme/photo.png", "upload media", base)
	if !errors.Is(err, ErrUpload) {
		t.Fatalf("expected ErrUpload marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	want := "upload error: acme/photo.png: upload media: status 500"
	if err.Error() != want {
		t.Fatalf("unexpected message: got %q want %q", err.Error(), want)
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := Wrap(ErrRename, "acme/photo.png", "rename to 456.png", nil)
	if !errors.Is(err, ErrRename) {
		t.Fatalf("expected ErrRename marker, got %v", err)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "", "", errors.New("boom"))
	if !errors.Is(err, ErrSubmission) {
		t.Fatalf("expected default marker, got %v", err)
	}
}

func TestFatal(t *testing.T) {
	if !Fatal(Wrap(ErrConfiguration, "", "missing base url", nil)) {
		t.Fatal("configuration errors must be fatal")
	}
	if Fatal(Wrap(ErrUpload, "x", "y", nil)) {
		t.Fatal("upload errors must not be fatal")
	}
}
