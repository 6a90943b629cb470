package mediasync_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"portfolioctl/internal/config"
	"portfolioctl/internal/contentapi"
	"portfolioctl/internal/mediaindex"
	"portfolioctl/internal/mediasync"
	"portfolioctl/internal/mediatree"
	"portfolioctl/internal/resolve"
	"portfolioctl/internal/testsupport"
)

type harness struct {
	cfg    *config.Config
	api    *testsupport.FakeAPI
	syncer *mediasync.Syncer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	api := testsupport.NewFakeAPI(t)
	cfg := testsupport.NewConfig(t, testsupport.WithBaseURL(api.BaseURL()))
	client := contentapi.NewClient(cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	index, err := mediaindex.Open(cfg.Paths.IndexPath)
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	t.Cleanup(func() { _ = index.Close() })

	strategy := resolve.ForConfig(cfg, client, logger)
	return &harness{
		cfg:    cfg,
		api:    api,
		syncer: mediasync.New(cfg, client, strategy, index, logger),
	}
}

func (h *harness) scan(t *testing.T) []mediatree.Project {
	t.Helper()
	projects, skipped := mediatree.Scan(h.cfg.Paths.MediaRoot)
	if len(skipped) != 0 {
		t.Fatalf("unexpected scan skips: %v", skipped)
	}
	return projects
}

func TestBuildUploadsAndRenames(t *testing.T) {
	h := newHarness(t)
	galleryDir := filepath.Join(h.cfg.Paths.MediaRoot, "acme", "gallery")
	testsupport.WriteFile(t, filepath.Join(galleryDir, "photo.png"), "image one")

	result, summary := h.syncer.Build(context.Background(), h.scan(t))
	if summary.Uploaded != 1 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	entry := result.Entry("acme")
	if len(entry.Gallery) != 1 {
		t.Fatalf("expected 1 gallery id, got %v", entry.Gallery)
	}
	id := entry.Gallery[0]

	renamed := filepath.Join(galleryDir, "1001.png")
	if _, err := os.Stat(renamed); err != nil {
		t.Fatalf("expected renamed file %s: %v", renamed, err)
	}
	if _, err := os.Stat(filepath.Join(galleryDir, "photo.png")); !os.IsNotExist(err) {
		t.Fatal("original filename must not remain after rename")
	}
	if id != 1001 {
		t.Fatalf("expected minted id 1001, got %d", id)
	}
}

func TestBuildSkipsConfirmedPresent(t *testing.T) {
	h := newHarness(t)
	h.api.AddMedia(123, "existing")
	galleryDir := filepath.Join(h.cfg.Paths.MediaRoot, "acme", "gallery")
	testsupport.WriteFile(t, filepath.Join(galleryDir, "123.jpg"), "image")

	result, summary := h.syncer.Build(context.Background(), h.scan(t))
	if summary.Uploaded != 0 || summary.Confirmed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if uploads := h.api.Uploads(); len(uploads) != 0 {
		t.Fatalf("upload executor must not run for confirmed assets: %v", uploads)
	}
	if got := result.Entry("acme").Gallery; len(got) != 1 || got[0] != 123 {
		t.Fatalf("unexpected gallery: %v", got)
	}
}

func TestBuildIsIdempotentAcrossRuns(t *testing.T) {
	h := newHarness(t)
	galleryDir := filepath.Join(h.cfg.Paths.MediaRoot, "acme", "gallery")
	testsupport.WriteFile(t, filepath.Join(galleryDir, "a.png"), "image a")
	testsupport.WriteFile(t, filepath.Join(galleryDir, "b.png"), "image b")

	_, first := h.syncer.Build(context.Background(), h.scan(t))
	if first.Uploaded != 2 {
		t.Fatalf("first run should upload both, got %+v", first)
	}

	_, second := h.syncer.Build(context.Background(), h.scan(t))
	if second.Uploaded != 0 {
		t.Fatalf("second run must upload nothing, got %+v", second)
	}
	if second.Confirmed != 2 {
		t.Fatalf("second run should confirm both, got %+v", second)
	}
}

func TestBuildCaptionAlignment(t *testing.T) {
	h := newHarness(t)
	galleryDir := filepath.Join(h.cfg.Paths.MediaRoot, "acme", "gallery")
	testsupport.WriteFile(t, filepath.Join(galleryDir, "photo.png"), "image")
	testsupport.WriteFile(t, filepath.Join(galleryDir, "photo.txt"), "A view\n")

	result, _ := h.syncer.Build(context.Background(), h.scan(t))
	entry := result.Entry("acme")
	if len(entry.Gallery) != 1 {
		t.Fatalf("expected 1 gallery id, got %v", entry.Gallery)
	}
	id := entry.Gallery[0]
	if entry.Captions[id] != "A view" {
		t.Fatalf("expected caption mapped to %d, got %v", id, entry.Captions)
	}

	// The sidecar follows the rename so the next run stays aligned.
	if _, err := os.Stat(filepath.Join(galleryDir, "1001.txt")); err != nil {
		t.Fatalf("expected renamed sidecar: %v", err)
	}
}

func TestBuildPartialFailureIsolation(t *testing.T) {
	h := newHarness(t)
	h.api.FailUpload("b.png", "storage offline")
	galleryDir := filepath.Join(h.cfg.Paths.MediaRoot, "acme", "gallery")
	testsupport.WriteFile(t, filepath.Join(galleryDir, "a.png"), "image a")
	testsupport.WriteFile(t, filepath.Join(galleryDir, "b.png"), "image b")
	testsupport.WriteFile(t, filepath.Join(galleryDir, "c.png"), "image c")

	result, summary := h.syncer.Build(context.Background(), h.scan(t))
	if summary.Failed != 1 {
		t.Fatalf("expected exactly one failure, got %+v", summary)
	}
	if got := result.Entry("acme").Gallery; len(got) != 2 {
		t.Fatalf("expected surviving assets mapped, got %v", got)
	}
}

func TestBuildFeaturedDefaultsThumbnail(t *testing.T) {
	h := newHarness(t)
	projectDir := filepath.Join(h.cfg.Paths.MediaRoot, "acme")
	testsupport.WriteFile(t, filepath.Join(projectDir, "featured", "cover.png"), "cover")
	testsupport.WriteFile(t, filepath.Join(projectDir, "gallery", "a.png"), "image")

	result, _ := h.syncer.Build(context.Background(), h.scan(t))
	entry := result.Entry("acme")
	if entry.Featured == 0 || entry.Featured != entry.Thumbnail {
		t.Fatalf("featured and thumbnail must share the cover id: %+v", entry)
	}
}

func TestBuildIndexRecoversLostRenameMarker(t *testing.T) {
	h := newHarness(t)
	galleryDir := filepath.Join(h.cfg.Paths.MediaRoot, "acme", "gallery")
	path := filepath.Join(galleryDir, "photo.png")
	testsupport.WriteFile(t, path, "image bytes")

	_, first := h.syncer.Build(context.Background(), h.scan(t))
	if first.Uploaded != 1 {
		t.Fatalf("expected initial upload, got %+v", first)
	}

	// Simulate a lost rename marker: restore the pre-upload filename.
	if err := os.Rename(filepath.Join(galleryDir, "1001.png"), path); err != nil {
		t.Fatalf("restore name: %v", err)
	}

	_, second := h.syncer.Build(context.Background(), h.scan(t))
	if second.Uploaded != 0 {
		t.Fatalf("content index should prevent re-upload, got %+v", second)
	}
	if second.Confirmed != 1 {
		t.Fatalf("expected index-confirmed asset, got %+v", second)
	}
}

func TestMapLookupIsTotal(t *testing.T) {
	var m mediasync.Map
	entry := m.Entry("missing")
	if entry.Featured != 0 || len(entry.Gallery) != 0 {
		t.Fatalf("expected zero entry, got %+v", entry)
	}
}
