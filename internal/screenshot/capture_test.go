package screenshot_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"portfolioctl/internal/projectcsv"
	"portfolioctl/internal/screenshot"
	"portfolioctl/internal/testsupport"
)

// fakeBrowser writes an empty file per capture and can fail selected
// viewports, optionally only on the first attempt.
type fakeBrowser struct {
	calls     []string
	failNames map[string]int
}

func (b *fakeBrowser) Capture(_ context.Context, url, outPath string, viewport screenshot.Viewport) error {
	b.calls = append(b.calls, viewport.Name)
	if remaining, ok := b.failNames[viewport.Name]; ok && remaining > 0 {
		b.failNames[viewport.Name] = remaining - 1
		return errors.New("navigation timeout")
	}
	return os.WriteFile(outPath, []byte("png"), 0o644)
}

func newCapturer(t *testing.T, browser screenshot.Browser) (*screenshot.Capturer, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	cfg.Screenshots.FallbackDelayMS = 0
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return screenshot.New(cfg, browser, logger), cfg.Paths.MediaRoot
}

func TestRunCapturesAllViewports(t *testing.T) {
	browser := &fakeBrowser{}
	capturer, mediaRoot := newCapturer(t, browser)
	rows := []projectcsv.Row{{Title: "Redesign", Company: "Acme", CompanyURL: "https://acme.example"}}

	summary := capturer.Run(context.Background(), rows)
	if summary.Captured != 3 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	entries, err := os.ReadDir(filepath.Join(mediaRoot, "acme", "gallery"))
	if err != nil {
		t.Fatalf("read gallery: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 captures, got %d", len(entries))
	}
}

func TestRunSkipsExistingCaptures(t *testing.T) {
	browser := &fakeBrowser{}
	capturer, mediaRoot := newCapturer(t, browser)
	galleryDir := filepath.Join(mediaRoot, "acme", "gallery")
	testsupport.WriteFile(t, filepath.Join(galleryDir, "mobile-1700000000000.png"), "png")
	rows := []projectcsv.Row{{Title: "Redesign", Company: "Acme", CompanyURL: "https://acme.example"}}

	summary := capturer.Run(context.Background(), rows)
	if summary.Skipped != 1 || summary.Captured != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	for _, name := range browser.calls {
		if name == "mobile" {
			t.Fatal("mobile viewport must not be recaptured")
		}
	}
}

func TestRunSkipsRenamedCaptures(t *testing.T) {
	// After a sync pass the capture basename is a remote id, so the prefix
	// marker is gone; only still-unsynced captures block a viewport.
	browser := &fakeBrowser{}
	capturer, mediaRoot := newCapturer(t, browser)
	galleryDir := filepath.Join(mediaRoot, "acme", "gallery")
	testsupport.WriteFile(t, filepath.Join(galleryDir, "1001.png"), "png")
	rows := []projectcsv.Row{{Title: "Redesign", Company: "Acme", CompanyURL: "https://acme.example"}}

	summary := capturer.Run(context.Background(), rows)
	if summary.Captured != 3 {
		t.Fatalf("synced captures must not block new ones: %+v", summary)
	}
}

func TestRunRetriesOnce(t *testing.T) {
	browser := &fakeBrowser{failNames: map[string]int{"tablet": 1}}
	capturer, _ := newCapturer(t, browser)
	rows := []projectcsv.Row{{Title: "Redesign", Company: "Acme", CompanyURL: "https://acme.example"}}

	summary := capturer.Run(context.Background(), rows)
	if summary.Captured != 3 || summary.Failed != 0 {
		t.Fatalf("expected retry to recover, got %+v", summary)
	}
}

func TestRunIsolatesViewportFailures(t *testing.T) {
	browser := &fakeBrowser{failNames: map[string]int{"desktop": 2}}
	capturer, _ := newCapturer(t, browser)
	rows := []projectcsv.Row{{Title: "Redesign", Company: "Acme", CompanyURL: "https://acme.example"}}

	summary := capturer.Run(context.Background(), rows)
	if summary.Captured != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunSkipsRowsWithoutURL(t *testing.T) {
	browser := &fakeBrowser{}
	capturer, _ := newCapturer(t, browser)
	rows := []projectcsv.Row{{Title: "Redesign", Company: "Acme"}}

	summary := capturer.Run(context.Background(), rows)
	if summary.ProjectsNoURL != 1 || len(browser.calls) != 0 {
		t.Fatalf("rows without a URL must be skipped: %+v", summary)
	}
}
