package screenshot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"portfolioctl/internal/config"
	"portfolioctl/internal/projectcsv"
)

// Summary counts per-viewport outcomes for one capture pass.
type Summary struct {
	Captured      int
	Skipped       int
	Failed        int
	ProjectsNoURL int
}

// Capturer fills project galleries with viewport screenshots of each
// project's live site. A gallery that already holds a capture for a viewport
// is left alone, so the pass is safe to re-run.
type Capturer struct {
	cfg     *config.Config
	browser Browser
	logger  *slog.Logger
	now     func() time.Time
}

// New constructs a Capturer using the given browser.
func New(cfg *config.Config, browser Browser, logger *slog.Logger) *Capturer {
	return &Capturer{cfg: cfg, browser: browser, logger: logger, now: time.Now}
}

// Run captures screenshots for every row carrying a company URL. Viewport
// failures are counted and skipped; one bad site never stops the pass.
func (c *Capturer) Run(ctx context.Context, rows []projectcsv.Row) Summary {
	var summary Summary
	for _, row := range rows {
		if strings.TrimSpace(row.CompanyURL) == "" {
			summary.ProjectsNoURL++
			continue
		}
		c.captureProject(ctx, row, &summary)
		c.pause(ctx, c.cfg.Pacing.ProjectDelayMS)
	}
	return summary
}

func (c *Capturer) captureProject(ctx context.Context, row projectcsv.Row, summary *Summary) {
	key := row.Key()
	galleryDir := filepath.Join(c.cfg.Paths.MediaRoot, key, "gallery")
	if err := os.MkdirAll(galleryDir, 0o755); err != nil {
		c.logger.Error("cannot create gallery directory, skipping project",
			"project", key, "error", err)
		summary.Failed += len(Viewports)
		return
	}

	for _, viewport := range Viewports {
		if existing := viewportCapture(galleryDir, viewport); existing != "" {
			c.logger.Info("viewport already captured, skipping",
				"project", key, "viewport", viewport.Name, "file", existing)
			summary.Skipped++
			continue
		}

		outPath := filepath.Join(galleryDir,
			fmt.Sprintf("%s-%d.png", viewport.Name, c.now().UnixMilli()))
		if err := c.captureWithRetry(ctx, row.CompanyURL, outPath, viewport); err != nil {
			c.logger.Error("viewport capture failed, continuing",
				"project", key, "viewport", viewport.Name, "url", row.CompanyURL, "error", err)
			summary.Failed++
			continue
		}
		c.logger.Info("viewport captured",
			"project", key, "viewport", viewport.Name, "file", filepath.Base(outPath))
		summary.Captured++
	}
}

// captureWithRetry tries a second time after a short wait; transient
// navigation timeouts on slow sites usually clear on the retry.
func (c *Capturer) captureWithRetry(ctx context.Context, url, outPath string, viewport Viewport) error {
	err := c.browser.Capture(ctx, url, outPath, viewport)
	if err == nil {
		return nil
	}
	c.pause(ctx, c.cfg.Screenshots.FallbackDelayMS)
	if ctx.Err() != nil {
		return err
	}
	return c.browser.Capture(ctx, url, outPath, viewport)
}

// viewportCapture returns the name of an existing capture for the viewport,
// or empty. The filename prefix is the marker, matching how uploaded media
// carries its identifier in the basename.
func viewportCapture(galleryDir string, viewport Viewport) string {
	entries, err := os.ReadDir(galleryDir)
	if err != nil {
		return ""
	}
	prefix := viewport.Name + "-"
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) {
			return entry.Name()
		}
	}
	return ""
}

func (c *Capturer) pause(ctx context.Context, ms int) {
	if ms <= 0 {
		return
	}
	timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
