package main

import (
	"context"
	"log/slog"

	"portfolioctl/internal/config"
	"portfolioctl/internal/contentapi"
	"portfolioctl/internal/mediaindex"
	"portfolioctl/internal/mediasync"
	"portfolioctl/internal/mediatree"
	"portfolioctl/internal/resolve"
)

// buildMediaMap scans the media root and reconciles every asset with the
// remote store. A broken content index degrades to filename-only idempotence
// instead of failing the run.
func buildMediaMap(ctx context.Context, cfg *config.Config, client *contentapi.Client, logger *slog.Logger) (mediasync.Map, mediasync.Summary) {
	index, err := mediaindex.Open(cfg.Paths.IndexPath)
	if err != nil {
		logger.Warn("content index unavailable, relying on filename markers only", "error", err)
		index = nil
	} else {
		defer func() {
			if err := index.Close(); err != nil {
				logger.Warn("close content index", "error", err)
			}
		}()
	}

	projects, skipped := mediatree.Scan(cfg.Paths.MediaRoot)
	for _, scanErr := range skipped {
		logger.Warn("skipping unreadable project directory", "error", scanErr)
	}
	logger.Info("media scan complete", "root", cfg.Paths.MediaRoot, "projects", len(projects))

	strategy := resolve.ForConfig(cfg, client, logger)
	syncer := mediasync.New(cfg, client, strategy, index, logger)
	return syncer.Build(ctx, projects)
}
