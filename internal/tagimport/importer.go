package tagimport

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"portfolioctl/internal/config"
	"portfolioctl/internal/contentapi"
	"portfolioctl/internal/pipeline"
	"portfolioctl/internal/projectcsv"
)

// API is the Content API surface tag import needs.
type API interface {
	SearchTags(ctx context.Context, name string) ([]contentapi.Term, error)
	CreateTag(ctx context.Context, name, description string) (contentapi.Term, error)
}

// Summary counts per-tag outcomes for one import pass.
type Summary struct {
	Created int
	Skipped int
	Failed  int
}

// Importer creates tags from a CSV sequentially, skipping names that already
// exist remotely so the import can be re-run safely.
type Importer struct {
	cfg    *config.Config
	api    API
	logger *slog.Logger
}

// New constructs an Importer.
func New(cfg *config.Config, api API, logger *slog.Logger) *Importer {
	return &Importer{cfg: cfg, api: api, logger: logger}
}

// Run imports every record in order. A failed tag is logged and counted; the
// next record proceeds.
func (i *Importer) Run(ctx context.Context, records []projectcsv.TagRecord) Summary {
	var summary Summary
	for _, record := range records {
		switch i.importOne(ctx, record) {
		case outcomeCreated:
			summary.Created++
		case outcomeSkipped:
			summary.Skipped++
		case outcomeFailed:
			summary.Failed++
		}
		i.pause(ctx)
	}
	return summary
}

type outcome int

const (
	outcomeCreated outcome = iota
	outcomeSkipped
	outcomeFailed
)

func (i *Importer) importOne(ctx context.Context, record projectcsv.TagRecord) outcome {
	terms, err := i.api.SearchTags(ctx, record.Name)
	if err != nil {
		i.logger.Error("tag search failed, continuing with next tag",
			"tag", record.Name,
			"error", pipeline.Wrap(pipeline.ErrSubmission, record.Name, "search tag", err))
		return outcomeFailed
	}
	for _, term := range terms {
		if strings.EqualFold(term.Name, record.Name) {
			i.logger.Info("tag already exists, skipping", "tag", record.Name, "tag_id", term.ID)
			return outcomeSkipped
		}
	}

	term, err := i.api.CreateTag(ctx, record.Name, record.Description)
	if err != nil {
		i.logger.Error("tag creation failed, continuing with next tag",
			"tag", record.Name,
			"error", pipeline.Wrap(pipeline.ErrSubmission, record.Name, "create tag", err))
		return outcomeFailed
	}
	i.logger.Info("tag created", "tag", record.Name, "tag_id", term.ID)
	return outcomeCreated
}

func (i *Importer) pause(ctx context.Context) {
	ms := i.cfg.Pacing.RecordDelayMS
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
