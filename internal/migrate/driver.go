package migrate

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"portfolioctl/internal/config"
	"portfolioctl/internal/contentapi"
	"portfolioctl/internal/mediasync"
	"portfolioctl/internal/pipeline"
	"portfolioctl/internal/projectcsv"
)

// API is the Content API surface record migration needs.
type API interface {
	CreateRecord(ctx context.Context, payload contentapi.RecordPayload) (contentapi.Record, error)
	SearchTags(ctx context.Context, name string) ([]contentapi.Term, error)
	CreateTag(ctx context.Context, name, description string) (contentapi.Term, error)
}

// Summary counts per-record outcomes for one migration pass.
type Summary struct {
	RunID     string
	Attempted int
	Created   int
	Failed    int
	Media     mediasync.Summary
}

// Driver submits one record per CSV row, sequentially and in row order.
// Rows are independent: a failed submission is logged and counted, then the
// next row proceeds.
type Driver struct {
	cfg    *config.Config
	api    API
	tags   *tagResolver
	logger *slog.Logger
	runID  string
}

// New constructs a Driver with a fresh run identifier.
func New(cfg *config.Config, api API, logger *slog.Logger) *Driver {
	runID := uuid.NewString()
	logger = logger.With("run_id", runID)
	return &Driver{
		cfg:    cfg,
		api:    api,
		tags:   newTagResolver(api, logger),
		logger: logger,
		runID:  runID,
	}
}

// Run submits every row against the media map built for this pass.
func (d *Driver) Run(ctx context.Context, rows []projectcsv.Row, media mediasync.Map) Summary {
	summary := Summary{RunID: d.runID}

	for _, row := range rows {
		summary.Attempted++

		tagIDs := d.tags.resolve(ctx, row.Tags)
		payload := BuildPayload(row, media.Entry(row.Key()), tagIDs)

		record, err := d.api.CreateRecord(ctx, payload)
		if err != nil {
			d.logger.Error("record creation failed, continuing with next row",
				"title", payload.Title,
				"error", pipeline.Wrap(pipeline.ErrSubmission, payload.Title, "create record", err))
			summary.Failed++
		} else {
			d.logger.Info("record created",
				"title", string(record.Title), "record_id", record.ID)
			summary.Created++
		}

		d.pause(ctx)
	}
	return summary
}

// RunID identifies this migration pass in logs and summaries.
func (d *Driver) RunID() string {
	return d.runID
}

func (d *Driver) pause(ctx context.Context) {
	ms := d.cfg.Pacing.RecordDelayMS
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
