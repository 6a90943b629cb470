package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"portfolioctl/internal/migrate"
	"portfolioctl/internal/pipeline"
	"portfolioctl/internal/projectcsv"
	"portfolioctl/internal/runlock"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [csv]",
		Short: "Sync media and create one record per CSV row",
		Long: `Migrate runs the full pipeline: scan the media root, upload whatever is
missing remotely, then create one content record per CSV row with the
resolved media attached. Both phases are idempotent, so a partially
completed run can simply be run again.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.newLogger("migrate.log")
			if err != nil {
				return err
			}

			lock, err := runlock.Acquire(cfg.Paths.LogDir)
			if err != nil {
				return err
			}
			defer func() { _ = lock.Release() }()

			path, err := csvPath(cfg, args)
			if err != nil {
				return err
			}
			rows, err := projectcsv.LoadProjects(path)
			if err != nil {
				return pipeline.Wrap(pipeline.ErrConfiguration, path, "load projects csv", err)
			}
			logger.Info("loaded project rows", "csv", path, "rows", len(rows))

			client, err := ctx.newClient()
			if err != nil {
				return err
			}

			media, mediaSummary := buildMediaMap(cmd.Context(), cfg, client, logger)

			driver := migrate.New(cfg, client, logger)
			summary := driver.Run(cmd.Context(), rows, media)
			summary.Media = mediaSummary

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s\n", summary.RunID)
			fmt.Fprintln(out, renderCounts(
				"Media confirmed", mediaSummary.Confirmed,
				"Media uploaded", mediaSummary.Uploaded,
				"Media failed", mediaSummary.Failed,
				"Records attempted", summary.Attempted,
				"Records created", summary.Created,
				"Records failed", summary.Failed,
			))
			if err := cmd.Context().Err(); err != nil {
				return fmt.Errorf("run interrupted: %w", err)
			}
			return nil
		},
	}
}
