package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"portfolioctl/internal/pipeline"
	"portfolioctl/internal/projectcsv"
	"portfolioctl/internal/screenshot"
)

func newScreenshotsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "screenshots [csv]",
		Short: "Capture project sites into gallery directories",
		Long: `Screenshots visits each project's company URL with a headless browser and
captures mobile, tablet, and desktop viewports into the project's gallery
directory. Viewports that already have a capture are skipped; a following
media sync uploads the new files like any other asset.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.newLogger("screenshots.log")
			if err != nil {
				return err
			}

			path, err := csvPath(cfg, args)
			if err != nil {
				return err
			}
			rows, err := projectcsv.LoadProjects(path)
			if err != nil {
				return pipeline.Wrap(pipeline.ErrConfiguration, path, "load projects csv", err)
			}

			capturer := screenshot.New(cfg, screenshot.NewChromium(cfg), logger)
			summary := capturer.Run(cmd.Context(), rows)

			fmt.Fprintln(cmd.OutOrStdout(), renderCounts(
				"Captured", summary.Captured,
				"Skipped", summary.Skipped,
				"Failed", summary.Failed,
				"Rows without URL", summary.ProjectsNoURL,
			))
			if err := cmd.Context().Err(); err != nil {
				return fmt.Errorf("run interrupted: %w", err)
			}
			return nil
		},
	}
}
