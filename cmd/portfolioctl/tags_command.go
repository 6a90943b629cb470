package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"portfolioctl/internal/pipeline"
	"portfolioctl/internal/projectcsv"
	"portfolioctl/internal/tagimport"
)

func newTagsCommand(ctx *commandContext) *cobra.Command {
	tagsCmd := &cobra.Command{
		Use:   "tags",
		Short: "Tag taxonomy utilities",
	}
	tagsCmd.AddCommand(newTagsImportCommand(ctx))
	return tagsCmd
}

func newTagsImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv>",
		Short: "Create tags from a CSV of names and descriptions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.newLogger("tags-import.log")
			if err != nil {
				return err
			}

			path, err := csvPath(cfg, args)
			if err != nil {
				return err
			}
			records, err := projectcsv.LoadTags(path)
			if err != nil {
				return pipeline.Wrap(pipeline.ErrConfiguration, path, "load tags csv", err)
			}
			logger.Info("loaded tag records", "csv", path, "tags", len(records))

			client, err := ctx.newClient()
			if err != nil {
				return err
			}

			importer := tagimport.New(cfg, client, logger)
			summary := importer.Run(cmd.Context(), records)

			fmt.Fprintln(cmd.OutOrStdout(), renderCounts(
				"Created", summary.Created,
				"Skipped", summary.Skipped,
				"Failed", summary.Failed,
			))
			return nil
		},
	}
}
