package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"portfolioctl/internal/runlock"
)

func newMediaCommand(ctx *commandContext) *cobra.Command {
	mediaCmd := &cobra.Command{
		Use:   "media",
		Short: "Media synchronization utilities",
	}
	mediaCmd.AddCommand(newMediaSyncCommand(ctx))
	return mediaCmd
}

func newMediaSyncCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Upload missing media without creating records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.newLogger("media-sync.log")
			if err != nil {
				return err
			}

			lock, err := runlock.Acquire(cfg.Paths.LogDir)
			if err != nil {
				return err
			}
			defer func() { _ = lock.Release() }()

			client, err := ctx.newClient()
			if err != nil {
				return err
			}

			_, summary := buildMediaMap(cmd.Context(), cfg, client, logger)

			fmt.Fprintln(cmd.OutOrStdout(), renderCounts(
				"Confirmed", summary.Confirmed,
				"Uploaded", summary.Uploaded,
				"Failed", summary.Failed,
				"Rename failed", summary.RenameFailed,
				"Empty projects", summary.ProjectsEmpty,
			))
			if err := cmd.Context().Err(); err != nil {
				return fmt.Errorf("run interrupted: %w", err)
			}
			return nil
		},
	}
}
