package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"portfolioctl/internal/contentapi"
	"portfolioctl/internal/pipeline"
	"portfolioctl/internal/projectcsv"
)

func newTaxonomiesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "taxonomies [csv]",
		Short: "List remote categories and tags with their identifiers",
		Long: `Taxonomies prints the remote category and tag listings. Use the printed
identifiers in the categories and tags columns of the projects CSV. When a
CSV is given, identifiers the CSV references but the remote store lacks are
called out.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.newClient()
			if err != nil {
				return err
			}

			categories, err := client.ListCategories(cmd.Context())
			if err != nil {
				return fmt.Errorf("list categories: %w", err)
			}
			tags, err := client.ListTags(cmd.Context())
			if err != nil {
				return fmt.Errorf("list tags: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Categories")
			fmt.Fprintln(out, renderTable([]string{"Name", "Slug", "ID", "Count"}, termRows(categories)))
			fmt.Fprintln(out, "Tags")
			fmt.Fprintln(out, renderTable([]string{"Name", "Slug", "ID", "Count"}, termRows(tags)))

			if len(args) == 0 {
				return nil
			}

			cfg, err := ctx.ensureConfig()
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
			reportMissingTerms(out, rows, categories, tags)
			return nil
		},
	}
}

// reportMissingTerms flags identifiers the CSV references that do not exist
// remotely; such rows would be rejected on submission.
func reportMissingTerms(out io.Writer, rows []projectcsv.Row, categories, tags []contentapi.Term) {
	knownCategories := termSet(categories)
	knownTags := termSet(tags)

	clean := true
	for _, row := range rows {
		for _, id := range row.Categories {
			if !knownCategories[id] {
				clean = false
				fmt.Fprintf(out, "Missing category %d referenced by %q\n", id, row.Title)
			}
		}
		for _, ref := range row.Tags {
			if id, ok := ref.ID(); ok && !knownTags[id] {
				clean = false
				fmt.Fprintf(out, "Missing tag %d referenced by %q\n", id, row.Title)
			}
		}
	}
	if clean {
		fmt.Fprintln(out, "All referenced identifiers exist remotely")
	}
}

func termSet(terms []contentapi.Term) map[int]bool {
	set := make(map[int]bool, len(terms))
	for _, term := range terms {
		set[term.ID] = true
	}
	return set
}

func termRows(terms []contentapi.Term) [][]string {
	rows := make([][]string, 0, len(terms))
	for _, term := range terms {
		rows = append(rows, []string{term.Name, term.Slug, strconv.Itoa(term.ID), strconv.Itoa(term.Count)})
	}
	return rows
}
