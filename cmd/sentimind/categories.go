package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/sentimind/internal/cli"
	"github.com/Veraticus/sentimind/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cats"},
		Short:   "List emotion categories",
		Long:    `List the emotion taxonomy in display order, with how many stored posts carry each category.`,
		RunE:    runCategories,
	}

	cmd.Flags().Bool("no-counts", false, "Skip the database and list names only")

	return cmd
}

func runCategories(cmd *cobra.Command, _ []string) error {
	noCounts, _ := cmd.Flags().GetBool("no-counts")
	out := cmd.OutOrStdout()

	if noCounts {
		return cli.RenderCategories(out, model.DefaultTaxonomy().Names(), nil)
	}

	svc, closeStore, err := newPostService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	counts, err := svc.Counts(cmd.Context())
	if err != nil {
		return err
	}
	return cli.RenderCategories(out, svc.Categories(), counts)
}
