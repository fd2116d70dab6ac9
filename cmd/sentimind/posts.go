package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/sentimind/internal/cli"
	"github.com/Veraticus/sentimind/internal/model"
	"github.com/Veraticus/sentimind/internal/service"
)

func postsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Manage the emotion wall",
		Long:  `Add classified posts to the wall and browse them by category.`,
	}

	cmd.AddCommand(postsAddCmd())
	cmd.AddCommand(postsListCmd())

	return cmd
}

func postsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Classify and store a post",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			svc, closeStore, err := newPostService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			post, err := svc.Create(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			if asJSON {
				return cli.RenderJSON(cmd.OutOrStdout(), post)
			}
			return cli.RenderPosts(cmd.OutOrStdout(), []model.Post{*post})
		},
	}

	cmd.Flags().Bool("json", false, "Print the stored post as JSON")

	return cmd
}

func postsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored posts, newest first",
		Example: `  sentimind posts list --category Alegría --limit 10`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			category, _ := cmd.Flags().GetString("category")
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")
			asJSON, _ := cmd.Flags().GetBool("json")

			svc, closeStore, err := newPostService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			list, err := svc.List(cmd.Context(), service.PostFilter{
				Category: category,
				Limit:    limit,
				Offset:   offset,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return cli.RenderJSON(cmd.OutOrStdout(), list)
			}
			return cli.RenderPosts(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().String("category", "", "Only posts detected with this category")
	cmd.Flags().Int("limit", 20, "Maximum number of posts (0 for all)")
	cmd.Flags().Int("offset", 0, "Number of posts to skip")
	cmd.Flags().Bool("json", false, "Print posts as JSON")

	return cmd
}
