package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/sentimind/internal/cli"
	"github.com/Veraticus/sentimind/internal/posts"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <text>",
		Short: "Detect the emotions in a text",
		Long: `Classify a Spanish text into one to three emotion categories.

The text is not stored; use "posts add" to keep it.`,
		Example: `  sentimind classify "Estoy muy feliz con los resultados"
  sentimind classify --json "Tengo miedo del examen"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().Bool("json", false, "Print the full result as JSON")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	text, err := posts.ValidateContent(strings.Join(args, " "))
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eng, err := newEngine(cfg)
	if err != nil {
		return fmt.Errorf("failed to create classifier: %w", err)
	}

	result := eng.Classify(cmd.Context(), text)

	if asJSON {
		return cli.RenderJSON(cmd.OutOrStdout(), result)
	}
	return cli.RenderResult(cmd.OutOrStdout(), text, result)
}
