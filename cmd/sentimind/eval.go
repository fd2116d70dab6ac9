package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/sentimind/internal/cli"
	"github.com/Veraticus/sentimind/internal/eval"
)

func evalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Measure accuracy on the bundled test texts",
		Long: `Classify every bundled test text and report how many detections
include at least one expected category.`,
		RunE: runEval,
	}

	cmd.Flags().Int("concurrency", eval.DefaultConcurrency, "Number of texts classified at once")
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	cmd.Flags().Bool("no-progress", false, "Hide the progress bar")

	return cmd
}

func runEval(cmd *cobra.Command, _ []string) error {
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	asJSON, _ := cmd.Flags().GetBool("json")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eng, err := newEngine(cfg)
	if err != nil {
		return fmt.Errorf("failed to create classifier: %w", err)
	}

	cases := eval.DefaultCases()
	opts := []eval.Option{eval.WithConcurrency(concurrency)}
	if !noProgress && !asJSON {
		bar := cli.NewProgressBar(os.Stderr, len(cases), "Classifying")
		opts = append(opts, eval.WithProgress(func(eval.Result) { _ = bar.Add(1) }))
	}

	report, err := eval.NewRunner(eng, opts...).Run(cmd.Context(), cases)
	if err != nil {
		return err
	}

	if asJSON {
		return cli.RenderJSON(cmd.OutOrStdout(), report)
	}
	return cli.RenderReport(cmd.OutOrStdout(), report)
}
