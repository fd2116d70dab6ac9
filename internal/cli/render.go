package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/sentimind/internal/eval"
	"github.com/Veraticus/sentimind/internal/model"
)

const barWidth = 20

// ConfidenceBar draws a fixed-width bar for a confidence in [0,1].
func ConfidenceBar(confidence float64) string {
	filled := int(confidence*barWidth + 0.5)
	filled = max(0, min(barWidth, filled))
	return BarStyle.Render(strings.Repeat("█", filled)) + SubtleStyle.Render(strings.Repeat("░", barWidth-filled))
}

// MethodLabel describes which tier produced a result.
func MethodLabel(m model.Method) string {
	switch m {
	case model.MethodLocalModel:
		return RobotIcon + " local model"
	case model.MethodRemoteAPI:
		return RobotIcon + " remote API"
	case model.MethodRuleBased:
		return WarningStyle.Render("keyword rules (no AI provider answered)")
	default:
		return string(m)
	}
}

// RenderResult prints a classification as a boxed summary.
func RenderResult(w io.Writer, text string, result model.ClassificationResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", SubtleStyle.Render(truncate(text, 70)))
	for _, c := range result.Categories {
		fmt.Fprintf(&b, "%s %s %3.0f%%\n", LabelStyle.Render(fmt.Sprintf("%-12s", c.Name)), ConfidenceBar(c.Confidence), c.Confidence*100)
	}
	fmt.Fprintf(&b, "\n%s", SubtleStyle.Render("via ")+MethodLabel(result.Method))

	_, err := fmt.Fprintln(w, RenderBox(result.PrimaryCategory, b.String()))
	return err
}

// RenderJSON writes v as indented JSON.
func RenderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// RenderCategories prints the taxonomy with per-category post counts.
func RenderCategories(w io.Writer, names []string, counts map[string]int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", HeaderStyle.Render("#"), HeaderStyle.Render("Category"), HeaderStyle.Render("Posts"))
	fmt.Fprintf(tw, "%s\t%s\t%s\n", strings.Repeat("-", 3), strings.Repeat("-", 14), strings.Repeat("-", 5))
	for i, name := range names {
		count := "-"
		if counts != nil {
			count = fmt.Sprint(counts[name])
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, name, count)
	}
	return tw.Flush()
}

// RenderPosts prints posts as a table, newest first as given.
func RenderPosts(w io.Writer, posts []model.Post) error {
	if len(posts) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No posts yet."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("ID"), HeaderStyle.Render("When"), HeaderStyle.Render("Categories"), HeaderStyle.Render("Content"))
	for _, p := range posts {
		cats := make([]string, len(p.Categories))
		for i, c := range p.Categories {
			cats[i] = fmt.Sprintf("%s %.0f%%", c.Name, c.Confidence*100)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			p.ID, p.CreatedAt.Local().Format(time.DateTime), strings.Join(cats, ", "), truncate(p.Content, 50))
	}
	return tw.Flush()
}

// RenderReport prints an evaluation summary followed by the misses.
func RenderReport(w io.Writer, report *eval.Report) error {
	fmt.Fprintln(w, FormatTitle("Evaluation"))
	fmt.Fprintf(w, "%s %d/%d correct (%.1f%%)\n", ChartIcon, report.Correct, report.Total, report.Accuracy*100)
	methods := lo.Keys(report.ByMethod)
	slices.Sort(methods)
	for _, method := range methods {
		fmt.Fprintf(w, "  %s: %d\n", method, report.ByMethod[method])
	}

	incorrect := report.Incorrect()
	if len(incorrect) == 0 {
		_, err := fmt.Fprintln(w, FormatSuccess("Every case matched."))
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, FormatWarning(fmt.Sprintf("%d cases missed:", len(incorrect))))
	for _, res := range incorrect {
		fmt.Fprintf(w, "  - %q\n    expected: %s\n    detected: %s\n",
			truncate(res.Case.Text, 60), strings.Join(res.Case.Expected, ", "), strings.Join(res.Detected, ", "))
	}
	return nil
}

// NewProgressBar creates the progress bar shown during long runs.
func NewProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
