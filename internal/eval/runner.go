package eval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/sentimind/internal/model"
	"github.com/Veraticus/sentimind/internal/service"
)

// DefaultConcurrency bounds in-flight classifications.
const DefaultConcurrency = 4

// Result is the outcome of one case.
type Result struct {
	Case              Case         `json:"case"`
	Primary           string       `json:"primary"`
	Method            model.Method `json:"method"`
	Detected          []string     `json:"detected"`
	Matches           []string     `json:"matches"`
	PrimaryConfidence float64      `json:"primary_confidence"`
	Correct           bool         `json:"correct"`
}

// Report summarizes a run. Results keep the order of the input cases.
type Report struct {
	ByMethod map[model.Method]int `json:"by_method"`
	Results  []Result             `json:"results"`
	Correct  int                  `json:"correct"`
	Total    int                  `json:"total"`
	Accuracy float64              `json:"accuracy"`
}

// Incorrect returns the results whose detections missed every expected category.
func (r *Report) Incorrect() []Result {
	return lo.Filter(r.Results, func(res Result, _ int) bool { return !res.Correct })
}

// Runner classifies evaluation cases concurrently.
type Runner struct {
	classifier  service.Classifier
	logger      *slog.Logger
	onResult    func(Result)
	concurrency int
}

// Option configures a Runner.
type Option func(*Runner)

// WithConcurrency sets how many cases are classified at once.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithProgress registers a callback invoked after each case. Calls may come
// from several goroutines at once.
func WithProgress(fn func(Result)) Option {
	return func(r *Runner) { r.onResult = fn }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a runner over classifier.
func NewRunner(classifier service.Classifier, opts ...Option) *Runner {
	r := &Runner{
		classifier:  classifier,
		concurrency: DefaultConcurrency,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run classifies every case. A case is correct when at least one detected
// category is among the expected ones. It fails only if ctx is canceled.
func (r *Runner) Run(ctx context.Context, cases []Case) (*Report, error) {
	results := make([]Result, len(cases))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, c := range cases {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = evaluate(c, r.classifier.Classify(gctx, c.Text))
			if r.onResult != nil {
				r.onResult(results[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluation interrupted: %w", err)
	}

	report := &Report{
		Results:  results,
		Total:    len(results),
		Correct:  lo.CountBy(results, func(res Result) bool { return res.Correct }),
		ByMethod: lo.CountValuesBy(results, func(res Result) model.Method { return res.Method }),
	}
	if report.Total > 0 {
		report.Accuracy = float64(report.Correct) / float64(report.Total)
	}

	r.logger.Info("Evaluation finished",
		"correct", report.Correct,
		"total", report.Total,
		"accuracy", fmt.Sprintf("%.1f%%", report.Accuracy*100))

	return report, nil
}

func evaluate(c Case, result model.ClassificationResult) Result {
	detected := result.Names()
	matches := lo.Intersect(c.Expected, detected)
	return Result{
		Case:              c,
		Primary:           result.PrimaryCategory,
		PrimaryConfidence: result.PrimaryConfidence,
		Method:            result.Method,
		Detected:          detected,
		Matches:           matches,
		Correct:           len(matches) > 0,
	}
}
