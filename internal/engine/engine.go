// Package engine implements the classification orchestrator. It tries the
// configured AI providers in order and always finishes with the keyword
// scorer, so a caller gets a valid result for every input.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Veraticus/sentimind/internal/common"
	"github.com/Veraticus/sentimind/internal/model"
	"github.com/Veraticus/sentimind/internal/rules"
	"github.com/Veraticus/sentimind/internal/selection"
)

// Mode selects which tiers the engine consults.
type Mode string

// Engine modes.
const (
	ModeAuto      Mode = "auto"
	ModeRulesOnly Mode = "rules-only"
)

// Options configures an Engine.
type Options struct {
	Primary           Provider // optional
	Fallback          Provider // optional, tried after Primary
	Rules             Scorer   // defaults to the keyword scorer for Taxonomy
	Logger            *slog.Logger
	Mode              Mode
	Template          string
	DefaultCategory   string
	Taxonomy          model.Taxonomy
	RelativeThreshold float64
	MaxEmotions       int
}

// DefaultOptions returns the engine defaults over the bundled taxonomy.
func DefaultOptions() Options {
	return Options{
		Mode:              ModeAuto,
		Template:          model.DefaultHypothesisTemplate,
		DefaultCategory:   model.DefaultCategory,
		Taxonomy:          model.DefaultTaxonomy(),
		RelativeThreshold: 0.90,
		MaxEmotions:       3,
	}
}

// Engine orchestrates the provider tiers. It is safe for concurrent use.
type Engine struct {
	rules             Scorer
	logger            *slog.Logger
	status            map[string]ProviderStatus
	mode              Mode
	template          string
	defaultCategory   string
	taxonomy          model.Taxonomy
	providers         []Provider
	relativeThreshold float64
	maxEmotions       int
	mu                sync.RWMutex
}

// New validates opts and creates an engine.
func New(opts Options) (*Engine, error) {
	defaults := DefaultOptions()
	if opts.Mode == "" {
		opts.Mode = defaults.Mode
	}
	if opts.Mode != ModeAuto && opts.Mode != ModeRulesOnly {
		return nil, fmt.Errorf("%w: unknown mode %q", common.ErrInvalidConfig, opts.Mode)
	}
	if opts.Taxonomy == nil {
		opts.Taxonomy = defaults.Taxonomy
	}
	if err := opts.Taxonomy.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	if opts.Template == "" {
		opts.Template = defaults.Template
	}
	if opts.DefaultCategory == "" {
		opts.DefaultCategory = defaults.DefaultCategory
	}
	if !opts.Taxonomy.Contains(opts.DefaultCategory) {
		return nil, fmt.Errorf("%w: default category %q is not in the taxonomy", common.ErrInvalidConfig, opts.DefaultCategory)
	}
	if opts.RelativeThreshold <= 0 || opts.RelativeThreshold > 1 {
		return nil, fmt.Errorf("%w: relative threshold %v must be in (0, 1]", common.ErrInvalidConfig, opts.RelativeThreshold)
	}
	if opts.MaxEmotions < 1 {
		return nil, fmt.Errorf("%w: max emotions %d must be at least 1", common.ErrInvalidConfig, opts.MaxEmotions)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Rules == nil {
		scorer, err := rules.NewScorer(opts.Taxonomy, rules.DefaultKeywords(), opts.DefaultCategory)
		if err != nil {
			return nil, fmt.Errorf("failed to build rule scorer: %w", err)
		}
		opts.Rules = scorer
	}

	var providers []Provider
	seen := make(map[string]bool)
	for _, p := range []Provider{opts.Primary, opts.Fallback} {
		if p == nil {
			continue
		}
		if seen[p.Name()] {
			return nil, fmt.Errorf("%w: provider %q configured twice", common.ErrInvalidConfig, p.Name())
		}
		seen[p.Name()] = true
		providers = append(providers, p)
	}

	return &Engine{
		rules:             opts.Rules,
		logger:            opts.Logger,
		status:            make(map[string]ProviderStatus),
		mode:              opts.Mode,
		template:          opts.Template,
		defaultCategory:   opts.DefaultCategory,
		taxonomy:          append(model.Taxonomy(nil), opts.Taxonomy...),
		providers:         providers,
		relativeThreshold: opts.RelativeThreshold,
		maxEmotions:       opts.MaxEmotions,
	}, nil
}

// Classify returns the categories detected in text. It never fails: provider
// errors, panics and empty results fall through to the keyword scorer.
func (e *Engine) Classify(ctx context.Context, text string) model.ClassificationResult {
	if e.mode == ModeAuto {
		for _, p := range e.providers {
			if e.Status(p.Name()) == StatusUnavailable {
				continue
			}

			ranked, err := e.tryProvider(ctx, p, text)
			if err != nil {
				e.recordFailure(p, err)
				continue
			}

			e.setStatus(p.Name(), StatusAvailable)
			e.logger.Debug("Provider answered", "provider", p.Name(), "top", ranked.Top().Name)
			return e.buildResult(ranked, p.Method())
		}
	}

	return e.buildResult(e.ruleScores(text), model.MethodRuleBased)
}

// Taxonomy returns a copy of the label set.
func (e *Engine) Taxonomy() []string {
	return e.taxonomy.Names()
}

// Status returns what is known about the named provider.
func (e *Engine) Status(name string) ProviderStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status[name]
}

// Providers returns the configured provider names in the order they are tried.
func (e *Engine) Providers() []string {
	names := make([]string, len(e.providers))
	for i, p := range e.providers {
		names[i] = p.Name()
	}
	return names
}

// ResetStatus forgets every provider status so each is tried again.
func (e *Engine) ResetStatus() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = make(map[string]ProviderStatus)
}

func (e *Engine) setStatus(name string, status ProviderStatus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status[name] != status {
		e.logger.Info("Provider status changed", "provider", name, "status", status.String())
	}
	e.status[name] = status
}

// tryProvider runs one provider and normalizes its output.
func (e *Engine) tryProvider(ctx context.Context, p Provider, text string) (ranked model.RankedScores, err error) {
	defer func() {
		if r := recover(); r != nil {
			ranked = nil
			err = fmt.Errorf("provider %s panicked: %v", p.Name(), r)
		}
	}()

	scores, err := p.Classify(ctx, text, e.taxonomy, e.template)
	if err != nil {
		return nil, err
	}

	scores = scores.Restrict(e.taxonomy)
	if len(scores) == 0 {
		return nil, common.ErrEmptyResult
	}
	scores.SortByTaxonomy(e.taxonomy)
	return scores, nil
}

func (e *Engine) recordFailure(p Provider, err error) {
	var loadErr *common.ModelLoadError
	if errors.As(err, &loadErr) {
		e.logger.Warn("Provider unavailable, skipping it from now on", "provider", p.Name(), "error", err)
		e.setStatus(p.Name(), StatusUnavailable)
		return
	}
	e.logger.Warn("Provider failed, falling back", "provider", p.Name(), "transient", common.IsRetryable(err), "error", err)
}

// ruleScores runs the keyword scorer, guarding the result shape.
func (e *Engine) ruleScores(text string) (ranked model.RankedScores) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Rule scorer panicked", "error", r)
			ranked = nil
		}
		if len(ranked) == 0 {
			ranked = model.RankedScores{{Name: e.defaultCategory, Score: rules.DefaultScore}}
		}
	}()

	ranked = e.rules.Score(text).Restrict(e.taxonomy)
	ranked.SortByTaxonomy(e.taxonomy)
	return ranked
}

func (e *Engine) buildResult(ranked model.RankedScores, method model.Method) model.ClassificationResult {
	categories := selection.Select(ranked, e.relativeThreshold, e.maxEmotions)
	primary := categories[0]
	return model.ClassificationResult{
		AllScores:         ranked.Scores(),
		PrimaryCategory:   primary.Name,
		PrimaryConfidence: primary.Confidence,
		Method:            method,
		Categories:        categories,
	}
}
