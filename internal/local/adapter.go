package local

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/lo"

	"github.com/Veraticus/sentimind/internal/common"
	"github.com/Veraticus/sentimind/internal/model"
)

// ProviderName identifies the adapter in logs and errors.
const ProviderName = "local-model"

// DefaultModels lists the candidate embedding models, most preferred first.
var DefaultModels = []string{"bge-m3", "paraphrase-multilingual", "nomic-embed-text", "all-minilm"}

const warmupText = "hola"

// Config configures the local model adapter.
type Config struct {
	HTTPClient  *http.Client
	BaseURL     string
	Models      []string
	LoadTimeout time.Duration
	Timeout     time.Duration
	Midpoint    float64
	Steepness   float64
}

// DefaultConfig returns the adapter defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "http://127.0.0.1:11434",
		Models:      append([]string(nil), DefaultModels...),
		LoadTimeout: 2 * time.Minute,
		Timeout:     30 * time.Second,
		Midpoint:    0.5,
		Steepness:   10,
	}
}

// Adapter scores text with the first loadable candidate model.
// It is safe for concurrent use.
type Adapter struct {
	client  *ollamaClient
	cache   *embeddingCache
	logger  *slog.Logger
	loadErr error
	model   string
	cfg     Config
	once    sync.Once
	done    atomic.Bool
}

// NewAdapter creates an adapter. Nothing is loaded until the first Classify.
func NewAdapter(cfg Config, logger *slog.Logger) *Adapter {
	defaults := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.Models == nil {
		cfg.Models = defaults.Models
	}
	cfg.Models = lo.Uniq(lo.Compact(cfg.Models))
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = defaults.LoadTimeout
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.Steepness <= 0 {
		cfg.Steepness = defaults.Steepness
	}
	if cfg.Midpoint == 0 {
		cfg.Midpoint = defaults.Midpoint
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Adapter{
		cfg:    cfg,
		client: newOllamaClient(cfg.BaseURL, httpClient),
		cache:  newEmbeddingCache(),
		logger: logger.With("provider", ProviderName),
	}
}

// Name implements the engine provider contract.
func (a *Adapter) Name() string {
	return ProviderName
}

// Method implements the engine provider contract.
func (a *Adapter) Method() model.Method {
	return model.MethodLocalModel
}

// Model returns the loaded model name, or "" if none is loaded yet.
func (a *Adapter) Model() string {
	if !a.done.Load() || a.loadErr != nil {
		return ""
	}
	return a.model
}

// Load initializes the adapter if that has not happened yet and reports the outcome.
func (a *Adapter) Load(ctx context.Context) error {
	a.once.Do(func() {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.LoadTimeout)
		defer cancel()
		a.model, a.loadErr = a.loadFirst(loadCtx)
		a.done.Store(true)
	})
	return a.loadErr
}

func (a *Adapter) loadFirst(ctx context.Context) (string, error) {
	loadErr := &common.ModelLoadError{}
	for _, name := range a.cfg.Models {
		err := a.tryLoad(ctx, name)
		if err == nil {
			a.logger.Info("Loaded local model", "model", name)
			return name, nil
		}
		a.logger.Warn("Local model candidate failed to load", "model", name, "error", err)
		loadErr.Candidates = append(loadErr.Candidates, name)
		loadErr.Errs = append(loadErr.Errs, err)
	}
	return "", loadErr
}

func (a *Adapter) tryLoad(ctx context.Context, name string) error {
	if _, err := a.client.show(ctx, name); err != nil {
		return err
	}
	if _, err := a.client.embed(ctx, name, []string{warmupText}); err != nil {
		return fmt.Errorf("warm-up failed: %w", err)
	}
	return nil
}

// Classify scores every taxonomy label for text. It returns
// *common.ModelLoadError when no candidate model can be loaded.
func (a *Adapter) Classify(ctx context.Context, text string, taxonomy model.Taxonomy, template string) (model.RankedScores, error) {
	if err := a.Load(ctx); err != nil {
		return nil, err
	}

	inferCtx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	textVec, hypVecs, err := a.embeddings(inferCtx, text, taxonomy, template)
	if err != nil {
		return nil, &common.ProviderError{
			Provider: ProviderName,
			Attempts: 1,
			Err:      fmt.Errorf("inference with %s: %w", a.model, err),
		}
	}

	scores := make(model.RankedScores, len(taxonomy))
	for i, label := range taxonomy {
		cos := cosineSimilarity(textVec, hypVecs[i])
		scores[i] = model.ScoredLabel{Name: label, Score: calibrate(cos, a.cfg.Midpoint, a.cfg.Steepness)}
	}
	scores.SortByTaxonomy(taxonomy)
	return scores, nil
}

// embeddings returns the text vector and one hypothesis vector per label,
// embedding only what the cache does not hold in a single request.
func (a *Adapter) embeddings(ctx context.Context, text string, taxonomy model.Taxonomy, template string) ([]float64, [][]float64, error) {
	hypotheses := lo.Map(taxonomy, func(label string, _ int) string {
		return model.Hypothesis(template, label)
	})

	hypVecs := make([][]float64, len(hypotheses))
	inputs := []string{text}
	var missing []int
	for i, h := range hypotheses {
		if vec, ok := a.cache.get(a.model, h); ok {
			hypVecs[i] = vec
			continue
		}
		inputs = append(inputs, h)
		missing = append(missing, i)
	}

	vecs, err := a.client.embed(ctx, a.model, inputs)
	if err != nil {
		return nil, nil, err
	}

	fresh := make(map[string][]float64, len(inputs)-1)
	for j, input := range inputs[1:] {
		fresh[input] = vecs[j+1]
		a.cache.set(a.model, input, vecs[j+1])
	}
	for _, i := range missing {
		hypVecs[i] = fresh[hypotheses[i]]
	}

	return vecs[0], hypVecs, nil
}
