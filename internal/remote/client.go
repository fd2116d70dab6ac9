package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Veraticus/sentimind/internal/common"
	"github.com/Veraticus/sentimind/internal/model"
	"github.com/Veraticus/sentimind/internal/service"
)

// ProviderName identifies this client in logs and errors.
const ProviderName = "remote-api"

// DefaultURL is the hosted multilingual NLI model used for zero-shot scoring.
const DefaultURL = "https://api-inference.huggingface.co/models/joeddav/xlm-roberta-large-xnli"

const maxResponseBytes = 1 << 20

// Config holds configuration for the remote inference client.
type Config struct {
	HTTPClient        *http.Client // optional; a pooled client is created otherwise
	URL               string
	Token             string // sent as a bearer token when set
	Timeout           time.Duration
	RetryDelay        time.Duration
	RateLimitWait     time.Duration
	MaxColdStartWait  time.Duration
	MaxRetries        int
	RequestsPerMinute int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		URL:              DefaultURL,
		Timeout:          30 * time.Second,
		RetryDelay:       time.Second,
		RateLimitWait:    2 * time.Second,
		MaxColdStartWait: 30 * time.Second,
		MaxRetries:       3,
	}
}

// Client classifies text against a hosted zero-shot endpoint.
// It is safe for concurrent use; retries of one call never block another.
type Client struct {
	httpClient *http.Client
	limiter    *rateLimiter
	logger     *slog.Logger
	cfg        Config
}

// NewClient creates a new remote inference client, filling zero values with defaults.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	defaults := DefaultConfig()
	if cfg.URL == "" {
		cfg.URL = defaults.URL
	}
	if u, err := url.Parse(cfg.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid inference URL %q", common.ErrInvalidConfig, cfg.URL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.RetryDelay < 0 {
		cfg.RetryDelay = defaults.RetryDelay
	}
	if cfg.RateLimitWait <= 0 {
		cfg.RateLimitWait = defaults.RateLimitWait
	}
	if cfg.MaxColdStartWait <= 0 {
		cfg.MaxColdStartWait = defaults.MaxColdStartWait
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaults.MaxRetries
	}
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		limiter:    newRateLimiter(cfg.RequestsPerMinute),
		logger:     logger.With("provider", ProviderName),
	}, nil
}

// Name implements the engine provider contract.
func (c *Client) Name() string {
	return ProviderName
}

// Method implements the engine provider contract.
func (c *Client) Method() model.Method {
	return model.MethodRemoteAPI
}

// Classify sends text with the candidate labels and returns the scores sorted
// descending. After MaxRetries failed attempts it returns *common.ProviderError.
func (c *Client) Classify(ctx context.Context, text string, taxonomy model.Taxonomy, template string) (model.RankedScores, error) {
	body, err := json.Marshal(inferenceRequest{
		Inputs: text,
		Parameters: inferenceParameters{
			CandidateLabels:    taxonomy.Names(),
			HypothesisTemplate: template,
			MultiLabel:         true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var (
		ranked   model.RankedScores
		lastErr  error
		attempts int
	)

	retryErr := common.WithRetry(ctx, func(attempt int) error {
		attempts = attempt
		scores, attemptErr := c.attempt(ctx, body)
		if attemptErr != nil {
			lastErr = attemptErr
			c.logger.Debug("inference attempt failed", "attempt", attempt, "error", attemptErr)
			return attemptErr
		}

		scores = scores.Restrict(taxonomy)
		if len(scores) == 0 {
			lastErr = common.ErrEmptyResult
			return &common.RetryableError{Err: common.ErrEmptyResult, Retryable: false}
		}
		scores.SortByTaxonomy(taxonomy)
		ranked = scores
		return nil
	}, c.retryOptions())

	if retryErr != nil {
		if lastErr == nil {
			lastErr = retryErr
		}
		if ctx.Err() != nil {
			lastErr = ctx.Err()
		}
		return nil, &common.ProviderError{Provider: ProviderName, Attempts: attempts, Err: lastErr}
	}

	return ranked, nil
}

func (c *Client) retryOptions() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  c.cfg.MaxRetries,
		InitialDelay: c.cfg.RetryDelay,
		MaxDelay:     max(c.cfg.MaxColdStartWait, c.cfg.RateLimitWait, c.cfg.RetryDelay),
		Multiplier:   1,
		Logger:       c.logger,
	}
}

// attempt performs a single request bounded by the per-attempt timeout.
func (c *Client) attempt(ctx context.Context, body []byte) (model.RankedScores, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return nil, &common.RetryableError{Err: err, Retryable: false}
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, &common.RetryableError{Err: fmt.Errorf("failed to create request: %w", err), Retryable: false}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &common.RetryableError{Err: ctx.Err(), Retryable: false}
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &common.RetryableError{Err: fmt.Errorf("request timed out after %s: %w", c.cfg.Timeout, err), Retryable: true}
		}
		return nil, &common.RetryableError{Err: fmt.Errorf("request failed: %w", err), Retryable: true}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &common.RetryableError{Err: fmt.Errorf("failed to read response: %w", err), Retryable: true}
	}

	switch resp.StatusCode {
	case http.StatusOK:
		scores, parseErr := parseScores(respBody)
		if parseErr != nil {
			return nil, &common.RetryableError{Err: parseErr, Retryable: true}
		}
		return scores, nil

	case http.StatusServiceUnavailable:
		wait := c.coldStartWait(respBody)
		c.logger.Info("model is warming up", "wait", wait)
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("%w (status %d): %s", common.ErrColdStart, resp.StatusCode, snippet(respBody)),
			Retryable: true,
			After:     wait,
		}

	case http.StatusTooManyRequests:
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("%w (status %d)", common.ErrRateLimit, resp.StatusCode),
			Retryable: true,
			After:     c.cfg.RateLimitWait,
		}

	default:
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("inference API error (status %d): %s", resp.StatusCode, snippet(respBody)),
			Retryable: true,
		}
	}
}

// coldStartWait reads the server's estimate, capped at MaxColdStartWait.
func (c *Client) coldStartWait(body []byte) time.Duration {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil || er.EstimatedTime <= 0 {
		return c.cfg.MaxColdStartWait
	}
	return min(time.Duration(er.EstimatedTime*float64(time.Second)), c.cfg.MaxColdStartWait)
}

func snippet(body []byte) string {
	const limit = 200
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
