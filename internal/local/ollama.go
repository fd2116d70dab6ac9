package local

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	errRuntimeUnreachable = errors.New("ollama runtime is not reachable")
	errModelNotInstalled  = errors.New("model is not installed")
)

type showRequest struct {
	Model string `json:"model"`
}

type showResponse struct {
	Details struct {
		Family        string `json:"family"`
		ParameterSize string `json:"parameter_size"`
	} `json:"details"`
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Model      string      `json:"model"`
	Embeddings [][]float64 `json:"embeddings"`
}

// ollamaClient speaks the subset of the Ollama HTTP API the adapter needs.
type ollamaClient struct {
	httpClient *http.Client
	baseURL    string
}

func newOllamaClient(baseURL string, httpClient *http.Client) *ollamaClient {
	return &ollamaClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// show checks that a model is installed.
func (c *ollamaClient) show(ctx context.Context, name string) (*showResponse, error) {
	var result showResponse
	if err := c.post(ctx, "/api/show", showRequest{Model: name}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// embed returns one vector per input, in input order.
func (c *ollamaClient) embed(ctx context.Context, name string, inputs []string) ([][]float64, error) {
	var result embedResponse
	if err := c.post(ctx, "/api/embed", embedRequest{Model: name, Input: inputs}, &result); err != nil {
		return nil, err
	}
	if len(result.Embeddings) != len(inputs) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(inputs), len(result.Embeddings))
	}
	for i, vec := range result.Embeddings {
		if len(vec) == 0 {
			return nil, fmt.Errorf("embedding %d is empty", i)
		}
	}
	return result.Embeddings, nil
}

func (c *ollamaClient) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %w", errRuntimeUnreachable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return errModelNotInstalled
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned %s: %s", path, resp.Status, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
