package remote

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Veraticus/sentimind/internal/model"
)

// inferenceRequest is the body of a zero-shot classification call.
type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	HypothesisTemplate string   `json:"hypothesis_template"`
	CandidateLabels    []string `json:"candidate_labels"`
	MultiLabel         bool     `json:"multi_label"`
}

// inferenceResponse is the classic pipeline output with parallel arrays.
type inferenceResponse struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

// labelScore is the element of the newer list-shaped output.
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// errorResponse is returned alongside non-success statuses.
type errorResponse struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

// parseScores decodes either response shape into unsorted scored labels.
func parseScores(body []byte) (model.RankedScores, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty response body")
	}

	if trimmed[0] == '[' {
		var items []labelScore
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
		out := make(model.RankedScores, 0, len(items))
		for _, it := range items {
			out = append(out, model.ScoredLabel{Name: it.Label, Score: it.Score})
		}
		return out, nil
	}

	var resp inferenceResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(resp.Labels) != len(resp.Scores) {
		return nil, fmt.Errorf("response has %d labels but %d scores", len(resp.Labels), len(resp.Scores))
	}

	out := make(model.RankedScores, len(resp.Labels))
	for i, label := range resp.Labels {
		out[i] = model.ScoredLabel{Name: label, Score: resp.Scores[i]}
	}
	return out, nil
}
