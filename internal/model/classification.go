// Package model defines the core domain models used throughout the application.
package model

import (
	"errors"
	"fmt"
)

// Method identifies which provider tier produced a classification.
type Method string

// Classification method constants.
const (
	MethodLocalModel Method = "local-model"
	MethodRemoteAPI  Method = "remote-api"
	MethodRuleBased  Method = "rule-based"
)

// Valid reports whether m is one of the known methods.
func (m Method) Valid() bool {
	switch m {
	case MethodLocalModel, MethodRemoteAPI, MethodRuleBased:
		return true
	default:
		return false
	}
}

// DetectedCategory is a category accepted by the multi-label selector.
type DetectedCategory struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"` // rounded to 2 decimals
	Score      float64 `json:"-"`          // unrounded provider score
}

// ClassificationResult is what the classifier hands back to its callers.
type ClassificationResult struct {
	AllScores         map[string]float64 `json:"all_scores"`
	PrimaryCategory   string             `json:"primary_category"`
	Method            Method             `json:"method"`
	Categories        []DetectedCategory `json:"categories"`
	PrimaryConfidence float64            `json:"primary_confidence"`
}

// ErrInvalidResult is returned by ClassificationResult.Validate.
var ErrInvalidResult = errors.New("invalid classification result")

// Validate checks the structural invariants of a result.
func (r ClassificationResult) Validate() error {
	if len(r.Categories) == 0 {
		return fmt.Errorf("%w: no categories", ErrInvalidResult)
	}
	if r.PrimaryCategory != r.Categories[0].Name {
		return fmt.Errorf("%w: primary %q does not match first category %q",
			ErrInvalidResult, r.PrimaryCategory, r.Categories[0].Name)
	}
	if r.PrimaryConfidence != r.Categories[0].Confidence {
		return fmt.Errorf("%w: primary confidence %.2f does not match %.2f",
			ErrInvalidResult, r.PrimaryConfidence, r.Categories[0].Confidence)
	}
	for i := 1; i < len(r.Categories); i++ {
		if r.Categories[i].Confidence > r.Categories[i-1].Confidence {
			return fmt.Errorf("%w: categories not sorted at index %d", ErrInvalidResult, i)
		}
	}
	if !r.Method.Valid() {
		return fmt.Errorf("%w: unknown method %q", ErrInvalidResult, r.Method)
	}
	return nil
}

// Names returns the detected category names in order.
func (r ClassificationResult) Names() []string {
	names := make([]string, len(r.Categories))
	for i, c := range r.Categories {
		names[i] = c.Name
	}
	return names
}
