package model

import (
	"fmt"
	"math"
	"sort"
)

// ScoredLabel pairs a category with an independent confidence in [0,1].
// Scores of different labels are not expected to sum to 1.
type ScoredLabel struct {
	Name  string
	Score float64
}

// Validate ensures the ScoredLabel has valid data.
func (s ScoredLabel) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("label name is required")
	}
	if math.IsNaN(s.Score) || s.Score < 0.0 || s.Score > 1.0 {
		return fmt.Errorf("score must be between 0.0 and 1.0, got %.2f", s.Score)
	}
	return nil
}

// RankedScores is the provider output handed to the selector: labels sorted
// descending by score, ties in taxonomy order.
type RankedScores []ScoredLabel

// SortByTaxonomy sorts in place by descending score. Equal scores keep taxonomy
// declaration order; labels unknown to the taxonomy go after known ones, by name.
func (r RankedScores) SortByTaxonomy(taxonomy Taxonomy) {
	index := make(map[string]int, len(taxonomy))
	for i, name := range taxonomy {
		index[name] = i
	}
	position := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}
		return len(taxonomy)
	}

	sort.SliceStable(r, func(i, j int) bool {
		if r[i].Score != r[j].Score {
			return r[i].Score > r[j].Score
		}
		pi, pj := position(r[i].Name), position(r[j].Name)
		if pi != pj {
			return pi < pj
		}
		return r[i].Name < r[j].Name
	})
}

// IsSorted reports whether scores are in non-increasing order.
func (r RankedScores) IsSorted() bool {
	for i := 1; i < len(r); i++ {
		if r[i].Score > r[i-1].Score {
			return false
		}
	}
	return true
}

// Top returns the first label, or nil if empty. Callers must sort first.
func (r RankedScores) Top() *ScoredLabel {
	if len(r) == 0 {
		return nil
	}
	return &r[0]
}

// Scores returns the label→score mapping, rounded for presentation.
func (r RankedScores) Scores() map[string]float64 {
	out := make(map[string]float64, len(r))
	for _, s := range r {
		out[s.Name] = Round2(s.Score)
	}
	return out
}

// Restrict drops labels outside the taxonomy and clamps scores into [0,1].
// Duplicate labels keep their first occurrence.
func (r RankedScores) Restrict(taxonomy Taxonomy) RankedScores {
	out := make(RankedScores, 0, len(r))
	seen := make(map[string]bool, len(r))
	for _, s := range r {
		if !taxonomy.Contains(s.Name) || seen[s.Name] || math.IsNaN(s.Score) {
			continue
		}
		seen[s.Name] = true
		out = append(out, ScoredLabel{Name: s.Name, Score: clamp01(s.Score)})
	}
	return out
}

// Round2 rounds to two decimals, half away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}
