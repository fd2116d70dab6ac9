// Package rules implements the deterministic keyword scorer used as the
// terminal fallback of the classification pipeline.
package rules

import (
	"fmt"
	"slices"
	"strings"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"

	"github.com/Veraticus/sentimind/internal/model"
)

// matchesForFullScore is the number of distinct triggers that saturates a category.
const matchesForFullScore = 3

// DefaultScore is forced onto the default category when nothing matches.
const DefaultScore = 0.5

// Scorer scores text against static keyword tables. It is immutable after
// construction and safe for concurrent use.
type Scorer struct {
	matcher         *goahocorasick.Machine
	triggers        map[string][]int // trigger -> taxonomy indexes
	defaultCategory string
	taxonomy        model.Taxonomy
	defaultIndex    int
}

// NewScorer builds a scorer for taxonomy. Keywords for categories outside the
// taxonomy are ignored; categories without keywords always score zero.
func NewScorer(taxonomy model.Taxonomy, keywords map[string][]string, defaultCategory string) (*Scorer, error) {
	if err := taxonomy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid taxonomy: %w", err)
	}

	defaultIndex := taxonomy.Index(defaultCategory)
	if defaultIndex < 0 {
		return nil, fmt.Errorf("default category %q is not part of the taxonomy", defaultCategory)
	}

	triggers := make(map[string][]int)
	for i, category := range taxonomy {
		for _, kw := range keywords[category] {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if !slices.Contains(triggers[kw], i) {
				triggers[kw] = append(triggers[kw], i)
			}
		}
	}

	s := &Scorer{
		taxonomy:        slices.Clone(taxonomy),
		triggers:        triggers,
		defaultCategory: defaultCategory,
		defaultIndex:    defaultIndex,
	}

	if len(triggers) == 0 {
		return s, nil
	}

	patterns := lo.Keys(triggers)
	slices.Sort(patterns)

	m := new(goahocorasick.Machine)
	if err := m.Build(lo.Map(patterns, func(p string, _ int) []rune { return []rune(p) })); err != nil {
		return nil, fmt.Errorf("failed to build keyword automaton: %w", err)
	}
	s.matcher = m

	return s, nil
}

// NewDefaultScorer builds a scorer over the bundled taxonomy and keyword tables.
func NewDefaultScorer() (*Scorer, error) {
	return NewScorer(model.DefaultTaxonomy(), DefaultKeywords(), model.DefaultCategory)
}

// Score returns every taxonomy label with score min(distinct triggers/3, 1),
// sorted descending with ties in taxonomy order. It never fails and never
// returns an all-zero list: the default category gets 0.5 when nothing matched.
func (s *Scorer) Score(text string) model.RankedScores {
	counts := s.count(strings.ToLower(text))

	ranked := make(model.RankedScores, len(s.taxonomy))
	anyMatch := false
	for i, name := range s.taxonomy {
		score := min(float64(counts[i])/matchesForFullScore, 1.0)
		if score > 0 {
			anyMatch = true
		}
		ranked[i] = model.ScoredLabel{Name: name, Score: score}
	}

	if !anyMatch {
		ranked[s.defaultIndex].Score = DefaultScore
	}

	ranked.SortByTaxonomy(s.taxonomy)
	return ranked
}

// DefaultCategory returns the category forced when nothing matches.
func (s *Scorer) DefaultCategory() string {
	return s.defaultCategory
}

// count returns, per taxonomy index, the number of distinct triggers found in text.
func (s *Scorer) count(text string) []int {
	counts := make([]int, len(s.taxonomy))
	if s.matcher == nil || text == "" {
		return counts
	}

	found := make(map[string]bool)
	for _, term := range s.matcher.MultiPatternSearch([]rune(text), false) {
		found[string(term.Word)] = true
	}

	for trigger := range found {
		for _, idx := range s.triggers[trigger] {
			counts[idx]++
		}
	}
	return counts
}
