package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoredLabel_Validate(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		label   ScoredLabel
		wantErr bool
	}{
		{name: "valid", label: ScoredLabel{Name: "Alegría", Score: 0.85}},
		{name: "zero score", label: ScoredLabel{Name: "Alegría", Score: 0}},
		{name: "empty name", label: ScoredLabel{Score: 0.5}, wantErr: true, errMsg: "label name is required"},
		{name: "score too low", label: ScoredLabel{Name: "Asco", Score: -0.1}, wantErr: true, errMsg: "score must be between 0.0 and 1.0, got -0.10"},
		{name: "score too high", label: ScoredLabel{Name: "Asco", Score: 1.1}, wantErr: true, errMsg: "score must be between 0.0 and 1.0, got 1.10"},
		{name: "NaN", label: ScoredLabel{Name: "Asco", Score: math.NaN()}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.label.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.errMsg != "" {
				assert.Equal(t, tt.errMsg, err.Error())
			}
		})
	}
}

func TestRankedScores_SortByTaxonomy(t *testing.T) {
	taxonomy := Taxonomy{"A", "B", "C", "D"}

	t.Run("descending by score", func(t *testing.T) {
		r := RankedScores{{"A", 0.1}, {"B", 0.9}, {"C", 0.5}}
		r.SortByTaxonomy(taxonomy)
		assert.Equal(t, RankedScores{{"B", 0.9}, {"C", 0.5}, {"A", 0.1}}, r)
		assert.True(t, r.IsSorted())
	})

	t.Run("ties follow taxonomy order, not input order", func(t *testing.T) {
		r := RankedScores{{"D", 0.5}, {"B", 0.5}, {"C", 0.5}, {"A", 0.7}}
		r.SortByTaxonomy(taxonomy)
		assert.Equal(t, RankedScores{{"A", 0.7}, {"B", 0.5}, {"C", 0.5}, {"D", 0.5}}, r)
	})

	t.Run("unknown labels after known ones", func(t *testing.T) {
		r := RankedScores{{"Z", 0.5}, {"Y", 0.5}, {"C", 0.5}}
		r.SortByTaxonomy(taxonomy)
		assert.Equal(t, RankedScores{{"C", 0.5}, {"Y", 0.5}, {"Z", 0.5}}, r)
	})
}

func TestRankedScores_Top(t *testing.T) {
	assert.Nil(t, RankedScores{}.Top())

	r := RankedScores{{"A", 0.7}, {"B", 0.2}}
	top := r.Top()
	require.NotNil(t, top)
	assert.Equal(t, "A", top.Name)
}

func TestRankedScores_Restrict(t *testing.T) {
	taxonomy := Taxonomy{"A", "B"}
	r := RankedScores{{"A", 1.2}, {"X", 0.9}, {"B", -0.1}, {"A", 0.3}, {"B", math.NaN()}}

	got := r.Restrict(taxonomy)

	assert.Equal(t, RankedScores{{"A", 1}, {"B", 0}}, got)
}

func TestRankedScores_Scores(t *testing.T) {
	r := RankedScores{{"A", 0.876}, {"B", 0.124}}
	assert.Equal(t, map[string]float64{"A": 0.88, "B": 0.12}, r.Scores())
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.88, Round2(0.876))
	assert.Equal(t, 0.5, Round2(0.5))
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, 0.0, Round2(0.004))
}
