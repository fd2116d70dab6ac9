package engine

import (
	"context"

	"github.com/Veraticus/sentimind/internal/model"
)

// Provider is an AI scoring tier. Implementations return every label they
// scored; the engine restricts, sorts and selects.
type Provider interface {
	Name() string
	Method() model.Method
	Classify(ctx context.Context, text string, taxonomy model.Taxonomy, template string) (model.RankedScores, error)
}

// Scorer is the final, always-available tier.
type Scorer interface {
	Score(text string) model.RankedScores
}
