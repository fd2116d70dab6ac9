// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Veraticus/sentimind/internal/model"
)

// Classifier is the contract the rest of the application consumes.
// Classify never fails; quality degrades instead.
type Classifier interface {
	Classify(ctx context.Context, text string) model.ClassificationResult
	Taxonomy() []string
}

// PostFilter defines filtering options for post queries.
type PostFilter struct {
	Category string // matches any detected category, not only the primary one
	Limit    int
	Offset   int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Post operations
	SavePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id int64) (*model.Post, error)
	ListPosts(ctx context.Context, filter PostFilter) ([]model.Post, error)

	// Category operations
	SyncCategories(ctx context.Context, names []string) error
	GetCategories(ctx context.Context) ([]string, error)
	CountPostsByCategory(ctx context.Context) (map[string]int, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	Logger       *slog.Logger
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
