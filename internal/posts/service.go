// Package posts implements the anonymous emotion wall: posts are validated,
// classified and stored together with every detected category.
package posts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Veraticus/sentimind/internal/common"
	"github.com/Veraticus/sentimind/internal/model"
	"github.com/Veraticus/sentimind/internal/service"
)

// Content length bounds, in characters.
const (
	MinContentLength = 3
	MaxContentLength = 1000
)

// Service creates and queries classified posts.
type Service struct {
	classifier service.Classifier
	store      service.Storage
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a post service.
func NewService(classifier service.Classifier, store service.Storage, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		classifier: classifier,
		store:      store,
		logger:     logger,
		now:        time.Now,
	}
}

// ValidateContent trims content and checks its length.
func ValidateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	n := utf8.RuneCountInString(content)
	switch {
	case n == 0:
		return "", common.NewValidationError("content", "must not be empty")
	case n < MinContentLength:
		return "", common.NewValidationError("content", fmt.Sprintf("must be at least %d characters", MinContentLength))
	case n > MaxContentLength:
		return "", common.NewValidationError("content", fmt.Sprintf("must be at most %d characters", MaxContentLength))
	}
	return content, nil
}

// Create validates, classifies and stores a post.
func (s *Service) Create(ctx context.Context, content string) (*model.Post, error) {
	content, err := ValidateContent(content)
	if err != nil {
		return nil, err
	}

	result := s.classifier.Classify(ctx, content)
	post := &model.Post{
		Content:           content,
		PrimaryCategory:   result.PrimaryCategory,
		PrimaryConfidence: result.PrimaryConfidence,
		Method:            result.Method,
		Categories:        result.Categories,
		CreatedAt:         s.now(),
	}

	if err := s.store.SavePost(ctx, post); err != nil {
		return nil, common.NewUserError("could not save post", err)
	}

	s.logger.Info("Post created",
		"id", post.ID,
		"primary", post.PrimaryCategory,
		"categories", result.Names(),
		"method", post.Method)

	return post, nil
}

// Get returns one post.
func (s *Service) Get(ctx context.Context, id int64) (*model.Post, error) {
	return s.store.GetPost(ctx, id)
}

// List returns posts newest first, optionally only those that detected a category.
func (s *Service) List(ctx context.Context, filter service.PostFilter) ([]model.Post, error) {
	if filter.Category != "" && !model.Taxonomy(s.classifier.Taxonomy()).Contains(filter.Category) {
		return nil, common.NewValidationError("category", fmt.Sprintf("%q is not a known category", filter.Category))
	}
	return s.store.ListPosts(ctx, filter)
}

// Categories returns the taxonomy in declaration order.
func (s *Service) Categories() []string {
	return s.classifier.Taxonomy()
}

// SyncCategories writes the taxonomy into the category catalog.
func (s *Service) SyncCategories(ctx context.Context) error {
	return s.store.SyncCategories(ctx, s.classifier.Taxonomy())
}

// Counts returns how many posts detected each category.
func (s *Service) Counts(ctx context.Context) (map[string]int, error) {
	return s.store.CountPostsByCategory(ctx)
}
