package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/sentimind/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidPost  = errors.New("invalid post")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validatePost checks that a post carries a consistent classification.
func validatePost(post *model.Post) error {
	if post == nil {
		return fmt.Errorf("%w: post", ErrNilParameter)
	}
	if strings.TrimSpace(post.Content) == "" {
		return fmt.Errorf("%w: content is empty", ErrInvalidPost)
	}
	if !post.Method.Valid() {
		return fmt.Errorf("%w: unknown method %q", ErrInvalidPost, post.Method)
	}
	if len(post.Categories) == 0 {
		return fmt.Errorf("%w: no categories", ErrInvalidPost)
	}
	if post.PrimaryCategory != post.Categories[0].Name {
		return fmt.Errorf("%w: primary category %q is not the first category %q",
			ErrInvalidPost, post.PrimaryCategory, post.Categories[0].Name)
	}
	seen := make(map[string]bool, len(post.Categories))
	for _, c := range post.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: blank category name", ErrInvalidPost)
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidPost, c.Name)
		}
		seen[c.Name] = true
		if c.Confidence < 0 || c.Confidence > 1 {
			return fmt.Errorf("%w: confidence %v for %q outside [0,1]", ErrInvalidPost, c.Confidence, c.Name)
		}
	}
	return nil
}
