package model

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultHypothesisTemplate phrases a label as a claim for zero-shot scoring.
// The "{}" placeholder is replaced by the category name.
const DefaultHypothesisTemplate = "Este texto expresa {}"

// DefaultCategory is the label the rule scorer falls back to when nothing matches.
const DefaultCategory = "Reflexión"

// Taxonomy validation errors.
var (
	ErrEmptyTaxonomy     = errors.New("taxonomy cannot be empty")
	ErrBlankCategory     = errors.New("category name cannot be blank")
	ErrDuplicateCategory = errors.New("duplicate category")
)

// Taxonomy is the ordered set of category names a classifier may emit.
// Declaration order is significant: it breaks ties between equal scores.
type Taxonomy []string

// DefaultTaxonomy returns the bundled emotion and content labels.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		// Basic emotions
		"Alegría", "Tristeza", "Enojo", "Miedo", "Sorpresa", "Asco",
		// Social emotions
		"Amor", "Odio", "Vergüenza", "Orgullo", "Envidia", "Celos",
		// Content types
		"Humor", "Inspiración", "Confesión", "Queja", "Consejo",
		"Pregunta", "Reflexión", "Nostalgia", "Ansiedad", "Frustración",
		// Special content
		"Sarcasmo", "Polémica", "Terror",
	}
}

// Validate ensures the taxonomy is non-empty and holds unique, non-blank names.
func (t Taxonomy) Validate() error {
	if len(t) == 0 {
		return ErrEmptyTaxonomy
	}

	seen := make(map[string]bool, len(t))
	for i, name := range t {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w at index %d", ErrBlankCategory, i)
		}
		if seen[name] {
			return fmt.Errorf("%w %q", ErrDuplicateCategory, name)
		}
		seen[name] = true
	}

	return nil
}

// Index returns the declaration position of name, or -1 if it is not part of the taxonomy.
func (t Taxonomy) Index(name string) int {
	for i, n := range t {
		if n == name {
			return i
		}
	}
	return -1
}

// Contains reports whether name is part of the taxonomy.
func (t Taxonomy) Contains(name string) bool {
	return t.Index(name) >= 0
}

// Names returns a copy of the category names.
func (t Taxonomy) Names() []string {
	out := make([]string, len(t))
	copy(out, t)
	return out
}

// Hypothesis renders the template for a single label.
func Hypothesis(template, label string) string {
	if !strings.Contains(template, "{}") {
		return strings.TrimSpace(template + " " + label)
	}
	return strings.ReplaceAll(template, "{}", label)
}
