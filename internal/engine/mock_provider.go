package engine

import (
	"context"
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/Veraticus/sentimind/internal/model"
)

// MockProvider is a test implementation of the Provider interface.
// It returns fixed scores, a fixed error, or panics, and records every call.
type MockProvider struct {
	err    error
	panic  any
	scores map[string]float64
	name   string
	method model.Method
	calls  []MockProviderCall
	mu     sync.Mutex
}

// MockProviderCall records details of a classification request.
type MockProviderCall struct {
	Text     string
	Template string
	Taxonomy model.Taxonomy
}

// NewMockProvider creates a mock provider that scores every label 0.
func NewMockProvider(name string, method model.Method) *MockProvider {
	return &MockProvider{
		name:   name,
		method: method,
		scores: make(map[string]float64),
	}
}

// WithScores sets the scores returned for the given labels. Labels outside the
// taxonomy are returned as well.
func (m *MockProvider) WithScores(scores map[string]float64) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = scores
	return m
}

// WithError makes every call fail with err; nil restores success.
func (m *MockProvider) WithError(err error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithPanic makes every call panic with v.
func (m *MockProvider) WithPanic(v any) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panic = v
	return m
}

// Name implements Provider.
func (m *MockProvider) Name() string {
	return m.name
}

// Method implements Provider.
func (m *MockProvider) Method() model.Method {
	return m.method
}

// Classify implements Provider.
func (m *MockProvider) Classify(_ context.Context, text string, taxonomy model.Taxonomy, template string) (model.RankedScores, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockProviderCall{Text: text, Template: template, Taxonomy: taxonomy})

	if m.panic != nil {
		panic(m.panic)
	}
	if m.err != nil {
		return nil, m.err
	}

	out := make(model.RankedScores, 0, len(m.scores))
	for _, label := range taxonomy {
		if score, ok := m.scores[label]; ok {
			out = append(out, model.ScoredLabel{Name: label, Score: score})
		}
	}
	unknown := lo.Filter(lo.Keys(m.scores), func(label string, _ int) bool {
		return !taxonomy.Contains(label)
	})
	sort.Strings(unknown)
	for _, label := range unknown {
		out = append(out, model.ScoredLabel{Name: label, Score: m.scores[label]})
	}
	return out, nil
}

// Calls returns all recorded calls for verification in tests.
func (m *MockProvider) Calls() []MockProviderCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]MockProviderCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallCount returns the number of times Classify was called.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Reset clears all recorded calls.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}
