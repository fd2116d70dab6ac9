package local

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{name: "identical", a: []float64{1, 2, 3}, b: []float64{1, 2, 3}, want: 1},
		{name: "orthogonal", a: []float64{1, 0}, b: []float64{0, 1}, want: 0},
		{name: "opposite", a: []float64{1, 0}, b: []float64{-1, 0}, want: -1},
		{name: "scaled", a: []float64{1, 1}, b: []float64{3, 3}, want: 1},
		{name: "diagonal", a: []float64{1, 1}, b: []float64{1, 0}, want: 1 / math.Sqrt2},
		{name: "length mismatch", a: []float64{1, 0}, b: []float64{1}, want: 0},
		{name: "empty", a: nil, b: nil, want: 0},
		{name: "zero vector", a: []float64{0, 0}, b: []float64{1, 1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCalibrate(t *testing.T) {
	assert.InDelta(t, 0.5, calibrate(0.5, 0.5, 10), 1e-9)
	assert.Greater(t, calibrate(0.9, 0.5, 10), calibrate(0.6, 0.5, 10))
	assert.Less(t, calibrate(-1, 0.5, 10), 0.001)
	assert.Greater(t, calibrate(1, 0.5, 10), 0.99)

	for _, cos := range []float64{-1, -0.3, 0, 0.25, 0.5, 0.75, 1, math.Inf(1), math.Inf(-1)} {
		score := calibrate(cos, 0.5, 10)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
	assert.Zero(t, calibrate(math.NaN(), 0.5, 10))
}
