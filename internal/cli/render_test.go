package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/sentimind/internal/eval"
	"github.com/Veraticus/sentimind/internal/model"
)

func sampleResult() model.ClassificationResult {
	return model.ClassificationResult{
		PrimaryCategory:   "Alegría",
		PrimaryConfidence: 0.92,
		Method:            model.MethodRemoteAPI,
		Categories: []model.DetectedCategory{
			{Name: "Alegría", Confidence: 0.92},
			{Name: "Gratitud", Confidence: 0.85},
		},
		AllScores: map[string]float64{"Alegría": 0.92, "Gratitud": 0.85},
	}
}

func TestConfidenceBar(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		filled     int
	}{
		{"empty", 0, 0},
		{"half", 0.5, 10},
		{"full", 1, 20},
		{"clamped high", 1.5, 20},
		{"clamped low", -0.2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ConfidenceBar(tt.confidence)
			assert.Equal(t, tt.filled, strings.Count(bar, "█"))
			assert.Equal(t, barWidth-tt.filled, strings.Count(bar, "░"))
		})
	}
}

func TestMethodLabel(t *testing.T) {
	assert.Contains(t, MethodLabel(model.MethodLocalModel), "local model")
	assert.Contains(t, MethodLabel(model.MethodRemoteAPI), "remote API")
	assert.Contains(t, MethodLabel(model.MethodRuleBased), "keyword rules")
	assert.Equal(t, "other", MethodLabel(model.Method("other")))
}

func TestRenderResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderResult(&buf, "Estoy feliz y agradecido", sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "Alegría")
	assert.Contains(t, out, "Gratitud")
	assert.Contains(t, out, "92%")
	assert.Contains(t, out, "85%")
	assert.Contains(t, out, "remote API")
	assert.Contains(t, out, "Estoy feliz y agradecido")
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, sampleResult()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Alegría", decoded["primary_category"])
	assert.Equal(t, "remote-api", decoded["method"])
	assert.Len(t, decoded["categories"], 2)
}

func TestRenderCategories(t *testing.T) {
	t.Run("with counts", func(t *testing.T) {
		var buf bytes.Buffer
		err := RenderCategories(&buf, []string{"Alegría", "Tristeza"}, map[string]int{"Alegría": 3})
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 4)
		assert.Contains(t, lines[2], "Alegría")
		assert.Contains(t, lines[2], "3")
		assert.Contains(t, lines[3], "Tristeza")
		assert.Contains(t, lines[3], "0")
	})

	t.Run("names only", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderCategories(&buf, []string{"Alegría"}, nil))
		assert.Contains(t, buf.String(), "-")
		assert.Contains(t, buf.String(), "Alegría")
	})
}

func TestRenderPosts(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderPosts(&buf, nil))
		assert.Contains(t, buf.String(), "No posts yet.")
	})

	t.Run("rows", func(t *testing.T) {
		var buf bytes.Buffer
		posts := []model.Post{{
			ID:         7,
			Content:    strings.Repeat("muy feliz ", 20),
			CreatedAt:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
			Categories: []model.DetectedCategory{{Name: "Alegría", Confidence: 0.9}},
		}}
		require.NoError(t, RenderPosts(&buf, posts))

		out := buf.String()
		assert.Contains(t, out, "7")
		assert.Contains(t, out, "Alegría 90%")
		assert.Contains(t, out, "…")
	})
}

func TestRenderReport(t *testing.T) {
	report := &eval.Report{
		ByMethod: map[model.Method]int{model.MethodRuleBased: 2},
		Results: []eval.Result{
			{Case: eval.Case{Text: "feliz", Expected: []string{"Alegría"}}, Detected: []string{"Alegría"}, Correct: true},
			{Case: eval.Case{Text: "¿qué?", Expected: []string{"Confusión"}}, Detected: []string{"Pregunta"}},
		},
		Correct:  1,
		Total:    2,
		Accuracy: 0.5,
	}

	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "1/2 correct (50.0%)")
	assert.Contains(t, out, "rule-based: 2")
	assert.Contains(t, out, "1 cases missed")
	assert.Contains(t, out, "expected: Confusión")
	assert.Contains(t, out, "detected: Pregunta")
}

func TestRenderReport_AllCorrect(t *testing.T) {
	report := &eval.Report{
		Results: []eval.Result{{Correct: true}},
		Correct: 1,
		Total:   1,
	}

	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, report))
	assert.Contains(t, buf.String(), "Every case matched.")
}

func TestNewProgressBar(t *testing.T) {
	bar := NewProgressBar(io.Discard, 3, "Classifying")
	for range 3 {
		require.NoError(t, bar.Add(1))
	}
	assert.True(t, bar.IsFinished())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hola", truncate("hola", 10))
	assert.Equal(t, "ale…", truncate("alegría", 4))
}
