// Package selection turns a ranked score list into the bounded set of
// categories considered co-present in a text.
package selection

import (
	"github.com/Veraticus/sentimind/internal/model"
)

// Select walks ranked (already sorted descending) and accepts every label whose
// score is at least relativeThreshold times the top score, stopping after
// maxEmotions labels. The threshold is relative: each text's own best score
// calibrates what counts as also present. A threshold outside [0,1] is
// clamped to the nearest bound, so zero or less accepts labels up to the cap.
//
// A top score of zero (or below) is treated as no confident detection and
// yields exactly the top-ranked label. Comparisons use raw scores; the returned
// confidences are rounded to two decimals and the raw score is kept alongside.
func Select(ranked model.RankedScores, relativeThreshold float64, maxEmotions int) []model.DetectedCategory {
	if len(ranked) == 0 {
		return []model.DetectedCategory{}
	}
	if maxEmotions < 1 {
		maxEmotions = 1
	}
	relativeThreshold = min(max(relativeThreshold, 0), 1)

	top := ranked[0]
	if top.Score <= 0 {
		return []model.DetectedCategory{detected(top)}
	}

	threshold := top.Score * relativeThreshold
	selected := make([]model.DetectedCategory, 0, maxEmotions)
	for _, label := range ranked {
		if len(selected) == maxEmotions {
			break
		}
		if label.Score >= threshold {
			selected = append(selected, detected(label))
		}
	}

	if len(selected) == 0 {
		return []model.DetectedCategory{detected(top)}
	}
	return selected
}

// Ranked converts a selection back into ranked scores using the raw scores,
// so that a selection can be fed through Select again.
func Ranked(categories []model.DetectedCategory) model.RankedScores {
	out := make(model.RankedScores, len(categories))
	for i, c := range categories {
		out[i] = model.ScoredLabel{Name: c.Name, Score: c.Score}
	}
	return out
}

func detected(label model.ScoredLabel) model.DetectedCategory {
	return model.DetectedCategory{
		Name:       label.Name,
		Confidence: model.Round2(label.Score),
		Score:      label.Score,
	}
}
