package model

import "time"

// Post is an anonymous wall message together with its classification.
type Post struct {
	CreatedAt         time.Time          `json:"created_at"`
	Content           string             `json:"content"`
	PrimaryCategory   string             `json:"primary_category"`
	Method            Method             `json:"method"`
	Categories        []DetectedCategory `json:"categories"`
	ID                int64              `json:"id"`
	PrimaryConfidence float64            `json:"primary_confidence"`
}
