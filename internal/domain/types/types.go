// Package types contains common types used across the application
package types

import (
	"time"

	"github.com/okian/materiality/internal/domain/model"
)

// Chart is the generated materiality chart of one analysis revision.
type Chart struct {
	AnalysisID   string             `json:"analysisId"`
	Organization string             `json:"organization,omitempty"`
	Revision     int                `json:"revision"`
	GeneratedAt  time.Time          `json:"generatedAt"`
	Points       []model.ChartPoint `json:"points"`
	TopTier      []model.ChartPoint `json:"topTier"`
}

// ChartSummary is the listing shape of a stored chart.
type ChartSummary struct {
	AnalysisID   string    `json:"analysisId"`
	Organization string    `json:"organization,omitempty"`
	Revision     int       `json:"revision"`
	GeneratedAt  time.Time `json:"generatedAt"`
	PointCount   int       `json:"pointCount"`
}

// Summary returns the listing shape of c.
func (c Chart) Summary() ChartSummary {
	return ChartSummary{
		AnalysisID:   c.AnalysisID,
		Organization: c.Organization,
		Revision:     c.Revision,
		GeneratedAt:  c.GeneratedAt,
		PointCount:   len(c.Points),
	}
}
