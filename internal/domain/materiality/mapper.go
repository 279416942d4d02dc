// Package materiality turns materiality analysis entries into ranked,
// declustered chart points.
//
// The pipeline is Map -> Decluster -> Rank -> Resolve. Every stage returns a
// fresh slice and leaves its input untouched.
package materiality

import (
	"strings"

	"github.com/okian/materiality/internal/domain/model"
)

// Financial materiality tiers.
const (
	TierBaja  = "baja"
	TierMedia = "media"
	TierAlta  = "alta"
)

// tierX is the x band of each tier.
var tierX = map[string]float64{ //nolint:gochecknoglobals // fixed lookup table
	TierBaja:  1,
	TierMedia: 3,
	TierAlta:  5,
}

// NormalizeTier returns the canonical tier name of label, or "" when the
// label is not a known tier.
func NormalizeTier(label string) string {
	t := strings.ToLower(strings.TrimSpace(label))
	if _, ok := tierX[t]; ok {
		return t
	}
	return ""
}

// TierX returns the x band for a tier label.
func TierX(label string) (float64, bool) {
	t := NormalizeTier(label)
	if t == "" {
		return 0, false
	}
	return tierX[t], true
}

// Map expands every input into one point per topic. Inputs without a topic
// are skipped.
func Map(inputs []model.MaterialityInput) []model.PlottedPoint {
	points := make([]model.PlottedPoint, 0, len(inputs))
	for i := range inputs {
		points = appendMapped(points, &inputs[i])
	}
	return points
}

func appendMapped(points []model.PlottedPoint, in *model.MaterialityInput) []model.PlottedPoint {
	topics := topicsOf(in)
	if len(topics) == 0 {
		return points
	}

	x, y := coordinates(in)
	for _, topic := range topics {
		points = append(points, model.PlottedPoint{
			X:         x,
			Y:         y,
			OriginalX: x,
			OriginalY: y,
			Topic:     topic,
			Tier:      NormalizeTier(in.FinancialMateriality),
		})
	}
	return points
}

// topicsOf prefers the topics list and falls back to the single topic.
func topicsOf(in *model.MaterialityInput) []string {
	topics := make([]string, 0, len(in.Topics))
	for _, t := range in.Topics {
		if strings.TrimSpace(t) != "" {
			topics = append(topics, t)
		}
	}
	if len(topics) > 0 {
		return topics
	}
	if strings.TrimSpace(in.Topic) != "" {
		return []string{in.Topic}
	}
	return nil
}

func coordinates(in *model.MaterialityInput) (x, y float64) {
	if tx, ok := TierX(in.FinancialMateriality); ok {
		x = tx
	} else if in.X != nil {
		x = *in.X
	}

	switch {
	case in.ESGMateriality != nil:
		y = *in.ESGMateriality
	case in.Y != nil:
		y = *in.Y
	}
	return x, y
}
