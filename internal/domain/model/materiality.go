// Package model contains domain models passed between layers.
package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// MaterialityInput is one entry of the upstream materiality analysis.
// A single input may carry several topics that share one score pair.
type MaterialityInput struct {
	Topic  string   `json:"topic,omitempty" yaml:"topic,omitempty"`
	Topics []string `json:"topics,omitempty" yaml:"topics,omitempty"`

	// FinancialMateriality is the categorical tier (baja, media, alta).
	FinancialMateriality string `json:"financialMateriality,omitempty" yaml:"financialMateriality,omitempty"`

	// ESGMateriality is the impact score; nil when absent or non-numeric.
	ESGMateriality *float64 `json:"esgMateriality,omitempty" yaml:"esgMateriality,omitempty"`

	// X and Y are raw coordinates used when the tier or score is missing.
	X *float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y *float64 `json:"y,omitempty" yaml:"y,omitempty"`
}

// rawInput mirrors MaterialityInput with the loosely typed fields left raw.
type rawInput struct {
	Topic                json.RawMessage `json:"topic"`
	Topics               json.RawMessage `json:"topics"`
	FinancialMateriality json.RawMessage `json:"financialMateriality"`
	ESGMateriality       json.RawMessage `json:"esgMateriality"`
	X                    json.RawMessage `json:"x"`
	Y                    json.RawMessage `json:"y"`
}

// UnmarshalJSON decodes every field leniently so one malformed entry never
// fails a whole batch. Numeric fields that are not JSON numbers are absent. A
// numeric financialMateriality becomes the raw x when x itself is absent. A
// topic that is not a string is absent; topics keeps only its string elements
// and a bare string counts as a single topic.
func (in *MaterialityInput) UnmarshalJSON(data []byte) error {
	var raw rawInput
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	topic, _ := text(raw.Topic)
	out := MaterialityInput{
		Topic:          topic,
		Topics:         texts(raw.Topics),
		ESGMateriality: number(raw.ESGMateriality),
		X:              number(raw.X),
		Y:              number(raw.Y),
	}

	if tier, ok := text(raw.FinancialMateriality); ok {
		out.FinancialMateriality = tier
	} else if fx := number(raw.FinancialMateriality); fx != nil && out.X == nil {
		out.X = fx
	}

	*in = out
	return nil
}

func number(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	return &f
}

func text(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// texts decodes a string or an array of strings, dropping non-string elements.
func texts(raw json.RawMessage) []string {
	if s, ok := text(raw); ok {
		return []string{s}
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}
	var out []string
	for _, e := range elems {
		if s, ok := text(e); ok {
			out = append(out, s)
		}
	}
	return out
}

// Float returns a pointer to v. Handy for building inputs in code and tests.
func Float(v float64) *float64 { return &v }

// PlottedPoint is one topic projected onto the materiality chart.
// X and Y may be displaced for display; OriginalX and OriginalY never change
// once mapped and are the values used for ranking and tooltips.
type PlottedPoint struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	OriginalX float64 `json:"originalX"`
	OriginalY float64 `json:"originalY"`
	Topic     string  `json:"topic"`
	Tier      string  `json:"tier,omitempty"`
	Rank      int     `json:"rank"`
}

// ChartPoint is a ranked point with its resolved presentation.
type ChartPoint struct {
	PlottedPoint
	Color     string `json:"color"`
	TierColor string `json:"tierColor"`
	TopTier   bool   `json:"topTier"`
}

// Submission is an analysis chart request flowing through the queue.
type Submission struct {
	Key          string // dedupe key, <analysisID>@<revision>
	AnalysisID   string
	Organization string
	Revision     int
	Inputs       []MaterialityInput
	ReceivedAt   time.Time
}
