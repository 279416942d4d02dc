package materiality

import (
	"github.com/okian/materiality/internal/domain/model"
)

// Result is the output of one pipeline run.
type Result struct {
	Points []model.ChartPoint

	// Skipped counts inputs dropped for having no topic.
	Skipped int

	// Displaced counts points moved by the declusterer.
	Displaced int
}

// TopTier returns the emphasized points of r in rank order.
func (r Result) TopTier() []model.ChartPoint {
	return TopTier(r.Points)
}

// Plotter computes chart points from materiality inputs.
type Plotter interface {
	Plot(inputs []model.MaterialityInput) Result
}

// Pipeline runs Map, Decluster, Rank and color resolution. It holds no
// mutable state and is safe for concurrent use.
type Pipeline struct {
	palette Palette
}

// NewPipeline creates a pipeline with the default palette.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{palette: DefaultPalette()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Palette returns the palette used for color resolution.
func (p *Pipeline) Palette() Palette {
	return p.palette
}

// Plot runs the full pipeline over inputs.
func (p *Pipeline) Plot(inputs []model.MaterialityInput) Result {
	mapped := Map(inputs)
	spread := Decluster(mapped)
	ranked := Rank(spread)

	res := Result{Points: p.palette.Resolve(ranked)}
	for i := range inputs {
		if len(topicsOf(&inputs[i])) == 0 {
			res.Skipped++
		}
	}
	for _, pt := range spread {
		if Displaced(pt) {
			res.Displaced++
		}
	}
	return res
}
