package materiality

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithPalette overrides colors of the default palette. Empty fields keep
// their defaults.
func WithPalette(p Palette) Option {
	return func(pl *Pipeline) {
		pl.palette = p.Merge(pl.palette)
	}
}
