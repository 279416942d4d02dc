// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"
	"fmt"
	"runtime"

	"github.com/okian/materiality/internal/domain/materiality"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory submission queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of chart workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the number of submission keys remembered.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxCharts bounds the chart store.
	MaxCharts int `koanf:"max_charts"`

	// MaxPlotInputs caps the body of POST /plot.
	MaxPlotInputs int `koanf:"max_plot_inputs"`

	// MaxChartListLimit caps GET /charts?limit.
	MaxChartListLimit int `koanf:"max_chart_list_limit"`

	// SVGWidth and SVGHeight size rendered charts in pixels.
	SVGWidth  int `koanf:"svg_width"`
	SVGHeight int `koanf:"svg_height"`

	// Palette colors.
	TopTierColor      string            `koanf:"top_tier_color"`
	RestColor         string            `koanf:"rest_color"`
	TierColors        map[string]string `koanf:"tier_colors"`
	UnclassifiedColor string            `koanf:"unclassified_color"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	p := materiality.DefaultPalette()
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		QueueSize:         10_000,
		WorkerCount:       runtime.NumCPU(),
		DedupeSize:        50_000,
		MaxCharts:         1_000,
		MaxPlotInputs:     5_000,
		MaxChartListLimit: 100,
		SVGWidth:          720,
		SVGHeight:         480,
		TopTierColor:      p.TopTier,
		RestColor:         p.Rest,
		TierColors:        p.Tiers,
		UnclassifiedColor: p.Unclassified,
	}
}

// Palette returns the configured colors over the built-in defaults.
func (c *Config) Palette() materiality.Palette {
	return materiality.Palette{
		TopTier:      c.TopTierColor,
		Rest:         c.RestColor,
		Tiers:        c.TierColors,
		Unclassified: c.UnclassifiedColor,
	}.Merge(materiality.DefaultPalette())
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.SVGWidth <= 0 || c.SVGHeight <= 0:
		return fmt.Errorf("%w: svg dimensions must be positive, got %dx%d", ErrInvalidConfig, c.SVGWidth, c.SVGHeight)
	}
	return nil
}
