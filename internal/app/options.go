package service

import (
	"time"

	"github.com/okian/materiality/internal/domain/materiality"
	"github.com/okian/materiality/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of chart workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the submission queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the number of submission keys remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithMaxCharts bounds the chart store.
func WithMaxCharts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxCharts = n
		}
	}
}

// WithMaxPlotInputs bounds the number of inputs accepted by Plot.
func WithMaxPlotInputs(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPlotInputs = n
		}
	}
}

// WithMaxListLimit caps the limit accepted by Charts.
func WithMaxListLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxListLimit = n
		}
	}
}

// WithPalette sets the colors used for chart points.
func WithPalette(p materiality.Palette) Option {
	return func(s *Service) {
		s.palette = p
	}
}

// WithClock overrides the time source used to stamp charts.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
