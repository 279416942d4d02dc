// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	submissionqueue "github.com/okian/materiality/internal/adapters/mq/queue"
	workerpool "github.com/okian/materiality/internal/adapters/mq/worker"
	repository "github.com/okian/materiality/internal/adapters/repository"
	"github.com/okian/materiality/internal/domain/dedupe"
	"github.com/okian/materiality/internal/domain/materiality"
	"github.com/okian/materiality/internal/domain/model"
	"github.com/okian/materiality/internal/domain/types"
	"github.com/okian/materiality/pkg/logger"
	"github.com/okian/materiality/pkg/metrics"
)

// Default service configuration.
const (
	defaultQueueSize     = 10_000
	defaultDedupeSize    = 50_000
	defaultMaxCharts     = 1_000
	defaultMaxPlotInputs = 5_000
	defaultMaxListLimit  = 100
)

// Service implements the API dependencies for the chart service.
type Service struct {
	mu sync.RWMutex

	// Core components
	pipeline *materiality.Pipeline
	charts   *repository.MemoryStore
	deduper  dedupe.Deduper
	queue    *submissionqueue.InMemoryQueue
	pool     *workerpool.Pool

	// Configuration
	workerCount   int
	queueSize     int
	dedupeSize    int
	maxCharts     int
	maxPlotInputs int
	maxListLimit  int
	palette       materiality.Palette
	now           func() time.Time

	// State
	started bool

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:   runtime.NumCPU(),
		queueSize:     defaultQueueSize,
		dedupeSize:    defaultDedupeSize,
		maxCharts:     defaultMaxCharts,
		maxPlotInputs: defaultMaxPlotInputs,
		maxListLimit:  defaultMaxListLimit,
		palette:       materiality.DefaultPalette(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.pipeline = materiality.NewPipeline(materiality.WithPalette(s.palette))
	return s
}

// Start initializes and starts the service components. Starting a started
// service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting chart service...")

	s.charts = repository.NewMemoryStore(repository.WithMaxCharts(s.maxCharts))
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = submissionqueue.NewInMemoryQueue(submissionqueue.WithCapacity(s.queueSize))
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.pipeline, s.charts, workerpool.WithClock(s.now))
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "chart service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("maxCharts", s.maxCharts),
	)
	return nil
}

// Stop closes the queue, lets the workers drain it, and releases them.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping chart service...")
	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool shutdown incomplete", logger.Error(err))
	}

	s.started = false
	s.logger.Info(ctx, "chart service stopped")
}

// Palette returns the colors used for chart points: the configured palette
// merged over the defaults.
func (s *Service) Palette() materiality.Palette {
	return s.pipeline.Palette()
}

// Plot runs the pipeline synchronously.
func (s *Service) Plot(_ context.Context, inputs []model.MaterialityInput) (materiality.Result, error) {
	const op = "service.Plot"
	if len(inputs) > s.maxPlotInputs {
		return materiality.Result{}, fmt.Errorf("%s: %w: %d > %d", op, ErrTooManyInputs, len(inputs), s.maxPlotInputs)
	}

	start := time.Now()
	res := s.pipeline.Plot(inputs)
	metrics.RecordPlot(len(res.Points), res.Skipped, res.Displaced, float64(time.Since(start).Microseconds())/1000)
	return res, nil
}

// SeenAndRecord atomically checks if a submission key was seen and records
// it if not.
func (s *Service) SeenAndRecord(ctx context.Context, key string) bool {
	d, err := s.dedupe()
	if err != nil {
		return false
	}
	seen := d.SeenAndRecord(ctx, key)
	if seen {
		metrics.RecordSubmission("duplicate")
	}
	return seen
}

// Unrecord forgets a submission key so it can be retried.
func (s *Service) Unrecord(ctx context.Context, key string) {
	if d, err := s.dedupe(); err == nil {
		d.Unrecord(ctx, key)
	}
}

// Size returns the current number of remembered submission keys.
func (s *Service) Size() int64 {
	d, err := s.dedupe()
	if err != nil {
		return 0
	}
	return d.Size()
}

// Enqueue submits an analysis for asynchronous charting. Returns false on
// backpressure or when the service is not running.
func (s *Service) Enqueue(ctx context.Context, sub model.Submission) bool { //nolint:gocritic // hugeParam: queued by value
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		metrics.RecordSubmission("rejected")
		return false
	}
	if sub.ReceivedAt.IsZero() {
		sub.ReceivedAt = s.now().UTC()
	}

	s.logger.Debug(ctx, "enqueueing submission",
		logger.String("key", sub.Key),
		logger.Int("inputs", len(sub.Inputs)),
	)
	if !s.queue.Enqueue(ctx, sub) {
		metrics.RecordSubmission("rejected")
		return false
	}
	metrics.RecordSubmission("accepted")
	return true
}

// Chart returns the stored chart of an analysis.
func (s *Service) Chart(ctx context.Context, analysisID string) (types.Chart, error) {
	store, err := s.store()
	if err != nil {
		return types.Chart{}, err
	}
	c, err := store.Get(ctx, analysisID)
	if err != nil {
		return types.Chart{}, fmt.Errorf("service.Chart: %w", err)
	}
	return c, nil
}

// Charts lists the most recently stored charts. limit is capped at the
// configured maximum.
func (s *Service) Charts(ctx context.Context, limit int) ([]types.ChartSummary, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	if limit > s.maxListLimit {
		limit = s.maxListLimit
	}
	list, err := store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("service.Charts: %w", err)
	}
	return list, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":       s.started,
		"workerCount":   s.workerCount,
		"queueSize":     s.queueSize,
		"dedupeSize":    s.dedupeSize,
		"maxCharts":     s.maxCharts,
		"maxPlotInputs": s.maxPlotInputs,
		"palette":       s.pipeline.Palette(),
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		totalCharts := s.charts.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalCharts"] = totalCharts
		stats["processed"] = s.pool.Processed()
		stats["dedupeEntries"] = s.deduper.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTotalCharts(totalCharts)
		metrics.UpdateWorkerCount(s.workerCount)
	}
	return stats
}

func (s *Service) dedupe() (dedupe.Deduper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.deduper, nil
}

func (s *Service) store() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.charts, nil
}
