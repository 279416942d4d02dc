// Package worker turns queued analysis submissions into stored charts.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/materiality/internal/domain/materiality"
	"github.com/okian/materiality/internal/domain/model"
	"github.com/okian/materiality/internal/domain/types"
	"github.com/okian/materiality/pkg/logger"
	"github.com/okian/materiality/pkg/metrics"
)

const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Submission is what workers read off the queue.
type Submission = model.Submission

// Queue defines how workers receive submissions.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Submission
}

// ChartWriter persists generated charts.
type ChartWriter interface {
	Put(ctx context.Context, c types.Chart) (bool, error) //nolint:gocritic // hugeParam: charts are values
}

// Worker processes submissions until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown stops the worker and waits for the loop to exit.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue   Queue
	plotter materiality.Plotter
	charts  ChartWriter
	name    string
	now     func() time.Time

	processed atomic.Int64

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, plotter materiality.Plotter, charts ChartWriter, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		plotter:  plotter,
		charts:   charts,
		name:     "worker",
		now:      time.Now,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Processed returns the number of submissions this worker has charted.
func (w *InMemoryWorker) Processed() int64 {
	return w.processed.Load()
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	items := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case sub, ok := <-items:
			if !ok {
				return
			}
			metrics.RecordQueueDequeue()
			if err := w.process(ctx, sub); err != nil {
				w.logger.Error(ctx, "error processing submission", logger.Error(err))
			}
		}
	}
}

// Shutdown stops the worker and waits for it to exit.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process charts a single submission.
func (w *InMemoryWorker) process(ctx context.Context, sub Submission) error { //nolint:gocritic // hugeParam: passed by value for channel semantics
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	res := w.plotter.Plot(sub.Inputs)
	metrics.RecordPlot(len(res.Points), res.Skipped, res.Displaced, float64(time.Since(start).Microseconds())/1000)

	c := types.Chart{
		AnalysisID:   sub.AnalysisID,
		Organization: sub.Organization,
		Revision:     sub.Revision,
		GeneratedAt:  w.now().UTC(),
		Points:       res.Points,
		TopTier:      res.TopTier(),
	}
	stored, err := w.charts.Put(ctx, c)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "store_error")
		metrics.RecordErrorByType("store_error", "high")
		return fmt.Errorf("store chart %s: %w", sub.Key, err)
	}
	w.processed.Add(1)

	if !stored {
		w.logger.Debug(ctx, "stale revision ignored",
			logger.String("analysisId", sub.AnalysisID),
			logger.Int("revision", sub.Revision),
		)
		return nil
	}
	w.logger.Debug(ctx, "chart stored",
		logger.String("analysisId", sub.AnalysisID),
		logger.Int("revision", sub.Revision),
		logger.Int("points", len(c.Points)),
	)
	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	startOnce sync.Once
	stopOnce  sync.Once

	logger logger.Logger
}

// NewPool creates a new worker pool. A non-positive workerCount selects a
// multiple of runtime.NumCPU().
func NewPool(workerCount int, queue Queue, plotter materiality.Plotter, charts ChartWriter, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   queue,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range workerCount {
		wopts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		p.workers[i] = NewInMemoryWorker(queue, plotter, charts, wopts...)
	}

	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Processed returns the number of submissions charted by all workers.
func (p *Pool) Processed() int64 {
	var n int64
	for _, w := range p.workers {
		n += w.Processed()
	}
	return n
}

// Start starts all workers in the pool. Later calls are no-ops.
func (p *Pool) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		for _, w := range p.workers {
			go w.Run(ctx)
		}
	})
}

// Stop signals every worker and waits a bounded time for each to exit.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), workerShutdownTimeout)
		defer cancel()
		for i, w := range p.workers {
			if err := w.Shutdown(ctx); err != nil {
				p.logger.Warn(ctx, "worker stop timed out", logger.Int("worker_id", i))
			}
		}
	})
}

// Shutdown closes the queue, lets workers drain it, and waits for them to
// exit or ctx to expire.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			p.Stop()
			return fmt.Errorf("pool shutdown: %w", shutdownCtx.Err())
		}
	}
	return nil
}
