package repository

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/okian/materiality/internal/domain/types"
	"github.com/okian/materiality/pkg/metrics"
)

const defaultMaxCharts = 1_000

// MemoryStore is a bounded in-memory Store.
//
// Charts are kept in a map keyed by analysis ID plus a recency list used for
// eviction and listing. Every write publishes an immutable summary snapshot,
// so List never takes the write lock.
type MemoryStore struct {
	mu        sync.RWMutex
	byID      map[string]*list.Element
	recency   *list.List // front = most recently stored
	maxCharts int

	snapshot atomic.Pointer[[]types.ChartSummary]
}

// NewMemoryStore constructs a chart store with configuration options.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byID:      make(map[string]*list.Element),
		recency:   list.New(),
		maxCharts: defaultMaxCharts,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.publishSnapshot()
	metrics.UpdateTotalCharts(0)
	return s
}

// MaxCharts returns the store bound.
func (s *MemoryStore) MaxCharts() int {
	return s.maxCharts
}

// Put implements Store.Put.
func (s *MemoryStore) Put(ctx context.Context, c types.Chart) (bool, error) { //nolint:gocritic // hugeParam: charts are values
	const op = "repository.Put"
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if c.AnalysisID == "" {
		return false, fmt.Errorf("%s: %w", op, ErrMissingID)
	}

	s.mu.Lock()
	evicted := 0
	if el, ok := s.byID[c.AnalysisID]; ok {
		cur, _ := el.Value.(types.Chart)
		if c.Revision < cur.Revision {
			s.mu.Unlock()
			return false, nil
		}
		el.Value = c
		s.recency.MoveToFront(el)
	} else {
		s.byID[c.AnalysisID] = s.recency.PushFront(c)
		for s.recency.Len() > s.maxCharts {
			oldest := s.recency.Back()
			old, _ := s.recency.Remove(oldest).(types.Chart)
			delete(s.byID, old.AnalysisID)
			evicted++
		}
	}
	s.publishSnapshot()
	count := len(s.byID)
	s.mu.Unlock()

	metrics.RecordChartStored()
	for range evicted {
		metrics.RecordChartEvicted()
	}
	metrics.UpdateTotalCharts(count)
	return true, nil
}

// Get implements Store.Get.
func (s *MemoryStore) Get(_ context.Context, analysisID string) (types.Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	el, ok := s.byID[analysisID]
	if !ok {
		return types.Chart{}, fmt.Errorf("%s: %w", analysisID, ErrNotFound)
	}
	c, _ := el.Value.(types.Chart)
	return c, nil
}

// List implements Store.List.
func (s *MemoryStore) List(_ context.Context, limit int) ([]types.ChartSummary, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	snap := *s.snapshot.Load()
	if limit > len(snap) {
		limit = len(snap)
	}
	out := make([]types.ChartSummary, limit)
	copy(out, snap[:limit])
	return out, nil
}

// Count implements Store.Count.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// publishSnapshot rebuilds the summary listing. Caller holds the write lock
// or owns s exclusively.
func (s *MemoryStore) publishSnapshot() {
	snap := make([]types.ChartSummary, 0, s.recency.Len())
	for el := s.recency.Front(); el != nil; el = el.Next() {
		c, _ := el.Value.(types.Chart)
		snap = append(snap, c.Summary())
	}
	s.snapshot.Store(&snap)
}
