package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/materiality/internal/domain/model"
)

func submission(id string) model.Submission {
	return model.Submission{
		Key:        id + "@1",
		AnalysisID: id,
		Revision:   1,
		Inputs:     []model.MaterialityInput{{Topic: "Water"}},
	}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	if !q.Enqueue(ctx, submission("org-1")) {
		t.Fatal("expected enqueue to succeed")
	}
	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	got := <-q.Dequeue(ctx)
	if got.AnalysisID != "org-1" {
		t.Errorf("expected org-1, got %v", got.AnalysisID)
	}
	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		if !q.Enqueue(ctx, submission(id)) {
			t.Fatalf("expected enqueue of %s to succeed", id)
		}
	}
	if q.Enqueue(ctx, submission("c")) {
		t.Error("expected enqueue to fail when full")
	}
	if q.Capacity() != 2 {
		t.Errorf("expected capacity 2, got %d", q.Capacity())
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(4))
	ctx := context.Background()

	q.Enqueue(ctx, submission("pending"))
	if err := q.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to be closed")
	}
	if q.Enqueue(ctx, submission("late")) {
		t.Error("expected enqueue to fail after close")
	}

	var drained []string
	for s := range q.Dequeue(ctx) {
		drained = append(drained, s.AnalysisID)
	}
	if len(drained) != 1 || drained[0] != "pending" {
		t.Errorf("expected pending submission to drain, got %v", drained)
	}
}

func TestInMemoryQueue_CancelledContext(t *testing.T) {
	q := NewInMemoryQueue()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if q.Enqueue(ctx, submission("x")) {
		t.Error("expected enqueue to fail with cancelled context")
	}
}

func TestInMemoryQueue_ConcurrentEnqueue(t *testing.T) {
	const producers = 8
	const perProducer = 50
	q := NewInMemoryQueue(WithCapacity(producers * perProducer))
	ctx := context.Background()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				if !q.Enqueue(ctx, submission(fmt.Sprintf("p%d-%d", p, i))) {
					t.Errorf("enqueue p%d-%d failed", p, i)
				}
			}
		}(p)
	}
	wg.Wait()

	if l := q.Len(ctx); l != producers*perProducer {
		t.Errorf("expected %d queued, got %d", producers*perProducer, l)
	}
}
