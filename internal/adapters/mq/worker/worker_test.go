package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	queue "github.com/okian/materiality/internal/adapters/mq/queue"
	worker "github.com/okian/materiality/internal/adapters/mq/worker"
	repository "github.com/okian/materiality/internal/adapters/repository"
	"github.com/okian/materiality/internal/domain/materiality"
	model "github.com/okian/materiality/internal/domain/model"
	"github.com/okian/materiality/internal/domain/types"
	"github.com/smartystreets/goconvey/convey"
)

type failingWriter struct {
	mu    sync.Mutex
	calls int
}

func (f *failingWriter) Put(context.Context, types.Chart) (bool, error) { //nolint:gocritic // test double
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return false, errors.New("disk full")
}

func (f *failingWriter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func submission(id string, revision int, topics ...string) model.Submission {
	inputs := make([]model.MaterialityInput, len(topics))
	for i, t := range topics {
		inputs[i] = model.MaterialityInput{
			Topic:                t,
			FinancialMateriality: "alta",
			ESGMateriality:       model.Float(float64(i + 1)),
		}
	}
	return model.Submission{
		Key:        fmt.Sprintf("%s@%d", id, revision),
		AnalysisID: id,
		Revision:   revision,
		Inputs:     inputs,
	}
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a worker reading from a queue", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(10))
		store := repository.NewMemoryStore()
		fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		w := worker.NewInMemoryWorker(q, materiality.NewPipeline(), store,
			worker.WithName("w1"),
			worker.WithClock(func() time.Time { return fixed }),
		)
		go w.Run(ctx)

		convey.Convey("When a submission is queued", func() {
			convey.So(q.Enqueue(ctx, submission("a1", 1, "Water", "Energy", "Waste")), convey.ShouldBeTrue)

			convey.Convey("Then its chart is stored", func() {
				convey.So(waitFor(func() bool { return store.Count(ctx) == 1 }), convey.ShouldBeTrue)
				c, err := store.Get(ctx, "a1")
				convey.So(err, convey.ShouldBeNil)
				convey.So(c.Points, convey.ShouldHaveLength, 3)
				convey.So(c.TopTier, convey.ShouldHaveLength, 3)
				convey.So(c.TopTier[0].Topic, convey.ShouldEqual, "Waste")
				convey.So(c.GeneratedAt, convey.ShouldEqual, fixed)
				convey.So(waitFor(func() bool { return w.Processed() == 1 }), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the worker is shut down", func() {
			err := w.Shutdown(context.Background())

			convey.Convey("Then it exits cleanly and a second call is harmless", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(w.Shutdown(context.Background()), convey.ShouldBeNil)
			})
		})
	})

	convey.Convey("Given a worker whose store fails", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(10))
		writer := &failingWriter{}
		w := worker.NewInMemoryWorker(q, materiality.NewPipeline(), writer)
		go w.Run(ctx)

		convey.So(q.Enqueue(ctx, submission("b1", 1, "Water")), convey.ShouldBeTrue)

		convey.Convey("Then the submission is not counted as processed", func() {
			convey.So(waitFor(func() bool { return writer.Calls() == 1 }), convey.ShouldBeTrue)
			convey.So(w.Processed(), convey.ShouldEqual, 0)
		})
	})

	convey.Convey("Given a running worker", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		q := queue.NewInMemoryQueue()
		w := worker.NewInMemoryWorker(q, materiality.NewPipeline(), repository.NewMemoryStore())
		stopped := make(chan struct{})
		go func() {
			w.Run(ctx)
			close(stopped)
		}()

		convey.Convey("When its context is cancelled", func() {
			cancel()

			convey.Convey("Then the loop exits", func() {
				select {
				case <-stopped:
				case <-time.After(time.Second):
					convey.So("worker did not stop", convey.ShouldBeEmpty)
				}
			})
		})

		convey.Reset(cancel)
	})
}

func TestPool(t *testing.T) {
	convey.Convey("Given a worker pool", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(100))
		store := repository.NewMemoryStore()

		convey.Convey("When created with a non-positive count", func() {
			p := worker.NewPool(0, q, materiality.NewPipeline(), store)

			convey.Convey("Then it sizes itself from the CPU count", func() {
				convey.So(p.Size(), convey.ShouldBeGreaterThan, 0)
			})
		})

		convey.Convey("When many submissions are processed", func() {
			p := worker.NewPool(4, q, materiality.NewPipeline(), store)
			p.Start(ctx)
			p.Start(ctx)

			for i := range 40 {
				convey.So(q.Enqueue(ctx, submission(fmt.Sprintf("a%d", i), 1, "Water", "Energy")), convey.ShouldBeTrue)
			}

			convey.Convey("Then every chart is stored", func() {
				convey.So(waitFor(func() bool { return store.Count(ctx) == 40 }), convey.ShouldBeTrue)
				convey.So(waitFor(func() bool { return p.Processed() == 40 }), convey.ShouldBeTrue)
			})

			convey.Convey("And shutdown drains and releases every worker", func() {
				convey.So(p.Shutdown(context.Background()), convey.ShouldBeNil)
				convey.So(store.Count(ctx), convey.ShouldEqual, 40)
				convey.So(q.IsClosed(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When stopped", func() {
			p := worker.NewPool(3, q, materiality.NewPipeline(), store)
			p.Start(ctx)
			done := make(chan struct{})
			go func() {
				p.Stop()
				p.Stop()
				close(done)
			}()

			convey.Convey("Then Stop returns promptly", func() {
				select {
				case <-done:
				case <-time.After(2 * time.Second):
					convey.So("pool did not stop", convey.ShouldBeEmpty)
				}
			})
		})
	})
}
