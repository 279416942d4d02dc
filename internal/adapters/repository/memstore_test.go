package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/materiality/internal/domain/model"
	"github.com/okian/materiality/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func chart(id string, revision int) types.Chart {
	return types.Chart{
		AnalysisID:  id,
		Revision:    revision,
		GeneratedAt: time.Unix(int64(revision), 0).UTC(),
		Points: []model.ChartPoint{
			{PlottedPoint: model.PlottedPoint{Topic: "Water", Rank: 1}},
		},
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty chart store", t, func() {
		store := NewMemoryStore(WithMaxCharts(3))

		Convey("Then it holds nothing", func() {
			So(store.Count(ctx), ShouldEqual, 0)
			list, err := store.List(ctx, 10)
			So(err, ShouldBeNil)
			So(list, ShouldBeEmpty)
		})

		Convey("When an unknown chart is requested", func() {
			_, err := store.Get(ctx, "missing")

			Convey("Then ErrNotFound is returned", func() {
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When a chart without an id is stored", func() {
			ok, err := store.Put(ctx, chart("", 1))

			Convey("Then it is rejected", func() {
				So(ok, ShouldBeFalse)
				So(errors.Is(err, ErrMissingID), ShouldBeTrue)
			})
		})

		Convey("When a chart is stored", func() {
			ok, err := store.Put(ctx, chart("a", 1))
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			Convey("Then it can be read back", func() {
				got, err := store.Get(ctx, "a")
				So(err, ShouldBeNil)
				So(got.Revision, ShouldEqual, 1)
				So(got.Points, ShouldHaveLength, 1)
			})

			Convey("And a newer revision replaces it", func() {
				ok, err := store.Put(ctx, chart("a", 2))
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				got, _ := store.Get(ctx, "a")
				So(got.Revision, ShouldEqual, 2)
				So(store.Count(ctx), ShouldEqual, 1)
			})

			Convey("And an equal revision replaces it", func() {
				c := chart("a", 1)
				c.Organization = "Acme"
				ok, _ := store.Put(ctx, c)
				So(ok, ShouldBeTrue)
				got, _ := store.Get(ctx, "a")
				So(got.Organization, ShouldEqual, "Acme")
			})

			Convey("And an older revision is ignored", func() {
				_, _ = store.Put(ctx, chart("a", 5))
				ok, err := store.Put(ctx, chart("a", 4))
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
				got, _ := store.Get(ctx, "a")
				So(got.Revision, ShouldEqual, 5)
			})
		})

		Convey("When more charts than the bound are stored", func() {
			for i := range 4 {
				_, err := store.Put(ctx, chart(fmt.Sprintf("c%d", i), 1))
				So(err, ShouldBeNil)
			}

			Convey("Then the oldest is evicted", func() {
				So(store.Count(ctx), ShouldEqual, 3)
				_, err := store.Get(ctx, "c0")
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
				_, err = store.Get(ctx, "c3")
				So(err, ShouldBeNil)
			})

			Convey("And listing is newest first", func() {
				list, err := store.List(ctx, 2)
				So(err, ShouldBeNil)
				So(list, ShouldHaveLength, 2)
				So(list[0].AnalysisID, ShouldEqual, "c3")
				So(list[1].AnalysisID, ShouldEqual, "c2")
				So(list[0].PointCount, ShouldEqual, 1)
			})
		})

		Convey("When a stored chart is updated", func() {
			_, _ = store.Put(ctx, chart("x", 1))
			_, _ = store.Put(ctx, chart("y", 1))
			_, _ = store.Put(ctx, chart("x", 2))
			_, _ = store.Put(ctx, chart("z", 1))
			_, _ = store.Put(ctx, chart("w", 1))

			Convey("Then it counts as recently stored for eviction", func() {
				_, err := store.Get(ctx, "y")
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
				_, err = store.Get(ctx, "x")
				So(err, ShouldBeNil)
			})
		})

		Convey("When listing with a non-positive limit", func() {
			_, err := store.List(ctx, 0)

			Convey("Then ErrInvalidLimit is returned", func() {
				So(errors.Is(err, ErrInvalidLimit), ShouldBeTrue)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			ok, err := store.Put(cctx, chart("a", 1))

			Convey("Then nothing is stored", func() {
				So(ok, ShouldBeFalse)
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(store.Count(ctx), ShouldEqual, 0)
			})
		})
	})
}

func TestMemoryStoreConcurrency(t *testing.T) {
	Convey("Given concurrent writers and readers", t, func() {
		ctx := context.Background()
		store := NewMemoryStore(WithMaxCharts(50))

		var wg sync.WaitGroup
		for w := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range 100 {
					_, _ = store.Put(ctx, chart(fmt.Sprintf("w%d-%d", w, i%20), i))
					_, _ = store.List(ctx, 10)
				}
			}()
		}
		wg.Wait()

		So(store.Count(ctx), ShouldEqual, 50)
		list, err := store.List(ctx, 100)
		So(err, ShouldBeNil)
		So(list, ShouldHaveLength, 50)
	})
}
