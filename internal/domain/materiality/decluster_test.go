package materiality_test

import (
	"math"
	"testing"

	"github.com/okian/materiality/internal/domain/materiality"
	"github.com/okian/materiality/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDecluster(t *testing.T) {
	Convey("Given points that share a coordinate", t, func() {
		points := materiality.Map([]model.MaterialityInput{
			{Topic: "first", FinancialMateriality: "alta", ESGMateriality: model.Float(10)},
			{Topic: "second", FinancialMateriality: "alta", ESGMateriality: model.Float(10)},
			{Topic: "third", FinancialMateriality: "alta", ESGMateriality: model.Float(10)},
			{Topic: "alone", FinancialMateriality: "baja", ESGMateriality: model.Float(2)},
		})
		before := make([]model.PlottedPoint, len(points))
		copy(before, points)

		spread := materiality.Decluster(points)

		Convey("Then the first occurrence and unique points stay put", func() {
			So(spread[0].X, ShouldEqual, 5)
			So(spread[0].Y, ShouldEqual, 10)
			So(spread[3].X, ShouldEqual, 1)
			So(spread[3].Y, ShouldEqual, 2)
			So(materiality.Displaced(spread[0]), ShouldBeFalse)
		})

		Convey("Then repeats move at least the base radius away", func() {
			d := math.Hypot(spread[1].X-spread[0].X, spread[1].Y-spread[0].Y)
			So(d, ShouldBeGreaterThanOrEqualTo, 0.6)
			So(spread[2].X == spread[1].X && spread[2].Y == spread[1].Y, ShouldBeFalse)
		})

		Convey("Then the displacement follows the spiral", func() {
			angle := 4 * math.Pi / 25
			radius := 0.6 + 0.5
			So(spread[1].X, ShouldAlmostEqual, 5+math.Cos(angle)*radius, 1e-9)
			So(spread[1].Y, ShouldAlmostEqual, 10+math.Sin(angle)*radius*0.9, 1e-9)

			angle2 := 2 * angle
			radius2 := 0.6 + 2*0.5
			So(spread[2].X, ShouldAlmostEqual, 5+math.Cos(angle2)*radius2, 1e-9)
			So(spread[2].Y, ShouldAlmostEqual, 10+math.Sin(angle2)*radius2*0.9, 1e-9)
		})

		Convey("Then originals are preserved", func() {
			for i := range spread {
				So(spread[i].OriginalX, ShouldEqual, before[i].X)
				So(spread[i].OriginalY, ShouldEqual, before[i].Y)
				So(spread[i].Topic, ShouldEqual, before[i].Topic)
			}
		})

		Convey("Then the input slice is not mutated", func() {
			So(points, ShouldResemble, before)
		})
	})

	Convey("Given the offset for the first occurrence", t, func() {
		dx, dy := materiality.Offset(0)

		Convey("Then it is the zero vector", func() {
			So(dx, ShouldEqual, 0)
			So(dy, ShouldEqual, 0)
		})
	})
}
