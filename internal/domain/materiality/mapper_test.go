package materiality_test

import (
	"testing"

	"github.com/okian/materiality/internal/domain/materiality"
	"github.com/okian/materiality/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMap(t *testing.T) {
	Convey("Given materiality inputs", t, func() {
		Convey("When an input carries several topics", func() {
			inputs := []model.MaterialityInput{{
				Topics:               []string{"A", "B", "C"},
				FinancialMateriality: "media",
				ESGMateriality:       model.Float(7),
			}}
			points := materiality.Map(inputs)

			Convey("Then one point per topic shares the same coordinates", func() {
				So(points, ShouldHaveLength, 3)
				for i, topic := range []string{"A", "B", "C"} {
					So(points[i].Topic, ShouldEqual, topic)
					So(points[i].OriginalX, ShouldEqual, 3)
					So(points[i].OriginalY, ShouldEqual, 7)
					So(points[i].Tier, ShouldEqual, "media")
				}
			})
		})

		Convey("When tiers are mapped", func() {
			inputs := []model.MaterialityInput{
				{Topic: "low", FinancialMateriality: "baja"},
				{Topic: "mid", FinancialMateriality: "media"},
				{Topic: "high", FinancialMateriality: "alta"},
				{Topic: "shouty", FinancialMateriality: " ALTA "},
			}
			points := materiality.Map(inputs)

			Convey("Then each tier lands on its fixed x band", func() {
				So(points[0].X, ShouldEqual, 1)
				So(points[1].X, ShouldEqual, 3)
				So(points[2].X, ShouldEqual, 5)
				So(points[3].X, ShouldEqual, 5)
				So(points[3].Tier, ShouldEqual, materiality.TierAlta)
			})
		})

		Convey("When the tier is unknown or missing", func() {
			inputs := []model.MaterialityInput{
				{Topic: "raw", FinancialMateriality: "extrema", X: model.Float(2.5)},
				{Topic: "none"},
			}
			points := materiality.Map(inputs)

			Convey("Then x falls back to the raw value, then to zero", func() {
				So(points[0].X, ShouldEqual, 2.5)
				So(points[1].X, ShouldEqual, 0)
			})

			Convey("And the point carries no tier", func() {
				So(points[0].Tier, ShouldBeEmpty)
				So(points[1].Tier, ShouldBeEmpty)
			})
		})

		Convey("When the score is missing", func() {
			inputs := []model.MaterialityInput{
				{Topic: "raw-y", Y: model.Float(4)},
				{Topic: "both", ESGMateriality: model.Float(6), Y: model.Float(4)},
				{Topic: "neither"},
			}
			points := materiality.Map(inputs)

			Convey("Then y prefers esgMateriality, then raw y, then zero", func() {
				So(points[0].Y, ShouldEqual, 4)
				So(points[1].Y, ShouldEqual, 6)
				So(points[2].Y, ShouldEqual, 0)
			})
		})

		Convey("When inputs have no topic", func() {
			inputs := []model.MaterialityInput{
				{},
				{Topics: []string{}, ESGMateriality: model.Float(9)},
				{Topics: []string{" ", ""}},
				{Topic: "X", ESGMateriality: model.Float(5)},
			}
			points := materiality.Map(inputs)

			Convey("Then they are dropped silently", func() {
				So(points, ShouldHaveLength, 1)
				So(points[0].Topic, ShouldEqual, "X")
			})
		})

		Convey("When mapping the same inputs twice", func() {
			inputs := []model.MaterialityInput{
				{Topics: []string{"A", "B"}, FinancialMateriality: "alta", ESGMateriality: model.Float(3)},
				{Topic: "C", X: model.Float(1), Y: model.Float(2)},
			}

			Convey("Then the results are identical", func() {
				So(materiality.Map(inputs), ShouldResemble, materiality.Map(inputs))
			})
		})

		Convey("When the input is empty", func() {
			Convey("Then the output is empty, not nil-panicking", func() {
				So(materiality.Map(nil), ShouldBeEmpty)
			})
		})
	})
}
