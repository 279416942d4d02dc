package analysis_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/okian/materiality/internal/domain/analysis"
	"github.com/okian/materiality/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const sampleDoc = `{
  "id": "org-42",
  "organization": "Acme",
  "revision": 3,
  "sections": [
    {"sectionType": "context", "title": "Context", "content": {"text": "..." }},
    {"sectionType": "materiality", "materiality": [
      {"topic": "Water", "financialMateriality": "alta", "esgMateriality": 8}
    ]},
    {"sectionType": "gri", "content": ["302-1"]},
    {"sectionType": "materiality", "materiality": [
      {"topics": ["Energy", "Waste"], "financialMateriality": "baja", "esgMateriality": 3}
    ]}
  ]
}`

func TestDecode(t *testing.T) {
	Convey("Given an analysis document", t, func() {
		Convey("When every section type is known", func() {
			a, err := analysis.Decode(strings.NewReader(sampleDoc))

			Convey("Then it decodes", func() {
				So(err, ShouldBeNil)
				So(a.ID, ShouldEqual, "org-42")
				So(a.Organization, ShouldEqual, "Acme")
				So(a.Key(), ShouldEqual, "org-42@3")
				So(a.Sections, ShouldHaveLength, 4)
			})

			Convey("And materiality inputs are concatenated in order", func() {
				inputs := a.MaterialityInputs()
				So(inputs, ShouldHaveLength, 2)
				So(inputs[0].Topic, ShouldEqual, "Water")
				So(inputs[1].Topics, ShouldResemble, []string{"Energy", "Waste"})
			})

			Convey("And the submission carries them", func() {
				sub := a.Submission()
				So(sub.Key, ShouldEqual, "org-42@3")
				So(sub.Inputs, ShouldHaveLength, 2)
				So(sub.Revision, ShouldEqual, 3)
			})
		})

		Convey("When a section type is unknown", func() {
			_, err := analysis.Decode(strings.NewReader(`{"id":"x","sections":[{"sectionType":"Prompt 7"}]}`))

			Convey("Then decoding is rejected", func() {
				So(errors.Is(err, analysis.ErrUnknownSection), ShouldBeTrue)
			})
		})

		Convey("When the id is missing", func() {
			_, err := analysis.Decode(strings.NewReader(`{"sections":[]}`))

			Convey("Then decoding is rejected", func() {
				So(errors.Is(err, analysis.ErrMissingID), ShouldBeTrue)
			})
		})

		Convey("When the id cannot be addressed as a chart path", func() {
			for _, id := range []string{"org/2024", "report.svg", "/lead"} {
				_, err := analysis.Decode(strings.NewReader(`{"id":"` + id + `","sections":[]}`))
				So(errors.Is(err, analysis.ErrInvalidID), ShouldBeTrue)
			}

			Convey("Then ids with other punctuation are still accepted", func() {
				a, err := analysis.Decode(strings.NewReader(`{"id":"acme 2024.v2?draft","sections":[]}`))
				So(err, ShouldBeNil)
				So(a.ID, ShouldEqual, "acme 2024.v2?draft")
			})
		})

		Convey("When the JSON is malformed", func() {
			_, err := analysis.Decode(strings.NewReader(`{"id":`))

			Convey("Then a decode error is returned", func() {
				So(errors.Is(err, analysis.ErrDecode), ShouldBeTrue)
			})
		})
	})
}

func TestWithSection(t *testing.T) {
	Convey("Given a decoded analysis", t, func() {
		a, err := analysis.Decode(strings.NewReader(sampleDoc))
		So(err, ShouldBeNil)

		Convey("When replacing the materiality section", func() {
			updated := a.WithSection(analysis.Section{
				Type:        analysis.SectionMateriality,
				Materiality: []model.MaterialityInput{{Topic: "Biodiversity"}},
			})

			Convey("Then the copy changes and the original does not", func() {
				So(updated.Sections[1].Materiality[0].Topic, ShouldEqual, "Biodiversity")
				So(a.Sections[1].Materiality[0].Topic, ShouldEqual, "Water")
				So(updated.MaterialityInputs(), ShouldHaveLength, 2)
			})
		})

		Convey("When adding a section that does not exist yet", func() {
			updated := a.WithSection(analysis.Section{Type: analysis.SectionSummary, Title: "Summary"})

			Convey("Then it is appended to the copy only", func() {
				So(updated.Sections, ShouldHaveLength, 5)
				So(a.Sections, ShouldHaveLength, 4)
				s, ok := updated.Section(analysis.SectionSummary)
				So(ok, ShouldBeTrue)
				So(s.Title, ShouldEqual, "Summary")
			})
		})
	})
}
