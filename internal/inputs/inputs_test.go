package inputs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/materiality/internal/domain/analysis"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRead(t *testing.T) {
	Convey("Given a JSON input array", t, func() {
		doc, err := Read(strings.NewReader(`[{"topic":"Water","financialMateriality":"alta","esgMateriality":3}]`))

		Convey("Then the inputs are decoded", func() {
			So(err, ShouldBeNil)
			So(doc.Analysis, ShouldBeNil)
			So(doc.Inputs, ShouldHaveLength, 1)
			So(doc.Inputs[0].Topic, ShouldEqual, "Water")
			So(*doc.Inputs[0].ESGMateriality, ShouldEqual, 3)
			So(doc.Title(), ShouldEqual, "")
		})
	})

	Convey("Given a YAML input array", t, func() {
		src := "- topics: [Energy, Waste]\n  financialMateriality: 4.5\n  esgMateriality: \"high\"\n  y: 2\n"
		doc, err := Read(strings.NewReader(src))

		Convey("Then the lenient numeric rules apply", func() {
			So(err, ShouldBeNil)
			So(doc.Inputs, ShouldHaveLength, 1)
			So(doc.Inputs[0].Topics, ShouldResemble, []string{"Energy", "Waste"})
			So(doc.Inputs[0].ESGMateriality, ShouldBeNil)
			So(*doc.Inputs[0].X, ShouldEqual, 4.5)
			So(*doc.Inputs[0].Y, ShouldEqual, 2)
		})
	})

	Convey("Given a YAML analysis document", t, func() {
		src := `id: a-1
organization: Acme
revision: 3
sections:
  - sectionType: summary
    content: {text: hi}
  - sectionType: materiality
    materiality:
      - {topic: Water, financialMateriality: media, esgMateriality: 1}
  - sectionType: materiality
    materiality:
      - {topic: Energy, financialMateriality: alta, esgMateriality: 2}
`
		doc, err := Read(strings.NewReader(src))

		Convey("Then all materiality sections are concatenated", func() {
			So(err, ShouldBeNil)
			So(doc.Analysis, ShouldNotBeNil)
			So(doc.Analysis.Revision, ShouldEqual, 3)
			So(doc.Inputs, ShouldHaveLength, 2)
			So(doc.Inputs[1].Topic, ShouldEqual, "Energy")
			So(doc.Title(), ShouldEqual, "Acme")
		})
	})

	Convey("Given an analysis with an unknown section", t, func() {
		_, err := Read(strings.NewReader(`{"id":"a","sections":[{"sectionType":"appendix"}]}`))

		Convey("Then the section error is returned", func() {
			So(errors.Is(err, analysis.ErrUnknownSection), ShouldBeTrue)
		})
	})

	Convey("Given unusable documents", t, func() {
		_, err := Read(strings.NewReader(""))
		So(errors.Is(err, ErrEmpty), ShouldBeTrue)

		_, err = Read(strings.NewReader("42"))
		So(errors.Is(err, ErrUnsupported), ShouldBeTrue)

		_, err = Read(strings.NewReader("[unclosed"))
		So(err, ShouldNotBeNil)
	})

	Convey("Given a file on disk", t, func() {
		path := filepath.Join(t.TempDir(), "in.yaml")
		So(os.WriteFile(path, []byte("- topic: Water\n"), 0o600), ShouldBeNil)

		doc, err := ReadFile(path)
		So(err, ShouldBeNil)
		So(doc.Inputs, ShouldHaveLength, 1)

		_, err = ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		So(err, ShouldNotBeNil)
	})
}
