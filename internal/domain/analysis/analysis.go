// Package analysis models generated ESG analysis documents.
//
// An analysis is a list of sections, each tagged with an explicit
// sectionType. The tag is validated when the document is decoded, so callers
// never have to guess a section's meaning from its title.
package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/okian/materiality/internal/domain/model"
)

// SectionType discriminates analysis sections.
type SectionType string

// Known section types.
const (
	SectionMateriality SectionType = "materiality"
	SectionGRI         SectionType = "gri"
	SectionSASB        SectionType = "sasb"
	SectionContext     SectionType = "context"
	SectionSummary     SectionType = "summary"
)

// Valid reports whether t is a known section type.
func (t SectionType) Valid() bool {
	switch t {
	case SectionMateriality, SectionGRI, SectionSASB, SectionContext, SectionSummary:
		return true
	default:
		return false
	}
}

// Section is one part of an analysis. Materiality is only populated for
// materiality sections; Content carries the free-form body of the others.
type Section struct {
	Type        SectionType              `json:"sectionType"`
	Title       string                   `json:"title,omitempty"`
	Materiality []model.MaterialityInput `json:"materiality,omitempty"`
	Content     json.RawMessage          `json:"content,omitempty"`
}

// Analysis is a generated ESG analysis for one organization.
type Analysis struct {
	ID           string    `json:"id"`
	Organization string    `json:"organization,omitempty"`
	Revision     int       `json:"revision,omitempty"`
	Sections     []Section `json:"sections"`
}

// Decode reads and validates an analysis document.
func Decode(r io.Reader) (Analysis, error) {
	var a Analysis
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return Analysis{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := a.Validate(); err != nil {
		return Analysis{}, err
	}
	return a, nil
}

// svgSuffix selects the SVG rendering of a chart in its URL.
const svgSuffix = ".svg"

// Validate checks the id and every section discriminant. The id becomes one
// path segment of /charts/{id}[.svg], so it may not contain a slash or end in
// the SVG suffix.
func (a Analysis) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrMissingID
	}
	if strings.Contains(a.ID, "/") || strings.HasSuffix(a.ID, svgSuffix) {
		return fmt.Errorf("%w: %q", ErrInvalidID, a.ID)
	}
	for i, s := range a.Sections {
		if !s.Type.Valid() {
			return fmt.Errorf("section %d: %w: %q", i, ErrUnknownSection, s.Type)
		}
	}
	return nil
}

// Key identifies one revision of the analysis.
func (a Analysis) Key() string {
	return fmt.Sprintf("%s@%d", a.ID, a.Revision)
}

// MaterialityInputs concatenates the entries of every materiality section in
// document order.
func (a Analysis) MaterialityInputs() []model.MaterialityInput {
	var inputs []model.MaterialityInput
	for _, s := range a.Sections {
		if s.Type == SectionMateriality {
			inputs = append(inputs, s.Materiality...)
		}
	}
	return inputs
}

// Section returns the first section of type t.
func (a Analysis) Section(t SectionType) (Section, bool) {
	for _, s := range a.Sections {
		if s.Type == t {
			return s, true
		}
	}
	return Section{}, false
}

// WithSection returns a copy of a where the first section of the same type is
// replaced by s, or s is appended when no such section exists. The receiver
// is left untouched.
func (a Analysis) WithSection(s Section) Analysis {
	out := a
	out.Sections = make([]Section, len(a.Sections), len(a.Sections)+1)
	copy(out.Sections, a.Sections)

	for i := range out.Sections {
		if out.Sections[i].Type == s.Type {
			out.Sections[i] = s
			return out
		}
	}
	out.Sections = append(out.Sections, s)
	return out
}

// Submission converts the analysis into a queue payload.
func (a Analysis) Submission() model.Submission {
	return model.Submission{
		Key:          a.Key(),
		AnalysisID:   a.ID,
		Organization: a.Organization,
		Revision:     a.Revision,
		Inputs:       a.MaterialityInputs(),
	}
}
