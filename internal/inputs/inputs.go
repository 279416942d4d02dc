// Package inputs reads plot inputs from JSON or YAML documents.
//
// A document is either an array of materiality inputs or a whole analysis.
// YAML is parsed generically, re-encoded as JSON, and then decoded with the
// same lenient rules the HTTP API applies.
package inputs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/materiality/internal/domain/analysis"
	"github.com/okian/materiality/internal/domain/model"
)

// Sentinel kinds for input errors.
var (
	ErrEmpty       = errors.New("empty input document")
	ErrUnsupported = errors.New("input must be an array of inputs or an analysis object")
)

// Document is a decoded input file.
type Document struct {
	Inputs []model.MaterialityInput

	// Analysis is set when the document was an analysis.
	Analysis *analysis.Analysis
}

// Title names the document for rendering: the organization or id of an
// analysis, otherwise empty.
func (d Document) Title() string {
	if d.Analysis == nil {
		return ""
	}
	if d.Analysis.Organization != "" {
		return d.Analysis.Organization
	}
	return d.Analysis.ID
}

// ReadFile reads a document from path; "-" reads stdin.
func ReadFile(path string) (Document, error) {
	if path == "-" {
		return Read(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := Read(f)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Read decodes a single JSON or YAML document from r.
func Read(r io.Reader) (Document, error) {
	var raw any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, ErrEmpty
		}
		return Document{}, fmt.Errorf("parse input: %w", err)
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return Document{}, fmt.Errorf("re-encode input: %w", err)
	}

	switch raw.(type) {
	case []any:
		var in []model.MaterialityInput
		if err := json.Unmarshal(data, &in); err != nil {
			return Document{}, fmt.Errorf("decode inputs: %w", err)
		}
		return Document{Inputs: in}, nil
	case map[string]any:
		a, err := analysis.Decode(bytes.NewReader(data))
		if err != nil {
			return Document{}, err
		}
		return Document{Inputs: a.MaterialityInputs(), Analysis: &a}, nil
	case nil:
		return Document{}, ErrEmpty
	default:
		return Document{}, ErrUnsupported
	}
}
