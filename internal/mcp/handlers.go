package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/okian/materiality/internal/domain/materiality"
	"github.com/okian/materiality/internal/inputs"
	"github.com/okian/materiality/internal/outwriter"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	pipeline *materiality.Pipeline
}

func (h *toolHandler) handlePlot(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := decodeInputs(request.GetArguments()["inputs"])
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid inputs: %v", err)), nil
	}

	format, err := outwriter.ParseFormat(request.GetString("format", string(outwriter.FormatJSON)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := h.pipeline.Plot(doc.Inputs)
	var buf bytes.Buffer
	cfg := &outwriter.Config{
		Format:  format,
		TopOnly: request.GetBool("top_only", false),
		Title:   doc.Title(),
	}
	if err := outwriter.Write(&buf, res, cfg); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("write result: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// decodeInputs accepts the inputs argument as a JSON/YAML string or as an
// already structured array or object.
func decodeInputs(arg any) (inputs.Document, error) {
	switch v := arg.(type) {
	case nil:
		return inputs.Document{}, inputs.ErrEmpty
	case string:
		return inputs.Read(strings.NewReader(v))
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return inputs.Document{}, err
		}
		return inputs.Read(bytes.NewReader(data))
	}
}

type tierColorResult struct {
	Tier       string  `json:"tier"`
	Normalized string  `json:"normalized,omitempty"`
	Known      bool    `json:"known"`
	X          float64 `json:"x"`
	Color      string  `json:"color"`
}

func (h *toolHandler) handleTierColor(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tier := request.GetString("tier", "")
	if strings.TrimSpace(tier) == "" {
		return mcp.NewToolResultError("tier is required"), nil
	}

	x, known := materiality.TierX(tier)
	out := tierColorResult{
		Tier:       tier,
		Normalized: materiality.NormalizeTier(tier),
		Known:      known,
		X:          x,
		Color:      h.pipeline.Palette().TierColor(tier),
	}
	jsonData, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
