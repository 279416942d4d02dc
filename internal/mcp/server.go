// Package mcp exposes the materiality pipeline as Model Context Protocol tools.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/okian/materiality/internal/domain/materiality"
)

// Tool names.
const (
	ToolPlot      = "plot_materiality"
	ToolTierColor = "tier_color"
)

// NewMCPServer configures the tool server without starting it.
func NewMCPServer(pipeline *materiality.Pipeline, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"Materiality Chart Server",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{pipeline: pipeline}

	s.AddTool(mcp.NewTool(ToolPlot,
		mcp.WithDescription("Plot ESG materiality topics: maps financial tiers to x, ESG scores to y, spreads overlapping points, ranks by ESG score and resolves colors."),
		mcp.WithString("inputs",
			mcp.Required(),
			mcp.Description("JSON or YAML array of inputs: {topic|topics, financialMateriality, esgMateriality, x, y}, or a whole analysis document."),
		),
		mcp.WithBoolean("top_only", mcp.Description("Return only the top-tier points in rank order.")),
		mcp.WithString("format",
			mcp.Description("Output format. Defaults to 'json'."),
			mcp.Enum("json", "csv", "svg", "table"),
		),
	), h.handlePlot)

	s.AddTool(mcp.NewTool(ToolTierColor,
		mcp.WithDescription("Resolve the x band and color of a financial materiality tier."),
		mcp.WithString("tier", mcp.Required(), mcp.Description("Tier label: baja, media or alta.")),
	), h.handleTierColor)

	return s
}

// StartMCPServer serves the tools over stdio until the client disconnects.
func StartMCPServer(_ context.Context, pipeline *materiality.Pipeline, version string) error {
	return server.ServeStdio(NewMCPServer(pipeline, version))
}
