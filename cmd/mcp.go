package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/materiality/internal/domain/materiality"
	"github.com/okian/materiality/internal/mcp"
)

var mcpCmd = &cobra.Command{ //nolint:gochecknoglobals // cobra command
	Use:   "mcp",
	Short: "Start the materiality MCP server",
	Long:  `Launch an MCP server on stdio so agents can plot materiality inputs through tools.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		pipeline := materiality.NewPipeline(materiality.WithPalette(cfg.Palette()))
		return mcp.StartMCPServer(cmd.Context(), pipeline, version)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
