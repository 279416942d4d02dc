package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/materiality/internal/domain/materiality"
	"github.com/okian/materiality/internal/inputs"
	"github.com/okian/materiality/internal/outwriter"
)

type plotFlags struct {
	input   string
	format  string
	output  string
	color   bool
	topOnly bool
}

var plotOpts plotFlags //nolint:gochecknoglobals // flag values

var plotCmd = &cobra.Command{ //nolint:gochecknoglobals // cobra command
	Use:   "plot",
	Short: "Plot a materiality input file",
	Long:  `Reads a JSON or YAML array of materiality inputs, or a whole analysis document, and prints the ranked chart.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runPlot(&plotOpts)
	},
}

func init() {
	f := plotCmd.Flags()
	f.StringVarP(&plotOpts.input, "input", "i", "-", "input file, '-' for stdin")
	f.StringVarP(&plotOpts.format, "format", "f", string(outwriter.FormatTable), "output format: table, json, csv or svg")
	f.StringVarP(&plotOpts.output, "output", "o", "", "output file (defaults to stdout)")
	f.BoolVar(&plotOpts.color, "color", true, "colorize table output")
	f.BoolVar(&plotOpts.topOnly, "top-only", false, "print only the top tier")
	rootCmd.AddCommand(plotCmd)
}

func runPlot(opts *plotFlags) error {
	format, err := outwriter.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	doc, err := inputs.ReadFile(opts.input)
	if err != nil {
		return err
	}

	res := materiality.NewPipeline(materiality.WithPalette(cfg.Palette())).Plot(doc.Inputs)
	return outwriter.WriteResult(res, &outwriter.Config{
		Format:     format,
		OutputFile: opts.output,
		Color:      opts.color,
		TopOnly:    opts.topOnly,
		Title:      doc.Title(),
		SVGWidth:   cfg.SVGWidth,
		SVGHeight:  cfg.SVGHeight,
	})
}
