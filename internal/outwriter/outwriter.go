// Package outwriter writes plotted materiality charts for the command line.
package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/okian/materiality/internal/domain/materiality"
	"github.com/okian/materiality/internal/domain/model"
	"github.com/okian/materiality/internal/render/scatter"
)

// Format names an output encoding.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatSVG   Format = "svg"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat resolves a case-insensitive format name. Empty selects table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatCSV, FormatSVG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Console colors for the table output.
var (
	TopTierColor = color.New(color.FgGreen, color.Bold) //nolint:gochecknoglobals // console palette
	AltaColor    = color.New(color.FgRed)               //nolint:gochecknoglobals // console palette
	MediaColor   = color.New(color.FgYellow)            //nolint:gochecknoglobals // console palette
	BajaColor    = color.New(color.FgCyan)              //nolint:gochecknoglobals // console palette
)

// Config controls how a result is written.
type Config struct {
	Format Format

	// OutputFile is the destination path; empty writes to stdout.
	OutputFile string

	// Color enables ANSI colors in the table output.
	Color bool

	// TopOnly restricts the output to the top tier in rank order.
	TopOnly bool

	// Title and size of the SVG output.
	Title     string
	SVGWidth  int
	SVGHeight int
}

// WriteResult writes res to cfg.OutputFile in cfg.Format.
func WriteResult(res materiality.Result, cfg *Config) error { //nolint:gocritic // hugeParam: read-only
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return Write(w, res, cfg)
	})
}

// Write encodes res to w in cfg.Format.
func Write(w io.Writer, res materiality.Result, cfg *Config) error { //nolint:gocritic // hugeParam: read-only
	points := res.Points
	if cfg.TopOnly {
		points = res.TopTier()
	}

	switch cfg.Format {
	case FormatJSON:
		return writeJSON(w, res, points)
	case FormatCSV:
		return writeCSV(w, points)
	case FormatSVG:
		_, err := w.Write(scatter.Render(points,
			scatter.WithTitle(cfg.Title),
			scatter.WithSize(cfg.SVGWidth, cfg.SVGHeight),
		))
		return err
	case FormatTable, "":
		return writeTable(w, res, points, cfg.Color)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Format)
	}
}

// writeWithFile opens outputFile (stdout when empty), runs writer, and closes it.
func writeWithFile(outputFile string, writer func(io.Writer) error) error {
	if outputFile == "" {
		return writer(os.Stdout)
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := writer(f); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", outputFile)
	return nil
}

type jsonResult struct {
	Points    []model.ChartPoint `json:"points"`
	TopTier   []model.ChartPoint `json:"topTier"`
	Skipped   int                `json:"skipped"`
	Displaced int                `json:"displaced"`
}

func writeJSON(w io.Writer, res materiality.Result, points []model.ChartPoint) error { //nolint:gocritic // hugeParam: read-only
	if points == nil {
		points = []model.ChartPoint{}
	}
	top := res.TopTier()
	if top == nil {
		top = []model.ChartPoint{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonResult{Points: points, TopTier: top, Skipped: res.Skipped, Displaced: res.Displaced}); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, points []model.ChartPoint) error {
	cw := csv.NewWriter(w)
	header := []string{"rank", "topic", "tier", "x", "y", "original_x", "original_y", "color", "tier_color", "top_tier"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, p := range points {
		row := []string{
			strconv.Itoa(p.Rank),
			p.Topic,
			p.Tier,
			formatFloat(p.X),
			formatFloat(p.Y),
			formatFloat(p.OriginalX),
			formatFloat(p.OriginalY),
			p.Color,
			p.TierColor,
			strconv.FormatBool(p.TopTier),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeTable prints points in rank order followed by a summary line.
func writeTable(w io.Writer, res materiality.Result, points []model.ChartPoint, colored bool) error { //nolint:gocritic // hugeParam: read-only
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Topic", "Tier", "X", "Y", "Orig X", "Orig Y", "Color"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range materiality.ByRank(points) {
		rank := strconv.Itoa(p.Rank)
		if colored && p.TopTier {
			rank = TopTierColor.Sprint(rank)
		}
		data = append(data, []string{
			rank,
			p.Topic,
			tierLabel(p.Tier, colored),
			formatFloat(p.X),
			formatFloat(p.Y),
			formatFloat(p.OriginalX),
			formatFloat(p.OriginalY),
			p.Color,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Plotted %d points (%d in top tier, %d displaced, %d skipped)\n",
		len(res.Points), len(res.TopTier()), res.Displaced, res.Skipped)
	return err
}

func tierLabel(tier string, colored bool) string {
	if tier == "" {
		return "-"
	}
	if !colored {
		return tier
	}
	switch materiality.NormalizeTier(tier) {
	case materiality.TierAlta:
		return AltaColor.Sprint(tier)
	case materiality.TierMedia:
		return MediaColor.Sprint(tier)
	case materiality.TierBaja:
		return BajaColor.Sprint(tier)
	default:
		return tier
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
