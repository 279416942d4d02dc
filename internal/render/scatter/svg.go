// Package scatter renders materiality charts as standalone SVG documents.
package scatter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/okian/materiality/internal/domain/materiality"
	"github.com/okian/materiality/internal/domain/model"
)

const (
	defaultWidth  = 720.0
	defaultHeight = 480.0

	marginLeft   = 56.0
	marginRight  = 24.0
	marginTop    = 40.0
	marginBottom = 56.0

	pointRadius = 6.0
	bandMaxX    = 6.0

	fontFamily = `system-ui, -apple-system, 'Segoe UI', sans-serif`
	axisColor  = "#334155"
	gridColor  = "#e2e8f0"
)

// tierGridlines are the x positions of the financial tiers.
var tierGridlines = []struct { //nolint:gochecknoglobals // fixed axis layout
	x     float64
	label string
}{
	{1, materiality.TierBaja},
	{3, materiality.TierMedia},
	{5, materiality.TierAlta},
}

// Option configures a render.
type Option func(*renderer)

type renderer struct {
	width  float64
	height float64
	title  string
}

// WithSize sets the SVG dimensions in pixels. Non-positive values are ignored.
func WithSize(width, height int) Option {
	return func(r *renderer) {
		if width > 0 {
			r.width = float64(width)
		}
		if height > 0 {
			r.height = float64(height)
		}
	}
}

// WithTitle sets the heading drawn above the plot area.
func WithTitle(title string) Option { return func(r *renderer) { r.title = title } }

// bounds is the data window mapped onto the plot area.
type bounds struct {
	minX, maxX, minY, maxY float64
}

func dataBounds(points []model.ChartPoint) bounds {
	b := bounds{minX: 0, maxX: bandMaxX, minY: 0, maxY: 1}
	for _, p := range points {
		b.minX = math.Min(b.minX, p.X)
		b.maxX = math.Max(b.maxX, p.X)
		b.minY = math.Min(b.minY, math.Min(p.Y, p.OriginalY))
		b.maxY = math.Max(b.maxY, math.Max(p.Y, p.OriginalY))
	}
	b.minX = math.Floor(b.minX)
	b.maxX = math.Ceil(b.maxX)
	b.minY = math.Floor(b.minY)
	b.maxY = math.Ceil(b.maxY)
	return b
}

// Render draws points as a scatter plot. Points are drawn at their display
// coordinates, colored by rank, outlined by tier, and top-tier points carry
// their rank as a label.
func Render(points []model.ChartPoint, opts ...Option) []byte {
	r := renderer{width: defaultWidth, height: defaultHeight}
	for _, opt := range opts {
		opt(&r)
	}

	b := dataBounds(points)
	plotW := r.width - marginLeft - marginRight
	plotH := r.height - marginTop - marginBottom
	sx := func(x float64) float64 { return marginLeft + (x-b.minX)/(b.maxX-b.minX)*plotW }
	sy := func(y float64) float64 { return marginTop + plotH - (y-b.minY)/(b.maxY-b.minY)*plotH }

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="#ffffff"/>`+"\n", r.width, r.height)
	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="24" text-anchor="middle" font-family="%s" font-size="16" font-weight="bold" fill="%s">%s</text>`+"\n",
			r.width/2, fontFamily, axisColor, escapeXML(r.title))
	}

	renderGrid(&buf, b, sx, sy)
	renderAxes(&buf, b, sx, sy)

	buf.WriteString(`  <g class="points">` + "\n")
	for _, p := range points {
		renderPoint(&buf, p, sx(p.X), sy(p.Y))
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderGrid(buf *bytes.Buffer, b bounds, sx, sy func(float64) float64) {
	top, bottom := sy(b.maxY), sy(b.minY)
	for _, g := range tierGridlines {
		x := sx(g.x)
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-dasharray="4 4"/>`+"\n",
			x, top, x, bottom, gridColor)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="%s" font-size="12" fill="%s">%s</text>`+"\n",
			x, bottom+20, fontFamily, axisColor, g.label)
	}
}

func renderAxes(buf *bytes.Buffer, b bounds, sx, sy func(float64) float64) {
	left, right := sx(b.minX), sx(b.maxX)
	top, bottom := sy(b.maxY), sy(b.minY)
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n", left, bottom, right, bottom, axisColor)
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n", left, top, left, bottom, axisColor)

	for y := b.minY; y <= b.maxY; y += yTickStep(b) {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="end" font-family="%s" font-size="11" fill="%s">%g</text>`+"\n",
			left-8, sy(y)+4, fontFamily, axisColor, y)
	}

	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="%s" font-size="12" fill="%s">Financial materiality</text>`+"\n",
		(left+right)/2, bottom+40, fontFamily, axisColor)
	fmt.Fprintf(buf, `  <text transform="translate(16 %.1f) rotate(-90)" text-anchor="middle" font-family="%s" font-size="12" fill="%s">ESG materiality</text>`+"\n",
		(top+bottom)/2, fontFamily, axisColor)
}

// yTickStep keeps the y axis at no more than ten labels.
func yTickStep(b bounds) float64 {
	return math.Max(1, math.Ceil((b.maxY-b.minY)/10))
}

func renderPoint(buf *bytes.Buffer, p model.ChartPoint, cx, cy float64) { //nolint:gocritic // hugeParam: read-only
	fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s" stroke-width="2" data-rank="%d">`,
		cx, cy, pointRadius, p.Color, p.TierColor, p.Rank)
	fmt.Fprintf(buf, `<title>%s (%g, %g) rank %d</title></circle>`+"\n",
		escapeXML(p.Topic), p.OriginalX, p.OriginalY, p.Rank)
	if p.TopTier {
		fmt.Fprintf(buf, `    <text class="rank" x="%.1f" y="%.1f" text-anchor="middle" font-family="%s" font-size="10" font-weight="bold" fill="%s">%d</text>`+"\n",
			cx, cy-pointRadius-3, fontFamily, axisColor, p.Rank)
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
