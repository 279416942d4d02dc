package materiality

import "github.com/okian/materiality/internal/domain/model"

// Default chart colors.
const (
	DefaultTopTierColor      = "#0f766e"
	DefaultRestColor         = "#94a3b8"
	DefaultAltaColor         = "#dc2626"
	DefaultMediaColor        = "#f59e0b"
	DefaultBajaColor         = "#16a34a"
	DefaultUnclassifiedColor = "#6b7280"
)

// Palette resolves display colors. Two policies coexist: rank-based coloring
// for the ranked scatter and tier-based coloring for the bubble view.
type Palette struct {
	TopTier      string            `json:"topTier"`
	Rest         string            `json:"rest"`
	Tiers        map[string]string `json:"tiers"`
	Unclassified string            `json:"unclassified"`
}

// DefaultPalette returns the built-in palette.
func DefaultPalette() Palette {
	return Palette{
		TopTier: DefaultTopTierColor,
		Rest:    DefaultRestColor,
		Tiers: map[string]string{
			TierAlta:  DefaultAltaColor,
			TierMedia: DefaultMediaColor,
			TierBaja:  DefaultBajaColor,
		},
		Unclassified: DefaultUnclassifiedColor,
	}
}

// Merge returns p with every empty field taken from base.
func (p Palette) Merge(base Palette) Palette {
	out := base
	if p.TopTier != "" {
		out.TopTier = p.TopTier
	}
	if p.Rest != "" {
		out.Rest = p.Rest
	}
	if p.Unclassified != "" {
		out.Unclassified = p.Unclassified
	}
	out.Tiers = make(map[string]string, len(base.Tiers)+len(p.Tiers))
	for k, v := range base.Tiers {
		out.Tiers[k] = v
	}
	for k, v := range p.Tiers {
		if t := NormalizeTier(k); t != "" && v != "" {
			out.Tiers[t] = v
		}
	}
	return out
}

// RankColor is the rank policy: top-tier ranks are emphasized.
func (p Palette) RankColor(rank int) string {
	if InTopTier(rank) {
		return p.TopTier
	}
	return p.Rest
}

// TierColor is the tier policy. Unknown or missing tiers get Unclassified.
func (p Palette) TierColor(tier string) string {
	if c, ok := p.Tiers[NormalizeTier(tier)]; ok && c != "" {
		return c
	}
	return p.Unclassified
}

// Resolve attaches both colors and top-tier membership to ranked points.
func (p Palette) Resolve(points []model.PlottedPoint) []model.ChartPoint {
	out := make([]model.ChartPoint, len(points))
	for i, pt := range points {
		out[i] = model.ChartPoint{
			PlottedPoint: pt,
			Color:        p.RankColor(pt.Rank),
			TierColor:    p.TierColor(pt.Tier),
			TopTier:      InTopTier(pt.Rank),
		}
	}
	return out
}
