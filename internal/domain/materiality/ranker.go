package materiality

import (
	"sort"

	"github.com/okian/materiality/internal/domain/model"
)

// TopTierSize is the number of leading ranks that get emphasis.
const TopTierSize = 10

// Rank assigns 1-based ranks by descending OriginalY. Display coordinates are
// ignored, so declustering never changes the ranking. Equal scores keep their
// relative order. The returned slice keeps the input order.
func Rank(points []model.PlottedPoint) []model.PlottedPoint {
	out := make([]model.PlottedPoint, len(points))
	copy(out, points)

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return out[order[a]].OriginalY > out[order[b]].OriginalY
	})

	for pos, idx := range order {
		out[idx].Rank = pos + 1
	}
	return out
}

// InTopTier reports whether rank falls within the emphasized top ranks.
func InTopTier(rank int) bool {
	return rank >= 1 && rank <= TopTierSize
}

// ByRank returns a copy of points ordered by rank ascending.
func ByRank(points []model.ChartPoint) []model.ChartPoint {
	out := make([]model.ChartPoint, len(points))
	copy(out, points)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Rank < out[b].Rank
	})
	return out
}

// TopTier returns the emphasized points in rank order.
func TopTier(points []model.ChartPoint) []model.ChartPoint {
	ranked := ByRank(points)
	top := make([]model.ChartPoint, 0, TopTierSize)
	for _, p := range ranked {
		if p.TopTier {
			top = append(top, p)
		}
	}
	return top
}
