package materiality

import (
	"math"

	"github.com/okian/materiality/internal/domain/model"
)

// Spiral parameters for displacing duplicate coordinates.
const (
	declusterAngleStep  = 4 * math.Pi / 25
	declusterBaseRadius = 0.6
	declusterRadiusStep = 0.5
	declusterYCompress  = 0.9
)

type coordKey struct {
	x, y float64
}

// Decluster spreads points that share an exact (x, y) so each stays visible.
// The first point at a coordinate keeps its place; the n-th repeat moves along
// a widening spiral around the original coordinate. Only X and Y change.
func Decluster(points []model.PlottedPoint) []model.PlottedPoint {
	out := make([]model.PlottedPoint, len(points))
	seen := make(map[coordKey]int, len(points))

	for i, p := range points {
		key := coordKey{x: p.X, y: p.Y}
		n := seen[key]
		seen[key] = n + 1

		if n > 0 {
			dx, dy := Offset(n)
			p.X = p.OriginalX + dx
			p.Y = p.OriginalY + dy
		}
		out[i] = p
	}
	return out
}

// Offset returns the displacement of the n-th repeat of a coordinate.
// Offset(0) is the zero vector.
func Offset(n int) (dx, dy float64) {
	if n <= 0 {
		return 0, 0
	}
	angle := float64(n) * declusterAngleStep
	radius := declusterBaseRadius + float64(n)*declusterRadiusStep
	return math.Cos(angle) * radius, math.Sin(angle) * radius * declusterYCompress
}

// Displaced reports whether p was moved away from its original coordinate.
func Displaced(p model.PlottedPoint) bool {
	return p.X != p.OriginalX || p.Y != p.OriginalY
}
