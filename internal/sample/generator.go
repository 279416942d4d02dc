// Package sample generates synthetic analyses and submits them to a running
// service.
package sample

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/okian/materiality/internal/domain/analysis"
	"github.com/okian/materiality/internal/domain/materiality"
	"github.com/okian/materiality/internal/domain/model"
)

const (
	esgMin  = 1.0
	esgSpan = 4.0
	// unclassifiedOdds is the chance, out of tierOddsBase, of leaving the tier blank.
	unclassifiedOdds = 1
	tierOddsBase     = 10
)

var topicPool = []string{ //nolint:gochecknoglobals // fixed sample vocabulary
	"Climate change", "Energy use", "Water management", "Biodiversity",
	"Waste and circularity", "Air quality", "Human rights", "Health and safety",
	"Diversity and inclusion", "Labour practices", "Community relations",
	"Data privacy", "Business ethics", "Supply chain", "Product quality",
	"Customer welfare", "Governance", "Risk management", "Innovation",
	"Talent retention", "Anti-corruption", "Tax transparency",
}

var organizations = []string{ //nolint:gochecknoglobals // fixed sample vocabulary
	"Acme Cement", "Borealis Foods", "Cobalt Mining", "Delta Textiles", "Evergreen Bank",
}

var tiers = []string{materiality.TierBaja, materiality.TierMedia, materiality.TierAlta} //nolint:gochecknoglobals // tier order

// Generator builds synthetic analyses.
type Generator struct {
	rng    *rand.Rand
	topics int
}

// NewGenerator returns a generator for cfg. A zero seed is time based.
func NewGenerator(cfg Config) *Generator {
	cfg.Normalize()
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint:gosec // sample data
	}
	return &Generator{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), //nolint:gosec // sample data
		topics: cfg.Topics,
	}
}

// Analysis returns one analysis with a fresh uuid and revision 1.
func (g *Generator) Analysis() analysis.Analysis {
	a := analysis.Analysis{
		ID:           uuid.NewString(),
		Organization: organizations[g.rng.IntN(len(organizations))],
		Revision:     1,
		Sections: []analysis.Section{
			{Type: analysis.SectionContext, Title: "Context"},
			{Type: analysis.SectionMateriality, Title: "Materiality", Materiality: g.inputs()},
		},
	}
	return a
}

// Analyses returns n analyses.
func (g *Generator) Analyses(n int) []analysis.Analysis {
	out := make([]analysis.Analysis, n)
	for i := range out {
		out[i] = g.Analysis()
	}
	return out
}

// inputs draws g.topics entries. Scores are rounded to halves so some topics
// collide and exercise declustering.
func (g *Generator) inputs() []model.MaterialityInput {
	in := make([]model.MaterialityInput, g.topics)
	for i := range in {
		topic := topicPool[i%len(topicPool)]
		if i >= len(topicPool) {
			topic = fmt.Sprintf("%s %d", topic, i/len(topicPool)+1)
		}
		in[i] = model.MaterialityInput{
			Topic:                topic,
			FinancialMateriality: g.tier(),
			ESGMateriality:       model.Float(math.Round((esgMin+g.rng.Float64()*esgSpan)*2) / 2),
		}
	}
	return in
}

func (g *Generator) tier() string {
	if g.rng.IntN(tierOddsBase) < unclassifiedOdds {
		return ""
	}
	return tiers[g.rng.IntN(len(tiers))]
}
