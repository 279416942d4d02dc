// Package repository stores generated charts.
package repository

import (
	"context"

	"github.com/okian/materiality/internal/domain/types"
)

// Store provides read/write access to generated charts.
type Store interface {
	// Put stores c as the latest chart of its analysis. A chart whose revision
	// is lower than the stored one is ignored. Returns true if c was stored.
	Put(ctx context.Context, c types.Chart) (bool, error) //nolint:gocritic // hugeParam: charts are values

	// Get returns the stored chart of an analysis.
	// Returns ErrNotFound if the analysis is unknown.
	Get(ctx context.Context, analysisID string) (types.Chart, error)

	// List returns up to limit chart summaries, most recently stored first.
	List(ctx context.Context, limit int) ([]types.ChartSummary, error)

	// Count returns the number of stored charts.
	Count(ctx context.Context) int
}
