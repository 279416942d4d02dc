package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	repository "github.com/okian/materiality/internal/adapters/repository"
	"github.com/okian/materiality/internal/domain/types"
	"github.com/okian/materiality/internal/render/scatter"
)

const (
	defaultListLimit = 20
	svgSuffix        = ".svg"
)

// ChartDependencies defines the interface for chart reads.
type ChartDependencies interface {
	Chart(ctx context.Context, analysisID string) (types.Chart, error)
	Charts(ctx context.Context, limit int) ([]types.ChartSummary, error)
}

// ChartsOption configures the ChartsHandler.
type ChartsOption func(*ChartsHandler)

// WithMaxListLimit rejects list requests above n.
func WithMaxListLimit(n int) ChartsOption {
	return func(h *ChartsHandler) {
		if n > 0 {
			h.maxLimit = n
		}
	}
}

// WithSVGSize sets the size of rendered charts.
func WithSVGSize(width, height int) ChartsOption {
	return func(h *ChartsHandler) {
		h.svgOpts = append(h.svgOpts, scatter.WithSize(width, height))
	}
}

// ChartsHandler handles chart reads.
type ChartsHandler struct {
	deps     ChartDependencies
	maxLimit int
	svgOpts  []scatter.Option
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps ChartDependencies, opts ...ChartsOption) *ChartsHandler {
	h := &ChartsHandler{deps: deps, maxLimit: 100}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleListCharts handles GET /charts?limit=N requests.
func (h *ChartsHandler) HandleListCharts(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_charts"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	n := defaultListLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		n, err = strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}

	list, err := h.deps.Charts(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if list == nil {
		list = []types.ChartSummary{}
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleGetChart handles GET /charts/{id} and GET /charts/{id}.svg requests.
func (h *ChartsHandler) HandleGetChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/charts/")
	asSVG := strings.HasSuffix(id, svgSuffix)
	id = strings.TrimSuffix(id, svgSuffix)
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	c, err := h.deps.Chart(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	if !asSVG {
		writeJSON(w, http.StatusOK, c)
		return
	}
	opts := append([]scatter.Option{scatter.WithTitle(chartTitle(c))}, h.svgOpts...)
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(scatter.Render(c.Points, opts...))
}

func chartTitle(c types.Chart) string { //nolint:gocritic // hugeParam: read-only
	name := c.Organization
	if name == "" {
		name = c.AnalysisID
	}
	return name + " r" + strconv.Itoa(c.Revision)
}
