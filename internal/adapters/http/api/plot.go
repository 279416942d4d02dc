package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/materiality/internal/app"
	"github.com/okian/materiality/internal/domain/materiality"
	"github.com/okian/materiality/internal/domain/model"
)

// maxBodyBytes bounds request bodies of the write endpoints.
const maxBodyBytes = 8 << 20

// PlotDependencies defines the interface for synchronous plotting.
type PlotDependencies interface {
	Plot(ctx context.Context, inputs []model.MaterialityInput) (materiality.Result, error)
}

// PlotHandler handles plot requests.
type PlotHandler struct {
	deps PlotDependencies
}

// NewPlotHandler creates a new plot handler.
func NewPlotHandler(deps PlotDependencies) *PlotHandler {
	return &PlotHandler{deps: deps}
}

// HandlePlot handles POST /plot requests.
func (h *PlotHandler) HandlePlot(w http.ResponseWriter, r *http.Request) {
	const op = "api.plot"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var inputs []model.MaterialityInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&inputs); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.Plot(r.Context(), inputs)
	switch {
	case errors.Is(err, service.ErrTooManyInputs):
		writeError(w, http.StatusBadRequest, "too_many_inputs", WrapKind(op, ErrBadRequest, err))
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	points := res.Points
	if points == nil {
		points = []model.ChartPoint{}
	}
	writeJSON(w, http.StatusOK, plotResponse{
		Points:    points,
		TopTier:   res.TopTier(),
		Skipped:   res.Skipped,
		Displaced: res.Displaced,
	})
}
