// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/materiality/internal/domain/dedupe"
	"github.com/okian/materiality/internal/domain/materiality"
	"github.com/okian/materiality/internal/domain/model"
	"github.com/okian/materiality/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// Plot runs the pipeline synchronously.
	Plot(ctx context.Context, inputs []model.MaterialityInput) (materiality.Result, error)

	// Enqueue pushes a submission for async charting. Returns false on backpressure.
	Enqueue(ctx context.Context, s model.Submission) bool

	// Read operations expose stored charts.
	Chart(ctx context.Context, analysisID string) (types.Chart, error)
	Charts(ctx context.Context, limit int) ([]types.ChartSummary, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	plotHandler      *PlotHandler
	analysesHandler  *AnalysesHandler
	chartsHandler    *ChartsHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ChartsOption) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		plotHandler:      NewPlotHandler(deps),
		analysesHandler:  NewAnalysesHandler(deps),
		chartsHandler:    NewChartsHandler(deps, opts...),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, endpointHealth))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, endpointStats))
	mux.HandleFunc("/plot", MetricsMiddleware(s.plotHandler.HandlePlot, endpointPlot))
	mux.HandleFunc("/analyses", MetricsMiddleware(s.analysesHandler.HandlePostAnalysis, endpointAnalyses))
	mux.HandleFunc("/charts", MetricsMiddleware(s.chartsHandler.HandleListCharts, endpointCharts))
	mux.HandleFunc("/charts/", MetricsMiddleware(s.chartsHandler.HandleGetChart, endpointChart))
}

type ackResponse struct {
	Status    string `json:"status"`
	Key       string `json:"key"`
	Duplicate bool   `json:"duplicate"`
}

type plotResponse struct {
	Points    []model.ChartPoint `json:"points"`
	TopTier   []model.ChartPoint `json:"topTier"`
	Skipped   int                `json:"skipped"`
	Displaced int                `json:"displaced"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
