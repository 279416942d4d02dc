package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/okian/materiality/pkg/metrics"
)

// Endpoint labels used in request metrics.
const (
	endpointHealth   = "healthz"
	endpointStats    = "stats"
	endpointPlot     = "plot"
	endpointAnalyses = "analyses"
	endpointCharts   = "charts"
	endpointChart    = "chart"
	endpointChartSVG = "chart_svg"
)

// MetricsMiddleware records request count, latency and error kind for one
// route. Chart reads are split by representation so SVG rendering cost shows
// up under its own label.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		label := endpointLabel(endpoint, r)
		status := strconv.Itoa(rec.status)
		metrics.RecordHTTPRequest(label, r.Method, status)
		metrics.RecordHTTPRequestDuration(label, r.Method, status, float64(time.Since(start).Microseconds())/1000)

		if kind, severity, ok := errorKind(rec.status); ok {
			metrics.RecordErrorByEndpoint(label, r.Method, kind)
			metrics.RecordErrorByType(kind, severity)
		}
	}
}

func endpointLabel(endpoint string, r *http.Request) string {
	if endpoint == endpointChart && strings.HasSuffix(r.URL.Path, svgSuffix) {
		return endpointChartSVG
	}
	return endpoint
}

// errorKind maps an error status to the code used in the error envelope.
func errorKind(status int) (kind, severity string, ok bool) {
	switch {
	case status >= http.StatusInternalServerError:
		return "internal_error", "high", true
	case status == http.StatusTooManyRequests:
		return "backpressure", "medium", true
	case status == http.StatusNotFound:
		return "not_found", "low", true
	case status >= http.StatusBadRequest:
		return "bad_request", "low", true
	default:
		return "", "", false
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}
