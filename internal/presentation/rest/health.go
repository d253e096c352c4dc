package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/port"
)

const serviceName = "farmscore"

// HealthHandler serves liveness and readiness probes over HTTP.
type HealthHandler struct {
	registry port.ScorecardRegistry
	logger   *slog.Logger
}

// NewHealthHandler creates a health check HTTP handler.
func NewHealthHandler(registry port.ScorecardRegistry, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{registry: registry, logger: logger}
}

// RegisterRoutes attaches health-check routes to the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.liveness)
	mux.HandleFunc("GET /readyz", h.readiness)
}

func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
	})
}

// readiness is ready once at least one scorecard is loaded.
func (h *HealthHandler) readiness(w http.ResponseWriter, _ *http.Request) {
	loaded := len(h.registry.Names())
	if loaded == 0 {
		h.logger.Warn("readiness probe failed: no scorecards loaded")
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":     "not_ready",
			"service":    serviceName,
			"scorecards": 0,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ready",
		"service":    serviceName,
		"scorecards": loaded,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}
