package observability

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthStatus is the payload served by the health endpoints.
type HealthStatus struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthHandler serves liveness and readiness probes. The service has no
// external backends, so readiness equals liveness once the process is up.
type HealthHandler struct {
	service string
	version string
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(service, version string) *HealthHandler {
	return &HealthHandler{service: service, version: version}
}

// Liveness handles GET /healthz.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	h.writeStatus(w)
}

// Readiness handles GET /readyz.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	h.writeStatus(w)
}

func (h *HealthHandler) writeStatus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HealthStatus{
		Status:    "ok",
		Service:   h.service,
		Version:   h.version,
		Timestamp: time.Now().UTC(),
	})
}
