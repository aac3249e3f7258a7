package rest

import (
	"encoding/json"
	"net/http"
	"time"
)

type HealthStatus string

const (
	HealthHealthy HealthStatus = "healthy"
)

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus `json:"status"`
	Message    string       `json:"message,omitempty"`
	CheckedAt  time.Time    `json:"checked_at"`
	DurationMs int64        `json:"duration_ms"`
}

// HealthHandler reports process health. There is no backing store to probe;
// the registries live in process memory, so liveness and readiness coincide.
type HealthHandler struct {
	startedAt time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// pingHandler → just says service is up
func (h *HealthHandler) pingHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "OK"}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	entry := CheckEntry{
		Status:    HealthHealthy,
		Message:   "in-memory stores ready",
		CheckedAt: now,
	}

	resp := HealthResponse{
		Status:     HealthHealthy,
		CheckedAt:  now,
		Components: map[string]CheckEntry{"memory": entry},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
