package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"inkwell/internal/contextutil"
	"inkwell/internal/storage"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	kv                 storage.KVStore
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(kv storage.KVStore) *HealthHandler {
	return &HealthHandler{
		kv:                 kv,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP returns 200 when the backing store is reachable, 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	if h.checkKV(checkCtx) {
		checks["kv_store"] = "ok"
	} else {
		logger.WarnContext(ctx, "kv store health check failed")
		checks["kv_store"] = "error"
		issues = append(issues, "kv_store_unavailable")
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}
	if len(issues) > 0 {
		response.Issues = issues
	}

	writeJSON(w, httpStatus, response)
}

// checkKV probes the backing store. A missing key still proves the store is
// reachable.
func (h *HealthHandler) checkKV(ctx context.Context) bool {
	_, err := h.kv.Get(ctx, "journalEntries")
	return err == nil || errors.Is(err, storage.ErrNotFound)
}
