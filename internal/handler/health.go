package handler

import (
	"net/http"

	"threadflow/internal/httputil"
)

// HealthCheck reports service liveness.
// GET /health
func HealthCheck(w http.ResponseWriter, _ *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
