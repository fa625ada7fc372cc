package handler

import (
	"net/http"

	"github.com/chicaron82/roadtrip-planner-sub003/spec"
)

// healthResponse reports overall liveness plus per-dependency states.
// A dependency is "ok", "unavailable", or "disabled" (not configured).
type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// handleHealth handles GET /healthz.
// The cache is optional, so a disabled cache never degrades the status;
// a failing database does, with 503.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{
		"database": runCheck(r, s.deps.DBCheck),
		"cache":    runCheck(r, s.deps.CacheCheck),
	}

	status := "ok"
	code := http.StatusOK
	for _, state := range checks {
		if state == "unavailable" {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}
	respondJSON(w, code, healthResponse{Status: status, Checks: checks})
}

func runCheck(r *http.Request, check CheckFunc) string {
	if check == nil {
		return "disabled"
	}
	if err := check(r.Context()); err != nil {
		return "unavailable"
	}
	return "ok"
}

// handleOpenAPI handles GET /openapi.yaml, serving the embedded spec so the
// contract and the running binary are always in sync.
func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(spec.OpenAPI) //nolint:errcheck
}
