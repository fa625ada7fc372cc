package handler

import (
	"errors"
	"net/http"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// ErrorResponse is the wire shape of every non-2xx JSON body.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-readable code and the human-readable
// message for one failure.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError writes a JSON error body with the given status.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// respondServiceError maps a service-layer error onto the HTTP surface.
// The caller names the resource (e.g. "plan") because the handler is the
// layer that knows what was being looked up; the not-found message is built
// from it. Domain sentinels pick the status; anything unrecognized is a 500
// whose detail stays in the log, not the response.
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, resource string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", resource+" not found")
	case errors.Is(err, domain.ErrValidation):
		respondError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrProvider):
		respondError(w, http.StatusBadGateway, "provider_unavailable", unwrapMessage(err))
	default:
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// badRequest rejects a request before it reaches the service layer
// (missing or malformed body, unparseable path id).
func badRequest(w http.ResponseWriter, message string) {
	respondError(w, http.StatusUnprocessableEntity, "validation_error", message)
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.PlanService.Create: validation error: name is required" → "name is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, prefix := range []string{
		"service.PlanService.Create: validation error: ",
		"service.PlanService.Update: validation error: ",
		"service.VehicleService.Create: validation error: ",
		"service.VehicleService.Update: validation error: ",
		"service.FavoriteService.Star: validation error: ",
		"validation error: ",
	} {
		if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			return msg[len(prefix):]
		}
	}
	return msg
}
