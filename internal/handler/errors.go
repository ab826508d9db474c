package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tripweave/backend/internal/domain"
)

// ErrorResponse is the JSON error envelope returned by every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps a service error onto the HTTP surface using the domain
// sentinels: ErrNotFound → 404, ErrValidation → 422, ErrUpstream → 502,
// anything else → 500 with a generic body (internals never leak).
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.respond(w, http.StatusNotFound, ErrorResponse{
			Error: ErrorDetail{Code: "not_found", Message: "not found"},
		})
	case errors.Is(err, domain.ErrValidation):
		s.respond(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)},
		})
	case errors.Is(err, domain.ErrUpstream):
		s.respond(w, http.StatusBadGateway, ErrorResponse{
			Error: ErrorDetail{Code: "upstream_error", Message: unwrapMessage(err)},
		})
	default:
		s.log.Error("internal error", "error", err)
		s.respond(w, http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "internal_error", Message: "internal error"},
		})
	}
}

// writeBadRequest rejects a request before it reaches the service layer
// (malformed body, failed struct validation).
func (s *Server) writeBadRequest(w http.ResponseWriter, message string) {
	s.respond(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error: ErrorDetail{Code: "validation_error", Message: message},
	})
}

// unwrapMessage extracts the human-readable tail from a wrapped sentinel
// error, e.g. "service.TripService.Create: validation error: trip name is
// required" → "trip name is required". Falls back to the full message when no
// sentinel text is present.
func unwrapMessage(err error) string {
	msg := err.Error()
	for _, marker := range []string{"validation error: ", "upstream error: "} {
		if i := strings.LastIndex(msg, marker); i >= 0 {
			return msg[i+len(marker):]
		}
	}
	return msg
}
