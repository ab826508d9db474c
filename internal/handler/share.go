package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tripweave/backend/internal/middleware"
)

// shareResponse carries both the bare token and the ready-to-send link.
type shareResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// ShareTrip handles GET /trips/{tripID}/share: encodes the device's snapshot
// of the trip into a shareable link for the next participant.
func (s *Server) ShareTrip(w http.ResponseWriter, r *http.Request) {
	token, url, err := s.trips.Share(r.Context(), middleware.DeviceID(r.Context()), chi.URLParam(r, "tripID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respond(w, http.StatusOK, shareResponse{Token: token, URL: url})
}

type importRequest struct {
	// Link is a full share URL or a bare token — both are accepted.
	Link string `json:"link" validate:"required"`
}

// ImportTrip handles POST /trips/import: decodes a received share link and
// merges it with this device's cached copy of the same trip, if any.
// A link that does not contain a valid trip is a 422, not a 500 — malformed
// peer input is a normal, checked case.
func (s *Server) ImportTrip(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := s.decodeValid(r, &req); err != nil {
		s.writeBadRequest(w, "link is required")
		return
	}

	trip, err := s.trips.Import(r.Context(), middleware.DeviceID(r.Context()), req.Link)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respond(w, http.StatusOK, trip)
}
