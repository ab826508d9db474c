package handler

import (
	"net/http"

	"github.com/tripweave/backend/internal/middleware"
)

type themeBody struct {
	Theme string `json:"theme" validate:"required,oneof=light dark system"`
}

// GetTheme handles GET /settings/theme. Devices that never toggled the theme
// get the default back, not a 404.
func (s *Server) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := s.settings.Theme(r.Context(), middleware.DeviceID(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respond(w, http.StatusOK, themeBody{Theme: theme})
}

// PutTheme handles PUT /settings/theme.
func (s *Server) PutTheme(w http.ResponseWriter, r *http.Request) {
	var req themeBody
	if err := s.decodeValid(r, &req); err != nil {
		s.writeBadRequest(w, "theme must be one of light, dark, system")
		return
	}

	if err := s.settings.SetTheme(r.Context(), middleware.DeviceID(r.Context()), req.Theme); err != nil {
		s.writeError(w, err)
		return
	}
	s.respond(w, http.StatusOK, req)
}
