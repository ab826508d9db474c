package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tripweave/backend/internal/domain"
	"github.com/tripweave/backend/internal/middleware"
)

type createTripRequest struct {
	Name         string   `json:"name" validate:"required"`
	Participants []string `json:"participants" validate:"required,min=1,dive,required"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := s.decodeValid(r, &req); err != nil {
		s.writeBadRequest(w, "name and a non-empty participants list are required")
		return
	}

	trip, err := s.trips.Create(r.Context(), middleware.DeviceID(r.Context()), req.Name, req.Participants)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, trip)
}

// ListTrips handles GET /trips. Trips come back most recently used first,
// mirroring the device's local trip list.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context(), middleware.DeviceID(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	s.respond(w, http.StatusOK, trips)
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.Get(r.Context(), middleware.DeviceID(r.Context()), chi.URLParam(r, "tripID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respond(w, http.StatusOK, trip)
}

// DeleteTrip handles DELETE /trips/{tripID} — the explicit user removal from
// the device's trip list.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	err := s.trips.Delete(r.Context(), middleware.DeviceID(r.Context()), chi.URLParam(r, "tripID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}

// UpdateParticipant handles PATCH /trips/{tripID}/participants/{name}.
//
// The body is a partial update: only keys present in the JSON change the
// participant. Decoding goes through a raw key map because a plain struct
// cannot distinguish an absent field from one explicitly set to null — and
// "max_days": null legitimately means "clear the limit".
func (s *Server) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
	patch, err := decodeParticipantPatch(r.Body)
	if err != nil {
		s.writeBadRequest(w, err.Error())
		return
	}

	trip, err := s.trips.UpdateParticipant(
		r.Context(),
		middleware.DeviceID(r.Context()),
		chi.URLParam(r, "tripID"),
		chi.URLParam(r, "name"),
		patch,
	)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respond(w, http.StatusOK, trip)
}

type addDestinationRequest struct {
	Countries []string `json:"countries"`
}

// AddDestination handles POST /trips/{tripID}/destinations.
func (s *Server) AddDestination(w http.ResponseWriter, r *http.Request) {
	var req addDestinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeBadRequest(w, "malformed request body")
		return
	}

	trip, err := s.trips.AddDestination(r.Context(), middleware.DeviceID(r.Context()), chi.URLParam(r, "tripID"), req.Countries)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, trip)
}

// RemoveDestination handles DELETE /trips/{tripID}/destinations/{destinationID}.
func (s *Server) RemoveDestination(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.RemoveDestination(r.Context(), middleware.DeviceID(r.Context()), chi.URLParam(r, "tripID"), chi.URLParam(r, "destinationID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respond(w, http.StatusOK, trip)
}

type voteRequest struct {
	Rank int `json:"rank" validate:"required,min=1"`
}

// RecordVote handles PUT /trips/{tripID}/destinations/{destinationID}/votes/{participant}.
func (s *Server) RecordVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := s.decodeValid(r, &req); err != nil {
		s.writeBadRequest(w, "rank must be an integer of 1 or higher")
		return
	}

	trip, err := s.trips.RecordVote(
		r.Context(),
		middleware.DeviceID(r.Context()),
		chi.URLParam(r, "tripID"),
		chi.URLParam(r, "destinationID"),
		chi.URLParam(r, "participant"),
		req.Rank,
	)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respond(w, http.StatusOK, trip)
}

// GetWindow handles GET /trips/{tripID}/window: the contiguous runs of days
// on which every participant is free.
func (s *Server) GetWindow(w http.ResponseWriter, r *http.Request) {
	windows, err := s.trips.Window(r.Context(), middleware.DeviceID(r.Context()), chi.URLParam(r, "tripID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]any{"windows": windows})
}

// GenerateRecommendations handles POST /trips/{tripID}/recommendations.
// Only available once every participant has completed their inputs.
func (s *Server) GenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.Recommend(r.Context(), middleware.DeviceID(r.Context()), chi.URLParam(r, "tripID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respond(w, http.StatusOK, trip)
}

// decodeParticipantPatch builds a domain.ParticipantPatch from a JSON body,
// marking only the keys actually present.
func decodeParticipantPatch(body io.Reader) (domain.ParticipantPatch, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return domain.ParticipantPatch{}, errors.New("malformed request body")
	}

	var patch domain.ParticipantPatch

	if v, ok := raw["availableRanges"]; ok {
		var ranges []domain.DateRange
		if err := json.Unmarshal(v, &ranges); err != nil {
			return domain.ParticipantPatch{}, fmt.Errorf("availableRanges: expected a list of {start, end} dates")
		}
		for _, rng := range ranges {
			if rng.End.Before(rng.Start.Time) {
				return domain.ParticipantPatch{}, fmt.Errorf("availableRanges: range end %s is before start %s", rng.End, rng.Start)
			}
		}
		patch.AvailableRanges = domain.Some(ranges)
	}
	if v, ok := raw["maxDays"]; ok {
		var n *int
		if err := json.Unmarshal(v, &n); err != nil {
			return domain.ParticipantPatch{}, errors.New("maxDays: expected an integer or null")
		}
		patch.MaxDays = domain.Some(n)
	}
	if v, ok := raw["maxWeeks"]; ok {
		var n *int
		if err := json.Unmarshal(v, &n); err != nil {
			return domain.ParticipantPatch{}, errors.New("maxWeeks: expected an integer or null")
		}
		patch.MaxWeeks = domain.Some(n)
	}
	if v, ok := raw["departureCity"]; ok {
		var city string
		if err := json.Unmarshal(v, &city); err != nil {
			return domain.ParticipantPatch{}, errors.New("departureCity: expected a string")
		}
		patch.DepartureCity = domain.Some(city)
	}
	if v, ok := raw["nationality"]; ok {
		var nat string
		if err := json.Unmarshal(v, &nat); err != nil {
			return domain.ParticipantPatch{}, errors.New("nationality: expected a string")
		}
		patch.Nationality = domain.Some(nat)
	}
	if v, ok := raw["interests"]; ok {
		var interests []string
		if err := json.Unmarshal(v, &interests); err != nil {
			return domain.ParticipantPatch{}, errors.New("interests: expected a list of strings")
		}
		patch.Interests = domain.Some(interests)
	}
	if v, ok := raw["completed"]; ok {
		var done bool
		if err := json.Unmarshal(v, &done); err != nil {
			return domain.ParticipantPatch{}, errors.New("completed: expected a boolean")
		}
		patch.Completed = domain.Some(done)
	}

	return patch, nil
}
