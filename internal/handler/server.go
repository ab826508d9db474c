// Package handler implements the HTTP handlers for the TripWeave API.
// All handlers are methods on Server. Methods are split into resource-specific
// files (trip.go, share.go, settings.go, health.go) but share the one Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tripweave/backend/internal/daterange"
	"github.com/tripweave/backend/internal/domain"
	"github.com/tripweave/backend/internal/middleware"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here, in the consumer package, follows the Go
// convention "accept interfaces, return concrete types" and lets handler
// tests inject a mock without touching the service or repo layers.
type TripServicer interface {
	Create(ctx context.Context, deviceID uuid.UUID, name string, participants []string) (domain.Trip, error)
	Get(ctx context.Context, deviceID uuid.UUID, tripID string) (domain.Trip, error)
	List(ctx context.Context, deviceID uuid.UUID) ([]domain.Trip, error)
	Delete(ctx context.Context, deviceID uuid.UUID, tripID string) error
	UpdateParticipant(ctx context.Context, deviceID uuid.UUID, tripID, name string, patch domain.ParticipantPatch) (domain.Trip, error)
	AddDestination(ctx context.Context, deviceID uuid.UUID, tripID string, countries []string) (domain.Trip, error)
	RemoveDestination(ctx context.Context, deviceID uuid.UUID, tripID, destinationID string) (domain.Trip, error)
	RecordVote(ctx context.Context, deviceID uuid.UUID, tripID, destinationID, participant string, rank int) (domain.Trip, error)
	Window(ctx context.Context, deviceID uuid.UUID, tripID string) ([]daterange.Window, error)
	Share(ctx context.Context, deviceID uuid.UUID, tripID string) (token, url string, err error)
	Import(ctx context.Context, deviceID uuid.UUID, linkOrToken string) (domain.Trip, error)
	Recommend(ctx context.Context, deviceID uuid.UUID, tripID string) (domain.Trip, error)
}

// SettingsServicer defines the settings operations the handlers depend on.
type SettingsServicer interface {
	Theme(ctx context.Context, deviceID uuid.UUID) (string, error)
	SetTheme(ctx context.Context, deviceID uuid.UUID, theme string) error
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	trips    TripServicer
	settings SettingsServicer
	validate *validator.Validate
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, settings SettingsServicer, log *slog.Logger) *Server {
	return &Server{
		trips:    trips,
		settings: settings,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// Routes assembles the API router. Everything except the health check
// requires a device identity, since all state is device-scoped.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireDeviceID)

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.CreateTrip)
			r.Get("/", s.ListTrips)
			r.Post("/import", s.ImportTrip)

			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Delete("/", s.DeleteTrip)
				r.Get("/window", s.GetWindow)
				r.Get("/share", s.ShareTrip)
				r.Post("/recommendations", s.GenerateRecommendations)
				r.Patch("/participants/{name}", s.UpdateParticipant)
				r.Post("/destinations", s.AddDestination)
				r.Delete("/destinations/{destinationID}", s.RemoveDestination)
				r.Put("/destinations/{destinationID}/votes/{participant}", s.RecordVote)
			})
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/theme", s.GetTheme)
			r.Put("/theme", s.PutTheme)
		})
	})

	return r
}

// decodeValid decodes the JSON request body into v and runs struct
// validation. The returned error message is safe to echo to the client.
func (s *Server) decodeValid(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return s.validate.Struct(v)
}

// respond writes v as a JSON response with the given status.
// A nil v writes the status line only.
func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	if v == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "error", err)
	}
}
