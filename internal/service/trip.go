// Package service contains the business logic for the TripWeave API.
// Services validate inputs, enforce business rules, and orchestrate the pure
// core packages (domain, daterange, share, recs) against the repo layer.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tripweave/backend/internal/daterange"
	"github.com/tripweave/backend/internal/domain"
	"github.com/tripweave/backend/internal/recs"
	"github.com/tripweave/backend/internal/repo"
	"github.com/tripweave/backend/internal/share"
)

// Recommender is the external AI collaborator boundary: one prompt in, one
// raw text blob out. Implemented by recs.Client in production and by a hand
// mock in tests.
type Recommender interface {
	Recommend(ctx context.Context, prompt string) (string, error)
}

// TripService implements business logic for trip planning operations.
// Every operation loads the device's snapshot, transforms the explicit Trip
// value through the domain/daterange/share packages, and re-persists it —
// the service owns the read/modify/write cycle, the core stays pure.
type TripService struct {
	repo        repo.TripListRepo
	recommender Recommender
	shareBase   string
}

// NewTripService constructs a TripService. shareBase is the origin+path that
// share links are built on (the token goes in the fragment).
func NewTripService(r repo.TripListRepo, rec Recommender, shareBase string) *TripService {
	return &TripService{repo: r, recommender: rec, shareBase: shareBase}
}

// Create builds a new trip with one blank participant per name and stores it
// in the device's trip list.
func (s *TripService) Create(ctx context.Context, deviceID uuid.UUID, name string, participants []string) (domain.Trip, error) {
	trip, err := domain.NewTrip(name, participants)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	if err := s.repo.Put(ctx, deviceID, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return trip, nil
}

// Get returns the device's snapshot of one trip.
func (s *TripService) Get(ctx context.Context, deviceID uuid.UUID, tripID string) (domain.Trip, error) {
	trip, err := s.repo.Get(ctx, deviceID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return trip, nil
}

// List returns the device's trips in most-recently-used order.
func (s *TripService) List(ctx context.Context, deviceID uuid.UUID) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	return trips, nil
}

// Delete removes a trip from the device's list. This is the only way a trip
// is ever deleted.
func (s *TripService) Delete(ctx context.Context, deviceID uuid.UUID, tripID string) error {
	if err := s.repo.Delete(ctx, deviceID, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// UpdateParticipant applies a partial update to one participant.
// The domain-level update is a silent no-op for unknown names, so existence
// is pre-validated here where "no such participant" needs surfacing as a 404.
func (s *TripService) UpdateParticipant(ctx context.Context, deviceID uuid.UUID, tripID, name string, patch domain.ParticipantPatch) (domain.Trip, error) {
	trip, err := s.repo.Get(ctx, deviceID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateParticipant: %w", err)
	}
	if trip.Participant(name) == nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateParticipant: participant: %w", domain.ErrNotFound)
	}

	trip.UpdateParticipant(name, patch)

	if err := s.repo.Put(ctx, deviceID, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateParticipant: %w", err)
	}
	return trip, nil
}

// AddDestination appends a blank destination option to the trip.
// Blank options are kept in the working snapshot so the client can fill them
// in; they are pruned on the paths that consume destinations (voting,
// sharing, recommendations).
func (s *TripService) AddDestination(ctx context.Context, deviceID uuid.UUID, tripID string, countries []string) (domain.Trip, error) {
	trip, err := s.repo.Get(ctx, deviceID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.AddDestination: %w", err)
	}

	id := trip.AddDestination()
	if len(countries) > 0 {
		for i := range trip.Destinations {
			if trip.Destinations[i].ID == id {
				trip.Destinations[i].Countries = countries
			}
		}
	}

	if err := s.repo.Put(ctx, deviceID, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.AddDestination: %w", err)
	}
	return trip, nil
}

// RemoveDestination deletes one destination option. Removing the last option
// is allowed; the client repopulates the empty list with a fresh blank.
func (s *TripService) RemoveDestination(ctx context.Context, deviceID uuid.UUID, tripID, destinationID string) (domain.Trip, error) {
	trip, err := s.repo.Get(ctx, deviceID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.RemoveDestination: %w", err)
	}

	trip.RemoveDestination(destinationID)

	if err := s.repo.Put(ctx, deviceID, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.RemoveDestination: %w", err)
	}
	return trip, nil
}

// RecordVote stores a participant's rank for a destination. Empty options are
// pruned first — a countryless destination cannot be voted on.
func (s *TripService) RecordVote(ctx context.Context, deviceID uuid.UUID, tripID, destinationID, participant string, rank int) (domain.Trip, error) {
	if rank < 1 {
		return domain.Trip{}, fmt.Errorf("service.TripService.RecordVote: %w: rank must be 1 or higher", domain.ErrValidation)
	}

	trip, err := s.repo.Get(ctx, deviceID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.RecordVote: %w", err)
	}
	if trip.Participant(participant) == nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.RecordVote: participant: %w", domain.ErrNotFound)
	}

	trip.PruneEmptyDestinations()

	found := false
	for _, d := range trip.Destinations {
		if d.ID == destinationID {
			found = true
			break
		}
	}
	if !found {
		return domain.Trip{}, fmt.Errorf("service.TripService.RecordVote: destination: %w", domain.ErrNotFound)
	}

	trip.RecordVote(destinationID, participant, rank)

	if err := s.repo.Put(ctx, deviceID, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.RecordVote: %w", err)
	}
	return trip, nil
}

// Window computes the availability intersection across all participants:
// the contiguous runs of days on which everyone is free.
func (s *TripService) Window(ctx context.Context, deviceID uuid.UUID, tripID string) ([]daterange.Window, error) {
	trip, err := s.repo.Get(ctx, deviceID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Window: %w", err)
	}

	lists := make([][]domain.DateRange, len(trip.Participants))
	for i, p := range trip.Participants {
		lists[i] = p.AvailableRanges
	}
	return daterange.Intersect(lists), nil
}

// Share encodes the trip into a URL-safe token and the full shareable link.
// Empty destination options are pruned before encoding so peers never receive
// incomplete options.
func (s *TripService) Share(ctx context.Context, deviceID uuid.UUID, tripID string) (token, url string, err error) {
	trip, err := s.repo.Get(ctx, deviceID, tripID)
	if err != nil {
		return "", "", fmt.Errorf("service.TripService.Share: %w", err)
	}

	trip.PruneEmptyDestinations()

	token, err = share.Encode(trip)
	if err != nil {
		return "", "", fmt.Errorf("service.TripService.Share: %w", err)
	}
	url, err = share.URL(s.shareBase, trip)
	if err != nil {
		return "", "", fmt.Errorf("service.TripService.Share: %w", err)
	}
	return token, url, nil
}

// Import decodes a trip from a share link (or a bare token) and reconciles it
// with the device's cached copy of the same trip, if one exists. The merged
// snapshot replaces the cached one and becomes the device's working copy.
func (s *TripService) Import(ctx context.Context, deviceID uuid.UUID, linkOrToken string) (domain.Trip, error) {
	incoming := share.FromURL(linkOrToken)
	if incoming == nil {
		incoming = share.Decode(linkOrToken)
	}
	if incoming == nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Import: %w: link does not contain a valid trip", domain.ErrValidation)
	}

	merged := *incoming
	local, err := s.repo.Get(ctx, deviceID, incoming.ID)
	switch {
	case err == nil:
		merged = share.Merge(local, *incoming)
	case errors.Is(err, domain.ErrNotFound):
		// First time this device sees the trip — the incoming copy stands alone.
	default:
		return domain.Trip{}, fmt.Errorf("service.TripService.Import: %w", err)
	}

	if err := s.repo.Put(ctx, deviceID, merged); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Import: %w", err)
	}
	return merged, nil
}

// Recommend asks the external AI collaborator for destination/date
// recommendations and stores the parsed result on the trip.
//
// Gated on every participant having completed their inputs. The upstream call
// is single best-effort: an upstream failure surfaces as domain.ErrUpstream
// and nothing is stored; an unparsable response stores the sentinel fallback
// recommendation, which is still a success at this level.
func (s *TripService) Recommend(ctx context.Context, deviceID uuid.UUID, tripID string) (domain.Trip, error) {
	trip, err := s.repo.Get(ctx, deviceID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Recommend: %w", err)
	}
	if !trip.AllCompleted() {
		return domain.Trip{}, fmt.Errorf("service.TripService.Recommend: %w: all participants must complete their inputs first", domain.ErrValidation)
	}

	trip.PruneEmptyDestinations()

	lists := make([][]domain.DateRange, len(trip.Participants))
	for i, p := range trip.Participants {
		lists[i] = p.AvailableRanges
	}
	windows := daterange.Intersect(lists)
	ranked := domain.RankDestinations(trip)

	prompt := recs.BuildPrompt(trip, windows, ranked)
	raw, err := s.recommender.Recommend(ctx, prompt)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Recommend: %w", err)
	}

	trip.Recommendations = recs.Parse(raw)

	if err := s.repo.Put(ctx, deviceID, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Recommend: %w", err)
	}
	return trip, nil
}
