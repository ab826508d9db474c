// Package domain contains the core data types and trip-state transformations
// for the TripWeave planner. Every operation here is a pure transformation of
// an explicit Trip value — there is no ambient "current trip" singleton; the
// hosting application owns the single live instance and threads it through.
// This package has no dependencies beyond the UUID generator and is imported
// by every other internal package (daterange, share, recs, repo, service,
// handler).
package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// TripPreferences holds trip-wide (not per-participant) planning preferences.
type TripPreferences struct {
	DirectFlightsOnly bool `json:"directFlightsOnly"`
}

// DestinationOption is one candidate destination subject to ranked voting.
// Votes maps participant name to rank, where 1 is that participant's first
// choice. An option with zero countries is considered empty and is pruned
// before being persisted or voted on.
type DestinationOption struct {
	ID        string         `json:"id"`
	Countries []string       `json:"countries"`
	Votes     map[string]int `json:"votes"`
}

// Recommendation is the structured payload produced by the external AI
// collaborator. Beyond structural presence the fields are opaque to the core;
// semantic validation is not attempted. A Destination equal to
// RecommendationFailed marks the canonical "generation failed" sentinel.
type Recommendation struct {
	Rank                  int    `json:"rank"`
	Destination           string `json:"destination"`
	Dates                 string `json:"dates"`
	Weather               string `json:"weather,omitempty"`
	FlightEstimate        string `json:"flightEstimate,omitempty"`
	AccommodationEstimate string `json:"accommodationEstimate,omitempty"`
	Reasoning             string `json:"reasoning,omitempty"`
}

// RecommendationFailed is the sentinel Destination value carried by the single
// fallback recommendation produced when an AI response cannot be parsed.
// Callers test Destination against this label rather than inspecting errors.
const RecommendationFailed = "generation-failed"

// Trip is the root aggregate: one planning session shared among participants.
// A Trip received via a shared link is an independent value until merged with
// any local copy sharing the same ID.
type Trip struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Participants []Participant       `json:"participants"`
	Destinations []DestinationOption `json:"destinations"`
	Preferences  TripPreferences     `json:"preferences"`
	CreatedAt    time.Time           `json:"createdAt"`

	// CurrentUser names the participant this device is acting as.
	// Empty when the device has not yet claimed an identity.
	// Invariant: when set it must name an existing participant.
	CurrentUser string `json:"currentUser,omitempty"`

	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

// NewTrip creates a trip with one blank participant per name.
// Returns ErrValidation when no participant names are given — a trip is never
// empty post-creation.
func NewTrip(name string, participantNames []string) (Trip, error) {
	if name == "" {
		return Trip{}, fmt.Errorf("%w: trip name is required", ErrValidation)
	}
	if len(participantNames) == 0 {
		return Trip{}, fmt.Errorf("%w: at least one participant is required", ErrValidation)
	}

	participants := make([]Participant, 0, len(participantNames))
	for _, n := range dedupe(participantNames) {
		if n == "" {
			return Trip{}, fmt.Errorf("%w: participant names must not be empty", ErrValidation)
		}
		participants = append(participants, Participant{Name: n})
	}

	return Trip{
		ID:           uuid.NewString(),
		Name:         name,
		Participants: participants,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Participant returns a pointer to the named participant, or nil when absent.
func (t *Trip) Participant(name string) *Participant {
	for i := range t.Participants {
		if t.Participants[i].Name == name {
			return &t.Participants[i]
		}
	}
	return nil
}

// UpdateParticipant applies a partial update to the named participant.
// Unknown names are a silent no-op — callers that need to surface "no such
// participant" must check existence first (see Trip.Participant).
func (t *Trip) UpdateParticipant(name string, patch ParticipantPatch) {
	if p := t.Participant(name); p != nil {
		patch.apply(p)
	}
}

// SetCurrentUser records which participant this device acts as.
// Returns ErrValidation when the name does not match any participant.
func (t *Trip) SetCurrentUser(name string) error {
	if t.Participant(name) == nil {
		return fmt.Errorf("%w: no participant named %q", ErrValidation, name)
	}
	t.CurrentUser = name
	return nil
}

// AllCompleted reports whether every participant has marked their inputs
// final. This is the single gate that unlocks recommendation generation.
func (t Trip) AllCompleted() bool {
	for _, p := range t.Participants {
		if !p.Completed {
			return false
		}
	}
	return len(t.Participants) > 0
}

// AddDestination appends a fresh blank destination option and returns its ID.
func (t *Trip) AddDestination() string {
	d := DestinationOption{ID: uuid.NewString(), Votes: map[string]int{}}
	t.Destinations = append(t.Destinations, d)
	return d.ID
}

// RemoveDestination deletes the option with the given ID. Removing the last
// remaining option is allowed; the list may become empty.
func (t *Trip) RemoveDestination(id string) {
	for i, d := range t.Destinations {
		if d.ID == id {
			t.Destinations = append(t.Destinations[:i], t.Destinations[i+1:]...)
			return
		}
	}
}

// PruneEmptyDestinations drops options with zero countries. Call before
// persisting or opening voting — a countryless option is incomplete.
func (t *Trip) PruneEmptyDestinations() {
	kept := t.Destinations[:0]
	for _, d := range t.Destinations {
		if len(d.Countries) > 0 {
			kept = append(kept, d)
		}
	}
	t.Destinations = kept
}

// RecordVote sets the participant's rank (1 = best) on the matching
// destination. Rank uniqueness across a participant's own votes is
// caller-enforced; an unknown destination ID is a silent no-op.
func (t *Trip) RecordVote(destinationID, participantName string, rank int) {
	for i := range t.Destinations {
		if t.Destinations[i].ID != destinationID {
			continue
		}
		if t.Destinations[i].Votes == nil {
			t.Destinations[i].Votes = map[string]int{}
		}
		t.Destinations[i].Votes[participantName] = rank
		return
	}
}

// AverageRank returns the mean of all votes on the option. The boolean is
// false when the option has no votes at all — "unranked" is an explicit state
// here, and unranked options sort after every ranked one.
func AverageRank(d DestinationOption) (float64, bool) {
	if len(d.Votes) == 0 {
		return 0, false
	}
	sum := 0
	for _, rank := range d.Votes {
		sum += rank
	}
	return float64(sum) / float64(len(d.Votes)), true
}

// RankDestinations returns the trip's destinations ordered best-first by
// average vote rank. Unranked options come last; ties keep their pre-existing
// order (stable sort).
func RankDestinations(t Trip) []DestinationOption {
	ranked := make([]DestinationOption, len(t.Destinations))
	copy(ranked, t.Destinations)

	sort.SliceStable(ranked, func(i, j int) bool {
		ai, iRanked := AverageRank(ranked[i])
		aj, jRanked := AverageRank(ranked[j])
		switch {
		case iRanked && !jRanked:
			return true
		case !iRanked:
			return false
		default:
			return ai < aj
		}
	})
	return ranked
}
