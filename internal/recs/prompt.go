package recs

import (
	"fmt"
	"strings"

	"github.com/tripweave/backend/internal/daterange"
	"github.com/tripweave/backend/internal/domain"
)

// BuildPrompt renders the trip's constraints into the single prompt string
// handed to the recommendation service. It is a pure function of the trip,
// the precomputed availability windows, and the vote-ranked destinations —
// this seam is where a different recommendation backend would plug in without
// touching the core model.
func BuildPrompt(t domain.Trip, windows []daterange.Window, ranked []domain.DestinationOption) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are planning a group trip named %q for %d participants.\n\n", t.Name, len(t.Participants))

	b.WriteString("Shared available travel windows (everyone is free):\n")
	if len(windows) == 0 {
		b.WriteString("- none found; suggest dates that minimize conflicts\n")
	}
	for _, w := range windows {
		fmt.Fprintf(&b, "- %s to %s (%d days)\n", w.Start, w.End, w.Days)
	}

	b.WriteString("\nParticipants and constraints:\n")
	for _, p := range t.Participants {
		fmt.Fprintf(&b, "- %s", p.Name)
		if p.DepartureCity != "" {
			fmt.Fprintf(&b, ", departing from %s", p.DepartureCity)
		}
		if p.Nationality != "" {
			fmt.Fprintf(&b, ", nationality %s", p.Nationality)
		}
		if p.MaxDays != nil {
			fmt.Fprintf(&b, ", at most %d days", *p.MaxDays)
		}
		if len(p.Interests) > 0 {
			fmt.Fprintf(&b, ", interested in %s", strings.Join(p.Interests, ", "))
		}
		b.WriteString("\n")
	}

	if len(ranked) > 0 {
		b.WriteString("\nDestination options, ordered by the group's vote (best first):\n")
		for i, d := range ranked {
			fmt.Fprintf(&b, "%d. %s", i+1, strings.Join(d.Countries, "/"))
			if avg, ok := domain.AverageRank(d); ok {
				fmt.Fprintf(&b, " (average rank %.1f)", avg)
			} else {
				b.WriteString(" (unranked)")
			}
			b.WriteString("\n")
		}
	}

	if t.Preferences.DirectFlightsOnly {
		b.WriteString("\nOnly consider destinations reachable with direct flights for every participant.\n")
	}

	b.WriteString(`
Recommend up to three destination/date combinations. Respond with JSON only,
no prose, matching exactly this shape:
{"recommendations":[{"rank":1,"destination":"...","dates":"...","weather":"...","flight_estimate":"...","accommodation_estimate":"...","reasoning":"..."}]}
`)

	return b.String()
}
