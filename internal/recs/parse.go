// Package recs is the boundary to the external AI recommendation service:
// building the prompt from trip data, issuing the single best-effort request,
// and normalizing the free-form response text into structured recommendations.
// No AI logic lives here — the model is an opaque collaborator that produces
// text.
package recs

import (
	"encoding/json"

	"github.com/tripweave/backend/internal/domain"
)

// payload mirrors the JSON contract the prompt asks the model to follow.
type payload struct {
	Recommendations []struct {
		Rank          int    `json:"rank"`
		Destination   string `json:"destination"`
		Dates         string `json:"dates"`
		Weather       string `json:"weather"`
		Flights       string `json:"flight_estimate"`
		Accommodation string `json:"accommodation_estimate"`
		Reasoning     string `json:"reasoning"`
	} `json:"recommendations"`
}

// Parse extracts structured recommendations from free-form model output.
// The model is asked for bare JSON but routinely wraps it in prose or code
// fences, so Parse scans for the first balanced brace-delimited object and
// parses that. Any failure — no JSON found, unbalanced braces, parse error,
// or a missing "recommendations" array — yields a single fallback
// recommendation whose Destination is domain.RecommendationFailed and whose
// Reasoning carries the raw text, so downstream always has something
// displayable and a canonical failure signal to test for.
func Parse(raw string) []domain.Recommendation {
	obj := firstJSONObject(raw)
	if obj == "" {
		return fallback(raw)
	}

	var p payload
	if err := json.Unmarshal([]byte(obj), &p); err != nil || p.Recommendations == nil {
		return fallback(raw)
	}

	out := make([]domain.Recommendation, 0, len(p.Recommendations))
	for _, r := range p.Recommendations {
		out = append(out, domain.Recommendation{
			Rank:                  r.Rank,
			Destination:           r.Destination,
			Dates:                 r.Dates,
			Weather:               r.Weather,
			FlightEstimate:        r.Flights,
			AccommodationEstimate: r.Accommodation,
			Reasoning:             r.Reasoning,
		})
	}
	return out
}

// fallback wraps the raw response in the sentinel "generation failed"
// recommendation.
func fallback(raw string) []domain.Recommendation {
	return []domain.Recommendation{{
		Rank:        1,
		Destination: domain.RecommendationFailed,
		Reasoning:   raw,
	}}
}

// firstJSONObject returns the first balanced {...} substring of s, honoring
// string literals and escapes so braces inside quoted text don't miscount.
// Returns "" when no balanced object exists.
func firstJSONObject(s string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
