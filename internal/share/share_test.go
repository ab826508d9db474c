package share_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweave/backend/internal/domain"
	"github.com/tripweave/backend/internal/share"
)

// tripFixture returns a fully populated trip so round-trip tests exercise
// every field, not just the happy-path skeleton.
func tripFixture() domain.Trip {
	maxDays := 10
	return domain.Trip{
		ID:   "trip-123",
		Name: "Summer Trip",
		Participants: []domain.Participant{
			{
				Name: "Ana",
				AvailableRanges: []domain.DateRange{
					{Start: domain.NewDate(2024, time.June, 1), End: domain.NewDate(2024, time.June, 10)},
					{Start: domain.NewDate(2024, time.July, 3), End: domain.NewDate(2024, time.July, 3)},
				},
				MaxDays:       &maxDays,
				DepartureCity: "Lisbon",
				Nationality:   "PT",
				Interests:     []string{"hiking", "food"},
				Completed:     true,
			},
			{Name: "Ben"},
		},
		Destinations: []domain.DestinationOption{
			{ID: "d1", Countries: []string{"Japan"}, Votes: map[string]int{"Ana": 1}},
		},
		Preferences: domain.TripPreferences{DirectFlightsOnly: true},
		CreatedAt:   time.Date(2024, time.May, 1, 9, 30, 0, 0, time.UTC),
		CurrentUser: "Ana",
		Recommendations: []domain.Recommendation{
			{Rank: 1, Destination: "Kyoto", Dates: "2024-06-05 to 2024-06-09", Reasoning: "everyone is free"},
		},
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	trip := tripFixture()

	token, err := share.Encode(trip)
	require.NoError(t, err)
	assert.NotContains(t, token, "=", "token is unpadded and URL-safe")
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")

	got := share.Decode(token)

	require.NotNil(t, got)
	assert.Equal(t, trip, *got, "decode(encode(trip)) must reproduce the trip byte for byte")
}

func TestDecode_Malformed(t *testing.T) {
	for name, token := range map[string]string{
		"empty":           "",
		"not base64":      "not-valid-base64!!!",
		"base64 not json": "aGVsbG8gd29ybGQ", // "hello world"
		"json not a trip": "eyJmb28iOiAxfQ",  // {"foo": 1}
		"json empty obj":  "e30",             // {}
		"json scalar":     "NDI",             // 42
	} {
		assert.Nil(t, share.Decode(token), "case %q must decode to nil, not panic", name)
	}
}

func TestFromURL(t *testing.T) {
	trip := tripFixture()
	url, err := share.URL("https://tripweave.app/plan", trip)
	require.NoError(t, err)

	got := share.FromURL(url)

	require.NotNil(t, got)
	assert.Equal(t, trip.ID, got.ID)
	assert.Equal(t, trip.Name, got.Name)
}

func TestFromURL_OtherFragmentContentIgnored(t *testing.T) {
	trip := tripFixture()
	token, err := share.Encode(trip)
	require.NoError(t, err)

	got := share.FromURL("https://tripweave.app/plan#section=top&trip=" + token + "&utm=share")

	require.NotNil(t, got)
	assert.Equal(t, trip.ID, got.ID)
}

func TestFromURL_Malformed(t *testing.T) {
	for name, raw := range map[string]string{
		"invalid token":  "https://x/#trip=not-valid-base64",
		"no fragment":    "https://x/plan",
		"no trip marker": "https://x/#theme=dark",
		"empty token":    "https://x/#trip=",
		"bare garbage":   "::::not a url####",
	} {
		assert.Nil(t, share.FromURL(raw), "case %q must yield nil, never an error", name)
	}
}
