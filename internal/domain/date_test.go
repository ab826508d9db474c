package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweave/backend/internal/domain"
)

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate("2024-06-05")

	require.NoError(t, err)
	assert.Equal(t, "2024-06-05", d.String())
	assert.Equal(t, time.UTC, d.Location())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "June 5 2024", "2024-13-01", "2024-06-05T10:00:00Z"} {
		_, err := domain.ParseDate(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestDateOf_TruncatesToMidnightUTC(t *testing.T) {
	// 23:30 in UTC+2 is 21:30 UTC on the same calendar day in that zone.
	instant := time.Date(2024, time.June, 5, 23, 30, 0, 0, time.FixedZone("CEST", 2*60*60))

	d := domain.DateOf(instant)

	assert.Equal(t, "2024-06-05", d.String())
	assert.Equal(t, 0, d.Hour())
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := domain.NewDate(2024, time.June, 5)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-05"`, string(b))

	var back domain.Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Equal(d.Time))
}

func TestDate_UnmarshalRejectsGarbage(t *testing.T) {
	var d domain.Date
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`42`), &d))
}

func TestNewDateRange_SwapsReversedEndpoints(t *testing.T) {
	a := domain.NewDate(2024, time.June, 10)
	b := domain.NewDate(2024, time.June, 3)

	r := domain.NewDateRange(a, b)

	assert.Equal(t, b, r.Start)
	assert.Equal(t, a, r.End)
	assert.Equal(t, 8, r.Days())
}

func TestDateRange_SingleDay(t *testing.T) {
	d := domain.NewDate(2024, time.June, 5)
	r := domain.NewDateRange(d, d)

	assert.Equal(t, 1, r.Days())
	assert.True(t, r.Contains(d))
	assert.False(t, r.Contains(d.AddDays(1)))
}
