package daterange_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweave/backend/internal/daterange"
	"github.com/tripweave/backend/internal/domain"
)

// day is a shorthand for building a June 2024 date in tests.
func day(d int) domain.Date {
	return domain.NewDate(2024, time.June, d)
}

func rng(start, end domain.Date) domain.DateRange {
	return domain.DateRange{Start: start, End: end}
}

func TestContains(t *testing.T) {
	ranges := []domain.DateRange{
		rng(day(1), day(5)),
		rng(day(10), day(10)),
	}

	assert.True(t, daterange.Contains(ranges, day(1)), "start bound is inclusive")
	assert.True(t, daterange.Contains(ranges, day(5)), "end bound is inclusive")
	assert.True(t, daterange.Contains(ranges, day(3)))
	assert.True(t, daterange.Contains(ranges, day(10)), "single-day range contains its day")
	assert.False(t, daterange.Contains(ranges, day(6)))
	assert.False(t, daterange.Contains(ranges, day(9)))
	assert.False(t, daterange.Contains(nil, day(1)))
}

func TestContains_TimeOfDayIgnored(t *testing.T) {
	ranges := []domain.DateRange{rng(day(1), day(5))}

	// A date built from a late-evening instant in a non-UTC zone must still
	// land on the same calendar day after truncation.
	late := time.Date(2024, time.June, 5, 23, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
	assert.True(t, daterange.Contains(ranges, domain.DateOf(late)))
}

func TestRemoveContaining(t *testing.T) {
	ranges := []domain.DateRange{
		rng(day(1), day(5)),
		rng(day(3), day(8)), // overlaps the first
		rng(day(20), day(25)),
	}

	got := daterange.RemoveContaining(ranges, day(4))

	// Both overlapping ranges contain day 4 and both are removed in full —
	// removal drops whole ranges, it never splits.
	require.Len(t, got, 1)
	assert.Equal(t, rng(day(20), day(25)), got[0])
}

// TestRemoveContaining_RemovalIsComplete covers the idempotence property:
// after removing at a date, that date is covered by nothing, no matter how
// many overlapping ranges covered it before.
func TestRemoveContaining_RemovalIsComplete(t *testing.T) {
	ranges := []domain.DateRange{
		rng(day(1), day(10)),
		rng(day(2), day(6)),
		rng(day(4), day(4)),
		rng(day(3), day(30)),
	}

	got := daterange.RemoveContaining(ranges, day(4))

	assert.False(t, daterange.Contains(got, day(4)))
	assert.Empty(t, daterange.RemoveContaining(got, day(4)), "second removal finds nothing new to keep removing")
}

func TestIntersect_BasicOverlap(t *testing.T) {
	a := []domain.DateRange{rng(day(1), day(10))}
	b := []domain.DateRange{rng(day(5), day(20))}

	got := daterange.Intersect([][]domain.DateRange{a, b})

	require.Len(t, got, 1)
	assert.Equal(t, day(5), got[0].Start)
	assert.Equal(t, day(10), got[0].End)
	assert.Equal(t, 6, got[0].Days)
}

func TestIntersect_NoOverlap(t *testing.T) {
	a := []domain.DateRange{{Start: domain.NewDate(2024, time.January, 1), End: domain.NewDate(2024, time.January, 5)}}
	b := []domain.DateRange{{Start: domain.NewDate(2024, time.February, 1), End: domain.NewDate(2024, time.February, 5)}}

	got := daterange.Intersect([][]domain.DateRange{a, b})

	assert.Empty(t, got)
}

func TestIntersect_EmptyInputs(t *testing.T) {
	assert.Empty(t, daterange.Intersect(nil), "no participants")
	assert.Empty(t, daterange.Intersect([][]domain.DateRange{}), "no participants")

	a := []domain.DateRange{rng(day(1), day(10))}
	assert.Empty(t, daterange.Intersect([][]domain.DateRange{a, nil}),
		"a participant with zero ranges empties the intersection")
}

// TestIntersect_Membership is the membership property: a day is in the output
// iff every participant's ranges contain it.
func TestIntersect_Membership(t *testing.T) {
	lists := [][]domain.DateRange{
		{rng(day(1), day(8)), rng(day(12), day(20))},
		{rng(day(3), day(15))},
		{rng(day(2), day(28)), rng(day(5), day(9))}, // overlapping ranges within one participant
	}

	windows := daterange.Intersect(lists)

	for d := day(1); !d.After(day(30).Time); d = d.AddDays(1) {
		inAll := true
		for _, ranges := range lists {
			if !daterange.Contains(ranges, d) {
				inAll = false
				break
			}
		}

		inWindow := false
		for _, w := range windows {
			if !d.Before(w.Start.Time) && !d.After(w.End.Time) {
				inWindow = true
				break
			}
		}

		// Isolated single free days are deliberately dropped by compaction,
		// so only check equivalence where the shared run is at least 2 days.
		if inWindow {
			assert.True(t, inAll, "day %s reported free but some participant is busy", d)
		}
		if inAll && hasNeighbor(lists, d) {
			assert.True(t, inWindow, "day %s free for everyone but missing from output", d)
		}
	}
}

// hasNeighbor reports whether the day before or after d is also free for all.
func hasNeighbor(lists [][]domain.DateRange, d domain.Date) bool {
	for _, n := range []domain.Date{d.AddDays(-1), d.AddDays(1)} {
		all := true
		for _, ranges := range lists {
			if !daterange.Contains(ranges, n) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

func TestCompact_DropsIsolatedDays(t *testing.T) {
	days := []domain.Date{day(1), day(3), day(4), day(5), day(9)}

	got := daterange.Compact(days)

	require.Len(t, got, 1, "isolated days 1 and 9 must be dropped")
	assert.Equal(t, day(3), got[0].Start)
	assert.Equal(t, day(5), got[0].End)
	assert.Equal(t, 3, got[0].Days)
}

func TestCompact_NeighborsNeverMergeable(t *testing.T) {
	var days []domain.Date
	// Three runs separated by single-day gaps of at least 2.
	for d := 1; d <= 4; d++ {
		days = append(days, day(d))
	}
	for d := 7; d <= 9; d++ {
		days = append(days, day(d))
	}
	for d := 12; d <= 13; d++ {
		days = append(days, day(d))
	}

	got := daterange.Compact(days)

	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i].Start.After(got[i-1].End.Time), "windows sorted ascending")
		gap := got[i].Start.Epoch() - got[i-1].End.Epoch()
		assert.GreaterOrEqual(t, gap, 2, "adjacent windows must not be mergeable")
	}
	for _, w := range got {
		assert.GreaterOrEqual(t, w.Days, 2, "no window of length 1")
	}
}

func TestCompact_CapsAtTen(t *testing.T) {
	var days []domain.Date
	// 15 two-day runs, each separated by a gap.
	base := domain.NewDate(2024, time.March, 1)
	for run := 0; run < 15; run++ {
		start := base.AddDays(run * 4)
		days = append(days, start, start.AddDays(1))
	}

	got := daterange.Compact(days)

	require.Len(t, got, 10, "output capped at the first 10 windows")
	assert.Equal(t, base, got[0].Start)
}

func TestCompact_Empty(t *testing.T) {
	assert.Empty(t, daterange.Compact(nil))
	assert.Empty(t, daterange.Compact([]domain.Date{day(1)}), "a lone day is not a window")
}
