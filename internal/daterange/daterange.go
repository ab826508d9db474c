// Package daterange implements the date-range set algebra behind availability
// planning: containment tests, whole-range removal, the interactive range
// selector, and the intersection of every participant's free days into
// candidate travel windows.
//
// All functions are pure and operate on explicit []domain.DateRange values.
// Ranges are not required to be disjoint on input; Intersect normalizes
// overlap by expanding each list into an explicit day set first.
package daterange

import (
	"sort"

	"github.com/tripweave/backend/internal/domain"
)

// maxWindows caps the number of candidate travel windows reported by Compact.
// Trip planning over a months-long horizon rarely produces more than a
// handful, and anything past the first ten is noise to a voter.
const maxWindows = 10

// Window is a contiguous run of days free for every participant.
type Window struct {
	Start domain.Date `json:"start"`
	End   domain.Date `json:"end"`
	Days  int         `json:"days"`
}

// Contains reports whether d falls within any of the ranges, bounds inclusive.
func Contains(ranges []domain.DateRange, d domain.Date) bool {
	for _, r := range ranges {
		if r.Contains(d) {
			return true
		}
	}
	return false
}

// RemoveContaining drops every range that contains d in its entirety.
// Deliberately a removal, not a split: tapping inside a range on the calendar
// clears the whole range rather than carving a hole in it.
func RemoveContaining(ranges []domain.DateRange, d domain.Date) []domain.DateRange {
	kept := make([]domain.DateRange, 0, len(ranges))
	for _, r := range ranges {
		if !r.Contains(d) {
			kept = append(kept, r)
		}
	}
	return kept
}

// Intersect computes the calendar days free for every participant
// simultaneously and compacts them into candidate travel windows.
//
// Each participant's ranges are expanded into an explicit day set, the sets
// are intersected, and the surviving days are sorted and merged into maximal
// contiguous runs. An empty participant list, or any participant with zero
// ranges, yields an empty result. Cost is O(total days across all ranges) —
// fine for a planning horizon of months.
func Intersect(participantRanges [][]domain.DateRange) []Window {
	if len(participantRanges) == 0 {
		return nil
	}

	counts := make(map[int]domain.Date)
	tally := make(map[int]int)

	for _, ranges := range participantRanges {
		if len(ranges) == 0 {
			return nil
		}
		for epoch, d := range expand(ranges) {
			counts[epoch] = d
			tally[epoch]++
		}
	}

	var shared []domain.Date
	for epoch, n := range tally {
		if n == len(participantRanges) {
			shared = append(shared, counts[epoch])
		}
	}
	sort.Slice(shared, func(i, j int) bool { return shared[i].Before(shared[j].Time) })

	return Compact(shared)
}

// Compact merges a sorted ascending day list into contiguous windows.
// Isolated free days are dropped — a one-day overlap is not a travel window —
// and output stops after the first maxWindows ranges.
func Compact(sortedDays []domain.Date) []Window {
	var windows []Window

	for i := 0; i < len(sortedDays) && len(windows) < maxWindows; {
		j := i
		for j+1 < len(sortedDays) && sortedDays[j+1].Epoch() == sortedDays[j].Epoch()+1 {
			j++
		}
		if days := j - i + 1; days >= 2 {
			windows = append(windows, Window{
				Start: sortedDays[i],
				End:   sortedDays[j],
				Days:  days,
			})
		}
		i = j + 1
	}
	return windows
}

// expand flattens ranges into a day set keyed by epoch day. Overlapping and
// adjacent ranges collapse naturally; duplicates within one participant never
// double-count in Intersect's tally.
func expand(ranges []domain.DateRange) map[int]domain.Date {
	days := make(map[int]domain.Date)
	for _, r := range ranges {
		for d := r.Start; !d.After(r.End.Time); d = d.AddDays(1) {
			days[d.Epoch()] = d
		}
	}
	return days
}
