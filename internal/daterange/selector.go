package daterange

import (
	"time"

	"github.com/tripweave/backend/internal/domain"
)

// doubleTapWindow is how close together two taps on the same date must land
// to count as a double tap committing a single-day range.
const doubleTapWindow = 400 * time.Millisecond

// Selector is the state machine behind interactive range building on a
// calendar grid. It tracks the pending range start and the last tap so a
// quick second tap on the same date commits a single-day range.
//
// Toggle resolves a tap in exactly this order — the order is the tie-break:
//
//	A. date already covered      → remove its containing range(s), clear pending
//	B. double tap on same date   → commit {date, date}, clear pending
//	C. no pending start          → remember date as pending start
//	D. pending start exists      → commit {min, max}, clear pending
//
// A date that is both covered and double-tapped is case A: removal wins.
type Selector struct {
	pending   *domain.Date
	lastTap   domain.Date
	lastTapAt time.Time
	tapped    bool
}

// Toggle applies one tap at time now and returns the updated range list.
func (s *Selector) Toggle(ranges []domain.DateRange, d domain.Date, now time.Time) []domain.DateRange {
	defer func() {
		s.lastTap = d
		s.lastTapAt = now
		s.tapped = true
	}()

	// Case A: tapping inside existing coverage removes every containing range.
	if Contains(ranges, d) {
		s.pending = nil
		return RemoveContaining(ranges, d)
	}

	// Case B: double tap commits a single-day range.
	if s.tapped && s.lastTap.Equal(d.Time) && now.Sub(s.lastTapAt) <= doubleTapWindow {
		s.pending = nil
		return append(ranges, domain.DateRange{Start: d, End: d})
	}

	// Case C: first endpoint of a new range.
	if s.pending == nil {
		start := d
		s.pending = &start
		return ranges
	}

	// A slow re-tap on the pending date is neither a double tap nor a second
	// endpoint; the pending start just stays armed.
	if s.pending.Equal(d.Time) {
		return ranges
	}

	// Case D: second endpoint — commit, in either tap order.
	committed := domain.NewDateRange(*s.pending, d)
	s.pending = nil
	return append(ranges, committed)
}

// Pending returns the in-progress range start, if any.
func (s *Selector) Pending() (domain.Date, bool) {
	if s.pending == nil {
		return domain.Date{}, false
	}
	return *s.pending, true
}

// Reset clears the pending start and tap history, e.g. when the calendar
// view changes month.
func (s *Selector) Reset() {
	s.pending = nil
	s.tapped = false
}
