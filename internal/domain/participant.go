package domain

// Participant is one person in a Trip, identified by name (unique within the
// trip). Availability, trip-length limits, and preferences are all owned by
// the participant; Completed is the sole gate marking their inputs final.
type Participant struct {
	Name            string      `json:"name"`
	AvailableRanges []DateRange `json:"availableRanges"`

	// MaxDays caps the trip length this participant will accept.
	// Nil means no limit was given.
	MaxDays *int `json:"maxDays"`

	// MaxWeeks is the pre-migration trip-length field. It is carried so old
	// share tokens still decode, but new writes set MaxDays.
	MaxWeeks *int `json:"maxWeeks,omitempty"`

	DepartureCity string   `json:"departureCity,omitempty"`
	Nationality   string   `json:"nationality,omitempty"`
	Interests     []string `json:"interests,omitempty"`

	// Completed marks the participant's inputs as final. It is cleared when
	// the participant revisits and edits their entry, re-opening the workflow
	// for them only.
	Completed bool `json:"completed"`
}

// ParticipantPatch is an explicit partial update for a Participant.
// Only fields that were set change on apply; everything else is preserved.
// Nullable fields use Opt[*int] so a patch can distinguish between leaving
// MaxDays alone, clearing it, and setting it.
type ParticipantPatch struct {
	AvailableRanges Opt[[]DateRange]
	MaxDays         Opt[*int]
	MaxWeeks        Opt[*int]
	DepartureCity   Opt[string]
	Nationality     Opt[string]
	Interests       Opt[[]string]
	Completed       Opt[bool]
}

// apply merges the patch onto p, field by field.
func (patch ParticipantPatch) apply(p *Participant) {
	if v, ok := patch.AvailableRanges.Get(); ok {
		p.AvailableRanges = v
	}
	if v, ok := patch.MaxDays.Get(); ok {
		p.MaxDays = v
	}
	if v, ok := patch.MaxWeeks.Get(); ok {
		p.MaxWeeks = v
	}
	if v, ok := patch.DepartureCity.Get(); ok {
		p.DepartureCity = v
	}
	if v, ok := patch.Nationality.Get(); ok {
		p.Nationality = v
	}
	if v, ok := patch.Interests.Get(); ok {
		p.Interests = dedupe(v)
	}
	if v, ok := patch.Completed.Get(); ok {
		p.Completed = v
	}
}

// dedupe removes duplicate entries from a string slice, preserving the order
// of first appearance.
func dedupe(in []string) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := in[:0:0]
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
