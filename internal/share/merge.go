package share

import "github.com/tripweave/backend/internal/domain"

// Merge reconciles a locally cached trip with a copy of the same trip
// received via a shared link. The rule is asymmetric and biased toward
// completed participant records:
//
//   - per participant, the local record is kept only when local is completed
//     and remote is not — this protects finished local edits from being
//     clobbered by a stale link;
//   - when remote's record is completed, remote wins;
//   - otherwise whichever side has the record wins, defaulting to remote;
//   - destinations: remote's list when non-empty, else local's.
//
// Known limitation: this is not a CRDT. Concurrent edits to the same
// participant are not reconciled field-by-field — when both sides claim
// completion, the remote record silently wins even if local holds a
// legitimate divergent edit. Deterministic resolution is preferred over
// surfacing a conflict.
func Merge(local, remote domain.Trip) domain.Trip {
	merged := remote

	merged.Participants = mergeParticipants(local.Participants, remote.Participants)

	if len(remote.Destinations) == 0 {
		merged.Destinations = local.Destinations
	}

	if len(remote.Recommendations) == 0 {
		merged.Recommendations = local.Recommendations
	}

	// CurrentUser is device-local identity: the receiving device keeps its
	// own claim when it still names a merged participant.
	merged.CurrentUser = ""
	for _, claim := range []string{local.CurrentUser, remote.CurrentUser} {
		if claim != "" && hasParticipant(merged.Participants, claim) {
			merged.CurrentUser = claim
			break
		}
	}

	return merged
}

// mergeParticipants resolves the participant lists by name. Remote's order is
// preserved; participants known only locally are appended in local order.
func mergeParticipants(local, remote []domain.Participant) []domain.Participant {
	byName := make(map[string]domain.Participant, len(local))
	for _, p := range local {
		byName[p.Name] = p
	}

	merged := make([]domain.Participant, 0, len(remote))
	inRemote := make(map[string]struct{}, len(remote))
	for _, r := range remote {
		inRemote[r.Name] = struct{}{}
		if l, ok := byName[r.Name]; ok && l.Completed && !r.Completed {
			merged = append(merged, l)
			continue
		}
		merged = append(merged, r)
	}

	for _, l := range local {
		if _, ok := inRemote[l.Name]; !ok {
			merged = append(merged, l)
		}
	}
	return merged
}

func hasParticipant(ps []domain.Participant, name string) bool {
	for _, p := range ps {
		if p.Name == name {
			return true
		}
	}
	return false
}
