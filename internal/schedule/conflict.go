package schedule

import "fmt"

// Classification describes how a candidate slot collides with an occurrence.
type Classification string

const (
	// Overlap means the two intervals partially overlap.
	Overlap Classification = "overlap"
	// Contains means one interval fully encloses the other.
	Contains Classification = "contains"
	// Adjacent means the intervals do not overlap but sit within a buffer of
	// each other. Only NearMisses produces it.
	Adjacent Classification = "adjacent"
)

// Conflict is one entry of a conflict report.
type Conflict struct {
	Activity       Activity
	Classification Classification
}

// DetectConflicts reports every occurrence on candidate.Date whose interval
// overlaps the candidate. Intervals are half-open, so a 09:00-10:00 and a
// 10:00-11:00 activity do not conflict. The occurrence with excludeID (the
// activity being edited) is skipped. Results keep the order of existing.
func DetectConflicts(candidate Slot, existing []Occurrence, excludeID string) ([]Conflict, error) {
	cs, ce, err := parseRange(candidate.Start, candidate.End)
	if err != nil {
		return nil, fmt.Errorf("candidate %s: %w", candidate, err)
	}

	var conflicts []Conflict
	for _, occ := range sameDay(candidate.Date, existing, excludeID) {
		s, e, err := occ.Activity.Range()
		if err != nil {
			return nil, fmt.Errorf("activity %s: %w", occ.Activity.ID, err)
		}
		if !overlaps(cs, ce, s, e) {
			continue
		}
		conflicts = append(conflicts, Conflict{
			Activity:       occ.Activity,
			Classification: classify(cs, ce, s, e),
		})
	}
	return conflicts, nil
}

// NearMisses reports occurrences on candidate.Date that do not overlap the
// candidate but leave a gap of at most bufferMinutes on either side. A
// non-positive buffer disables the check.
func NearMisses(candidate Slot, existing []Occurrence, excludeID string, bufferMinutes int) ([]Conflict, error) {
	cs, ce, err := parseRange(candidate.Start, candidate.End)
	if err != nil {
		return nil, fmt.Errorf("candidate %s: %w", candidate, err)
	}
	if bufferMinutes <= 0 {
		return nil, nil
	}

	var near []Conflict
	for _, occ := range sameDay(candidate.Date, existing, excludeID) {
		s, e, err := occ.Activity.Range()
		if err != nil {
			return nil, fmt.Errorf("activity %s: %w", occ.Activity.ID, err)
		}
		if overlaps(cs, ce, s, e) {
			continue
		}
		gap := s - ce
		if e <= cs {
			gap = cs - e
		}
		if gap <= bufferMinutes {
			near = append(near, Conflict{Activity: occ.Activity, Classification: Adjacent})
		}
	}
	return near, nil
}

func sameDay(date Date, existing []Occurrence, excludeID string) []Occurrence {
	out := make([]Occurrence, 0, len(existing))
	for _, occ := range existing {
		if occ.Date != date {
			continue
		}
		if excludeID != "" && occ.Activity.ID == excludeID {
			continue
		}
		out = append(out, occ)
	}
	return out
}

// overlaps tests half-open intervals [s1,e1) and [s2,e2).
func overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

func classify(s1, e1, s2, e2 int) Classification {
	if (s1 <= s2 && e2 <= e1) || (s2 <= s1 && e1 <= e2) {
		return Contains
	}
	return Overlap
}
