package schedule

import (
	"fmt"
	"math"
)

// DefaultGridMinutes is the snap grid used when none is given.
const DefaultGridMinutes = 5

// Reposition converts a drag gesture into a new slot for a. The pixel delta
// is scaled by minutesPerPixel, the start snaps to the nearest gridMinutes
// boundary, and the slot is clamped to the day so that it neither starts
// before 00:00 nor ends after 23:59. Duration is preserved exactly.
//
// A scaled delta that is NaN or infinite is rejected with ErrInvalidDrag.
// Reposition never writes anything; the caller checks conflicts on the
// returned slot and persists it.
func Reposition(a Activity, pixelDelta, minutesPerPixel float64, gridMinutes int) (Slot, error) {
	d := pixelDelta * minutesPerPixel
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return Slot{}, fmt.Errorf("%w: %v", ErrInvalidDrag, d)
	}
	// Anything beyond a full day clamps to the same edge.
	d = math.Max(-MinutesPerDay, math.Min(MinutesPerDay, d))
	return RepositionBy(a, int(math.Round(d)), gridMinutes)
}

// RepositionBy moves a by deltaMinutes with the same snapping and clamping as
// Reposition.
func RepositionBy(a Activity, deltaMinutes, gridMinutes int) (Slot, error) {
	if gridMinutes <= 0 {
		gridMinutes = DefaultGridMinutes
	}

	start, end, err := a.Range()
	if err != nil {
		return Slot{}, err
	}
	duration := end - start

	deltaMinutes = max(-MinutesPerDay, min(MinutesPerDay, deltaMinutes))
	raw := start + deltaMinutes
	snapped := int(math.Round(float64(raw)/float64(gridMinutes))) * gridMinutes

	if snapped < 0 {
		snapped = 0
	}
	if latest := LastMinute - duration; snapped > latest {
		snapped = latest
	}

	return Slot{
		Date:  a.ScheduledDate,
		Start: MinutesToTime(snapped),
		End:   MinutesToTime(snapped + duration),
	}, nil
}
