package agenda

import (
	"fmt"

	"github.com/Flyrell/daygrid/internal/schedule"
)

// MaxRangeDays bounds how many days one agenda may span.
const MaxRangeDays = 366

// Entry is one occurrence on an agenda day.
type Entry struct {
	Activity  schedule.Activity
	Start     int // minute-of-day
	End       int
	Placement schedule.Placement // capped to the configured column limit
}

// Minutes returns the entry's length.
func (e Entry) Minutes() int {
	return e.End - e.Start
}

// Overlapping reports whether the entry shares its time with another one.
func (e Entry) Overlapping() bool {
	return e.Placement.ColumnCount > 1
}

// Day holds the laid-out occurrences of one date.
type Day struct {
	Date    schedule.Date
	Entries []Entry
	// BusyMinutes counts minutes covered by at least one entry, so
	// overlapping entries are not counted twice.
	BusyMinutes int
	Columns     int
}

// Agenda is a multi-day view over a date range.
type Agenda struct {
	From, To         schedule.Date
	Days             []Day
	BusyMinutes      int
	OverlappingCount int
}

// Build expands activities over [from, to] and lays out every day that has
// at least one occurrence.
func Build(ev schedule.Evaluator, activities []schedule.Activity, from, to schedule.Date, maxColumns int) (Agenda, error) {
	if to.Before(from) {
		return Agenda{}, fmt.Errorf("agenda end %s is before start %s", to, from)
	}
	if span := int(to.Time().Sub(from.Time()).Hours()/24) + 1; span > MaxRangeDays {
		return Agenda{}, fmt.Errorf("agenda spans %d days (max %d)", span, MaxRangeDays)
	}

	expanded, err := ev.Expand(activities, from, to)
	if err != nil {
		return Agenda{}, err
	}

	result := Agenda{From: from, To: to}
	for _, d := range expanded {
		dayActivities := make([]schedule.Activity, len(d.Occurrences))
		for i, occ := range d.Occurrences {
			dayActivities[i] = occ.Activity
		}

		tl, err := ev.Timeline(dayActivities, d.Date)
		if err != nil {
			return Agenda{}, fmt.Errorf("laying out %s: %w", d.Date, err)
		}

		day := Day{Date: d.Date}
		for _, it := range tl.Items {
			e := Entry{
				Activity:  it.Activity,
				Start:     it.Start,
				End:       it.End,
				Placement: it.Placement.Capped(maxColumns),
			}
			if e.Overlapping() {
				result.OverlappingCount++
			}
			if e.Placement.ColumnCount > day.Columns {
				day.Columns = e.Placement.ColumnCount
			}
			day.Entries = append(day.Entries, e)
		}
		day.BusyMinutes = busyMinutes(day.Entries)
		result.BusyMinutes += day.BusyMinutes
		result.Days = append(result.Days, day)
	}
	return result, nil
}

// busyMinutes merges entries sorted by start and sums the covered minutes.
func busyMinutes(entries []Entry) int {
	total := 0
	curStart, curEnd := -1, -1
	for _, e := range entries {
		if e.Start >= curEnd {
			if curEnd > curStart {
				total += curEnd - curStart
			}
			curStart, curEnd = e.Start, e.End
			continue
		}
		if e.End > curEnd {
			curEnd = e.End
		}
	}
	if curEnd > curStart {
		total += curEnd - curStart
	}
	return total
}
