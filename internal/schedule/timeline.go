package schedule

import "sort"

// TimelineItem is one occurrence positioned on the day timeline.
type TimelineItem struct {
	Occurrence
	Start int // minute-of-day, inclusive
	End   int // minute-of-day, exclusive
	Placement
}

// Timeline is the laid-out view of a single day.
type Timeline struct {
	Date  Date
	Items []TimelineItem
}

// MaxColumns returns the widest ColumnCount on the day.
func (t Timeline) MaxColumns() int {
	max := 0
	for _, it := range t.Items {
		if it.ColumnCount > max {
			max = it.ColumnCount
		}
	}
	return max
}

// Find returns the item for an activity ID.
func (t Timeline) Find(id string) (TimelineItem, bool) {
	for _, it := range t.Items {
		if it.Activity.ID == id {
			return it, true
		}
	}
	return TimelineItem{}, false
}

// Timeline computes the occurrences of date and their column layout. It is
// recomputed from the snapshot on every call.
func (ev Evaluator) Timeline(activities []Activity, date Date) (Timeline, error) {
	occs := ev.OccurrencesOn(activities, date)
	intervals, err := IntervalsOf(occs)
	if err != nil {
		return Timeline{}, err
	}
	placements := AssignColumns(intervals)

	items := make([]TimelineItem, len(occs))
	for i, occ := range occs {
		items[i] = TimelineItem{
			Occurrence: occ,
			Start:      intervals[i].Start,
			End:        intervals[i].End,
			Placement:  placements[occ.Activity.ID],
		}
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return a.Activity.ID < b.Activity.ID
	})

	return Timeline{Date: date, Items: items}, nil
}
