package schedule

import (
	"fmt"
	"sort"
)

// Interval is an occurrence reduced to its minute range for layout.
type Interval struct {
	ID    string
	Start int
	End   int
}

// Placement is the rendering lane of one interval.
type Placement struct {
	Column      int // 0-based lane
	ColumnCount int // lanes the row must be split into
}

// Capped limits ColumnCount to max lanes for rendering. Columns at or past the
// cap fold onto the last lane. A non-positive max leaves p unchanged.
func (p Placement) Capped(max int) Placement {
	if max <= 0 || p.ColumnCount <= max {
		return p
	}
	col := p.Column
	if col >= max {
		col = max - 1
	}
	return Placement{Column: col, ColumnCount: max}
}

// IntervalsOf converts occurrences into minute intervals keyed by activity ID.
func IntervalsOf(occurrences []Occurrence) ([]Interval, error) {
	out := make([]Interval, len(occurrences))
	for i, occ := range occurrences {
		s, e, err := occ.Activity.Range()
		if err != nil {
			return nil, fmt.Errorf("activity %s: %w", occ.Activity.ID, err)
		}
		out[i] = Interval{ID: occ.Activity.ID, Start: s, End: e}
	}
	return out, nil
}

// AssignColumns lays out same-day intervals into side-by-side columns.
//
// Intervals are swept in (start, end, id) order. Each takes the lowest column
// not held by an interval still open at its start. A second pass sets
// ColumnCount to the widest column among the interval itself and everything
// it overlaps. The input order never affects the result.
func AssignColumns(intervals []Interval) map[string]Placement {
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return a.ID < b.ID
	})

	columns := make([]int, len(sorted))
	var active []int // indexes into sorted
	for i, cur := range sorted {
		kept := active[:0]
		for _, idx := range active {
			if sorted[idx].End > cur.Start {
				kept = append(kept, idx)
			}
		}
		active = kept

		taken := make(map[int]bool, len(active))
		for _, idx := range active {
			taken[columns[idx]] = true
		}
		col := 0
		for taken[col] {
			col++
		}
		columns[i] = col
		active = append(active, i)
	}

	result := make(map[string]Placement, len(sorted))
	for i, cur := range sorted {
		count := columns[i] + 1
		for j, other := range sorted {
			if i == j || !overlaps(cur.Start, cur.End, other.Start, other.End) {
				continue
			}
			if columns[j]+1 > count {
				count = columns[j] + 1
			}
		}
		result[cur.ID] = Placement{Column: columns[i], ColumnCount: count}
	}
	return result
}
