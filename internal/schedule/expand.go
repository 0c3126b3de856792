package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"
)

// DayOccurrences groups the occurrences of one calendar date.
type DayOccurrences struct {
	Date        Date
	Occurrences []Occurrence
}

// ToRRule builds the recurrence set of a. The anchor date is always an RDATE,
// so it occurs even when a weekly rule does not list its weekday. Weekly
// activities without any days carry no RRULE at all.
func (ev Evaluator) ToRRule(a Activity) (*rrule.Set, error) {
	anchor := a.ScheduledDate.Time()

	set := &rrule.Set{}
	set.DTStart(anchor)
	set.RDate(anchor)

	opts := rrule.ROption{Dtstart: anchor}
	switch a.Recurrence {
	case RecurDaily:
		opts.Freq = rrule.DAILY
	case RecurWeekly:
		days := ev.weeklyDays(a)
		if len(days) == 0 {
			return set, nil
		}
		opts.Freq = rrule.WEEKLY
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			if days[wd] {
				opts.Byweekday = append(opts.Byweekday, rruleWeekdays[wd])
			}
		}
	case RecurMonthly:
		opts.Freq = rrule.MONTHLY
		opts.Bymonthday = []int{a.ScheduledDate.Day}
	default:
		return set, nil
	}

	r, err := rrule.NewRRule(opts)
	if err != nil {
		return nil, fmt.Errorf("activity %s: building rrule: %w", a.ID, err)
	}
	set.RRule(r)
	return set, nil
}

// RRuleString returns the RFC 5545 text of the activity's recurrence.
func (ev Evaluator) RRuleString(a Activity) (string, error) {
	set, err := ev.ToRRule(a)
	if err != nil {
		return "", err
	}
	return set.String(), nil
}

// Expand evaluates activities into per-day occurrences between from and to
// (inclusive). Days without occurrences are omitted; the result is sorted by
// date and each day keeps the input order of activities.
func (ev Evaluator) Expand(activities []Activity, from, to Date) ([]DayOccurrences, error) {
	if from.After(to) {
		return nil, fmt.Errorf("expand: range end %s is before start %s", to, from)
	}

	dayMap := make(map[Date][]Occurrence)
	for _, a := range activities {
		set, err := ev.ToRRule(a)
		if err != nil {
			return nil, err
		}

		seen := make(map[Date]bool)
		for _, t := range set.Between(from.Time(), to.Time(), true) {
			d := DateOf(t.UTC())
			if seen[d] {
				continue
			}
			seen[d] = true
			dayMap[d] = append(dayMap[d], Occurrence{Activity: a, Date: d})
		}
	}

	result := make([]DayOccurrences, 0, len(dayMap))
	for d, occs := range dayMap {
		result = append(result, DayOccurrences{Date: d, Occurrences: occs})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}
