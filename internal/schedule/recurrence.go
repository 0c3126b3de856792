package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Recurrence is the repeat rule of an activity.
type Recurrence string

const (
	RecurNone    Recurrence = "none"
	RecurDaily   Recurrence = "daily"
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
)

// DayToken is a lowercase three-letter weekday token ("sun".."sat").
type DayToken string

var dayTokens = []DayToken{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// DayTokenOf returns the token for a weekday.
func DayTokenOf(wd time.Weekday) DayToken {
	return dayTokens[wd]
}

// Weekday returns the weekday of the token.
func (t DayToken) Weekday() (time.Weekday, bool) {
	for i, tok := range dayTokens {
		if tok == t {
			return time.Weekday(i), true
		}
	}
	return 0, false
}

// ParseRecurrence parses a recurrence keyword or a natural-language alias.
// The empty string means RecurNone.
func ParseRecurrence(s string) (Recurrence, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "", "none", "once", "never":
		return RecurNone, nil
	case "daily", "every day":
		return RecurDaily, nil
	case "weekly", "every week":
		return RecurWeekly, nil
	case "monthly", "every month":
		return RecurMonthly, nil
	}
	return "", fmt.Errorf("unrecognized recurrence %q (expected none, daily, weekly or monthly)", s)
}

// ParseDayTokens parses a comma- or space-separated weekday list such as
// "mon,wed" or "Monday Friday". Duplicates are dropped and the result is
// ordered Sunday first.
func ParseDayTokens(s string) ([]DayToken, error) {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ',' || r == ' '
	})

	seen := make(map[time.Weekday]bool)
	for _, f := range fields {
		wd, ok := weekdays[f]
		if !ok {
			wd, ok = DayToken(f).Weekday()
		}
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", f)
		}
		seen[wd] = true
	}

	days := make([]time.Weekday, 0, len(seen))
	for wd := range seen {
		days = append(days, wd)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	tokens := make([]DayToken, len(days))
	for i, wd := range days {
		tokens[i] = DayTokenOf(wd)
	}
	return tokens, nil
}

// Evaluator decides which dates an activity occurs on.
type Evaluator struct {
	// IncludeAnchorWeekday makes a weekly activity recur on its anchor
	// weekday even when RecurrenceDays does not list it.
	IncludeAnchorWeekday bool
}

// OccursOn reports whether a occurs on target using the default Evaluator.
func OccursOn(a Activity, target Date) bool {
	return Evaluator{}.OccursOn(a, target)
}

// OccursOn reports whether a occurs on target. An activity never occurs before
// its scheduled date and always occurs on it.
func (ev Evaluator) OccursOn(a Activity, target Date) bool {
	switch c := target.Compare(a.ScheduledDate); {
	case c < 0:
		return false
	case c == 0:
		return true
	}

	switch a.Recurrence {
	case RecurDaily:
		return true
	case RecurWeekly:
		return ev.weeklyDays(a)[target.Weekday()]
	case RecurMonthly:
		// No end-of-month clamping: an anchor on the 31st skips 30-day months.
		return target.Day == a.ScheduledDate.Day
	default:
		return false
	}
}

// OccurrencesOn filters activities down to the ones occurring on date,
// preserving input order.
func (ev Evaluator) OccurrencesOn(activities []Activity, date Date) []Occurrence {
	var out []Occurrence
	for _, a := range activities {
		if ev.OccursOn(a, date) {
			out = append(out, Occurrence{Activity: a, Date: date})
		}
	}
	return out
}

// weeklyDays returns the set of weekdays a weekly activity repeats on.
func (ev Evaluator) weeklyDays(a Activity) map[time.Weekday]bool {
	set := make(map[time.Weekday]bool, len(a.RecurrenceDays)+1)
	for _, tok := range a.RecurrenceDays {
		if wd, ok := tok.Weekday(); ok {
			set[wd] = true
		}
	}
	if ev.IncludeAnchorWeekday {
		set[a.ScheduledDate.Weekday()] = true
	}
	return set
}
