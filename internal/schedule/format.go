package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTimeRange formats "HH:MM" times into "H:MM AM - H:MM PM".
func FormatTimeRange(from, to string) string {
	return fmt.Sprintf("%s - %s", format12h(from), format12h(to))
}

// FormatMinutes converts a minute count to a human-friendly string.
// Examples: 90 → "1h 30m", 30 → "30m".
func FormatMinutes(m int) string {
	if m <= 0 {
		return "0m"
	}

	hours := m / 60
	mins := m % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if mins > 0 || hours == 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}

	return strings.Join(parts, " ")
}

// FormatRecurrence returns a human-readable description of an activity's
// repeat rule.
func FormatRecurrence(a Activity) string {
	switch a.Recurrence {
	case RecurDaily:
		return "every day"
	case RecurWeekly:
		return formatWeekly(a.RecurrenceDays)
	case RecurMonthly:
		return "monthly on the " + ordinal(a.ScheduledDate.Day)
	default:
		return "once"
	}
}

func formatWeekly(days []DayToken) string {
	tokens := make([]string, len(days))
	for i, d := range days {
		tokens[i] = string(d)
	}

	switch {
	case len(days) == 0:
		return "weekly (no days)"
	case matchExactSet(tokens, "mon", "tue", "wed", "thu", "fri"):
		return "every weekday"
	case matchExactSet(tokens, "sat", "sun"):
		return "every weekend"
	}

	names := make([]string, 0, len(days))
	for _, d := range days {
		if wd, ok := d.Weekday(); ok {
			names = append(names, wd.String())
		}
	}
	return "every " + strings.Join(names, ", ")
}

// FormatDate formats a date as "Mon Jan _2".
func FormatDate(d Date) string {
	return d.Time().Format("Mon Jan _2")
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return strconv.Itoa(n) + suffix
}

// format12h converts "HH:MM" to "H:MM AM/PM".
func format12h(hhmm string) string {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return hhmm
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return hhmm
	}
	m := parts[1]

	suffix := "AM"
	display := h
	if h == 0 {
		display = 12
	} else if h == 12 {
		suffix = "PM"
	} else if h > 12 {
		display = h - 12
		suffix = "PM"
	}

	return fmt.Sprintf("%d:%s %s", display, m, suffix)
}

// matchExactSet returns true if actual contains exactly the expected strings (in any order).
func matchExactSet(actual []string, expected ...string) bool {
	if len(actual) != len(expected) {
		return false
	}
	set := make(map[string]bool, len(expected))
	for _, e := range expected {
		set[e] = false
	}
	for _, a := range actual {
		if _, ok := set[a]; !ok {
			return false
		}
		set[a] = true
	}
	for _, v := range set {
		if !v {
			return false
		}
	}
	return true
}
