package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Flyrell/daygrid/internal/schedule"
)

// activityFlags holds the raw flag values shared by add and edit.
type activityFlags struct {
	Date     string
	From     string
	To       string
	Repeat   string
	Days     string
	Priority string
	Color    string
}

var activityFlagNames = []string{"date", "from", "to", "repeat", "days", "priority", "color"}

var activityStrFlags = []StringFlag{
	{Name: "date", Shorthand: "d", Usage: "date (e.g. today, tomorrow, friday, 2025-06-16)"},
	{Name: "from", Usage: "start time (e.g. 9am, 14:00)"},
	{Name: "to", Usage: "end time (e.g. 10am, 15:30)"},
	{Name: "repeat", Shorthand: "r", Usage: "recurrence: none, daily, weekly, monthly"},
	{Name: "days", Usage: "weekdays for weekly activities (e.g. mon,wed,fri)"},
	{Name: "priority", Usage: "low, medium or high"},
	{Name: "color", Usage: "display colour as hex (e.g. #ff8800)"},
}

func readActivityFlags(cmd *cobra.Command) (activityFlags, map[string]bool) {
	get := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	changed := make(map[string]bool, len(activityFlagNames))
	for _, name := range activityFlagNames {
		changed[name] = cmd.Flags().Changed(name)
	}
	return activityFlags{
		Date:     get("date"),
		From:     get("from"),
		To:       get("to"),
		Repeat:   get("repeat"),
		Days:     get("days"),
		Priority: get("priority"),
		Color:    get("color"),
	}, changed
}

// changedFrom marks every non-empty field as changed.
func (f activityFlags) changedFrom() map[string]bool {
	return map[string]bool{
		"date":     f.Date != "",
		"from":     f.From != "",
		"to":       f.To != "",
		"repeat":   f.Repeat != "",
		"days":     f.Days != "",
		"priority": f.Priority != "",
		"color":    f.Color != "",
	}
}

func anyChanged(changed map[string]bool) bool {
	for _, c := range changed {
		if c {
			return true
		}
	}
	return false
}

// applyActivityFlags writes the changed flags onto a. A weekly activity
// without days repeats on the weekday of its scheduled date.
func applyActivityFlags(a schedule.Activity, f activityFlags, changed map[string]bool, now time.Time) (schedule.Activity, error) {
	if changed["date"] {
		d, err := schedule.ResolveDate(f.Date, now)
		if err != nil {
			return a, err
		}
		a.ScheduledDate = d
	}
	if changed["from"] {
		clock, err := schedule.NormalizeClock(f.From)
		if err != nil {
			return a, fmt.Errorf("--from: %w", err)
		}
		a.StartTime = clock
	}
	if changed["to"] {
		clock, err := schedule.NormalizeClock(f.To)
		if err != nil {
			return a, fmt.Errorf("--to: %w", err)
		}
		a.EndTime = clock
	}
	if changed["repeat"] {
		rec, err := schedule.ParseRecurrence(f.Repeat)
		if err != nil {
			return a, err
		}
		a.Recurrence = rec
		if rec != schedule.RecurWeekly {
			a.RecurrenceDays = nil
		}
	}
	if changed["days"] {
		days, err := schedule.ParseDayTokens(f.Days)
		if err != nil {
			return a, err
		}
		if a.Recurrence != schedule.RecurWeekly {
			if changed["repeat"] {
				return a, fmt.Errorf("--days only applies to weekly activities")
			}
			a.Recurrence = schedule.RecurWeekly
		}
		a.RecurrenceDays = days
	}
	if a.Recurrence == schedule.RecurWeekly && len(a.RecurrenceDays) == 0 && !a.ScheduledDate.IsZero() {
		a.RecurrenceDays = []schedule.DayToken{schedule.DayTokenOf(a.ScheduledDate.Weekday())}
	}
	if changed["priority"] {
		a.Priority = strings.ToLower(strings.TrimSpace(f.Priority))
	}
	if changed["color"] {
		a.Color = strings.TrimSpace(f.Color)
	}
	return a, nil
}

// promptActivity asks for every field, offering the current values.
func promptActivity(a schedule.Activity, pk PromptKit, now time.Time) (schedule.Activity, error) {
	if pk.PromptWithDefault == nil {
		return a, fmt.Errorf("interactive mode not available")
	}

	title, err := pk.PromptWithDefault("Title", a.Title)
	if err != nil {
		return a, err
	}
	a.Title = strings.TrimSpace(title)

	dateDefault := ""
	if !a.ScheduledDate.IsZero() {
		dateDefault = a.ScheduledDate.String()
	}
	dateStr, err := pk.PromptWithDefault("Date (e.g. today, 2025-06-16)", dateDefault)
	if err != nil {
		return a, err
	}
	fromStr, err := pk.PromptWithDefault("From (e.g. 9am, 14:00)", a.StartTime)
	if err != nil {
		return a, err
	}
	toStr, err := pk.PromptWithDefault("To (e.g. 10am, 15:00)", a.EndTime)
	if err != nil {
		return a, err
	}

	f := activityFlags{Date: dateStr, From: fromStr, To: toStr}
	changed := map[string]bool{"date": true, "from": true, "to": true}

	if pk.Select != nil {
		options := []string{"none", "daily", "weekly", "monthly"}
		idx, err := pk.Select("Repeat", options)
		if err != nil {
			return a, err
		}
		f.Repeat = options[idx]
		changed["repeat"] = true

		if f.Repeat == "weekly" && pk.MultiSelect != nil {
			labels := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
			picked, err := pk.MultiSelect("Repeat on", labels)
			if err != nil {
				return a, err
			}
			names := make([]string, len(picked))
			for i, p := range picked {
				names[i] = labels[p]
			}
			f.Days = strings.Join(names, ",")
			changed["days"] = len(names) > 0
		}
	}

	return applyActivityFlags(a, f, changed, now)
}
