package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandMatchesOccursOn(t *testing.T) {
	activities := []Activity{
		activityOn(NewDate(2024, 1, 1), RecurNone),
		{ID: "daily", ScheduledDate: NewDate(2024, 1, 10), Recurrence: RecurDaily, StartTime: "08:00", EndTime: "08:30"},
		{ID: "weekly", ScheduledDate: NewDate(2024, 1, 3), Recurrence: RecurWeekly, RecurrenceDays: []DayToken{"mon", "fri"}, StartTime: "12:00", EndTime: "13:00"},
		{ID: "weekly-empty", ScheduledDate: NewDate(2024, 1, 4), Recurrence: RecurWeekly, StartTime: "12:00", EndTime: "13:00"},
		{ID: "monthly", ScheduledDate: NewDate(2024, 1, 31), Recurrence: RecurMonthly, StartTime: "18:00", EndTime: "19:00"},
	}
	from, to := NewDate(2023, 12, 20), NewDate(2024, 6, 30)

	for _, ev := range []Evaluator{{}, {IncludeAnchorWeekday: true}} {
		days, err := ev.Expand(activities, from, to)
		require.NoError(t, err)

		got := make(map[Date][]string)
		for _, d := range days {
			for _, o := range d.Occurrences {
				assert.Equal(t, d.Date, o.Date)
				got[d.Date] = append(got[d.Date], o.Activity.ID)
			}
		}

		for d := from; !d.After(to); d = d.AddDays(1) {
			var want []string
			for _, o := range ev.OccurrencesOn(activities, d) {
				want = append(want, o.Activity.ID)
			}
			assert.Equal(t, want, got[d], "anchor=%v %s", ev.IncludeAnchorWeekday, d)
		}
	}
}

func TestExpandSortedAndSparse(t *testing.T) {
	activities := []Activity{
		{ID: "b", ScheduledDate: NewDate(2024, 3, 5), StartTime: "09:00", EndTime: "10:00"},
		{ID: "a", ScheduledDate: NewDate(2024, 3, 1), StartTime: "09:00", EndTime: "10:00"},
	}

	days, err := Evaluator{}.Expand(activities, NewDate(2024, 3, 1), NewDate(2024, 3, 31))

	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, NewDate(2024, 3, 1), days[0].Date)
	assert.Equal(t, NewDate(2024, 3, 5), days[1].Date)
}

func TestExpandSingleDayRange(t *testing.T) {
	day := NewDate(2024, 1, 8)
	days, err := Evaluator{}.Expand([]Activity{activityOn(NewDate(2024, 1, 1), RecurWeekly, "mon")}, day, day)

	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, day, days[0].Date)
}

func TestExpandRejectsReversedRange(t *testing.T) {
	_, err := Evaluator{}.Expand(nil, NewDate(2024, 2, 1), NewDate(2024, 1, 1))
	assert.Error(t, err)
}

func TestRRuleString(t *testing.T) {
	tests := []struct {
		name     string
		activity Activity
		contains []string
		excludes []string
	}{
		{
			name:     "none",
			activity: activityOn(NewDate(2024, 1, 1), RecurNone),
			excludes: []string{"RRULE"},
		},
		{
			name:     "daily",
			activity: activityOn(NewDate(2024, 1, 1), RecurDaily),
			contains: []string{"FREQ=DAILY"},
		},
		{
			name:     "weekly",
			activity: activityOn(NewDate(2024, 1, 1), RecurWeekly, "mon", "wed"),
			contains: []string{"FREQ=WEEKLY", "BYDAY=MO,WE"},
		},
		{
			name:     "weekly without days",
			activity: activityOn(NewDate(2024, 1, 1), RecurWeekly),
			excludes: []string{"RRULE"},
		},
		{
			name:     "monthly",
			activity: activityOn(NewDate(2024, 1, 31), RecurMonthly),
			contains: []string{"FREQ=MONTHLY", "BYMONTHDAY=31"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Evaluator{}.RRuleString(tt.activity)
			require.NoError(t, err)
			for _, c := range tt.contains {
				assert.Contains(t, s, c)
			}
			for _, c := range tt.excludes {
				assert.NotContains(t, s, c)
			}
		})
	}
}
