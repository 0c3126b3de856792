package schedule

import (
	"fmt"
	"time"
)

// Activity is a time-boxed item placed on the day timeline. It is the
// storable form; the store owns it and the scheduling functions only read it.
type Activity struct {
	ID             string     `json:"id" validate:"required"`
	Title          string     `json:"title" validate:"required"`
	ScheduledDate  Date       `json:"scheduled_date"`
	StartTime      string     `json:"start_time" validate:"required"` // "HH:MM"
	EndTime        string     `json:"end_time" validate:"required"`   // "HH:MM"
	Recurrence     Recurrence `json:"recurrence,omitempty" validate:"omitempty,oneof=none daily weekly monthly"`
	RecurrenceDays []DayToken `json:"recurrence_days,omitempty" validate:"omitempty,dive,oneof=sun mon tue wed thu fri sat"`
	Priority       string     `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Color          string     `json:"color,omitempty" validate:"omitempty,hexcolor"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Range returns the activity's half-open minute range [start, end).
func (a Activity) Range() (int, int, error) {
	return parseRange(a.StartTime, a.EndTime)
}

// Duration returns the length of the activity in minutes.
func (a Activity) Duration() (int, error) {
	s, e, err := a.Range()
	if err != nil {
		return 0, err
	}
	return e - s, nil
}

// Validate checks the fields the scheduling functions depend on.
func (a Activity) Validate() error {
	if a.ScheduledDate.IsZero() {
		return fmt.Errorf("scheduled date is required")
	}
	if _, _, err := a.Range(); err != nil {
		return err
	}
	if _, err := ParseRecurrence(string(a.Recurrence)); err != nil {
		return err
	}
	for _, d := range a.RecurrenceDays {
		if _, ok := d.Weekday(); !ok {
			return fmt.Errorf("unknown weekday %q", d)
		}
	}
	return nil
}

// Occurrence is an Activity bound to one concrete date.
type Occurrence struct {
	Activity Activity
	Date     Date
}

// Slot is a candidate time range on a date.
type Slot struct {
	Date  Date
	Start string // "HH:MM"
	End   string // "HH:MM"
}

// String renders the slot as "2024-01-08 09:00-10:00".
func (s Slot) String() string {
	return fmt.Sprintf("%s %s-%s", s.Date, s.Start, s.End)
}
