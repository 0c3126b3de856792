package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MinutesPerDay is the number of minute slots on the timeline.
const MinutesPerDay = 24 * 60

// LastMinute is the last addressable minute of a day (23:59).
const LastMinute = MinutesPerDay - 1

var (
	// ErrInvalidFormat is returned when a clock string cannot be parsed.
	ErrInvalidFormat = errors.New("invalid time format")
	// ErrInvalidInterval is returned when a start time is not before its end time.
	ErrInvalidInterval = errors.New("invalid time interval")
	// ErrInvalidDrag is returned when a drag distance is not a finite number.
	ErrInvalidDrag = errors.New("invalid drag distance")
)

var (
	// 14:00, 09:30, 9:30
	clock24h = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	// 9:30am, 9:30pm
	timeColonAMPM = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(am|pm)$`)
	// 9.30am, 9.30pm
	timeDotAMPM = regexp.MustCompile(`^(\d{1,2})\.(\d{2})\s*(am|pm)$`)
	// 9am, 2pm
	timeAMPM = regexp.MustCompile(`^(\d{1,2})\s*(am|pm)$`)
	// 14.00, 09.30
	timeDot24h = regexp.MustCompile(`^(\d{1,2})\.(\d{2})$`)
)

// TimeOfDay represents a clock time without a date component.
type TimeOfDay struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// String returns TimeOfDay in "HH:MM" format.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns the minute-of-day for t.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// TimeToMinutes parses a strict 24-hour "HH:MM" clock string and returns its
// minute-of-day in [0, 1439].
func TimeToMinutes(clock string) (int, error) {
	m := clock24h.FindStringSubmatch(clock)
	if m == nil {
		return 0, fmt.Errorf("%w: %q (expected HH:MM)", ErrInvalidFormat, clock)
	}
	t, err := parseHourMinute24(m[1], m[2])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidFormat, clock, err)
	}
	return t.Minutes(), nil
}

// MinutesToTime formats a minute-of-day as "HH:MM". Callers must keep minutes
// inside [0, 1439]; anything else panics rather than wrapping into another day.
func MinutesToTime(minutes int) string {
	if minutes < 0 || minutes > LastMinute {
		panic(fmt.Sprintf("schedule: minute-of-day %d out of range [0, %d]", minutes, LastMinute))
	}
	return TimeOfDay{Hour: minutes / 60, Minute: minutes % 60}.String()
}

// ParseTimeOfDay parses a human time string into a TimeOfDay.
// Supported formats: "9:30am", "9.30am", "9am", "14:00", "14.00".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := parseTimeOfDay(s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return t, nil
}

// NormalizeClock turns any ParseTimeOfDay input into the canonical "HH:MM" form.
func NormalizeClock(s string) (string, error) {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

func parseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if m := timeColonAMPM.FindStringSubmatch(s); m != nil {
		return parseHourMinuteAMPM(m[1], m[2], m[3])
	}

	if m := timeDotAMPM.FindStringSubmatch(s); m != nil {
		return parseHourMinuteAMPM(m[1], m[2], m[3])
	}

	if m := timeAMPM.FindStringSubmatch(s); m != nil {
		return parseHourMinuteAMPM(m[1], "0", m[2])
	}

	if m := clock24h.FindStringSubmatch(s); m != nil {
		return parseHourMinute24(m[1], m[2])
	}

	if m := timeDot24h.FindStringSubmatch(s); m != nil {
		return parseHourMinute24(m[1], m[2])
	}

	return TimeOfDay{}, fmt.Errorf("unrecognized time format %q", s)
}

func parseHourMinuteAMPM(hourStr, minStr, ampm string) (TimeOfDay, error) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return TimeOfDay{}, err
	}
	minute, err := strconv.Atoi(minStr)
	if err != nil {
		return TimeOfDay{}, err
	}

	if hour < 1 || hour > 12 {
		return TimeOfDay{}, fmt.Errorf("hour %d out of range for 12-hour format", hour)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("minute %d out of range", minute)
	}

	if ampm == "am" {
		if hour == 12 {
			hour = 0
		}
	} else if hour != 12 {
		hour += 12
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func parseHourMinute24(hourStr, minStr string) (TimeOfDay, error) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return TimeOfDay{}, err
	}
	minute, err := strconv.Atoi(minStr)
	if err != nil {
		return TimeOfDay{}, err
	}

	if hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("hour %d out of range", hour)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("minute %d out of range", minute)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// parseRange converts a start/end clock pair into a half-open minute range,
// rejecting malformed clocks and degenerate intervals.
func parseRange(start, end string) (int, int, error) {
	s, err := TimeToMinutes(start)
	if err != nil {
		return 0, 0, err
	}
	e, err := TimeToMinutes(end)
	if err != nil {
		return 0, 0, err
	}
	if s >= e {
		return 0, 0, fmt.Errorf("%w: start %s must be before end %s", ErrInvalidInterval, start, end)
	}
	return s, e, nil
}
