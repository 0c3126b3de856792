package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "09:30", want: 570},
		{name: "single digit hour", input: "9:30", want: 570},
		{name: "last minute", input: "23:59", want: 1439},

		{name: "empty", input: "", wantErr: true},
		{name: "hour 24", input: "24:00", wantErr: true},
		{name: "minute 60", input: "10:60", wantErr: true},
		{name: "no colon", input: "0930", wantErr: true},
		{name: "ampm not allowed", input: "9:30am", wantErr: true},
		{name: "seconds", input: "09:30:00", wantErr: true},
		{name: "negative", input: "-1:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeToMinutes(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMinutesToTime(t *testing.T) {
	assert.Equal(t, "00:00", MinutesToTime(0))
	assert.Equal(t, "09:45", MinutesToTime(585))
	assert.Equal(t, "23:59", MinutesToTime(1439))
}

func TestMinutesToTimeOutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { MinutesToTime(-1) })
	assert.Panics(t, func() { MinutesToTime(1440) })
}

func TestMinutesRoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m += 7 {
		got, err := TimeToMinutes(MinutesToTime(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		// 12-hour with colon
		{name: "9:30am", input: "9:30am", want: TimeOfDay{Hour: 9, Minute: 30}},
		{name: "9:30pm", input: "9:30pm", want: TimeOfDay{Hour: 21, Minute: 30}},
		{name: "12:00am", input: "12:00am", want: TimeOfDay{Hour: 0, Minute: 0}},
		{name: "12:30pm", input: "12:30pm", want: TimeOfDay{Hour: 12, Minute: 30}},

		// 12-hour without colon
		{name: "9am", input: "9am", want: TimeOfDay{Hour: 9, Minute: 0}},
		{name: "5pm", input: "5pm", want: TimeOfDay{Hour: 17, Minute: 0}},
		{name: "9 am", input: "9 am", want: TimeOfDay{Hour: 9, Minute: 0}},

		// 24-hour
		{name: "14:00", input: "14:00", want: TimeOfDay{Hour: 14, Minute: 0}},
		{name: "09:30", input: "09:30", want: TimeOfDay{Hour: 9, Minute: 30}},
		{name: "14.00", input: "14.00", want: TimeOfDay{Hour: 14, Minute: 0}},

		// Errors
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "not a time", wantErr: true},
		{name: "hour 25", input: "25:00", wantErr: true},
		{name: "hour 13am", input: "13am", wantErr: true},
		{name: "minute 60", input: "9:60am", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeClock(t *testing.T) {
	got, err := NormalizeClock("2:05pm")
	require.NoError(t, err)
	assert.Equal(t, "14:05", got)

	_, err = NormalizeClock("later")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestActivityValidate(t *testing.T) {
	base := Activity{ID: "a", Title: "t", ScheduledDate: NewDate(2024, 1, 1), StartTime: "09:00", EndTime: "10:00"}
	require.NoError(t, base.Validate())

	bad := base
	bad.EndTime = "9am"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidFormat)

	bad = base
	bad.EndTime = "09:00"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidInterval)

	bad = base
	bad.StartTime, bad.EndTime = "11:00", "10:00"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidInterval)

	bad = base
	bad.Recurrence = "yearly"
	assert.Error(t, bad.Validate())

	bad = base
	bad.ScheduledDate = Date{}
	assert.Error(t, bad.Validate())
}
