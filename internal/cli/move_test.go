package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flyrell/daygrid/internal/schedule"
)

func execMove(a *app, id string, opts moveOptions, confirm ConfirmFunc) (string, error) {
	cmd, buf := withOutput(moveCmd)
	err := runMove(cmd, a, id, opts, confirm, fixedClock)
	return buf.String(), err
}

func TestMove(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		opts      moveOptions
		wantStart string
		wantEnd   string
	}{
		{
			name:      "by duration snaps to grid",
			start:     "09:00",
			end:       "10:00",
			opts:      moveOptions{By: "47m"},
			wantStart: "09:45",
			wantEnd:   "10:45",
		},
		{
			name:      "by negative duration",
			start:     "09:00",
			end:       "10:00",
			opts:      moveOptions{By: "-1h30m"},
			wantStart: "07:30",
			wantEnd:   "08:30",
		},
		{
			name:      "pixels with explicit scale",
			start:     "09:00",
			end:       "10:00",
			opts:      moveOptions{UsePixels: true, Pixels: 4, MinutesPerPixel: 15},
			wantStart: "10:00",
			wantEnd:   "11:00",
		},
		{
			name:      "pixels default to row minutes",
			start:     "09:00",
			end:       "10:00",
			opts:      moveOptions{UsePixels: true, Pixels: -2},
			wantStart: "08:30",
			wantEnd:   "09:30",
		},
		{
			name:      "fractional pixels round",
			start:     "09:00",
			end:       "09:30",
			opts:      moveOptions{UsePixels: true, Pixels: 2.6, MinutesPerPixel: 10, Grid: 15},
			wantStart: "09:30",
			wantEnd:   "10:00",
		},
		{
			name:      "clamped to end of day",
			start:     "23:00",
			end:       "23:30",
			opts:      moveOptions{By: "2h"},
			wantStart: "23:29",
			wantEnd:   "23:59",
		},
		{
			name:      "clamped to start of day",
			start:     "00:30",
			end:       "01:30",
			opts:      moveOptions{By: "-3h"},
			wantStart: "00:00",
			wantEnd:   "01:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testApp(t)
			seedActivity(t, a, oneOff("a1", "Planning", monday, tt.start, tt.end))

			out, err := execMove(a, "a1", tt.opts, AlwaysYes())
			require.NoError(t, err)
			assert.Contains(t, out, "moved activity")
			assert.NotContains(t, out, "every occurrence")

			got, err := a.store.Get("a1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, got.StartTime)
			assert.Equal(t, tt.wantEnd, got.EndTime)
			assert.Equal(t, monday, got.ScheduledDate)
		})
	}
}

func TestMoveRequiresExactlyOneMode(t *testing.T) {
	a := testApp(t)
	seedActivity(t, a, oneOff("a1", "Planning", monday, "09:00", "10:00"))

	_, err := execMove(a, "a1", moveOptions{}, AlwaysYes())
	assert.ErrorContains(t, err, "exactly one of --pixels or --by")

	_, err = execMove(a, "a1", moveOptions{UsePixels: true, Pixels: 1, By: "5m"}, AlwaysYes())
	assert.ErrorContains(t, err, "exactly one of --pixels or --by")
}

func TestMoveBadDuration(t *testing.T) {
	a := testApp(t)
	seedActivity(t, a, oneOff("a1", "Planning", monday, "09:00", "10:00"))

	_, err := execMove(a, "a1", moveOptions{By: "soon"}, AlwaysYes())
	assert.ErrorContains(t, err, "--by")
}

func TestMoveSnapsBackToSameSlot(t *testing.T) {
	a := testApp(t)
	seedActivity(t, a, oneOff("a1", "Planning", monday, "09:00", "10:00"))

	out, err := execMove(a, "a1", moveOptions{By: "2m"}, AlwaysYes())
	require.NoError(t, err)
	assert.Contains(t, out, "already at")
}

func TestMoveConflictDeclined(t *testing.T) {
	a := testApp(t)
	seedActivity(t, a, oneOff("a1", "Planning", monday, "09:00", "10:00"))
	seedActivity(t, a, oneOff("a2", "Review", monday, "10:00", "11:00"))

	out, err := execMove(a, "a1", moveOptions{By: "30m"}, declineConfirm)
	require.NoError(t, err)
	assert.Contains(t, out, "Review")
	assert.Contains(t, out, "cancelled")

	got, err := a.store.Get("a1")
	require.NoError(t, err)
	assert.Equal(t, "09:00", got.StartTime)
}

func TestMoveRecurringChecksChosenDate(t *testing.T) {
	a := testApp(t)
	daily := oneOff("d1", "Focus", schedule.NewDate(2025, 6, 1), "09:00", "10:00")
	daily.Recurrence = schedule.RecurDaily
	seedActivity(t, a, daily)
	seedActivity(t, a, oneOff("a2", "Dentist", schedule.NewDate(2025, 6, 20), "10:00", "11:00"))

	out, err := execMove(a, "d1", moveOptions{By: "30m", Date: "2025-06-20"}, declineConfirm)
	require.NoError(t, err)
	assert.Contains(t, out, "every occurrence (every day); only 2025-06-20 was checked")
	assert.Contains(t, out, "Dentist")
	assert.Contains(t, out, "cancelled")

	out, err = execMove(a, "d1", moveOptions{By: "30m"}, declineConfirm)
	require.NoError(t, err)
	assert.Contains(t, out, "only 2025-06-01 was checked")
	assert.Contains(t, out, "moved activity")

	got, err := a.store.Get("d1")
	require.NoError(t, err)
	assert.Equal(t, "09:30", got.StartTime)
	assert.Equal(t, schedule.NewDate(2025, 6, 1), got.ScheduledDate)
}

func TestMoveDateWithoutOccurrence(t *testing.T) {
	a := testApp(t)
	seedActivity(t, a, oneOff("a1", "Planning", monday, "09:00", "10:00"))

	_, err := execMove(a, "a1", moveOptions{By: "30m", Date: "2025-06-17"}, AlwaysYes())
	assert.ErrorContains(t, err, "does not occur")
}
