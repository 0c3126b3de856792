package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execCheck(a *app, date, from, to, exclude string) (string, error) {
	cmd, buf := withOutput(checkCmd)
	err := runCheck(cmd, a, date, from, to, exclude, fixedClock)
	return buf.String(), err
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		exclude  string
		want     []string
		notWant  []string
	}{
		{
			name: "free slot",
			from: "13:00",
			to:   "14:00",
			want: []string{"no conflicts"},
		},
		{
			name: "touching is free",
			from: "10:00",
			to:   "11:00",
			want: []string{"no conflicts"},
		},
		{
			name: "partial overlap",
			from: "09:30",
			to:   "10:30",
			want: []string{"conflicts with 1 activity", "overlap", "Planning"},
		},
		{
			name: "contained",
			from: "09:15",
			to:   "09:45",
			want: []string{"contains", "Planning"},
		},
		{
			name: "spans both",
			from: "08:00",
			to:   "12:30",
			want: []string{"conflicts with 2 activities", "Planning", "Review"},
		},
		{
			name:    "excluded activity",
			from:    "09:30",
			to:      "10:30",
			exclude: "a1",
			want:    []string{"no conflicts"},
			notWant: []string{"Planning"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testApp(t)
			seedActivity(t, a, oneOff("a1", "Planning", monday, "09:00", "10:00"))
			seedActivity(t, a, oneOff("a2", "Review", monday, "12:00", "13:00"))

			out, err := execCheck(a, "2025-06-16", tt.from, tt.to, tt.exclude)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestCheckOtherDayIsFree(t *testing.T) {
	a := testApp(t)
	seedActivity(t, a, oneOff("a1", "Planning", monday, "09:00", "10:00"))

	out, err := execCheck(a, "2025-06-17", "09:00", "10:00", "")
	require.NoError(t, err)
	assert.Contains(t, out, "no conflicts")
}

func TestCheckNearMiss(t *testing.T) {
	a := testApp(t)
	a.cfg.ConflictBuffer = 15
	seedActivity(t, a, oneOff("a1", "Planning", monday, "09:00", "10:00"))

	out, err := execCheck(a, "2025-06-16", "10:10", "11:00", "")
	require.NoError(t, err)
	assert.Contains(t, out, "within 15 min")
	assert.Contains(t, out, "no conflicts")
}

func TestCheckErrors(t *testing.T) {
	a := testApp(t)

	_, err := execCheck(a, "", "", "10:00", "")
	assert.ErrorContains(t, err, "--from and --to are required")

	_, err = execCheck(a, "", "25:00", "26:00", "")
	assert.ErrorContains(t, err, "--from")

	_, err = execCheck(a, "someday", "09:00", "10:00", "")
	assert.Error(t, err)
}
