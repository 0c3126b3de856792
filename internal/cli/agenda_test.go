package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flyrell/daygrid/internal/agenda"
	"github.com/Flyrell/daygrid/internal/schedule"
)

func seedAgenda(t *testing.T, a *app) {
	t.Helper()
	weekly := oneOff("w1", "Gym", monday, "09:00", "10:00")
	weekly.Recurrence = schedule.RecurWeekly
	weekly.RecurrenceDays = []schedule.DayToken{"mon", "wed"}
	seedActivity(t, a, weekly)
	seedActivity(t, a, oneOff("a1", "Dentist", schedule.NewDate(2025, 6, 18), "09:30", "10:30"))
}

func execAgenda(a *app, from, to, export, output string) (string, error) {
	cmd, buf := withOutput(agendaCmd)
	err := runAgenda(cmd, a, from, to, export, output, fixedClock)
	return buf.String(), err
}

func TestAgendaText(t *testing.T) {
	a := testApp(t)
	seedAgenda(t, a)

	out, err := execAgenda(a, "2025-06-16", "2025-06-22", "", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Mon Jun 16")
	assert.Contains(t, out, "Wed Jun 18")
	assert.NotContains(t, out, "Tue Jun 17")
	assert.Contains(t, out, "Dentist")
	assert.Contains(t, out, "lane 1/2")
	assert.Contains(t, out, "lane 2/2")
	// 1h Monday + 1h30m union on Wednesday
	assert.Contains(t, out, "total 2h 30m")
	assert.Contains(t, out, "2 overlapping")
}

func TestAgendaDefaultRange(t *testing.T) {
	a := testApp(t)
	seedAgenda(t, a)

	out, err := execAgenda(a, "", "", "", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Sun Jun 15 → Sat Jun 21")
	assert.Contains(t, out, "Mon Jun 16")
}

func TestAgendaEmpty(t *testing.T) {
	a := testApp(t)

	out, err := execAgenda(a, "2025-06-16", "2025-06-22", "", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing scheduled.")
}

func TestAgendaErrors(t *testing.T) {
	a := testApp(t)

	_, err := execAgenda(a, "2025-06-22", "2025-06-16", "", "")
	assert.Error(t, err)

	_, err = execAgenda(a, "2025-01-01", "2026-06-01", "", "")
	assert.ErrorContains(t, err, "max")

	_, err = execAgenda(a, "", "", "csv", "")
	assert.ErrorContains(t, err, "unsupported export format")

	_, err = execAgenda(a, "whenever", "", "", "")
	assert.ErrorContains(t, err, "--from")
}

func TestAgendaExportPDF(t *testing.T) {
	a := testApp(t)
	seedAgenda(t, a)
	dir := t.TempDir()

	out, err := execAgenda(a, "2025-06-16", "2025-06-22", "pdf", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "daygrid-2025-06-16-2025-06-22.pdf")
	assert.Contains(t, out, path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)
}

func TestRenderAgendaPDFEmpty(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "empty.pdf")

	err := renderAgendaPDF(agenda.Agenda{From: monday, To: monday}, outPath)
	require.NoError(t, err)

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)
}

func TestAgendaFileName(t *testing.T) {
	assert.Equal(t, "daygrid-2025-06-16-2025-06-22.pdf", agendaFileName(monday, schedule.NewDate(2025, 6, 22)))
}
