package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Flyrell/daygrid/internal/schedule"
)

var dayCmd = LeafCommand{
	Use:   "day [date]",
	Short: "Show the timeline for a day and drag activities around",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		dateArg := ""
		if len(args) > 0 {
			dateArg = args[0]
		}
		return runDay(cmd, a, dateArg, time.Now)
	},
}.Build()

type dayModel struct {
	app        *app
	date       schedule.Date
	activities []schedule.Activity
	timeline   schedule.Timeline
	selectedID string

	// drag state; dragRows is the drag distance in rows (one row is one pixel)
	dragging   bool
	dragRows   int
	preview    schedule.Slot
	confirming bool

	scrollY    int
	termWidth  int
	termHeight int
	footerMsg  string
}

func newDayModel(a *app, date schedule.Date) (dayModel, error) {
	m := dayModel{
		app:        a,
		date:       date,
		termWidth:  100,
		termHeight: 40,
	}
	if err := m.reload(); err != nil {
		return dayModel{}, err
	}
	if len(m.timeline.Items) > 0 {
		m.selectedID = m.timeline.Items[0].Activity.ID
	}
	return m, nil
}

// reload re-reads the store and recomputes the timeline.
func (m *dayModel) reload() error {
	activities, err := m.app.store.List()
	if err != nil {
		return err
	}
	tl, err := m.app.evaluator().Timeline(activities, m.date)
	if err != nil {
		return err
	}
	m.activities = activities
	m.timeline = tl
	return nil
}

func (m dayModel) viewOptions() renderOptions {
	opts := renderOptions{
		rowMinutes: m.app.cfg.RowMinutes,
		maxColumns: m.app.cfg.MaxColumns,
		width:      gridWidth,
		selectedID: m.selectedID,
	}
	if m.dragging {
		opts.previewID = m.selectedID
	}
	if w := m.termWidth - 10; w > 20 && w < opts.width {
		opts.width = w
	}
	return opts
}

func runDay(cmd *cobra.Command, a *app, dateArg string, nowFn func() time.Time) error {
	date := schedule.DateOf(nowFn())
	if dateArg != "" {
		d, err := schedule.ResolveDate(dateArg, nowFn())
		if err != nil {
			return err
		}
		date = d
	}

	m, err := newDayModel(a, date)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		_, err := fmt.Fprint(out, staticTimeline(m.timeline, m.viewOptions()))
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(out))
	_, err = p.Run()
	return err
}
