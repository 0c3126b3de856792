package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Flyrell/daygrid/internal/schedule"
)

var moveCmd = LeafCommand{
	Use:   "move <id>",
	Short: "Shift an activity along the day, snapped to the grid",
	Args:  cobra.ExactArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "save even when it conflicts"},
	},
	StrFlags: []StringFlag{
		{Name: "by", Usage: "shift as a duration (e.g. 30m, -1h15m)"},
		{Name: "date", Shorthand: "d", Usage: "occurrence date to check conflicts on (default scheduled date)"},
	},
	FloatFlags: []FloatFlag{
		{Name: "pixels", Usage: "drag distance in pixels (negative moves earlier)"},
		{Name: "minutes-per-pixel", Usage: "minutes per pixel (default row_minutes)"},
	},
	IntFlags: []IntFlag{
		{Name: "grid", Usage: "snap grid in minutes (default grid_minutes)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		opts := moveOptions{UsePixels: cmd.Flags().Changed("pixels")}
		opts.Pixels, _ = cmd.Flags().GetFloat64("pixels")
		opts.MinutesPerPixel, _ = cmd.Flags().GetFloat64("minutes-per-pixel")
		opts.By, _ = cmd.Flags().GetString("by")
		opts.Grid, _ = cmd.Flags().GetInt("grid")
		opts.Date, _ = cmd.Flags().GetString("date")
		yesFlag, _ := cmd.Flags().GetBool("yes")

		var confirm ConfirmFunc
		if yesFlag {
			confirm = AlwaysYes()
		} else {
			confirm = NewConfirmFunc()
		}

		return runMove(cmd, a, args[0], opts, confirm, time.Now)
	},
}.Build()

type moveOptions struct {
	UsePixels       bool
	Pixels          float64
	MinutesPerPixel float64
	By              string
	Grid            int
	Date            string
}

func runMove(cmd *cobra.Command, a *app, id string, opts moveOptions, confirm ConfirmFunc, nowFn func() time.Time) error {
	if opts.UsePixels == (opts.By != "") {
		return fmt.Errorf("exactly one of --pixels or --by is required")
	}

	act, err := a.store.Get(id)
	if err != nil {
		return err
	}

	grid := opts.Grid
	if grid <= 0 {
		grid = a.cfg.GridMinutes
	}

	var slot schedule.Slot
	if opts.UsePixels {
		mpp := opts.MinutesPerPixel
		if mpp <= 0 {
			mpp = float64(a.cfg.RowMinutes)
		}
		slot, err = schedule.Reposition(act, opts.Pixels, mpp, grid)
	} else {
		var d time.Duration
		d, err = time.ParseDuration(opts.By)
		if err != nil {
			return fmt.Errorf("--by: %w", err)
		}
		slot, err = schedule.RepositionBy(act, int(d.Round(time.Minute)/time.Minute), grid)
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if slot.Start == act.StartTime {
		_, _ = fmt.Fprintf(w, "%s already at %s\n", Primary(act.Title), Info(act.StartTime+"-"+act.EndTime))
		return nil
	}

	if opts.Date != "" {
		d, err := schedule.ResolveDate(opts.Date, nowFn())
		if err != nil {
			return err
		}
		if !a.evaluator().OccursOn(act, d) {
			return fmt.Errorf("activity '%s' does not occur on %s", act.ID, d)
		}
		slot.Date = d
	}

	if act.Recurrence != schedule.RecurNone {
		_, _ = fmt.Fprintf(w, "%s this shifts every occurrence (%s); only %s was checked for conflicts\n",
			Info("note:"), schedule.FormatRecurrence(act), slot.Date)
	}

	activities, err := a.store.List()
	if err != nil {
		return err
	}
	proceed, err := checkSlot(cmd, a, slot, act.ID, activities, confirm)
	if err != nil {
		return err
	}
	if !proceed {
		return nil
	}

	updated, err := a.store.ApplyReposition(act.ID, slot)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "  time: %s → %s\n",
		Silent(act.StartTime+"-"+act.EndTime), Primary(updated.StartTime+"-"+updated.EndTime))
	_, _ = fmt.Fprintf(w, "moved activity %s\n", Silent(updated.ID))
	return nil
}
