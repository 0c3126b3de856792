package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Flyrell/daygrid/internal/schedule"
)

var checkCmd = LeafCommand{
	Use:   "check",
	Short: "Report conflicts for a time slot without saving anything",
	StrFlags: []StringFlag{
		{Name: "date", Shorthand: "d", Usage: "date to check (default today)"},
		{Name: "from", Usage: "start time (e.g. 9am, 14:00)"},
		{Name: "to", Usage: "end time (e.g. 10am, 15:30)"},
		{Name: "exclude", Usage: "activity ID to leave out of the check"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		dateFlag, _ := cmd.Flags().GetString("date")
		fromFlag, _ := cmd.Flags().GetString("from")
		toFlag, _ := cmd.Flags().GetString("to")
		excludeFlag, _ := cmd.Flags().GetString("exclude")

		return runCheck(cmd, a, dateFlag, fromFlag, toFlag, excludeFlag, time.Now)
	},
}.Build()

func runCheck(cmd *cobra.Command, a *app, dateFlag, fromFlag, toFlag, excludeID string, nowFn func() time.Time) error {
	if fromFlag == "" || toFlag == "" {
		return fmt.Errorf("--from and --to are required")
	}

	date := schedule.DateOf(nowFn())
	if dateFlag != "" {
		d, err := schedule.ResolveDate(dateFlag, nowFn())
		if err != nil {
			return err
		}
		date = d
	}
	from, err := schedule.NormalizeClock(fromFlag)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := schedule.NormalizeClock(toFlag)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	activities, err := a.store.List()
	if err != nil {
		return err
	}

	slot := schedule.Slot{Date: date, Start: from, End: to}
	report, err := conflictReport(a, slot, excludeID, activities)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printNearMisses(w, report.near, a.cfg.ConflictBuffer)
	if len(report.conflicts) == 0 {
		_, _ = fmt.Fprintf(w, "%s %s\n", Primary(slot.String()), Info("no conflicts"))
		return nil
	}
	printConflicts(w, slot, report.conflicts)
	return nil
}
