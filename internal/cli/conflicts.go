package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Flyrell/daygrid/internal/schedule"
)

// checkSlot prints conflicts and near misses for slot and, when there are
// conflicts, asks whether to go ahead. It returns false when the caller
// should stop.
func checkSlot(cmd *cobra.Command, a *app, slot schedule.Slot, excludeID string, activities []schedule.Activity, confirm ConfirmFunc) (bool, error) {
	report, err := conflictReport(a, slot, excludeID, activities)
	if err != nil {
		return false, err
	}

	w := cmd.OutOrStdout()
	printNearMisses(w, report.near, a.cfg.ConflictBuffer)
	if len(report.conflicts) == 0 {
		return true, nil
	}

	printConflicts(w, slot, report.conflicts)
	a.log.Debug("conflicts found", zap.String("slot", slot.String()), zap.Int("count", len(report.conflicts)))

	if confirm == nil {
		return false, nil
	}
	ok, err := confirm("Schedule anyway?")
	if err != nil {
		return false, err
	}
	if !ok {
		_, _ = fmt.Fprintln(w, "cancelled")
	}
	return ok, nil
}

type slotReport struct {
	conflicts []schedule.Conflict
	near      []schedule.Conflict
}

func conflictReport(a *app, slot schedule.Slot, excludeID string, activities []schedule.Activity) (slotReport, error) {
	occs := a.evaluator().OccurrencesOn(activities, slot.Date)

	conflicts, err := schedule.DetectConflicts(slot, occs, excludeID)
	if err != nil {
		return slotReport{}, err
	}
	near, err := schedule.NearMisses(slot, occs, excludeID, a.cfg.ConflictBuffer)
	if err != nil {
		return slotReport{}, err
	}
	return slotReport{conflicts: conflicts, near: near}, nil
}

func printConflicts(w io.Writer, slot schedule.Slot, conflicts []schedule.Conflict) {
	_, _ = fmt.Fprintf(w, "%s %s conflicts with %d activit%s:\n",
		Warning("warning:"), Primary(slot.String()), len(conflicts), plural(len(conflicts), "y", "ies"))
	for _, c := range conflicts {
		_, _ = fmt.Fprintf(w, "  %-8s %s-%s  %s %s\n",
			Error(string(c.Classification)),
			c.Activity.StartTime, c.Activity.EndTime,
			c.Activity.Title, Silent("("+c.Activity.ID+")"))
	}
}

func printNearMisses(w io.Writer, near []schedule.Conflict, buffer int) {
	for _, n := range near {
		_, _ = fmt.Fprintf(w, "%s within %d min of %s-%s %s %s\n",
			Info("note:"), buffer, n.Activity.StartTime, n.Activity.EndTime,
			n.Activity.Title, Silent("("+n.Activity.ID+")"))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
