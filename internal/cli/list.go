package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flyrell/daygrid/internal/schedule"
)

var listCmd = LeafCommand{
	Use:   "list",
	Short: "List all stored activities",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		return runList(cmd, a)
	},
}.Build()

func runList(cmd *cobra.Command, a *app) error {
	activities, err := a.store.List()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(activities) == 0 {
		_, _ = fmt.Fprintln(w, Silent("No activities found."))
		return nil
	}

	for _, act := range activities {
		_, _ = fmt.Fprintf(w, "%s  %s  %s  %s  %s\n",
			Silent(act.ID),
			act.ScheduledDate,
			Info(act.StartTime+"-"+act.EndTime),
			Primary(act.Title),
			Silent(schedule.FormatRecurrence(act)),
		)
	}
	return nil
}
