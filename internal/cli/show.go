package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flyrell/daygrid/internal/schedule"
)

var showCmd = LeafCommand{
	Use:   "show <id>",
	Short: "Show an activity and its recurrence rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		return runShow(cmd, a, args[0])
	},
}.Build()

func runShow(cmd *cobra.Command, a *app, id string) error {
	act, err := a.store.Get(id)
	if err != nil {
		return err
	}

	minutes, err := act.Duration()
	if err != nil {
		return err
	}
	rule, err := a.evaluator().RRuleString(act)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	field := func(label, value string) {
		if value == "" {
			return
		}
		_, _ = fmt.Fprintf(w, "  %-9s %s\n", label+":", value)
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", Primary(act.Title), Silent("("+act.ID+")"))
	field("date", schedule.FormatDate(act.ScheduledDate)+" "+Silent(act.ScheduledDate.String()))
	field("time", Info(schedule.FormatTimeRange(act.StartTime, act.EndTime))+" "+Silent(schedule.FormatMinutes(minutes)))
	field("repeat", schedule.FormatRecurrence(act))
	field("priority", act.Priority)
	field("color", act.Color)
	field("rule", Silent(rule))
	return nil
}
