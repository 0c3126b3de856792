package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flyrell/daygrid/internal/schedule"
)

var removeCmd = LeafCommand{
	Use:   "remove <id>",
	Short: "Remove an activity",
	Args:  cobra.ExactArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "skip confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		yesFlag, _ := cmd.Flags().GetBool("yes")
		var confirm ConfirmFunc
		if yesFlag {
			confirm = AlwaysYes()
		} else {
			confirm = NewConfirmFunc()
		}

		return runRemove(cmd, a, args[0], confirm)
	},
}.Build()

func runRemove(cmd *cobra.Command, a *app, id string, confirm ConfirmFunc) error {
	act, err := a.store.Get(id)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "  title:  %s\n", Primary(act.Title))
	_, _ = fmt.Fprintf(w, "  when:   %s %s\n", Primary(act.StartTime+"-"+act.EndTime), schedule.FormatRecurrence(act))

	if confirm != nil {
		ok, err := confirm("Remove this activity?")
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(w, "cancelled")
			return nil
		}
	}

	if err := a.store.Delete(id); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "removed activity %s\n", Silent(id))
	return nil
}
