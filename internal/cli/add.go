package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Flyrell/daygrid/internal/schedule"
)

var addCmd = LeafCommand{
	Use:   "add [title]",
	Short: "Schedule a new activity",
	Args:  cobra.MaximumNArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "schedule even when it conflicts"},
	},
	StrFlags: activityStrFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		title := ""
		if len(args) > 0 {
			title = args[0]
		}
		flags, _ := readActivityFlags(cmd)
		yesFlag, _ := cmd.Flags().GetBool("yes")

		return runAdd(cmd, a, title, flags, NewPromptKit(yesFlag), time.Now)
	},
}.Build()

func runAdd(cmd *cobra.Command, a *app, title string, flags activityFlags, pk PromptKit, nowFn func() time.Time) error {
	now := nowFn()
	draft := schedule.Activity{
		Title:         strings.TrimSpace(title),
		ScheduledDate: schedule.DateOf(now),
		Recurrence:    schedule.RecurNone,
	}

	var err error
	if draft.Title == "" && flags.From == "" && flags.To == "" {
		draft, err = promptActivity(draft, pk, now)
	} else {
		draft, err = applyActivityFlags(draft, flags, flags.changedFrom(), now)
	}
	if err != nil {
		return err
	}

	if draft.Title == "" {
		return fmt.Errorf("title is required")
	}
	if draft.StartTime == "" || draft.EndTime == "" {
		return fmt.Errorf("--from and --to are required")
	}

	activities, err := a.store.List()
	if err != nil {
		return err
	}

	slot := schedule.Slot{Date: draft.ScheduledDate, Start: draft.StartTime, End: draft.EndTime}
	proceed, err := checkSlot(cmd, a, slot, "", activities, pk.Confirm)
	if err != nil {
		return err
	}
	if !proceed {
		return nil
	}

	created, err := a.store.Create(draft)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s %s on %s (%s) %s\n",
		Primary(created.Title),
		Info(created.StartTime+"-"+created.EndTime),
		schedule.FormatDate(created.ScheduledDate),
		schedule.FormatRecurrence(created),
		Silent(created.ID),
	)
	return nil
}
