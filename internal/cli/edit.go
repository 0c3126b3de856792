package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Flyrell/daygrid/internal/schedule"
)

var editCmd = LeafCommand{
	Use:   "edit <id>",
	Short: "Edit an existing activity",
	Args:  cobra.ExactArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "save even when it conflicts"},
	},
	StrFlags: append([]StringFlag{
		{Name: "title", Shorthand: "t", Usage: "new title"},
	}, activityStrFlags...),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		flags, changed := readActivityFlags(cmd)
		titleFlag, _ := cmd.Flags().GetString("title")
		changed["title"] = cmd.Flags().Changed("title")
		yesFlag, _ := cmd.Flags().GetBool("yes")

		return runEdit(cmd, a, args[0], titleFlag, flags, changed, NewPromptKit(yesFlag), time.Now)
	},
}.Build()

func runEdit(
	cmd *cobra.Command,
	a *app,
	id, titleFlag string,
	flags activityFlags,
	changed map[string]bool,
	pk PromptKit,
	nowFn func() time.Time,
) error {
	original, err := a.store.Get(id)
	if err != nil {
		return err
	}

	edited := original
	if anyChanged(changed) {
		if changed["title"] {
			edited.Title = strings.TrimSpace(titleFlag)
			if edited.Title == "" {
				return fmt.Errorf("title is required")
			}
		}
		edited, err = applyActivityFlags(edited, flags, changed, nowFn())
	} else {
		edited, err = promptActivity(edited, pk, nowFn())
	}
	if err != nil {
		return err
	}

	if sameActivity(original, edited) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no changes")
		return nil
	}

	if scheduleChanged(original, edited) {
		activities, err := a.store.List()
		if err != nil {
			return err
		}
		slot := schedule.Slot{Date: edited.ScheduledDate, Start: edited.StartTime, End: edited.EndTime}
		proceed, err := checkSlot(cmd, a, slot, edited.ID, activities, pk.Confirm)
		if err != nil {
			return err
		}
		if !proceed {
			return nil
		}
	}

	updated, err := a.store.Update(edited)
	if err != nil {
		return err
	}

	printEditDiff(cmd, original, updated)
	return nil
}

func scheduleChanged(before, after schedule.Activity) bool {
	return before.ScheduledDate != after.ScheduledDate ||
		before.StartTime != after.StartTime ||
		before.EndTime != after.EndTime ||
		before.Recurrence != after.Recurrence ||
		!slices.Equal(before.RecurrenceDays, after.RecurrenceDays)
}

func sameActivity(before, after schedule.Activity) bool {
	return !scheduleChanged(before, after) &&
		before.Title == after.Title &&
		before.Priority == after.Priority &&
		before.Color == after.Color
}

func printEditDiff(cmd *cobra.Command, before, after schedule.Activity) {
	w := cmd.OutOrStdout()

	line := func(label, from, to string) {
		if from == to {
			return
		}
		if from == "" {
			from = "(none)"
		}
		if to == "" {
			to = "(none)"
		}
		_, _ = fmt.Fprintf(w, "  %-9s %s → %s\n", label+":", Silent(from), Primary(to))
	}

	line("title", before.Title, after.Title)
	line("date", before.ScheduledDate.String(), after.ScheduledDate.String())
	line("time", before.StartTime+"-"+before.EndTime, after.StartTime+"-"+after.EndTime)
	line("repeat", schedule.FormatRecurrence(before), schedule.FormatRecurrence(after))
	line("priority", before.Priority, after.Priority)
	line("color", before.Color, after.Color)

	_, _ = fmt.Fprintf(w, "updated activity %s\n", Silent(after.ID))
}
