package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Flyrell/daygrid/internal/agenda"
	"github.com/Flyrell/daygrid/internal/schedule"
)

const defaultAgendaDays = 7

var agendaCmd = LeafCommand{
	Use:   "agenda",
	Short: "Show every occurrence over a date range",
	StrFlags: []StringFlag{
		{Name: "from", Usage: "first day (default today)"},
		{Name: "to", Usage: "last day (default a week from --from)"},
		{Name: "export", Usage: "export format (pdf)"},
		{Name: "output", Shorthand: "o", Usage: "directory for the exported file", Default: "."},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		fromFlag, _ := cmd.Flags().GetString("from")
		toFlag, _ := cmd.Flags().GetString("to")
		exportFlag, _ := cmd.Flags().GetString("export")
		outputFlag, _ := cmd.Flags().GetString("output")

		return runAgenda(cmd, a, fromFlag, toFlag, exportFlag, outputFlag, time.Now)
	},
}.Build()

func runAgenda(cmd *cobra.Command, a *app, fromFlag, toFlag, exportFlag, outputDir string, nowFn func() time.Time) error {
	if exportFlag != "" && exportFlag != "pdf" {
		return fmt.Errorf("unsupported export format %q (supported: pdf)", exportFlag)
	}

	now := nowFn()
	from := schedule.DateOf(now)
	if fromFlag != "" {
		d, err := schedule.ResolveDate(fromFlag, now)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		from = d
	}
	to := from.AddDays(defaultAgendaDays - 1)
	if toFlag != "" {
		d, err := schedule.ResolveDate(toFlag, now)
		if err != nil {
			return fmt.Errorf("--to: %w", err)
		}
		to = d
	}

	activities, err := a.store.List()
	if err != nil {
		return err
	}
	ag, err := agenda.Build(a.evaluator(), activities, from, to, a.cfg.MaxColumns)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if exportFlag == "pdf" {
		if outputDir == "" {
			outputDir = "."
		}
		path := filepath.Join(outputDir, agendaFileName(from, to))
		if err := renderAgendaPDF(ag, path); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "exported agenda to %s\n", Primary(path))
		return nil
	}

	printAgenda(cmd, ag)
	return nil
}

func agendaFileName(from, to schedule.Date) string {
	return fmt.Sprintf("daygrid-%s-%s.pdf", from, to)
}

func printAgenda(cmd *cobra.Command, ag agenda.Agenda) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "%s\n", headerStyle.Render(
		fmt.Sprintf("%s → %s", schedule.FormatDate(ag.From), schedule.FormatDate(ag.To))))

	if len(ag.Days) == 0 {
		_, _ = fmt.Fprintln(w, Silent("Nothing scheduled."))
		return
	}

	for _, day := range ag.Days {
		_, _ = fmt.Fprintf(w, "\n%s  %s\n", Primary(schedule.FormatDate(day.Date)), Silent(schedule.FormatMinutes(day.BusyMinutes)))
		for _, e := range day.Entries {
			lane := ""
			if e.Overlapping() {
				lane = Warning(fmt.Sprintf("lane %d/%d", e.Placement.Column+1, e.Placement.ColumnCount))
			}
			_, _ = fmt.Fprintf(w, "  %s-%s  %-*s  %s\n",
				schedule.MinutesToTime(e.Start), schedule.MinutesToTime(e.End),
				titleWidth, e.Activity.Title, lane)
		}
	}

	_, _ = fmt.Fprintf(w, "\n%s %s", Primary("total"), schedule.FormatMinutes(ag.BusyMinutes))
	if ag.OverlappingCount > 0 {
		_, _ = fmt.Fprintf(w, "  %s", Silent(fmt.Sprintf("%d overlapping", ag.OverlappingCount)))
	}
	_, _ = fmt.Fprintln(w)
}
