package cli

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/Flyrell/daygrid/internal/agenda"
	"github.com/Flyrell/daygrid/internal/schedule"
)

var (
	pdfHeaderColor  = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor   = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor    = props.Color{Red: 200, Green: 200, Blue: 200}
	pdfOverlapColor = props.Color{Red: 200, Green: 110, Blue: 0}
)

// renderAgendaPDF writes the agenda as a printable day-by-day document.
func renderAgendaPDF(ag agenda.Agenda, outputPath string) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, "Agenda", props.Text{
			Style: fontstyle.Bold,
			Size:  16,
			Color: &pdfHeaderColor,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, fmt.Sprintf("%s to %s", schedule.FormatDate(ag.From), schedule.FormatDate(ag.To)), props.Text{
			Size:  12,
			Color: &pdfMutedColor,
		}),
	)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(4)

	if len(ag.Days) == 0 {
		m.AddRow(8, text.NewCol(12, "Nothing scheduled.", props.Text{Size: 10, Color: &pdfMutedColor}))
	}

	for _, day := range ag.Days {
		m.AddRow(8,
			text.NewCol(9, schedule.FormatDate(day.Date), props.Text{
				Style: fontstyle.Bold,
				Size:  10,
				Color: &pdfHeaderColor,
			}),
			text.NewCol(3, schedule.FormatMinutes(day.BusyMinutes), props.Text{
				Style: fontstyle.Bold,
				Size:  10,
				Align: align.Right,
				Color: &pdfHeaderColor,
			}),
		)

		for _, e := range day.Entries {
			lane := ""
			laneProps := props.Text{Size: 8, Align: align.Right, Color: &pdfMutedColor}
			if e.Overlapping() {
				lane = fmt.Sprintf("lane %d/%d", e.Placement.Column+1, e.Placement.ColumnCount)
				laneProps.Color = &pdfOverlapColor
			}
			m.AddRow(6,
				text.NewCol(3, "  "+schedule.FormatTimeRange(schedule.MinutesToTime(e.Start), schedule.MinutesToTime(e.End)), props.Text{Size: 9}),
				text.NewCol(6, e.Activity.Title, props.Text{Size: 9}),
				text.NewCol(3, lane, laneProps),
			)
		}

		m.AddRow(4)
	}

	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(10,
		text.NewCol(9, "Total scheduled", props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Color: &pdfHeaderColor,
		}),
		text.NewCol(3, schedule.FormatMinutes(ag.BusyMinutes), props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Align: align.Right,
			Color: &pdfHeaderColor,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generating PDF: %w", err)
	}

	return doc.Save(outputPath)
}
