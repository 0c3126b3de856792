package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Flyrell/daygrid/internal/schedule"
)

const (
	gridWidth    = 60
	dayStartHour = 8
	dayEndHour   = 18
	laneMarker   = "▍"
	titleWidth   = 20
)

type renderOptions struct {
	rowMinutes int
	maxColumns int
	width      int
	selectedID string
	previewID  string
}

// timelineWindow returns the minute range shown for tl: working hours,
// widened to every item and aligned to whole rows.
func timelineWindow(tl schedule.Timeline, rowMinutes int) (int, int) {
	start, end := dayStartHour*60, dayEndHour*60
	for _, it := range tl.Items {
		if it.Start < start {
			start = it.Start
		}
		if it.End > end {
			end = it.End
		}
	}
	start -= start % rowMinutes
	if rem := end % rowMinutes; rem != 0 {
		end += rowMinutes - rem
	}
	if end > schedule.MinutesPerDay {
		end = schedule.MinutesPerDay
	}
	return start, end
}

type segment struct {
	left, right int
	item        schedule.TimelineItem
	first       bool
}

// renderTimeline draws one line per row. An item spans
// width/ColumnCount characters starting at its column.
func renderTimeline(tl schedule.Timeline, opts renderOptions) []string {
	if opts.rowMinutes <= 0 {
		opts.rowMinutes = 15
	}
	if opts.width <= 0 {
		opts.width = gridWidth
	}

	start, end := timelineWindow(tl, opts.rowMinutes)
	lines := make([]string, 0, (end-start)/opts.rowMinutes)
	for rs := start; rs < end; rs += opts.rowMinutes {
		re := rs + opts.rowMinutes
		lines = append(lines, renderRow(rowLabel(rs), rowSegments(tl, rs, re, opts), opts))
	}
	return lines
}

func rowLabel(minute int) string {
	label := schedule.MinutesToTime(minute)
	if minute%60 != 0 {
		return Silent(label)
	}
	return label
}

func rowSegments(tl schedule.Timeline, rs, re int, opts renderOptions) []segment {
	var segs []segment
	for _, it := range tl.Items {
		if it.Start >= re || it.End <= rs {
			continue
		}
		p := it.Placement.Capped(opts.maxColumns)
		if p.ColumnCount < 1 {
			p.ColumnCount = 1
		}
		segs = append(segs, segment{
			left:  p.Column * opts.width / p.ColumnCount,
			right: (p.Column + 1) * opts.width / p.ColumnCount,
			item:  it,
			first: it.Start >= rs,
		})
	}
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].left < segs[j].left })
	return segs
}

func renderRow(label string, segs []segment, opts renderOptions) string {
	var b strings.Builder
	b.WriteString(label)
	b.WriteString(" │")

	cursor := 0
	for _, s := range segs {
		left := max(s.left, cursor)
		if left >= s.right {
			continue
		}
		b.WriteString(strings.Repeat(" ", left-cursor))
		b.WriteString(segmentStyle(s.item, opts).Render(cellText(s, s.right-left)))
		cursor = s.right
	}
	if cursor < opts.width {
		b.WriteString(strings.Repeat(" ", opts.width-cursor))
	}
	b.WriteString("│")
	return b.String()
}

func cellText(s segment, width int) string {
	if !s.first {
		return fit(laneMarker, width)
	}
	return fit(laneMarker+s.item.Activity.Title+" "+schedule.MinutesToTime(s.item.Start), width)
}

func segmentStyle(it schedule.TimelineItem, opts renderOptions) lipgloss.Style {
	st := laneStyle(it.Activity.Color, it.Activity.Priority)
	if it.Activity.ID == opts.previewID {
		st = previewStyle
	}
	if it.Activity.ID == opts.selectedID {
		st = selectedStyle.Inherit(st)
	}
	return st
}

// fit truncates or pads s to exactly width runes.
func fit(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		if width <= 1 {
			return string(r[:width])
		}
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}

func timelineSummary(tl schedule.Timeline) string {
	n := len(tl.Items)
	return fmt.Sprintf("%s  %s",
		headerStyle.Render(schedule.FormatDate(tl.Date)),
		Silent(fmt.Sprintf("%d activit%s, up to %d side by side", n, plural(n, "y", "ies"), tl.MaxColumns())))
}

// staticTimeline is the non-interactive rendering of a day.
func staticTimeline(tl schedule.Timeline, opts renderOptions) string {
	if len(tl.Items) == 0 {
		return fmt.Sprintf("No activities on %s.\n", schedule.FormatDate(tl.Date))
	}

	var b strings.Builder
	b.WriteString(timelineSummary(tl))
	b.WriteString("\n\n")
	for _, line := range renderTimeline(tl, opts) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for _, it := range tl.Items {
		p := it.Placement.Capped(opts.maxColumns)
		fmt.Fprintf(&b, "  %s-%s  %-*s  lane %d/%d  %s\n",
			schedule.MinutesToTime(it.Start), schedule.MinutesToTime(it.End),
			titleWidth, it.Activity.Title,
			p.Column+1, p.ColumnCount,
			Silent("("+it.Activity.ID+")"))
	}
	return b.String()
}
