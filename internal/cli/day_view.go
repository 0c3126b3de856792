package cli

import (
	"strings"
)

const dayHelp = "j/k select  J/K move  enter save  esc cancel  q quit"

func (m dayModel) View() string {
	var b strings.Builder
	b.WriteString(timelineSummary(m.timeline))
	b.WriteString("\n\n")

	if len(m.timeline.Items) == 0 {
		b.WriteString(Silent("Nothing scheduled."))
		b.WriteString("\n")
	} else {
		lines := renderTimeline(m.timeline, m.viewOptions())
		end := min(m.scrollY+m.visibleRows(), len(lines))
		for _, line := range lines[min(m.scrollY, end):end] {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.footerMsg != "" {
		b.WriteString(m.footerMsg)
		b.WriteString("\n")
	}
	b.WriteString(Silent(dayHelp))
	return b.String()
}

func (m dayModel) visibleRows() int {
	// summary(2) + blank(1) + footer(2)
	rows := m.termHeight - 5
	if rows < 1 {
		return 1
	}
	return rows
}

// ensureSelectedVisible scrolls so the selected item's first row is on screen.
func (m dayModel) ensureSelectedVisible() dayModel {
	it, ok := m.timeline.Find(m.selectedID)
	if !ok {
		return m
	}
	rowMinutes := m.app.cfg.RowMinutes
	start, _ := timelineWindow(m.timeline, rowMinutes)
	row := (it.Start - start) / rowMinutes

	if row < m.scrollY {
		m.scrollY = row
	}
	if row >= m.scrollY+m.visibleRows() {
		m.scrollY = row - m.visibleRows() + 1
	}
	if m.scrollY < 0 {
		m.scrollY = 0
	}
	return m
}
