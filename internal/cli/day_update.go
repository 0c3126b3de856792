package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Flyrell/daygrid/internal/schedule"
)

func (m dayModel) Init() tea.Cmd {
	return nil
}

func (m dayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m = m.ensureSelectedVisible()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "down", "j":
			if !m.dragging {
				m = m.moveSelection(1)
			}
		case "up", "k":
			if !m.dragging {
				m = m.moveSelection(-1)
			}
		case "shift+down", "J":
			m = m.drag(1)
		case "shift+up", "K":
			m = m.drag(-1)
		case "enter":
			m = m.commit()
		case "esc":
			m = m.cancelDrag()
		}
	}
	return m, nil
}

func (m dayModel) selectedIndex() int {
	for i, it := range m.timeline.Items {
		if it.Activity.ID == m.selectedID {
			return i
		}
	}
	return -1
}

func (m dayModel) moveSelection(delta int) dayModel {
	if len(m.timeline.Items) == 0 {
		return m
	}
	idx := m.selectedIndex() + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.timeline.Items) {
		idx = len(m.timeline.Items) - 1
	}
	m.selectedID = m.timeline.Items[idx].Activity.ID
	m.footerMsg = ""
	return m.ensureSelectedVisible()
}

func (m dayModel) findActivity(id string) (schedule.Activity, bool) {
	for _, a := range m.activities {
		if a.ID == id {
			return a, true
		}
	}
	return schedule.Activity{}, false
}

// drag extends the gesture by rows and recomputes the preview layout. The
// store is not touched until the drag is committed.
func (m dayModel) drag(rows int) dayModel {
	act, ok := m.findActivity(m.selectedID)
	if !ok {
		return m
	}

	start, end, err := act.Range()
	if err != nil {
		m.footerMsg = Error(err.Error())
		return m
	}
	// Keys pressed against an edge of the day do not accumulate, so the
	// first key in the other direction moves the preview at once.
	offset := start + m.dragRows*m.app.cfg.RowMinutes
	if (rows < 0 && offset <= 0) || (rows > 0 && offset >= schedule.LastMinute-(end-start)) {
		return m
	}

	dragRows := m.dragRows + rows
	slot, err := schedule.Reposition(act, float64(dragRows), float64(m.app.cfg.RowMinutes), m.app.cfg.GridMinutes)
	if err != nil {
		m.footerMsg = Error(err.Error())
		return m
	}
	slot.Date = m.date

	previewActs := make([]schedule.Activity, len(m.activities))
	copy(previewActs, m.activities)
	for i := range previewActs {
		if previewActs[i].ID == act.ID {
			previewActs[i].StartTime = slot.Start
			previewActs[i].EndTime = slot.End
		}
	}
	tl, err := m.app.evaluator().Timeline(previewActs, m.date)
	if err != nil {
		m.footerMsg = Error(err.Error())
		return m
	}

	m.dragging = true
	m.dragRows = dragRows
	m.preview = slot
	m.timeline = tl
	m.confirming = false
	m.footerMsg = fmt.Sprintf("move %s to %s", act.Title, Primary(slot.Start+"-"+slot.End))
	return m.ensureSelectedVisible()
}

func (m dayModel) cancelDrag() dayModel {
	if !m.dragging {
		return m
	}
	m.dragging = false
	m.dragRows = 0
	m.confirming = false
	m.preview = schedule.Slot{}
	if err := m.reload(); err != nil {
		m.footerMsg = Error(err.Error())
		return m
	}
	m.footerMsg = "cancelled"
	return m
}

// commit checks the dragged slot for conflicts on the viewed date. With
// conflicts, a second enter is needed to save anyway.
func (m dayModel) commit() dayModel {
	if !m.dragging {
		return m
	}
	act, ok := m.findActivity(m.selectedID)
	if !ok {
		return m.cancelDrag()
	}
	if m.preview.Start == act.StartTime {
		m = m.cancelDrag()
		m.footerMsg = "no changes"
		return m
	}

	if !m.confirming {
		report, err := conflictReport(m.app, m.preview, act.ID, m.activities)
		if err != nil {
			m.footerMsg = Error(err.Error())
			return m
		}
		if len(report.conflicts) > 0 {
			m.confirming = true
			m.footerMsg = fmt.Sprintf("%s %s conflicts with %d activit%s; enter saves anyway, esc cancels",
				Warning("warning:"), m.preview.String(), len(report.conflicts), plural(len(report.conflicts), "y", "ies"))
			return m
		}
	}

	updated, err := m.app.store.ApplyReposition(act.ID, m.preview)
	if err != nil {
		m.app.log.Warn("reposition failed", zap.String("id", act.ID), zap.Error(err))
		m = m.cancelDrag()
		m.footerMsg = Error("save failed: " + err.Error())
		return m
	}

	m.dragging = false
	m.dragRows = 0
	m.confirming = false
	m.preview = schedule.Slot{}
	if err := m.reload(); err != nil {
		m.footerMsg = Error(err.Error())
		return m
	}
	m.footerMsg = fmt.Sprintf("moved %s to %s", updated.Title, Primary(updated.StartTime+"-"+updated.EndTime))
	return m.ensureSelectedVisible()
}
