package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/okanz/shiftwatch/internal/duration"
	"github.com/okanz/shiftwatch/internal/roster"
	"github.com/okanz/shiftwatch/internal/store"
)

// shiftPanelModel is the employee-facing view: pick an employee, start a
// shift, log activity clicks against it, end it.
type shiftPanelModel struct {
	store  *store.Store
	roster *roster.Roster
	width  int
	height int

	employeeID string
	active     *store.Shift
	clicks     int

	// busy is set before each store operation and cleared by the single
	// shiftOpMsg every operation emits, so no failure path leaves the
	// panel stuck loading.
	busy       bool
	errText    string
	flash      string
	flashUntil time.Time

	picking      bool
	pickerCursor int
}

func newShiftPanelModel(s *store.Store, r *roster.Roster) shiftPanelModel {
	return shiftPanelModel{store: s, roster: r}
}

func (m *shiftPanelModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m shiftPanelModel) loadActive() tea.Cmd {
	empID := m.employeeID
	if empID == "" {
		return nil
	}
	return func() tea.Msg {
		active, err := m.store.ActiveShift(empID)
		if err != nil {
			return statusMsg{text: opErrorText(err), isError: true}
		}
		clicks := 0
		if active != nil {
			clicks, _ = m.store.ClickCount(active.ID)
		}
		return activeShiftMsg{shift: active, clicks: clicks}
	}
}

func (m shiftPanelModel) update(msg tea.Msg) (shiftPanelModel, tea.Cmd) {
	switch msg := msg.(type) {
	case activeShiftMsg:
		m.active = msg.shift
		m.clicks = msg.clicks
		return m, nil

	case shiftOpMsg:
		m.busy = false
		if msg.isError {
			m.errText = msg.status
			return m, m.loadActive()
		}
		m.errText = ""
		m.flash = msg.status
		m.flashUntil = time.Now().Add(3 * time.Second)
		return m, m.loadActive()

	case tickMsg:
		if m.flash != "" && time.Now().After(m.flashUntil) {
			m.flash = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		if m.picking {
			return m.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Pick), key.Matches(msg, keys.Enter):
			m.picking = true
			m.pickerCursor = 0
			m.errText = ""
			return m, nil

		case key.Matches(msg, keys.Start):
			if m.employeeID == "" {
				m.errText = "Please select an employee"
				return m, nil
			}
			if m.active != nil {
				m.errText = "This employee already has an active shift"
				return m, nil
			}
			m.busy = true
			return m, m.startShift()

		case key.Matches(msg, keys.Click):
			if m.active == nil {
				m.errText = "No active shift. Start one first"
				return m, nil
			}
			m.busy = true
			return m, m.recordClick()

		case key.Matches(msg, keys.End):
			if m.active == nil {
				m.errText = "No active shift to end"
				return m, nil
			}
			m.busy = true
			return m, m.endShift(m.active.ID)
		}
	}
	return m, nil
}

func (m shiftPanelModel) updatePicker(msg tea.KeyMsg) (shiftPanelModel, tea.Cmd) {
	employees := m.roster.List()
	switch {
	case key.Matches(msg, keys.Up):
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.pickerCursor < len(employees)-1 {
			m.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		m.employeeID = employees[m.pickerCursor].ID
		m.picking = false
		m.active = nil
		m.clicks = 0
		return m, m.loadActive()
	case key.Matches(msg, keys.Back):
		m.picking = false
	}
	return m, nil
}

func (m shiftPanelModel) startShift() tea.Cmd {
	empID := m.employeeID
	return func() tea.Msg {
		if _, err := m.store.StartShift(empID); err != nil {
			return shiftOpMsg{status: opErrorText(err), isError: true}
		}
		return shiftOpMsg{status: "Shift started"}
	}
}

func (m shiftPanelModel) recordClick() tea.Cmd {
	empID := m.employeeID
	return func() tea.Msg {
		if _, err := m.store.RecordClick(empID); err != nil {
			return shiftOpMsg{status: opErrorText(err), isError: true}
		}
		return shiftOpMsg{status: "Click recorded"}
	}
}

func (m shiftPanelModel) endShift(shiftID string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.store.EndShift(shiftID); err != nil {
			return shiftOpMsg{status: opErrorText(err), isError: true}
		}
		return shiftOpMsg{status: "Shift ended"}
	}
}

func (m shiftPanelModel) view() string {
	if m.width < 20 {
		return "Terminal too small"
	}
	w := m.width - 4

	if m.picking {
		return m.renderPicker(w)
	}

	var panels []string
	panels = append(panels, m.renderEmployeePanel(w))
	if m.errText != "" {
		panels = append(panels, errorStyle.Render("  ✗ "+m.errText))
	} else if m.flash != "" {
		panels = append(panels, successStyle.Render("  ✓ "+m.flash))
	}
	panels = append(panels, m.renderShiftPanel(w))

	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func (m shiftPanelModel) renderEmployeePanel(w int) string {
	title := titleStyle.Render("Shift Management")

	var who string
	if emp, ok := m.roster.ByID(m.employeeID); ok {
		who = highlightStyle.Render(emp.Name) + mutedStyle.Render(" · "+emp.Department)
	} else {
		who = mutedStyle.Render("No employee selected — press p to choose")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", who),
	)
}

func (m shiftPanelModel) renderShiftPanel(w int) string {
	if m.active == nil {
		clock := idleClockStyle.Width(w - 6).Render("0h 0m")
		hint := mutedStyle.Render("Press s to start a shift")
		if m.busy {
			hint = warningStyle.Render("Working...")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Center, clock, hint),
		)
	}

	elapsed := duration.Since(m.active.CheckIn.Unix(), time.Now())
	clock := elapsedStyle.Width(w - 6).Render(elapsed.String())

	indicator := successStyle.Render("●  ON SHIFT")
	if m.busy {
		indicator = warningStyle.Render("●  WORKING...")
	}

	info := fmt.Sprintf("  checked in %s   clicks %s",
		formatClock(m.active.CheckIn),
		highlightStyle.Render(fmt.Sprintf("%d", m.clicks)),
	)
	hint := mutedStyle.Render("c: add click   x: end shift")

	return activePanelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, clock, indicator, info, hint),
	)
}

func (m shiftPanelModel) renderPicker(w int) string {
	title := titleStyle.Render("Select Employee")

	var rows []string
	rows = append(rows, title)
	for i, emp := range m.roster.List() {
		cursor := "  "
		style := normalItemStyle
		if i == m.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s - %s", cursor, emp.Name, emp.Department)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: select  esc: cancel"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
