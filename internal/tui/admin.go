package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/okanz/shiftwatch/internal/auth"
	"github.com/okanz/shiftwatch/internal/duration"
	"github.com/okanz/shiftwatch/internal/roster"
	"github.com/okanz/shiftwatch/internal/watch"
)

// adminModel is the admin dashboard: the selected day's shifts with their
// click groups, fed exclusively by aggregator views. It never queries the
// store directly.
type adminModel struct {
	roster  *roster.Roster
	agg     *watch.Aggregator
	session *auth.Session
	width   int
	height  int

	day     time.Time
	dayView watch.View
	cursor  int

	// expanded holds the single expanded shift ID, or "" when collapsed.
	// Selecting the same row again collapses; selecting another row moves
	// the expansion there.
	expanded string

	formActive bool
	form       *huh.Form
	passcode   *string
	errText    string
}

func newAdminModel(r *roster.Roster, agg *watch.Aggregator, session *auth.Session) adminModel {
	pc := ""
	return adminModel{
		roster:   r,
		agg:      agg,
		session:  session,
		day:      time.Now(),
		passcode: &pc,
	}
}

func (m *adminModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// ensureAuth opens the passcode form when no admin session is active.
func (m adminModel) ensureAuth() (adminModel, tea.Cmd) {
	if m.session.SignedIn() || m.formActive {
		return m, nil
	}
	return m.showPasscodeForm()
}

func (m adminModel) showPasscodeForm() (adminModel, tea.Cmd) {
	*m.passcode = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Admin passcode").
				EchoMode(huh.EchoModePassword).
				Value(m.passcode),
		),
	).WithShowHelp(false).WithShowErrors(false)
	m.formActive = true
	return m, m.form.Init()
}

func (m adminModel) update(msg tea.Msg) (adminModel, tea.Cmd) {
	// Views are absorbed even while the passcode form is up: the updates
	// channel is latest-wins with no replay, so a snapshot dropped here
	// would leave the table stale until the next write.
	if msg, ok := msg.(dayViewMsg); ok {
		m.dayView = msg.view
		if m.cursor >= len(m.dayView.Shifts) {
			m.cursor = max(0, len(m.dayView.Shifts)-1)
		}
		return m, nil
	}

	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.dayView.Shifts)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Enter):
			return m.toggleExpand(), nil
		case key.Matches(msg, keys.Left):
			return m.gotoDay(m.day.AddDate(0, 0, -1))
		case key.Matches(msg, keys.Right):
			return m.gotoDay(m.day.AddDate(0, 0, 1))
		case key.Matches(msg, keys.Today):
			return m.gotoDay(time.Now())
		case key.Matches(msg, keys.SignOut):
			m.session.SignOut()
			return m, nil
		}
	}
	return m, nil
}

func (m adminModel) toggleExpand() adminModel {
	if m.cursor >= len(m.dayView.Shifts) {
		return m
	}
	id := m.dayView.Shifts[m.cursor].ID
	if m.expanded == id {
		m.expanded = ""
	} else {
		m.expanded = id
	}
	return m
}

// gotoDay swaps the aggregator's shift subscription to a new day. The click
// stream is untouched; the next view arrives through the usual updates path.
func (m adminModel) gotoDay(day time.Time) (adminModel, tea.Cmd) {
	m.day = day
	m.expanded = ""
	m.cursor = 0
	agg := m.agg
	return m, func() tea.Msg {
		agg.SetDay(day)
		return nil
	}
}

func (m adminModel) updateForm(msg tea.Msg) (adminModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			m.errText = ""
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		if err := m.session.SignIn(*m.passcode); err != nil {
			m.errText = "Incorrect passcode"
			return m.showPasscodeForm()
		}
		m.formActive = false
		m.form = nil
		m.errText = ""
		return m, nil
	}

	return m, cmd
}

func (m adminModel) view() string {
	w := m.width - 4

	if !m.session.SignedIn() {
		return m.renderLocked(w)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Admin Dashboard"),
		"   ",
		highlightStyle.Render(formatDay(m.day)),
		"  ",
		mutedStyle.Render("←/→: day  t: today  enter: details  o: sign out"),
	)

	table := m.renderShiftTable(w)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", table),
	)
}

func (m adminModel) renderLocked(w int) string {
	title := titleStyle.Render("Admin Dashboard")
	var body string
	if m.formActive && m.form != nil {
		body = m.form.View()
	} else {
		body = mutedStyle.Render("Locked. Press 2 to sign in.")
	}
	rows := []string{title, "", body}
	if m.errText != "" {
		rows = append(rows, errorStyle.Render("✗ "+m.errText))
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m adminModel) renderShiftTable(w int) string {
	if len(m.dayView.Shifts) == 0 {
		return mutedStyle.Render("  No shifts for this day")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-22s %-10s %-10s %-8s %7s",
		"Employee", "Check-In", "Check-Out", "Status", "Clicks")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 62))))

	for i, sh := range m.dayView.Shifts {
		checkOut := duration.GapSentinel
		if sh.CheckOut != nil {
			checkOut = formatClock(*sh.CheckOut)
		}
		status := statusLabel(sh.IsActive)
		if sh.IsActive {
			status = successStyle.Render(status)
		} else {
			status = mutedStyle.Render(status)
		}

		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		rows = append(rows, style.Render(fmt.Sprintf("%s%-22s %-10s %-10s ", cursor,
			m.roster.DisplayName(sh.EmployeeID),
			formatClock(sh.CheckIn),
			checkOut,
		))+status+fmt.Sprintf(" %8d", m.dayView.ClickCount(sh.ID)))

		if m.expanded == sh.ID {
			rows = append(rows, m.renderClickDetail(sh.ID)...)
		}
	}

	return strings.Join(rows, "\n")
}

// renderClickDetail lists a shift's clicks with the elapsed gap since the
// previous click, the first row getting the no-predecessor sentinel.
func (m adminModel) renderClickDetail(shiftID string) []string {
	group := m.dayView.ClicksFor(shiftID)
	if len(group) == 0 {
		return []string{mutedStyle.Render("      no clicks recorded")}
	}

	gaps := duration.GapSequence(m.dayView.ClickTimes(shiftID))
	rows := make([]string, 0, len(group)+1)
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("      %-12s %s", "Click Time", "Since Last Click")))
	for i, c := range group {
		rows = append(rows, fmt.Sprintf("      %-12s %s",
			formatClock(c.Timestamp),
			accentStyle.Render(gaps[i]),
		))
	}
	return rows
}
