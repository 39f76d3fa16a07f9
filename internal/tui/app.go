package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/okanz/shiftwatch/internal/auth"
	"github.com/okanz/shiftwatch/internal/duration"
	"github.com/okanz/shiftwatch/internal/export"
	"github.com/okanz/shiftwatch/internal/roster"
	"github.com/okanz/shiftwatch/internal/store"
	"github.com/okanz/shiftwatch/internal/watch"
)

// App is the root Bubble Tea model.
type App struct {
	store   *store.Store
	roster  *roster.Roster
	agg     *watch.Aggregator
	session *auth.Session
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	shift    shiftPanelModel
	admin    adminModel
	activity activityModel
	settings settingsModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(s *store.Store, r *roster.Roster, agg *watch.Aggregator, session *auth.Session) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		roster:     r,
		agg:        agg,
		session:    session,
		activeView: viewShift,
		shift:      newShiftPanelModel(s, r),
		admin:      newAdminModel(r, agg, session),
		activity:   newActivityModel(r),
		settings:   newSettingsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.shift.loadActive(),
		a.waitForView(),
		a.waitForAuth(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForView blocks on the aggregator's update stream and feeds the next
// recomputed view into the program. Re-armed after every delivery.
func (a App) waitForView() tea.Cmd {
	return func() tea.Msg {
		v, ok := <-a.agg.Updates()
		if !ok {
			return nil
		}
		return dayViewMsg{view: v}
	}
}

// waitForAuth surfaces admin session transitions the same way.
func (a App) waitForAuth() tea.Cmd {
	return func() tea.Msg {
		signedIn, ok := <-a.session.Changes()
		if !ok {
			return nil
		}
		return authChangedMsg{signedIn: signedIn}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.shift.setSize(a.width, contentHeight)
		a.admin.setSize(a.width, contentHeight)
		a.activity.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewShift
			return a, a.shift.loadActive()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewAdmin
			var cmd tea.Cmd
			a.admin, cmd = a.admin.ensureAuth()
			return a, cmd
		case key.Matches(msg, keys.Tab3):
			if !a.session.SignedIn() {
				a.activeView = viewAdmin
				var cmd tea.Cmd
				a.admin, cmd = a.admin.ensureAuth()
				return a, cmd
			}
			a.activeView = viewActivity
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			return a.nextView()
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		var cmd tea.Cmd
		a.shift, cmd = a.shift.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case dayViewMsg:
		var cmd tea.Cmd
		a.admin, cmd = a.admin.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		a.activity, cmd = a.activity.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, a.waitForView())
		return a, tea.Batch(cmds...)

	case authChangedMsg:
		if !msg.signedIn && (a.activeView == viewAdmin || a.activeView == viewActivity) {
			a.activeView = viewShift
			a.status = "Signed out"
			a.statusErr = false
		}
		return a, a.waitForAuth()

	case activeShiftMsg, shiftOpMsg:
		var cmd tea.Cmd
		a.shift, cmd = a.shift.update(msg)
		return a, cmd

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewShift:
		a.shift, cmd = a.shift.update(msg)
	case viewAdmin:
		a.admin, cmd = a.admin.update(msg)
	case viewActivity:
		a.activity, cmd = a.activity.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewAdmin:
		return a.admin.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

// nextView cycles tabs. The admin views stay behind the passcode gate, so a
// locked session cycles Shift -> Admin (form) and an unlocked one visits all
// four.
func (a App) nextView() (tea.Model, tea.Cmd) {
	next := (a.activeView + 1) % viewState(len(viewNames))
	if (next == viewAdmin || next == viewActivity) && !a.session.SignedIn() {
		if a.activeView == viewAdmin {
			next = viewSettings
		} else {
			next = viewAdmin
		}
	}
	a.activeView = next

	switch next {
	case viewShift:
		return a, a.shift.loadActive()
	case viewAdmin:
		var cmd tea.Cmd
		a.admin, cmd = a.admin.ensureAuth()
		return a, cmd
	case viewSettings:
		return a, a.settings.refresh()
	}
	return a, nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewShift:
		content = a.shift.view()
	case viewAdmin:
		content = a.admin.view()
	case viewActivity:
		content = a.activity.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("shiftwatch")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	// Active shift indicator in footer
	shiftInfo := ""
	if a.shift.active != nil {
		elapsed := duration.Since(a.shift.active.CheckIn.Unix(), time.Now())
		shiftInfo = successStyle.Render(" ● " + elapsed.String())
	}

	left := footerStyle.Render(helpView)
	right := shiftInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport writes the admin dashboard's current day to the user's home
// directory. Exporting uses the projection already on screen rather than
// re-querying, so the file matches what the admin is looking at.
func (a App) doExport(format int) tea.Cmd {
	view := a.admin.dayView
	return func() tea.Msg {
		counts := make(map[string]int, len(view.Shifts))
		for _, sh := range view.Shifts {
			counts[sh.ID] = view.ClickCount(sh.ID)
		}

		home, _ := os.UserHomeDir()
		dateStr := view.Day.Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("shiftwatch-export-%s.csv", dateStr))
			if err := export.ToCSV(view.Shifts, a.roster, counts, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("shiftwatch-export-%s.json", dateStr))
			if err := export.ToJSON(view.Shifts, a.roster, counts, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
