package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/okanz/shiftwatch/internal/roster"
	"github.com/okanz/shiftwatch/internal/watch"
)

// activityModel charts click activity per employee for the admin's selected
// day. Like the admin table it renders aggregator views only.
type activityModel struct {
	roster *roster.Roster
	width  int
	height int

	dayView watch.View
	chart   barchart.Model
}

func newActivityModel(r *roster.Roster) activityModel {
	return activityModel{
		roster: r,
		chart:  barchart.New(60, 12),
	}
}

func (m *activityModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m activityModel) update(msg tea.Msg) (activityModel, tea.Cmd) {
	if msg, ok := msg.(dayViewMsg); ok {
		m.dayView = msg.view
		m.buildChart()
	}
	return m, nil
}

type employeeTotal struct {
	Name   string
	Clicks int
}

// employeeClicks sums clicks across each employee's shifts for the day,
// keeping roster order so the bars do not jump around between snapshots.
func (m activityModel) employeeClicks() []employeeTotal {
	totals := make(map[string]int)
	for _, sh := range m.dayView.Shifts {
		totals[sh.EmployeeID] += m.dayView.ClickCount(sh.ID)
	}

	var out []employeeTotal
	seen := make(map[string]bool)
	for _, emp := range m.roster.List() {
		if n, ok := totals[emp.ID]; ok {
			out = append(out, employeeTotal{emp.Name, n})
			seen[emp.ID] = true
		}
	}
	// Shifts for IDs outside the roster still chart, labelled by raw ID.
	var extra []string
	for id := range totals {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		out = append(out, employeeTotal{id, totals[id]})
	}
	return out
}

func (m *activityModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, ec := range m.employeeClicks() {
		bars = append(bars, barchart.BarData{
			Label: chartLabel(ec.Name),
			Values: []barchart.BarValue{{
				Name:  ec.Name,
				Value: float64(ec.Clicks),
				Style: lipgloss.NewStyle().Foreground(colorPrimary),
			}},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

// chartLabel shortens a name to fit under a bar, cutting on runes so
// multi-byte names stay intact.
func chartLabel(name string) string {
	r := []rune(name)
	if len(r) > 10 {
		return string(r[:10])
	}
	return name
}

func (m activityModel) view() string {
	w := m.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Activity"),
		"   ",
		highlightStyle.Render(formatDay(m.dayView.Day)),
		"  ",
		mutedStyle.Render("clicks per employee"),
	)

	if len(m.dayView.Shifts) == 0 {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "",
				mutedStyle.Render("  No activity for this day")),
		)
	}

	table := m.renderTotals(w)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", m.chart.View(), "", table),
	)
}

func (m activityModel) renderTotals(w int) string {
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-24s %7s", "Employee", "Clicks")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 32))))
	for _, ec := range m.employeeClicks() {
		rows = append(rows, fmt.Sprintf("  %-24s %7d", ec.Name, ec.Clicks))
	}
	return strings.Join(rows, "\n")
}
