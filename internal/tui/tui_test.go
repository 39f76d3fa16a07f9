package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/okanz/shiftwatch/internal/roster"
	"github.com/okanz/shiftwatch/internal/store"
	"github.com/okanz/shiftwatch/internal/watch"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testRoster() *roster.Roster {
	return roster.New([]roster.Employee{
		{ID: "okan", Name: "Okan", Department: "Engineering"},
		{ID: "melis", Name: "Melis", Department: "Design"},
	})
}

// ============================================================
// Shift panel
// ============================================================

func TestShiftPanelStartRequiresEmployee(t *testing.T) {
	s := newTestStore(t)
	m := newShiftPanelModel(s, testRoster())

	m, cmd := m.update(keyPress('s'))
	if cmd != nil {
		t.Fatal("start without an employee should not issue a command")
	}
	if m.errText == "" {
		t.Fatal("expected inline error")
	}
	if m.busy {
		t.Fatal("panel should not be busy")
	}
}

func TestShiftPanelClickRequiresActiveShift(t *testing.T) {
	s := newTestStore(t)
	m := newShiftPanelModel(s, testRoster())
	m.employeeID = "okan"

	m, cmd := m.update(keyPress('c'))
	if cmd != nil {
		t.Fatal("click without an active shift should not issue a command")
	}
	if m.errText == "" {
		t.Fatal("expected inline error")
	}
}

func TestShiftPanelStartLifecycle(t *testing.T) {
	s := newTestStore(t)
	m := newShiftPanelModel(s, testRoster())
	m.employeeID = "okan"

	m, cmd := m.update(keyPress('s'))
	if !m.busy {
		t.Fatal("panel should be busy while the operation runs")
	}
	if cmd == nil {
		t.Fatal("start should issue a command")
	}

	msg := cmd()
	op, ok := msg.(shiftOpMsg)
	if !ok {
		t.Fatalf("expected shiftOpMsg, got %T", msg)
	}
	if op.isError {
		t.Fatalf("start failed: %s", op.status)
	}

	m, _ = m.update(op)
	if m.busy {
		t.Fatal("busy flag should clear after the operation message")
	}
	if m.flash == "" {
		t.Fatal("success should set the flash message")
	}

	active, err := s.ActiveShift("okan")
	if err != nil || active == nil {
		t.Fatalf("expected active shift in store, got %v, %v", active, err)
	}
}

func TestShiftPanelBusyClearsOnError(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.StartShift("okan"); err != nil {
		t.Fatal(err)
	}

	m := newShiftPanelModel(s, testRoster())
	m.employeeID = "okan"
	m.busy = true

	// A duplicate start surfaces as an error operation message.
	msg := m.startShift()()
	op := msg.(shiftOpMsg)
	if !op.isError {
		t.Fatal("duplicate start should fail")
	}

	m, _ = m.update(op)
	if m.busy {
		t.Fatal("busy flag must clear on the error path too")
	}
	if m.errText != "This employee already has an active shift" {
		t.Fatalf("unexpected error text: %q", m.errText)
	}
}

func TestShiftPanelIgnoresKeysWhileBusy(t *testing.T) {
	s := newTestStore(t)
	m := newShiftPanelModel(s, testRoster())
	m.employeeID = "okan"
	m.busy = true

	m2, cmd := m.update(keyPress('s'))
	if cmd != nil {
		t.Fatal("busy panel should swallow action keys")
	}
	if !m2.busy {
		t.Fatal("busy flag should survive ignored keys")
	}
}

func TestShiftPanelPicker(t *testing.T) {
	s := newTestStore(t)
	m := newShiftPanelModel(s, testRoster())

	m, _ = m.update(keyPress('p'))
	if !m.picking {
		t.Fatal("p should open the picker")
	}

	m, _ = m.updatePicker(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.updatePicker(tea.KeyMsg{Type: tea.KeyEnter})
	if m.picking {
		t.Fatal("enter should close the picker")
	}
	if m.employeeID != "melis" {
		t.Fatalf("expected second employee selected, got %q", m.employeeID)
	}
}

func TestShiftPanelFlashExpires(t *testing.T) {
	s := newTestStore(t)
	m := newShiftPanelModel(s, testRoster())
	m.flash = "Shift started"
	m.flashUntil = time.Now().Add(-time.Second)

	m, _ = m.update(tickMsg(time.Now()))
	if m.flash != "" {
		t.Fatal("expired flash should clear on tick")
	}
}

// ============================================================
// Admin dashboard
// ============================================================

func dayViewOf(shifts []store.Shift, clicks map[string][]store.Click) watch.View {
	if clicks == nil {
		clicks = map[string][]store.Click{}
	}
	return watch.View{Day: time.Now(), Shifts: shifts, Clicks: clicks}
}

func TestAdminExpandCollapse(t *testing.T) {
	m := adminModel{roster: testRoster()}
	m.dayView = dayViewOf([]store.Shift{
		{ID: "s1", EmployeeID: "okan"},
		{ID: "s2", EmployeeID: "melis"},
	}, nil)

	m = m.toggleExpand()
	if m.expanded != "s1" {
		t.Fatalf("expected s1 expanded, got %q", m.expanded)
	}

	// Same row collapses.
	m = m.toggleExpand()
	if m.expanded != "" {
		t.Fatal("selecting the expanded row should collapse it")
	}

	// Expansion moves directly between rows.
	m = m.toggleExpand()
	m.cursor = 1
	m = m.toggleExpand()
	if m.expanded != "s2" {
		t.Fatalf("expansion should move to s2, got %q", m.expanded)
	}
}

func TestAdminAbsorbsViewWhilePasscodeFormOpen(t *testing.T) {
	pc := ""
	m := adminModel{roster: testRoster(), passcode: &pc}
	m, _ = m.showPasscodeForm()
	if !m.formActive {
		t.Fatal("passcode form should be open")
	}

	m, _ = m.update(dayViewMsg{view: dayViewOf([]store.Shift{
		{ID: "s1", EmployeeID: "okan"},
	}, nil)})

	if len(m.dayView.Shifts) != 1 {
		t.Fatalf("view arriving during the form should be kept, got %d shifts", len(m.dayView.Shifts))
	}
	if !m.formActive {
		t.Fatal("absorbing a view should not close the form")
	}
}

func TestAdminCursorClampsOnShrinkingView(t *testing.T) {
	m := adminModel{roster: testRoster()}
	m.dayView = dayViewOf([]store.Shift{
		{ID: "s1"}, {ID: "s2"}, {ID: "s3"},
	}, nil)
	m.cursor = 2

	m, _ = m.update(dayViewMsg{view: dayViewOf([]store.Shift{{ID: "s1"}}, nil)})
	if m.cursor != 0 {
		t.Fatalf("cursor should clamp to the new view, got %d", m.cursor)
	}
}

func TestAdminToggleExpandOutOfRange(t *testing.T) {
	m := adminModel{roster: testRoster()}
	m.cursor = 5

	m = m.toggleExpand()
	if m.expanded != "" {
		t.Fatal("toggling past the end of the list should be a no-op")
	}
}

// ============================================================
// Activity chart
// ============================================================

func TestActivityEmployeeClicks(t *testing.T) {
	clicks := map[string][]store.Click{
		"s1": {{ID: "c1"}, {ID: "c2"}},
		"s2": {{ID: "c3"}},
		"s3": {{ID: "c4"}},
	}
	m := newActivityModel(testRoster())
	m.dayView = dayViewOf([]store.Shift{
		{ID: "s1", EmployeeID: "melis"},
		{ID: "s2", EmployeeID: "okan"},
		{ID: "s3", EmployeeID: "melis"},
	}, clicks)

	totals := m.employeeClicks()
	if len(totals) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(totals))
	}
	// Roster order, not shift order.
	if totals[0].Name != "Okan" || totals[0].Clicks != 1 {
		t.Fatalf("unexpected first total: %+v", totals[0])
	}
	if totals[1].Name != "Melis" || totals[1].Clicks != 3 {
		t.Fatalf("unexpected second total: %+v", totals[1])
	}
}

func TestActivityUnknownEmployeeChartsByID(t *testing.T) {
	m := newActivityModel(testRoster())
	m.dayView = dayViewOf([]store.Shift{
		{ID: "s1", EmployeeID: "ghost"},
	}, map[string][]store.Click{"s1": {{ID: "c1"}}})

	totals := m.employeeClicks()
	if len(totals) != 1 || totals[0].Name != "ghost" {
		t.Fatalf("unknown employee should chart under raw ID: %+v", totals)
	}
}

func TestChartLabelTruncatesOnRunes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Okan", "Okan"},
		{"Christopher", "Christophe"},
		{"Ayşegül Çağlayan", "Ayşegül Ça"},
		{"ÜÖÜÖÜÖÜÖÜÖÜ", "ÜÖÜÖÜÖÜÖÜÖ"},
	}
	for _, tc := range cases {
		if got := chartLabel(tc.in); got != tc.want {
			t.Errorf("chartLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// ============================================================
// Helpers
// ============================================================

func TestOpErrorText(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{store.ErrDuplicateActiveShift, "This employee already has an active shift"},
		{store.ErrNoActiveShift, "No active shift. Start one first"},
		{store.ErrShiftNotFound, "Shift no longer exists"},
		{store.ErrAlreadyClosed, "Shift is already closed"},
	}
	for _, tc := range cases {
		if got := opErrorText(tc.err); got != tc.want {
			t.Errorf("opErrorText(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	if statusLabel(true) != "Active" || statusLabel(false) != "Closed" {
		t.Fatal("status labels changed")
	}
}
