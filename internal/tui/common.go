package tui

import (
	"errors"
	"time"

	"github.com/okanz/shiftwatch/internal/store"
	"github.com/okanz/shiftwatch/internal/watch"
)

// viewState represents the currently active view.
type viewState int

const (
	viewShift viewState = iota
	viewAdmin
	viewActivity
	viewSettings
)

var viewNames = []string{"Shift", "Admin", "Activity", "Settings"}

// --- Messages ---

// shiftOpMsg reports the outcome of a start/click/end action. Exactly one is
// emitted per action, success or failure, so the busy flag always clears.
type shiftOpMsg struct {
	status  string
	isError bool
}

// activeShiftMsg carries the shift panel's refreshed state.
type activeShiftMsg struct {
	shift  *store.Shift
	clicks int
}

// dayViewMsg carries a recomputed aggregator view for the admin views.
type dayViewMsg struct {
	view watch.View
}

// authChangedMsg reports admin session transitions.
type authChangedMsg struct {
	signedIn bool
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// opErrorText maps a store failure to the short message shown to the user.
// Errors never propagate past the UI; every one of these is retryable.
func opErrorText(err error) string {
	switch {
	case errors.Is(err, store.ErrDuplicateActiveShift):
		return "This employee already has an active shift"
	case errors.Is(err, store.ErrNoActiveShift):
		return "No active shift. Start one first"
	case errors.Is(err, store.ErrShiftNotFound):
		return "Shift no longer exists"
	case errors.Is(err, store.ErrAlreadyClosed):
		return "Shift is already closed"
	default:
		return "Operation failed. Please try again"
	}
}

func formatClock(t time.Time) string {
	return t.Local().Format("15:04:05")
}

func formatDay(t time.Time) string {
	return t.Local().Format("Mon, Jan 02 2006")
}

func statusLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Closed"
}
