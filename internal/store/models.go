package store

import "time"

// Shift is one bounded work interval for an employee. CheckOut is present
// exactly when IsActive is false; shifts are never deleted.
type Shift struct {
	ID         string
	EmployeeID string
	CheckIn    time.Time
	CheckOut   *time.Time
	IsActive   bool
}

// Click is a timestamped activity event belonging to exactly one shift.
// Clicks are immutable once written.
type Click struct {
	ID         string
	ShiftID    string
	EmployeeID string
	Timestamp  time.Time
}

type Setting struct {
	Key   string
	Value string
}
