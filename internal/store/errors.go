package store

import "errors"

var (
	// ErrDuplicateActiveShift indicates the employee already has an open shift.
	ErrDuplicateActiveShift = errors.New("employee already has an active shift")

	// ErrNoActiveShift indicates a click was recorded for an employee with no
	// open shift to attach it to.
	ErrNoActiveShift = errors.New("employee has no active shift")

	// ErrShiftNotFound indicates the shift ID does not resolve to a record.
	ErrShiftNotFound = errors.New("shift not found")

	// ErrAlreadyClosed indicates the shift was already checked out.
	ErrAlreadyClosed = errors.New("shift already closed")

	// ErrSettingNotFound indicates a settings key with no stored value.
	ErrSettingNotFound = errors.New("setting not found")
)
