package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecordClick appends an activity event to the employee's open shift. The
// shift is resolved here, never supplied by the caller, so a click can only
// ever point at a shift that existed when it was written.
func (s *Store) RecordClick(employeeID string) (*Click, error) {
	active, err := s.ActiveShift(employeeID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, ErrNoActiveShift
	}

	c := &Click{
		ID:         uuid.NewString(),
		ShiftID:    active.ID,
		EmployeeID: employeeID,
		Timestamp:  s.serverNow(),
	}
	_, err = s.db.Exec(
		`INSERT INTO clicks (id, shift_id, employee_id, timestamp) VALUES (?, ?, ?, ?)`,
		c.ID, c.ShiftID, c.EmployeeID, c.Timestamp.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("insert click: %w", err)
	}

	s.notifyClicks()
	return c, nil
}

// ClicksAsc returns every click ordered by timestamp, with insertion order
// breaking ties within the same second.
func (s *Store) ClicksAsc() ([]Click, error) {
	rows, err := s.db.Query(
		`SELECT id, shift_id, employee_id, timestamp FROM clicks
		 ORDER BY timestamp ASC, rowid ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list clicks: %w", err)
	}
	defer rows.Close()

	var clicks []Click
	for rows.Next() {
		var c Click
		var ts string
		if err := rows.Scan(&c.ID, &c.ShiftID, &c.EmployeeID, &ts); err != nil {
			return nil, err
		}
		c.Timestamp, _ = time.Parse(time.RFC3339, ts)
		clicks = append(clicks, c)
	}
	return clicks, rows.Err()
}

func (s *Store) ClickCount(shiftID string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM clicks WHERE shift_id = ?`, shiftID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count clicks: %w", err)
	}
	return n, nil
}
