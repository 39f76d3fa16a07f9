package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StartShift opens a new shift for the employee. The uniqueness check and the
// insert run inside one transaction, and the partial unique index on
// (employee_id) WHERE is_active backs the same rule at the schema level, so
// two concurrent starts for one employee cannot both succeed.
func (s *Store) StartShift(employeeID string) (*Shift, error) {
	now := s.serverNow().Format(time.RFC3339)
	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("start shift: %w", err)
	}
	defer tx.Rollback()

	var open int
	err = tx.QueryRow(
		`SELECT COUNT(*) FROM shifts WHERE employee_id = ? AND is_active = 1`, employeeID,
	).Scan(&open)
	if err != nil {
		return nil, fmt.Errorf("check active shift: %w", err)
	}
	if open > 0 {
		return nil, ErrDuplicateActiveShift
	}

	_, err = tx.Exec(
		`INSERT INTO shifts (id, employee_id, check_in, is_active) VALUES (?, ?, ?, 1)`,
		id, employeeID, now,
	)
	if err != nil {
		if strings.Contains(err.Error(), "idx_shifts_one_active") {
			return nil, ErrDuplicateActiveShift
		}
		return nil, fmt.Errorf("insert shift: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("start shift: %w", err)
	}

	s.notifyShifts()
	return s.GetShift(id)
}

// EndShift closes the shift, setting check_out and clearing is_active.
func (s *Store) EndShift(id string) (*Shift, error) {
	now := s.serverNow().Format(time.RFC3339)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("end shift: %w", err)
	}
	defer tx.Rollback()

	var active int
	err = tx.QueryRow(`SELECT is_active FROM shifts WHERE id = ?`, id).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShiftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get shift %s: %w", id, err)
	}
	if active == 0 {
		return nil, ErrAlreadyClosed
	}

	_, err = tx.Exec(
		`UPDATE shifts SET check_out = ?, is_active = 0 WHERE id = ?`, now, id,
	)
	if err != nil {
		return nil, fmt.Errorf("close shift: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("end shift: %w", err)
	}

	s.notifyShifts()
	return s.GetShift(id)
}

func (s *Store) GetShift(id string) (*Shift, error) {
	row := s.db.QueryRow(
		`SELECT id, employee_id, check_in, check_out, is_active FROM shifts WHERE id = ?`, id,
	)
	sh, err := scanShift(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShiftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get shift %s: %w", id, err)
	}
	return sh, nil
}

// ActiveShift returns the employee's open shift, or (nil, nil) if there is none.
func (s *Store) ActiveShift(employeeID string) (*Shift, error) {
	row := s.db.QueryRow(
		`SELECT id, employee_id, check_in, check_out, is_active
		 FROM shifts WHERE employee_id = ? AND is_active = 1`, employeeID,
	)
	sh, err := scanShift(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active shift: %w", err)
	}
	return sh, nil
}

// ShiftsForDay returns shifts whose check_in falls within the local calendar
// day containing day, newest first.
func (s *Store) ShiftsForDay(day time.Time) ([]Shift, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	rows, err := s.db.Query(
		`SELECT id, employee_id, check_in, check_out, is_active
		 FROM shifts WHERE check_in >= ? AND check_in < ?
		 ORDER BY check_in DESC, rowid DESC`,
		start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, *sh)
	}
	return shifts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShift(row rowScanner) (*Shift, error) {
	sh := &Shift{}
	var checkIn string
	var checkOut sql.NullString
	var active int
	if err := row.Scan(&sh.ID, &sh.EmployeeID, &checkIn, &checkOut, &active); err != nil {
		return nil, err
	}
	sh.IsActive = active == 1
	sh.CheckIn, _ = time.Parse(time.RFC3339, checkIn)
	if checkOut.Valid {
		t, _ := time.Parse(time.RFC3339, checkOut.String)
		sh.CheckOut = &t
	}
	return sh, nil
}
