package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/okanz/shiftwatch/internal/roster"
	"github.com/okanz/shiftwatch/internal/store"
)

func ToCSV(shifts []store.Shift, r *roster.Roster, clickCounts map[string]int, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Shift ID", "Employee", "Check-In", "Check-Out", "Status", "Clicks"}); err != nil {
		return err
	}

	for _, sh := range shifts {
		checkOut := ""
		if sh.CheckOut != nil {
			checkOut = sh.CheckOut.Local().Format(time.RFC3339)
		}

		row := []string{
			sh.ID,
			r.DisplayName(sh.EmployeeID),
			sh.CheckIn.Local().Format(time.RFC3339),
			checkOut,
			statusLabel(sh.IsActive),
			fmt.Sprintf("%d", clickCounts[sh.ID]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func statusLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Closed"
}
