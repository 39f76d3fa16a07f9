package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/okanz/shiftwatch/internal/roster"
	"github.com/okanz/shiftwatch/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Shifts     []jsonShift `json:"shifts"`
}

type jsonShift struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Employee   string `json:"employee"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out,omitempty"`
	Active     bool   `json:"active"`
	Clicks     int    `json:"clicks"`
}

func ToJSON(shifts []store.Shift, r *roster.Roster, clickCounts map[string]int, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(shifts),
	}

	for _, sh := range shifts {
		checkOut := ""
		if sh.CheckOut != nil {
			checkOut = sh.CheckOut.Local().Format(time.RFC3339)
		}

		export.Shifts = append(export.Shifts, jsonShift{
			ID:         sh.ID,
			EmployeeID: sh.EmployeeID,
			Employee:   r.DisplayName(sh.EmployeeID),
			CheckIn:    sh.CheckIn.Local().Format(time.RFC3339),
			CheckOut:   checkOut,
			Active:     sh.IsActive,
			Clicks:     clickCounts[sh.ID],
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
