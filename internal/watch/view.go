package watch

import (
	"time"

	"github.com/okanz/shiftwatch/internal/store"
)

// View is the aggregated read model for one calendar day: the day's shifts
// (newest first, as the store delivers them) with every click regrouped
// under its parent shift. Views are immutable; each snapshot from either
// stream produces a complete replacement, never an in-place patch.
type View struct {
	Day    time.Time
	Shifts []store.Shift
	Clicks map[string][]store.Click
}

// ClicksFor returns the ordered click group for a shift. Unknown IDs get an
// empty group; a click referencing a shift outside the current day's list is
// simply not rendered, never an error.
func (v View) ClicksFor(shiftID string) []store.Click {
	return v.Clicks[shiftID]
}

func (v View) ClickCount(shiftID string) int {
	return len(v.Clicks[shiftID])
}

// ClickTimes returns the unix-second timestamps of a shift's clicks in
// stream order, ready for gap computation.
func (v View) ClickTimes(shiftID string) []int64 {
	group := v.Clicks[shiftID]
	ts := make([]int64, len(group))
	for i, c := range group {
		ts[i] = c.Timestamp.Unix()
	}
	return ts
}

// buildView regroups the latest click snapshot under the latest shift
// snapshot in a single pass. The inputs arrive on independent streams, so
// either side may momentarily reference records the other has not delivered
// yet; grouping is keyed purely on shift ID and tolerates that.
func buildView(day time.Time, shifts []store.Shift, clicks []store.Click) View {
	grouped := make(map[string][]store.Click, len(shifts))
	for _, c := range clicks {
		grouped[c.ShiftID] = append(grouped[c.ShiftID], c)
	}
	return View{Day: day, Shifts: shifts, Clicks: grouped}
}
