// Package duration holds the pure time-arithmetic used by the shift views.
// All functions work on unix-second values and truncate, never round.
package duration

import (
	"fmt"
	"time"
)

// GapSentinel is rendered for the first click of a shift, which has no
// predecessor to measure a gap against.
const GapSentinel = "—"

// HMS is an elapsed interval split into hour/minute/second components.
type HMS struct {
	Hours   int
	Minutes int
	Seconds int
}

// String formats as "1h 2m 3s".
func (d HMS) String() string {
	return fmt.Sprintf("%dh %dm %ds", d.Hours, d.Minutes, d.Seconds)
}

// HM is an elapsed interval without the seconds component, used for the
// live "how long has this shift been open" display.
type HM struct {
	Hours   int
	Minutes int
}

func (d HM) String() string {
	return fmt.Sprintf("%dh %dm", d.Hours, d.Minutes)
}

// Elapsed splits to-from into components. Callers must guarantee to >= from.
func Elapsed(from, to int64) HMS {
	d := to - from
	return HMS{
		Hours:   int(d / 3600),
		Minutes: int((d % 3600) / 60),
		Seconds: int(d % 60),
	}
}

// Since reports how long ago the unix-second instant from was, relative to
// now, at minute granularity.
func Since(from int64, now time.Time) HM {
	d := now.Unix() - from
	return HM{
		Hours:   int(d / 3600),
		Minutes: int((d % 3600) / 60),
	}
}

// GapSequence maps ordered click timestamps to gap strings: the first click
// gets the sentinel, each later one the elapsed time since its predecessor.
func GapSequence(ts []int64) []string {
	gaps := make([]string, len(ts))
	for i := range ts {
		if i == 0 {
			gaps[i] = GapSentinel
			continue
		}
		gaps[i] = Elapsed(ts[i-1], ts[i]).String()
	}
	return gaps
}
