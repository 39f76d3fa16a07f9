package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestElapsed(t *testing.T) {
	tests := []struct {
		name     string
		from, to int64
		want     HMS
	}{
		{"zero", 0, 0, HMS{0, 0, 0}},
		{"one of each", 0, 3661, HMS{1, 1, 1}},
		{"exact minute", 10, 70, HMS{0, 1, 0}},
		{"seconds carry into minutes", 150, 220, HMS{0, 1, 10}},
		{"under a minute", 100, 150, HMS{0, 0, 50}},
		{"truncates, never rounds", 0, 3599, HMS{0, 59, 59}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Elapsed(tt.from, tt.to))
		})
	}
}

func TestHMSString(t *testing.T) {
	assert.Equal(t, "1h 1m 1s", HMS{1, 1, 1}.String())
	assert.Equal(t, "0h 0m 0s", HMS{}.String())
}

func TestSince(t *testing.T) {
	now := time.Unix(10_000, 0)
	assert.Equal(t, HM{1, 1}, Since(10_000-3661, now))
	assert.Equal(t, HM{0, 0}, Since(10_000, now))
	// Seconds are dropped, not rounded up.
	assert.Equal(t, HM{0, 0}, Since(10_000-59, now))
	assert.Equal(t, "2h 5m", Since(10_000-(2*3600+5*60), now).String())
}

func TestGapSequence(t *testing.T) {
	got := GapSequence([]int64{100, 150, 220})
	assert.Equal(t, []string{GapSentinel, "0h 0m 50s", "0h 1m 10s"}, got)
}

func TestGapSequenceDegenerate(t *testing.T) {
	assert.Empty(t, GapSequence(nil))
	assert.Equal(t, []string{GapSentinel}, GapSequence([]int64{42}))
	// Equal timestamps are a zero gap, not an error.
	assert.Equal(t, []string{GapSentinel, "0h 0m 0s"}, GapSequence([]int64{5, 5}))
}
