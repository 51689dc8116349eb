package animation

import (
	"marathonviz/domain/core"
)

// Grid is the ordered list of elapsed-minute checkpoints shared by all entities.
type Grid struct {
	interval int
	minutes  []int
}

// NewGrid builds checkpoints 0, interval, 2*interval, ... up to
// ceil(maxTotalSeconds/60/interval)*interval.
func NewGrid(maxTotalSeconds int, intervalMinutes int) (Grid, error) {
	if intervalMinutes <= 0 {
		return Grid{}, core.NewConfigurationError("animation interval", "must be a positive number of minutes")
	}
	if maxTotalSeconds < 0 {
		maxTotalSeconds = 0
	}

	step := intervalMinutes * 60
	cycles := (maxTotalSeconds + step - 1) / step

	minutes := make([]int, cycles+1)
	for j := range minutes {
		minutes[j] = j * intervalMinutes
	}
	return Grid{interval: intervalMinutes, minutes: minutes}, nil
}

// Len returns the number of checkpoints.
func (g Grid) Len() int { return len(g.minutes) }

// At returns the elapsed minutes of checkpoint j.
func (g Grid) At(j int) int { return g.minutes[j] }

// Interval returns the spacing between checkpoints in minutes.
func (g Grid) Interval() int { return g.interval }

// Span returns the last checkpoint in minutes.
func (g Grid) Span() int {
	if len(g.minutes) == 0 {
		return 0
	}
	return g.minutes[len(g.minutes)-1]
}

// Minutes returns a copy of the checkpoints.
func (g Grid) Minutes() []int {
	out := make([]int, len(g.minutes))
	copy(out, g.minutes)
	return out
}
