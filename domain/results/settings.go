package results

import (
	"math"

	"marathonviz/domain/core"
)

// DefaultRaceDistanceKm is the marathon distance used by the built-in variants.
const DefaultRaceDistanceKm = 42.2

// Settings are fixed for one run.
type Settings struct {
	RaceDistanceKm    float64
	AnimationInterval int // minutes between checkpoints
	CompetitionName   string
}

// Validate rejects non-positive distances and intervals.
func (s Settings) Validate() error {
	if s.RaceDistanceKm <= 0 || math.IsNaN(s.RaceDistanceKm) || math.IsInf(s.RaceDistanceKm, 0) {
		return core.NewConfigurationError("race distance", "must be a positive finite number of kilometres")
	}
	if s.AnimationInterval <= 0 {
		return core.NewConfigurationError("animation interval", "must be a positive number of minutes")
	}
	return nil
}
