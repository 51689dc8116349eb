// Package pace derives per-kilometre pace and average speed from a finish time.
package pace

import (
	"math"
	"strconv"
)

// Pace holds the values derived from one finish time over a fixed distance.
type Pace struct {
	TotalSeconds int
	SecPerKm     float64 // rounded to 0.1
	KmPerHour    float64 // rounded to 0.01; +Inf when SecPerKm rounds to zero
	MinPerKm     string  // display only, e.g. "5:3" for 303.0 s/km
	SortKey      int     // -TotalSeconds, so faster entities rank first descending
}

// Derive computes pace and speed for totalSeconds over distanceKm.
// distanceKm must be positive; that is checked once when settings are built.
func Derive(totalSeconds int, distanceKm float64) Pace {
	secPerKm := Round(float64(totalSeconds)/distanceKm, 1)
	return Pace{
		TotalSeconds: totalSeconds,
		SecPerKm:     secPerKm,
		KmPerHour:    speed(secPerKm),
		MinPerKm:     minPerKm(secPerKm),
		SortKey:      -totalSeconds,
	}
}

// Round rounds x to the given number of decimals, ties to even on the
// scaled value.
func Round(x float64, decimals int) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	scale := math.Pow(10, float64(decimals))
	return math.RoundToEven(x*scale) / scale
}

func speed(secPerKm float64) float64 {
	if secPerKm == 0 {
		return math.Inf(1)
	}
	return Round(3600/secPerKm, 2)
}

// minPerKm renders whole minutes and the truncated leftover seconds without
// zero padding.
func minPerKm(secPerKm float64) string {
	minutes := int(math.Floor(secPerKm / 60))
	seconds := int(math.Mod(secPerKm, 60))
	return strconv.Itoa(minutes) + ":" + strconv.Itoa(seconds)
}
