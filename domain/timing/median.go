package timing

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"

	"marathonviz/domain/core"
)

// referenceDay anchors every finish time to the same calendar date so that
// only time-of-day differences reach the median.
var referenceDay = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Sample is a finish time tagged with the group it belongs to.
type Sample struct {
	Group string
	Value string
}

// Median returns the median of the given finish times as HH:MM:SS.
//
// Values are encoded as epoch seconds on referenceDay, the median is taken
// over that encoding (mean of the two middle values for even counts) and the
// result is decoded back to wall-clock time, truncating any half second.
// Missing values are skipped; an empty set yields core.ErrEmptyGroup.
func Median(values []string) (string, error) {
	return medianOf("", values)
}

// MedianByGroup computes one median per requested group. The empty group key
// selects every sample.
func MedianByGroup(samples []Sample, groups []string) (map[string]string, error) {
	medians := make(map[string]string, len(groups))
	for _, group := range groups {
		var values []string
		for _, s := range samples {
			if group == "" || s.Group == group {
				values = append(values, s.Value)
			}
		}
		m, err := medianOf(group, values)
		if err != nil {
			return nil, err
		}
		medians[group] = m
	}
	return medians, nil
}

func medianOf(group string, values []string) (string, error) {
	encoded := make([]float64, 0, len(values))
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		d, err := ParseDuration(v)
		if err != nil {
			return "", err
		}
		encoded = append(encoded, encode(d))
	}
	if len(encoded) == 0 {
		return "", core.NewEmptyGroupError(group)
	}

	m, err := stats.Median(encoded)
	if err != nil {
		return "", core.NewEmptyGroupError(group)
	}
	return decode(m).Format("15:04:05"), nil
}

func encode(d Duration) float64 {
	t := referenceDay.Add(time.Duration(d.TotalSeconds()) * time.Second)
	return float64(t.Unix())
}

func decode(epochSeconds float64) time.Time {
	return time.Unix(int64(math.Floor(epochSeconds)), 0).UTC()
}
