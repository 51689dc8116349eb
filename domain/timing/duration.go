// Package timing parses race finish times and summarizes groups of them.
package timing

import (
	"fmt"
	"strings"
	"time"

	"marathonviz/domain/core"
)

// SecondsPerDay bounds every parsed finish time: one HH:MM:SS day cycle.
const SecondsPerDay = 24 * 60 * 60

// Duration is a finish time decomposed into wall-clock parts.
type Duration struct {
	Hour   int
	Minute int
	Second int
}

// layouts accepted by ParseDuration, tried in order. time.Parse tolerates a
// fractional second after the seconds field even when the layout omits it.
var layouts = []string{
	"15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// missingTokens are the cell values treated as "no finish time".
var missingTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#NA": {}, "N/A": {}, "n/a": {}, "NA": {}, "<NA>": {},
	"NULL": {}, "null": {}, "NaN": {}, "nan": {}, "-NaN": {}, "-nan": {}, "None": {},
}

// IsMissing reports whether a finish-time cell carries no value.
func IsMissing(s string) bool {
	_, ok := missingTokens[strings.TrimSpace(s)]
	return ok
}

// ParseDuration decomposes a finish time such as "2:31:07" or "02:31:07.4"
// into hour, minute and second. Date components, when present, are ignored.
func ParseDuration(s string) (Duration, error) {
	value := strings.TrimSpace(s)
	if value == "" {
		return Duration{}, core.NewParseError(s, "empty value")
	}
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		return Duration{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
	}
	return Duration{}, core.NewParseError(s, "expected HH:MM:SS")
}

// TotalSeconds returns hour*3600 + minute*60 + second.
func (d Duration) TotalSeconds() int {
	return d.Hour*3600 + d.Minute*60 + d.Second
}

// String formats the duration as zero-padded HH:MM:SS.
func (d Duration) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", d.Hour, d.Minute, d.Second)
}
