// Package timecode holds the time arithmetic shared by the render-plan builder
// and the subtitle exporter: millisecond rounding, SRT/VTT timestamp grammars,
// and half-open interval overlap.
package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxMillis is the largest millisecond count Millis returns.
const MaxMillis = 1 << 53

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
)

// Millis converts seconds to whole milliseconds, rounding half away from zero.
// Negative and NaN input clamps to zero.
// Values too large for exact millisecond arithmetic saturate at MaxMillis.
func Millis(seconds float64) int64 {
	if math.IsNaN(seconds) || seconds <= 0 {
		return 0
	}
	ms := math.Round(seconds * msPerSecond)
	if ms >= MaxMillis {
		return MaxMillis
	}
	return int64(ms)
}

// SRT formats seconds as HH:MM:SS,mmm.
func SRT(seconds float64) string {
	total := Millis(seconds)
	hours := total / msPerHour
	minutes := (total % msPerHour) / msPerMinute
	secs := (total % msPerMinute) / msPerSecond
	ms := total % msPerSecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, ms)
}

// VTT formats seconds as HH:MM:SS.mmm. It is derived from SRT so the two
// grammars always agree on the same input.
func VTT(seconds float64) string {
	return strings.Replace(SRT(seconds), ",", ".", 1)
}

// Parse reads an SRT or VTT timestamp back into seconds.
func Parse(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.Replace(value, ".", ",", 1)
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if minutes > 59 || seconds > 59 || millis > 999 || hours < 0 || minutes < 0 || seconds < 0 || millis < 0 {
		return 0, fmt.Errorf("timestamp field out of range %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/msPerSecond, nil
}

// Range is a closed [Start, End] window on the timeline, in seconds.
type Range struct {
	Start float64
	End   float64
}

// Overlaps reports whether [t0, t1) intersects the range with a strict test:
// an interval touching either boundary is excluded.
func (r Range) Overlaps(t0, t1 float64) bool {
	return t1 > r.Start && t0 < r.End
}

// Duration returns End-Start.
func (r Range) Duration() float64 {
	return r.End - r.Start
}
