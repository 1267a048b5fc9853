// Package duration renders elapsed time for terminal displays.
package duration

import (
	"fmt"
	"time"
)

// Format renders d as HH:MM, or HH:MM:SS when showSeconds is set.
// Without seconds, any non-zero span shorter than a minute renders as "<1m".
// Negative spans render as zero.
func Format(d time.Duration, showSeconds bool) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if showSeconds {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	if hours == 0 && minutes == 0 && d > 0 {
		return "<1m"
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// Clock renders the wall-clock time of t, or "--:--" when t is nil.
func Clock(t *time.Time) string {
	if t == nil {
		return "--:--"
	}
	return t.Local().Format("15:04")
}

// Window renders a start/end pair as "15:04 - 16:20"; an open end renders as "now".
func Window(start, end *time.Time) string {
	if start == nil {
		return "never"
	}
	if end == nil {
		return Clock(start) + " - now"
	}
	return Clock(start) + " - " + Clock(end)
}
