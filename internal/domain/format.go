package domain

import (
	"math"
	"strconv"
	"time"
)

// Severity is a coarse magnitude classification used for rendering.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ClassifySeverity maps magnitude to a severity label:
//   - <2.5 low
//   - <4.5 moderate
//   - <6.0 high
//   - otherwise critical
func ClassifySeverity(mag float64) Severity {
	switch {
	case mag >= 6.0:
		return SeverityCritical
	case mag >= 4.5:
		return SeverityHigh
	case mag >= 2.5:
		return SeverityModerate
	default:
		return SeverityLow
	}
}

// MagnitudeBucket returns the colour class for a magnitude: its floor, clamped
// to 1..10. Magnitudes below 2 share bucket 1.
func MagnitudeBucket(mag float64) int {
	if math.IsNaN(mag) {
		return 1
	}
	b := int(math.Floor(mag))
	if b < 1 {
		return 1
	}
	if b > 10 {
		return 10
	}
	return b
}

// FormatMagnitude renders a magnitude with one decimal place.
func FormatMagnitude(mag float64) string {
	return strconv.FormatFloat(mag, 'f', 1, 64)
}

// FormatDate renders the date part of an event time, e.g. "Mar 03, 2016".
func FormatDate(t time.Time) string {
	return t.Format("Jan 02, 2006")
}

// FormatTime renders the clock part of an event time, e.g. "3:04 PM".
func FormatTime(t time.Time) string {
	return t.Format("3:04 PM")
}
