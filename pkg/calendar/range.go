// Package calendar converts caller-supplied civil dates and minute offsets
// into half-open UTC ranges. The offset convention follows the HTTP
// surface: UTC = local + offset, so a range starts offset seconds after
// the UTC instant of local midnight.
//
// The derivation does not account for offset changes inside the requested
// range (a DST transition mid-month shifts that month's bucket boundaries
// by the difference). Accepted approximation.
package calendar

import (
	"fmt"
	"math"
	"time"
)

// MaxOffsetMinutes clamps offsets to ±14h, a superset of every real-world
// civil offset.
const MaxOffsetMinutes = 14 * 60

// ClampOffsetMinutes sanitizes a raw minute offset: non-finite or
// fractional values collapse to zero, everything else clamps to ±14h.
func ClampOffsetMinutes(raw float64) int {
	if math.IsNaN(raw) || math.IsInf(raw, 0) || raw != math.Trunc(raw) {
		return 0
	}
	offset := int(raw)
	if offset > MaxOffsetMinutes {
		return MaxOffsetMinutes
	}
	if offset < -MaxOffsetMinutes {
		return -MaxOffsetMinutes
	}
	return offset
}

// DayRange returns the UTC range [start, end) covering the local calendar
// day given by date (any civil date in UTC) under offsetMin. The range
// always spans exactly 24 hours.
func DayRange(year int, month time.Month, day, offsetMin int) (time.Time, time.Time) {
	start := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(offsetMin) * time.Minute)
	return start, start.Add(24 * time.Hour)
}

// MonthRange returns the UTC range [start, end) covering the local calendar
// month under offsetMin, using first-of-month and first-of-next-month
// boundaries.
func MonthRange(year int, month time.Month, offsetMin int) (time.Time, time.Time) {
	shift := time.Duration(offsetMin) * time.Minute
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Add(shift)
	end := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0).Add(shift)
	return start, end
}

// ParseCivilDate parses a YYYY-MM-DD date string.
func ParseCivilDate(s string) (int, time.Month, int, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.Year(), t.Month(), t.Day(), nil
}

// ParseCivilMonth parses a YYYY-MM month string.
func ParseCivilMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return t.Year(), t.Month(), nil
}
