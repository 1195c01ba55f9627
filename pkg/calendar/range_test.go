package calendar

import (
	"math"
	"testing"
	"time"
)

func TestClampOffsetMinutes(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want int
	}{
		{"zero", 0, 0},
		{"negative offset", -420, -420},
		{"positive offset", 300, 300},
		{"clamps high", 10000, MaxOffsetMinutes},
		{"clamps low", -10000, -MaxOffsetMinutes},
		{"exact max", 840, 840},
		{"fractional collapses", 59.5, 0},
		{"nan collapses", math.NaN(), 0},
		{"inf collapses", math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampOffsetMinutes(tt.raw); got != tt.want {
				t.Errorf("ClampOffsetMinutes(%v) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDayRange(t *testing.T) {
	// Offset +420 means local = UTC-7, so local midnight is 07:00 UTC.
	start, end := DayRange(2025, time.March, 10, 420)

	wantStart := time.Date(2025, time.March, 10, 7, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if span := end.Sub(start); span != 24*time.Hour {
		t.Errorf("span = %v, want 24h", span)
	}
}

func TestDayRangeZeroOffset(t *testing.T) {
	start, end := DayRange(2025, time.January, 1, 0)
	if start.Hour() != 0 || !start.Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v, want UTC midnight", start)
	}
	if !end.Equal(start.Add(24 * time.Hour)) {
		t.Errorf("end = %v, want start+24h", end)
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2025, time.February, -60)

	wantStart := time.Date(2025, time.January, 31, 23, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, time.February, 28, 23, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
}

func TestMonthRangeYearRollover(t *testing.T) {
	start, end := MonthRange(2024, time.December, 0)
	if !start.Equal(time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", end)
	}
}

func TestParseCivilDate(t *testing.T) {
	y, m, d, err := ParseCivilDate("2025-03-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if y != 2025 || m != time.March || d != 10 {
		t.Errorf("got %d-%v-%d", y, m, d)
	}

	for _, bad := range []string{"", "2025-3-10", "10-03-2025", "2025-13-01", "garbage"} {
		if _, _, _, err := ParseCivilDate(bad); err == nil {
			t.Errorf("ParseCivilDate(%q) should fail", bad)
		}
	}
}

func TestParseCivilMonth(t *testing.T) {
	y, m, err := ParseCivilMonth("2025-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if y != 2025 || m != time.November {
		t.Errorf("got %d-%v", y, m)
	}

	for _, bad := range []string{"", "2025-13", "2025-11-01", "nope"} {
		if _, _, err := ParseCivilMonth(bad); err == nil {
			t.Errorf("ParseCivilMonth(%q) should fail", bad)
		}
	}
}
