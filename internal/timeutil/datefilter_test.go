package timeutil

import (
	"testing"
	"time"
)

// Helper function to create test times with specific dates
func makeTime(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, time.Local)
}

func TestStartOfDay(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "midnight stays midnight",
			input:    makeTime(2025, time.June, 30, 0, 0, 0),
			expected: makeTime(2025, time.June, 30, 0, 0, 0),
		},
		{
			name:     "noon becomes midnight",
			input:    makeTime(2025, time.June, 30, 12, 0, 0),
			expected: makeTime(2025, time.June, 30, 0, 0, 0),
		},
		{
			name:     "leap year feb 29",
			input:    makeTime(2024, time.February, 29, 18, 45, 30),
			expected: makeTime(2024, time.February, 29, 0, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StartOfDay(tt.input)
			if !result.Equal(tt.expected) {
				t.Errorf("StartOfDay(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestEndOfDay(t *testing.T) {
	input := makeTime(2025, time.June, 30, 9, 0, 0)
	result := EndOfDay(input)

	if result.Day() != 30 || result.Hour() != 23 || result.Minute() != 59 || result.Second() != 59 {
		t.Errorf("EndOfDay(%v) = %v", input, result)
	}
	if result.Nanosecond() != 999999999 {
		t.Errorf("EndOfDay(%v) nanoseconds = %d", input, result.Nanosecond())
	}
}

func TestStartAndEndOfMonth(t *testing.T) {
	tests := []struct {
		name    string
		input   time.Time
		lastDay int
	}{
		{"june", makeTime(2025, time.June, 15, 10, 0, 0), 30},
		{"july", makeTime(2025, time.July, 1, 0, 0, 0), 31},
		{"february non leap", makeTime(2025, time.February, 10, 0, 0, 0), 28},
		{"february leap", makeTime(2024, time.February, 10, 0, 0, 0), 29},
		{"december", makeTime(2025, time.December, 31, 23, 0, 0), 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := StartOfMonth(tt.input)
			if start.Day() != 1 || start.Month() != tt.input.Month() || start.Hour() != 0 {
				t.Errorf("StartOfMonth(%v) = %v", tt.input, start)
			}
			end := EndOfMonth(tt.input)
			if end.Day() != tt.lastDay || end.Month() != tt.input.Month() {
				t.Errorf("EndOfMonth(%v) = %v, expected day %d", tt.input, end, tt.lastDay)
			}
		})
	}
}

func TestIsInRange(t *testing.T) {
	start := makeTime(2025, time.June, 1, 0, 0, 0)
	end := makeTime(2025, time.June, 30, 23, 59, 59)

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"at start", start, true},
		{"at end", end, true},
		{"inside", makeTime(2025, time.June, 15, 12, 0, 0), true},
		{"before", makeTime(2025, time.May, 31, 23, 59, 59), false},
		{"after", makeTime(2025, time.July, 1, 0, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInRange(tt.t, start, end); got != tt.want {
				t.Errorf("IsInRange(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestISOWeekOf_YearBoundary(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  ISOWeekKey
	}{
		{"dec 29 2025 is week 1 of 2026", makeTime(2025, time.December, 29, 9, 0, 0), ISOWeekKey{2026, 1}},
		{"jan 1 2021 is week 53 of 2020", makeTime(2021, time.January, 1, 9, 0, 0), ISOWeekKey{2020, 53}},
		{"jun 30 2025", makeTime(2025, time.June, 30, 9, 0, 0), ISOWeekKey{2025, 27}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ISOWeekOf(tt.input); got != tt.want {
				t.Errorf("ISOWeekOf(%v) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes  int
		expected string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h 30m"},
		{480, "8h"},
	}
	for _, tt := range tests {
		if got := FormatMinutes(tt.minutes); got != tt.expected {
			t.Errorf("FormatMinutes(%d) = %q, expected %q", tt.minutes, got, tt.expected)
		}
	}
}
