package parser

import (
	"strings"
	"testing"
	"time"
)

func TestParseText_FreeText(t *testing.T) {
	p := newTestParser(t)

	res := p.ParseText("30.6.25\n9:00 - 12:00\nC\nMeeting\n13:00 - 17:00\nC\nWork")

	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
	if res.Records != 2 || len(res.Entries) != 2 {
		t.Fatalf("Records = %d, Entries = %d, want 2 and 2", res.Records, len(res.Entries))
	}

	first, second := res.Entries[0], res.Entries[1]
	if !first.Start.Equal(day(2025, 6, 30, 9, 0)) || first.Duration() != 3*time.Hour {
		t.Errorf("first = %v", first)
	}
	if !second.Start.Equal(day(2025, 6, 30, 13, 0)) || second.Duration() != 4*time.Hour {
		t.Errorf("second = %v", second)
	}
	if first.Location != "Company" || second.Location != "Company" {
		t.Errorf("locations = %q, %q", first.Location, second.Location)
	}
	if first.Description != "Meeting" || second.Description != "Work" {
		t.Errorf("descriptions = %q, %q", first.Description, second.Description)
	}
}

func TestParseText_Delimited(t *testing.T) {
	p := newTestParser(t)

	res := p.ParseText("30.6.25;9:00-12:00;C;Meeting\n1.7.25;8:00-9:30;H;Standup\n2.7.25;xx;C;Broken")

	if len(res.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(res.Entries))
	}
	if res.Entries[1].Location != "Homeoffice" || res.Entries[1].Duration() != 90*time.Minute {
		t.Errorf("second entry = %v", res.Entries[1])
	}
	// "xx" is no time range, so the last row is a dangling description.
	if len(res.Warnings) != 1 || res.Warnings[0].Line != 3 {
		t.Errorf("warnings = %v", res.Warnings)
	}
}

func TestParseText_WarningsSortedByLine(t *testing.T) {
	p := newTestParser(t)

	text := "9:00-10:00\n30.6.25\n9:00-10:00\nC\n31.6.25\n10:00-11:00\n1.7.25\n7:00-7:30"
	res := p.ParseText(text)

	if len(res.Entries) != 2 {
		t.Fatalf("got %d entries, want 2: %v", len(res.Entries), res.Entries)
	}
	if len(res.Warnings) != 3 {
		t.Fatalf("got %d warnings, want 3: %v", len(res.Warnings), res.Warnings)
	}
	for i := 1; i < len(res.Warnings); i++ {
		if res.Warnings[i-1].Line > res.Warnings[i].Line {
			t.Errorf("warnings not sorted: %v", res.Warnings)
		}
	}
	if !strings.Contains(res.Warnings[1].Error, "31.6.25") {
		t.Errorf("warning for invalid date = %+v", res.Warnings[1])
	}
}

func TestParseText_BadClockBecomesWarning(t *testing.T) {
	p := newTestParser(t)

	res := p.ParseText("30.6.25\n9:00 - 24:30\nC\nLate")
	if len(res.Entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(res.Entries))
	}
	if res.Records != 1 {
		t.Errorf("Records = %d, want 1", res.Records)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Line != 2 || !strings.Contains(res.Warnings[0].Error, "hour 24") {
		t.Errorf("warnings = %v", res.Warnings)
	}
}

func TestParseText_Empty(t *testing.T) {
	p := newTestParser(t)

	res := p.ParseText("  \n\n")
	if len(res.Entries) != 0 || len(res.Warnings) != 0 || res.Records != 0 {
		t.Errorf("ParseText(blank) = %+v", res)
	}
}

func TestParseGrid(t *testing.T) {
	p := newTestParser(t)

	res := p.ParseGrid(
		[]string{"Date", "Hours", "Location", "Description"},
		[][]string{
			{"30.06.2025", "9:00-12:00", "C", "Meeting"},
			{"", "13:00-14:00", "T", "Course"},
		},
	)
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
	if len(res.Entries) != 2 || res.Entries[1].Location != "Training" || !res.Entries[1].Start.Equal(day(2025, 6, 30, 13, 0)) {
		t.Errorf("entries = %v", res.Entries)
	}
}

func TestParseCells(t *testing.T) {
	p := newTestParser(t)

	res := p.ParseCells([][]string{{"Meeting", "C", "9:00-10:00", "30.6.25"}})
	if len(res.Entries) != 1 || res.Entries[0].Description != "Meeting" {
		t.Errorf("entries = %v", res.Entries)
	}
}

func TestLooksLikeHeader(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		name  string
		cells []string
		want  bool
	}{
		{"german", []string{"Datum", "Stunden", "Ort", "Info"}, true},
		{"partial", []string{"Start Date", "Notes"}, true},
		{"data row", []string{"30.6.25", "9:00-10:00", "C", "Info"}, false},
		{"no hints", []string{"foo", "bar"}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.LooksLikeHeader(tt.cells); got != tt.want {
				t.Errorf("LooksLikeHeader(%v) = %v, want %v", tt.cells, got, tt.want)
			}
		})
	}
}

func TestWarning_String(t *testing.T) {
	w := Warning{Line: 3, Content: strings.Repeat("x", 60), Error: "bad"}
	got := w.String()
	if !strings.HasPrefix(got, "line 3: bad (") || !strings.Contains(got, "...") {
		t.Errorf("String() = %q", got)
	}
}

func TestParseText_OverlappingSeparators(t *testing.T) {
	cfg := testParsing(t)
	cfg.TimeSeparators = []string{"-", "->"}
	p := NewWithClock(cfg, fixedClock)

	res := p.ParseText("30.6.25\n9:00 -> 12:00\nC\nMeeting\n13:00 - 14:00\nC\nLunch")

	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("got %d entries, expected 2", len(res.Entries))
	}
	if res.Entries[0].Duration() != 3*time.Hour || res.Entries[1].Duration() != time.Hour {
		t.Errorf("durations = %v, %v", res.Entries[0].Duration(), res.Entries[1].Duration())
	}
}

func TestParseText_DelimitedRowInFreeText(t *testing.T) {
	p := newTestParser(t)

	res := p.ParseText("30.6.25\n9:00 - 12:00\nC\nMeeting\n1.7.25, 9:00-12:00, H, Review")

	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("got %d entries, expected 2", len(res.Entries))
	}
	got := res.Entries[1]
	if !got.Start.Equal(day(2025, 7, 1, 9, 0)) || got.Duration() != 3*time.Hour {
		t.Errorf("second entry = %v, expected 2025-07-01 09:00-12:00", got)
	}
	if got.Location != "Homeoffice" || got.Description != "Review" {
		t.Errorf("second entry location/description = %q/%q", got.Location, got.Description)
	}
}
