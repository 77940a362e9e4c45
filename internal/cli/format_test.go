package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xolan/chrono/internal/entry"
	"github.com/xolan/chrono/internal/parser"
	"github.com/xolan/chrono/internal/storage"
)

func makeEntry(day, sh, sm, eh, em int, location, desc string) entry.Entry {
	return entry.Entry{
		Start:       time.Date(2025, 6, day, sh, sm, 0, 0, time.UTC),
		End:         time.Date(2025, 6, day, eh, em, 0, 0, time.UTC),
		Location:    location,
		Description: desc,
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{30, "30m"},
		{60, "1h"},
		{90, "1h 30m"},
		{150, "2h 30m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if result := FormatDuration(tt.minutes); result != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, result, tt.want)
			}
		})
	}
}

func TestFormatHours(t *testing.T) {
	if got := FormatHours(8.5); got != "8.50h" {
		t.Errorf("FormatHours(8.5) = %q, want %q", got, "8.50h")
	}
	if got := FormatHours(0); got != "0.00h" {
		t.Errorf("FormatHours(0) = %q, want %q", got, "0.00h")
	}
}

func TestFormatEntryLine(t *testing.T) {
	tests := []struct {
		name  string
		entry entry.Entry
		want  string
	}{
		{
			name:  "with description",
			entry: makeEntry(30, 9, 0, 12, 0, "Company", "Meeting"),
			want:  "2025-06-30  09:00-12:00  3h       Company       Meeting",
		},
		{
			name:  "without description",
			entry: makeEntry(30, 13, 0, 14, 30, "Homeoffice", ""),
			want:  "2025-06-30  13:00-14:30  1h 30m   Homeoffice",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatEntryLine(tt.entry); got != tt.want {
				t.Errorf("FormatEntryLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatCorruptionWarning(t *testing.T) {
	w := storage.ParseWarning{LineNumber: 3, Content: strings.Repeat("x", 60), Error: "invalid JSON"}
	got := FormatCorruptionWarning(w)
	want := "  Line 3: " + strings.Repeat("x", 47) + "... (error: invalid JSON)"
	if got != want {
		t.Errorf("FormatCorruptionWarning() = %q, want %q", got, want)
	}
}

func TestFormatParseWarning(t *testing.T) {
	w := parser.Warning{Line: 2, Content: "9:00-10:00", Error: "time range without a preceding date"}
	got := FormatParseWarning("june.txt", w)
	if !strings.HasPrefix(got, "  june.txt line 2: time range without a preceding date") {
		t.Errorf("FormatParseWarning() = %q", got)
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		word  string
		count int
		want  string
	}{
		{"entry", 1, "entry"},
		{"entry", 2, "entries"},
		{"day", 2, "days"},
		{"error", 0, "errors"},
		{"conflict", 3, "conflicts"},
	}
	for _, tt := range tests {
		if got := Pluralize(tt.word, tt.count); got != tt.want {
			t.Errorf("Pluralize(%q, %d) = %q, want %q", tt.word, tt.count, got, tt.want)
		}
	}
}

func TestLimit(t *testing.T) {
	tests := []struct {
		n, max       int
		shown, extra int
	}{
		{3, 5, 3, 0},
		{7, 5, 5, 2},
		{7, 0, 7, 0},
		{0, 5, 0, 0},
	}
	for _, tt := range tests {
		shown, hidden := Limit(tt.n, tt.max)
		if shown != tt.shown || hidden != tt.extra {
			t.Errorf("Limit(%d, %d) = %d, %d, want %d, %d", tt.n, tt.max, shown, hidden, tt.shown, tt.extra)
		}
	}
}

func TestWriteLimited(t *testing.T) {
	var buf bytes.Buffer
	WriteLimited(&buf, []string{"a", "b", "c"}, 2, "warning")

	want := "a\nb\n  ... and 1 more warning\n"
	if buf.String() != want {
		t.Errorf("WriteLimited() wrote %q, want %q", buf.String(), want)
	}
}

func TestWriteCorruptionWarnings(t *testing.T) {
	var buf bytes.Buffer
	WriteCorruptionWarnings(&buf, nil, 5)
	if buf.Len() != 0 {
		t.Errorf("expected no output without warnings, got %q", buf.String())
	}

	warnings := []storage.ParseWarning{
		{LineNumber: 1, Content: "{", Error: "unexpected end"},
		{LineNumber: 4, Content: "oops", Error: "invalid character"},
	}
	WriteCorruptionWarnings(&buf, warnings, 1)
	out := buf.String()
	if !strings.Contains(out, "Found 2 corrupted lines") {
		t.Errorf("expected a count header, got %q", out)
	}
	if !strings.Contains(out, "Line 1:") || strings.Contains(out, "Line 4:") {
		t.Errorf("expected only the first warning, got %q", out)
	}
	if !strings.Contains(out, "... and 1 more warning") {
		t.Errorf("expected a truncation note, got %q", out)
	}
}

func TestSpansMultipleDays(t *testing.T) {
	oneDay := []entry.Entry{makeEntry(30, 9, 0, 10, 0, "C", ""), makeEntry(30, 11, 0, 12, 0, "C", "")}
	twoDays := []entry.Entry{makeEntry(29, 9, 0, 10, 0, "C", ""), makeEntry(30, 11, 0, 12, 0, "C", "")}

	if SpansMultipleDays(nil) {
		t.Error("expected false for no entries")
	}
	if SpansMultipleDays(oneDay) {
		t.Error("expected false for entries on one day")
	}
	if !SpansMultipleDays(twoDays) {
		t.Error("expected true for entries on two days")
	}
}
