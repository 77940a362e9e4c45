package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/xolan/chrono/internal/filter"
	"github.com/xolan/chrono/internal/service"
)

func TestListEntries(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	seed(t, deps, stdout, stderr, exitCode)

	ListEntries(deps, service.DateRangeSpec{Type: service.DateRangeAll}, nil)

	if *exitCode != -1 {
		t.Fatalf("expected no exit, got %d", *exitCode)
	}
	output := stdout.String()
	assertContains(t, output,
		"Entries for all time:",
		"2025-06-30  09:00-12:00  3h       Company       Meeting",
		"2025-07-01  08:00-09:30  1h 30m   Company       Review",
		"Total: 8h 30m (8.50h) in 3 entries")

	if strings.Index(output, "Meeting") > strings.Index(output, "Review") {
		t.Error("expected entries in chronological order")
	}
}

func TestListEntries_Filtered(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	seed(t, deps, stdout, stderr, exitCode)

	ListEntries(deps, service.DateRangeSpec{Type: service.DateRangeAll}, filter.NewFilter("", "homeoffice"))

	output := stdout.String()
	assertContains(t, output, `location "homeoffice"`, "Work", "in 1 entry")
	if strings.Contains(output, "Meeting") {
		t.Error("expected Company entries to be filtered out")
	}
}

func TestListEntries_Month(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	seed(t, deps, stdout, stderr, exitCode)

	ListEntries(deps, service.DateRangeSpec{Type: service.DateRangeMonth, Year: 2025, Month: time.July}, nil)

	assertContains(t, stdout.String(), "Entries for July 2025:", "Review", "in 1 entry")
}

func TestListEntries_Empty(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	ListEntries(deps, service.DateRangeSpec{Type: service.DateRangeAll}, nil)

	if *exitCode != -1 {
		t.Fatalf("expected no exit, got %d", *exitCode)
	}
	assertContains(t, stdout.String(), "No entries found for all time")
}

func TestListEntries_Truncated(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	seed(t, deps, stdout, stderr, exitCode)
	deps.Config.UI.MaxDisplayEntries = 2

	ListEntries(deps, service.DateRangeSpec{Type: service.DateRangeAll}, nil)

	output := stdout.String()
	assertContains(t, output, "... and 1 more entry", "in 3 entries")
	if strings.Contains(output, "Review") {
		t.Error("expected the last entry to be left out")
	}
}
