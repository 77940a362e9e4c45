// Package service provides the business logic layer for the chrono application.
// It wraps the parser, merge, storage, stats and report packages, providing
// a clean API for both CLI and TUI frontends and the report server.
package service

import (
	"slices"
	"time"

	"github.com/xolan/chrono/internal/entry"
	"github.com/xolan/chrono/internal/merge"
	"github.com/xolan/chrono/internal/parser"
	"github.com/xolan/chrono/internal/stats"
	"github.com/xolan/chrono/internal/storage"
)

// DateRange represents a predefined or custom date range for filtering entries
type DateRange int

const (
	DateRangeAll DateRange = iota
	DateRangeToday
	DateRangeThisWeek
	DateRangeThisMonth
	DateRangePrevMonth
	DateRangeLast  // Last N days (requires LastDays field)
	DateRangeMonth // A calendar month (requires Year and Month)
	DateRangeCustom
)

// DateRangeSpec specifies a date range for filtering entries
type DateRangeSpec struct {
	Type     DateRange
	LastDays int        // Used when Type is DateRangeLast
	Year     int        // Used when Type is DateRangeMonth
	Month    time.Month // Used when Type is DateRangeMonth
	From     time.Time  // Used when Type is DateRangeCustom; zero means unbounded
	To       time.Time  // Used when Type is DateRangeCustom
}

// ListResult contains the results of listing entries
type ListResult struct {
	Entries      []entry.Entry
	Warnings     []storage.ParseWarning
	Period       string    // Human-readable period description
	Filter       string    // Human-readable filter description, empty if none
	Start        time.Time // Start of the date range
	End          time.Time // End of the date range
	TotalMinutes int
	TotalHours   float64
}

// MonthDetail contains one month's summary and its entries
type MonthDetail struct {
	Summary stats.MonthlySummary
	Entries []entry.Entry
	// Truncated is the number of entries left out of Entries by the display limit.
	Truncated int
}

// StatsResult contains the overall summary of the store
type StatsResult struct {
	Overall  stats.OverallSummary
	Months   []stats.MonthlySummary
	Warnings []storage.ParseWarning
}

// RangeStatsResult contains statistics for a time period
type RangeStatsResult struct {
	Statistics stats.Statistics
	Period     string
	Start      time.Time
	End        time.Time
}

// ParsedSource is one parsed import input
type ParsedSource struct {
	Name   string // File base name, or "text" for pasted input
	Path   string // File path, empty for pasted input
	Result parser.Result
}

// ImportPlan is the outcome of merging parsed sources into the store,
// computed without writing anything.
type ImportPlan struct {
	BatchID       string
	Sources       []ParsedSource
	Conflicts     []merge.Conflict
	Merge         merge.Result
	StoreWarnings []storage.ParseWarning
	// Retained are stored entries that fail validation. They take no part
	// in the merge and are written back unchanged.
	Retained []entry.Entry
}

// Entries returns the collection Apply writes: the merged entries plus the
// retained ones, ordered by start.
func (p *ImportPlan) Entries() []entry.Entry {
	out := make([]entry.Entry, 0, len(p.Merge.Entries)+len(p.Retained))
	out = append(out, p.Merge.Entries...)
	out = append(out, p.Retained...)
	slices.SortStableFunc(out, func(a, b entry.Entry) int { return a.Start.Compare(b.Start) })
	return out
}

// Warnings returns the parse warnings of all sources.
func (p *ImportPlan) Warnings() int {
	n := 0
	for _, src := range p.Sources {
		n += len(src.Result.Warnings)
	}
	return n
}

// Parsed returns the number of entries parsed across all sources.
func (p *ImportPlan) Parsed() int {
	n := 0
	for _, src := range p.Sources {
		n += len(src.Result.Entries)
	}
	return n
}

// HasChanges reports whether applying the plan would change the store.
func (p *ImportPlan) HasChanges() bool {
	return p.Merge.Added > 0
}

// StoreStatus describes the configured store and its backups
type StoreStatus struct {
	Backend string
	Path    string
	Health  storage.StorageHealth
	Backups []storage.BackupInfo
}
