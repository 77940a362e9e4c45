package parser

import (
	"strings"
	"time"
)

// AccumulatorState is the state of a SubRowAccumulator.
type AccumulatorState int

const (
	// NoPendingDate means no date has been seen yet.
	NoPendingDate AccumulatorState = iota
	// DatePending means a date is known and no description is waiting.
	DatePending
	// DateAndPartialDescription means description sub-rows are waiting
	// for the next row that carries a time range.
	DateAndPartialDescription
)

func (s AccumulatorState) String() string {
	switch s {
	case DatePending:
		return "date-pending"
	case DateAndPartialDescription:
		return "date-and-partial-description"
	default:
		return "no-pending-date"
	}
}

// Row is one physical row after its cells have been classified.
type Row struct {
	Line        int
	Raw         string
	Date        string
	TimeRange   string
	Location    string
	Description string
}

// SubRowAccumulator merges spreadsheet-style sub-rows into records.
//
// Rows without a date inherit the most recent one. Rows without a time
// range queue their description, which is prepended (single-space joined)
// to the next row that has a time range. A queued description is dropped
// with a warning when a different date arrives or the input ends.
type SubRowAccumulator struct {
	parseDate func(string) (time.Time, error)

	state    AccumulatorState
	date     string
	day      time.Time
	location string
	desc     []string
	descLine int
	descRaw  []string
}

// NewSubRowAccumulator creates an accumulator that resolves date tokens with parseDate.
func NewSubRowAccumulator(parseDate func(string) (time.Time, error)) *SubRowAccumulator {
	return &SubRowAccumulator{parseDate: parseDate}
}

// State returns the current state.
func (a *SubRowAccumulator) State() AccumulatorState {
	return a.state
}

// Feed consumes one row. It returns a record when the row completes one,
// plus any warnings produced along the way.
func (a *SubRowAccumulator) Feed(row Row) (*Record, []Warning) {
	var warnings []Warning

	if row.Date != "" {
		day, err := a.parseDate(row.Date)
		if err != nil {
			warnings = append(warnings, a.dropPending()...)
			a.reset()
			return nil, append(warnings, Warning{Line: row.Line, Content: row.Raw, Error: err.Error()})
		}
		if a.state == NoPendingDate || !day.Equal(a.day) {
			warnings = append(warnings, a.dropPending()...)
			a.reset()
			a.date = row.Date
			a.day = day
			a.state = DatePending
		}
	}

	if row.TimeRange != "" {
		if a.state == NoPendingDate {
			return nil, append(warnings, Warning{Line: row.Line, Content: row.Raw, Error: "time range without a preceding date"})
		}

		parts := append(append([]string(nil), a.desc...), row.Description)
		location := row.Location
		if location == "" {
			location = a.location
		}
		rec := &Record{
			Line:        row.Line,
			Raw:         row.Raw,
			Date:        a.date,
			TimeRange:   row.TimeRange,
			Location:    location,
			Description: joinNonEmpty(parts),
		}
		a.clearPending()
		return rec, warnings
	}

	if row.Description == "" && row.Location == "" {
		return nil, warnings
	}
	if a.state == NoPendingDate {
		return nil, append(warnings, Warning{Line: row.Line, Content: row.Raw, Error: "row without date or time range"})
	}

	if row.Location != "" {
		a.location = row.Location
	}
	if row.Description != "" {
		if len(a.desc) == 0 {
			a.descLine = row.Line
		}
		a.desc = append(a.desc, row.Description)
		a.descRaw = append(a.descRaw, row.Raw)
		a.state = DateAndPartialDescription
	}
	return nil, warnings
}

// Flush ends the input. A description still waiting for a time range is
// reported and discarded.
func (a *SubRowAccumulator) Flush() []Warning {
	warnings := a.dropPending()
	a.reset()
	return warnings
}

func (a *SubRowAccumulator) dropPending() []Warning {
	if a.state != DateAndPartialDescription {
		return nil
	}
	return []Warning{{
		Line:    a.descLine,
		Content: strings.Join(a.descRaw, " | "),
		Error:   "description without time range dropped",
	}}
}

func (a *SubRowAccumulator) clearPending() {
	a.desc = nil
	a.descRaw = nil
	a.descLine = 0
	a.location = ""
	a.state = DatePending
}

func (a *SubRowAccumulator) reset() {
	a.clearPending()
	a.date = ""
	a.day = time.Time{}
	a.state = NoPendingDate
}

func joinNonEmpty(parts []string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
