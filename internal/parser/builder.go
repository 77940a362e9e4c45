package parser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/entry"
	"github.com/xolan/chrono/internal/timeutil"
)

var (
	// ErrMissingDate is returned for a record without a date token.
	ErrMissingDate = errors.New("missing date")
	// ErrMissingTimeRange is returned for a record without a time range token.
	ErrMissingTimeRange = errors.New("missing time range")
)

// EntryBuildError wraps the reason a record could not become an entry.
type EntryBuildError struct {
	Record Record
	Err    error
}

func (e *EntryBuildError) Error() string {
	return fmt.Sprintf("could not build entry from line %d: %v", e.Record.Line, e.Err)
}

func (e *EntryBuildError) Unwrap() error {
	return e.Err
}

// Warning converts the error into a per-line warning.
func (e *EntryBuildError) Warning() Warning {
	return Warning{Line: e.Record.Line, Content: e.Record.Raw, Error: e.Err.Error()}
}

// Builder converts records into validated entries.
type Builder struct {
	locations  map[string]string
	separators []string
	now        func() time.Time
}

// NewBuilder creates a builder for the given parsing settings.
func NewBuilder(p config.Parsing, now func() time.Time) *Builder {
	p = p.Clone()
	if now == nil {
		now = time.Now
	}
	return &Builder{
		locations:  p.LocationMappings,
		separators: p.TimeSeparators,
		now:        now,
	}
}

// Build parses the record's tokens and returns the entry.
// Any failure is an *EntryBuildError.
func (b *Builder) Build(rec Record) (entry.Entry, error) {
	if strings.TrimSpace(rec.Date) == "" {
		return entry.Entry{}, &EntryBuildError{Record: rec, Err: ErrMissingDate}
	}
	if strings.TrimSpace(rec.TimeRange) == "" {
		return entry.Entry{}, &EntryBuildError{Record: rec, Err: ErrMissingTimeRange}
	}

	day, err := timeutil.ParseDate(rec.Date, b.now())
	if err != nil {
		return entry.Entry{}, &EntryBuildError{Record: rec, Err: err}
	}
	start, end, err := timeutil.ParseTimeRange(rec.TimeRange, day, b.separators)
	if err != nil {
		return entry.Entry{}, &EntryBuildError{Record: rec, Err: err}
	}

	e, err := entry.New(start, end, b.MapLocation(rec.Location), strings.TrimSpace(rec.Description))
	if err != nil {
		return entry.Entry{}, &EntryBuildError{Record: rec, Err: err}
	}
	return e, nil
}

// MapLocation resolves a location code to its label. Empty codes become
// entry.UnknownLocation; unmapped codes pass through unchanged.
func (b *Builder) MapLocation(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return entry.UnknownLocation
	}
	if label, ok := b.locations[code]; ok {
		return label
	}
	return code
}
