// Package entry defines the time entry value shared by every layer.
package entry

import (
	"errors"
	"fmt"
	"time"
)

// UnknownLocation is the location of an entry whose record carried no location code.
const UnknownLocation = "Unknown"

var (
	// ErrInvalidInterval is returned when an entry does not end strictly after it starts.
	ErrInvalidInterval = errors.New("end time is before or equal to start time")
	// ErrMissingTimestamp is returned when start or end is the zero time.
	ErrMissingTimestamp = errors.New("missing timestamp")
)

// Entry represents a single contiguous block of work.
// Entries are passed and stored by value and never modified after creation;
// the With* helpers return copies.
type Entry struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Source      string    `json:"source,omitempty"`
	BatchID     string    `json:"batch_id,omitempty"`
}

// New creates an entry and validates its interval.
func New(start, end time.Time, location, description string) (Entry, error) {
	e := Entry{
		Start:       start,
		End:         end,
		Location:    location,
		Description: description,
	}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Duration returns End - Start.
func (e Entry) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Date returns the calendar date of the start timestamp at midnight.
func (e Entry) Date() time.Time {
	y, m, d := e.Start.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.Start.Location())
}

// SameDay reports whether both entries start on the same calendar date.
func (e Entry) SameDay(other Entry) bool {
	y1, m1, d1 := e.Start.Date()
	y2, m2, d2 := other.Start.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Validate checks the invariants of an entry.
func (e Entry) Validate() error {
	if e.Start.IsZero() {
		return fmt.Errorf("invalid start time: %w", ErrMissingTimestamp)
	}
	if e.End.IsZero() {
		return fmt.Errorf("invalid end time: %w", ErrMissingTimestamp)
	}
	if !e.End.After(e.Start) {
		return ErrInvalidInterval
	}
	return nil
}

// WithOrigin returns a copy of e tagged with its source and import batch.
func (e Entry) WithOrigin(source, batchID string) Entry {
	e.Source = source
	e.BatchID = batchID
	return e
}

// String renders the entry as "2025-06-30 09:00-12:00 [Company] Meeting".
func (e Entry) String() string {
	s := fmt.Sprintf("%s %s-%s [%s]", e.Start.Format("2006-01-02"), e.Start.Format("15:04"), e.End.Format("15:04"), e.Location)
	if e.Description != "" {
		s += " " + e.Description
	}
	return s
}
