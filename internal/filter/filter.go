// Package filter narrows an entry collection by location and description keyword.
package filter

import (
	"strings"

	"github.com/xolan/chrono/internal/entry"
)

// Filter represents filtering criteria for time entries.
// All filter fields are optional - empty values match all entries.
type Filter struct {
	Keyword  string // Case-insensitive substring search in entry descriptions
	Location string // Exact location match (case-insensitive)
}

// NewFilter creates a new Filter with the given criteria.
func NewFilter(keyword, location string) *Filter {
	return &Filter{
		Keyword:  strings.TrimSpace(keyword),
		Location: strings.TrimSpace(location),
	}
}

// IsEmpty returns true if all filter fields are empty (matches all entries).
// A nil filter is empty.
func (f *Filter) IsEmpty() bool {
	return f == nil || (f.Keyword == "" && f.Location == "")
}

// FilterEntries returns a new slice containing only entries that match the filter criteria.
// If the filter is empty, returns all entries.
func FilterEntries(entries []entry.Entry, f *Filter) []entry.Entry {
	if f.IsEmpty() {
		return entries
	}

	filtered := make([]entry.Entry, 0)
	for _, e := range entries {
		if f.Matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// MatchesKeyword returns true if the keyword is found in the entry's description (case-insensitive).
// An empty keyword matches all entries.
func (f *Filter) MatchesKeyword(e entry.Entry) bool {
	if f.Keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Description), strings.ToLower(f.Keyword))
}

// MatchesLocation returns true if the entry's location equals the filter location (case-insensitive).
// An empty location filter matches all entries.
func (f *Filter) MatchesLocation(e entry.Entry) bool {
	if f.Location == "" {
		return true
	}
	return strings.EqualFold(e.Location, f.Location)
}

// Matches returns true if the entry satisfies every criterion.
func (f *Filter) Matches(e entry.Entry) bool {
	if f.IsEmpty() {
		return true
	}
	return f.MatchesKeyword(e) && f.MatchesLocation(e)
}

// String describes the active criteria, e.g. `location "Company", keyword "review"`.
func (f *Filter) String() string {
	if f.IsEmpty() {
		return ""
	}
	var parts []string
	if f.Location != "" {
		parts = append(parts, "location \""+f.Location+"\"")
	}
	if f.Keyword != "" {
		parts = append(parts, "keyword \""+f.Keyword+"\"")
	}
	return strings.Join(parts, ", ")
}
