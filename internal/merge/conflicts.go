package merge

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/xolan/chrono/internal/entry"
)

const (
	// MinConflictOverlap is the shared time above which an overlap is reported.
	MinConflictOverlap = 5 * time.Minute
	// NearStartWindow is the start difference within which two entries
	// with different descriptions are reported.
	NearStartWindow = 10 * time.Minute
)

// ConflictKind classifies a Conflict.
type ConflictKind int

const (
	// ConflictOverlap is an existing and an incoming entry sharing time.
	ConflictOverlap ConflictKind = iota
	// ConflictDescription is a near-simultaneous pair with different descriptions.
	ConflictDescription
)

func (k ConflictKind) String() string {
	if k == ConflictDescription {
		return "description"
	}
	return "overlap"
}

// Conflict is an advisory finding about an incoming entry.
type Conflict struct {
	Kind     ConflictKind
	Existing entry.Entry
	Incoming entry.Entry
	// Overlap is the shared time of a ConflictOverlap.
	Overlap time.Duration
	Message string
}

func (c Conflict) String() string {
	return c.Message
}

// SuggestConflicts inspects an incoming batch before it is merged. It
// reports overlaps of more than MinConflictOverlap between an existing and
// an incoming entry, except exact time matches, followed by same-day pairs
// starting within NearStartWindow whose descriptions differ. Invalid
// entries are ignored. Conflicts never prevent a merge.
func (mg *Merger) SuggestConflicts(existing, incoming []entry.Entry) []Conflict {
	existing = validOnly(existing)
	incoming = validOnly(incoming)
	m := mg.matcher

	var conflicts []Conflict
	for _, in := range incoming {
		for _, ex := range existing {
			if !m.Overlaps(ex, in) || m.ExactTimeMatch(ex, in) {
				continue
			}
			shared := overlap(ex, in)
			if shared <= MinConflictOverlap {
				continue
			}
			first, second := ex, in
			if in.Start.Before(ex.Start) {
				first, second = in, ex
			}
			conflicts = append(conflicts, Conflict{
				Kind:     ConflictOverlap,
				Existing: ex,
				Incoming: in,
				Overlap:  shared,
				Message: fmt.Sprintf("Time overlap: %s - %s overlaps with %s - %s (%dmin)",
					first.Start.Format("2006-01-02 15:04"), first.End.Format("15:04"),
					second.Start.Format("2006-01-02 15:04"), second.End.Format("15:04"),
					int(math.Round(shared.Minutes()))),
			})
		}
	}
	sortConflicts(conflicts)

	for _, in := range incoming {
		for _, ex := range existing {
			if !differentDescriptionNearby(in, ex) {
				continue
			}
			conflicts = append(conflicts, Conflict{
				Kind:     ConflictDescription,
				Existing: ex,
				Incoming: in,
				Message: fmt.Sprintf("Potential duplicate with different description: %s - %s",
					in.Start.Format("2006-01-02 15:04"), in.End.Format("15:04")),
			})
		}
	}
	return conflicts
}

func differentDescriptionNearby(a, b entry.Entry) bool {
	if !a.SameDay(b) || absDuration(a.Start.Sub(b.Start)) > NearStartWindow {
		return false
	}
	da := strings.ToLower(strings.TrimSpace(a.Description))
	db := strings.ToLower(strings.TrimSpace(b.Description))
	return da != "" && db != "" && da != db
}

func overlap(a, b entry.Entry) time.Duration {
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End
	if b.End.Before(end) {
		end = b.End
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

// sortConflicts orders conflicts by the earlier start of each pair.
func sortConflicts(conflicts []Conflict) {
	earliest := func(c Conflict) time.Time {
		if c.Incoming.Start.Before(c.Existing.Start) {
			return c.Incoming.Start
		}
		return c.Existing.Start
	}
	sort.SliceStable(conflicts, func(i, j int) bool {
		return earliest(conflicts[i]).Before(earliest(conflicts[j]))
	})
}

func validOnly(entries []entry.Entry) []entry.Entry {
	out := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Validate() == nil {
			out = append(out, e)
		}
	}
	return out
}
