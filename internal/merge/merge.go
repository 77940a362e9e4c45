package merge

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/entry"
)

// Result describes one merge.
type Result struct {
	TotalBefore       int
	TotalAfter        int
	Added             int
	DuplicatesRemoved int
	// Errors lists every entry dropped by validation.
	Errors []string
	// Entries is the merged collection ordered by start.
	Entries []entry.Entry
}

// Merger merges entry batches into a collection.
//
// Every incoming entry is compared with every existing entry and with the
// incoming entries accepted before it, so a merge costs
// O(len(existing) × len(incoming)) comparisons. This is fine for personal
// logs with up to a few thousand entries. When several incoming entries
// are duplicates of each other the first one wins.
type Merger struct {
	matcher Matcher
}

// New creates a merger from the merge settings.
func New(cfg config.Merge) *Merger {
	return &Merger{matcher: NewMatcher(cfg)}
}

// Matcher returns the duplicate predicate used by the merger.
func (mg *Merger) Matcher() Matcher {
	return mg.matcher
}

// Merge validates both collections, drops incoming duplicates and returns
// the merged collection. Neither input slice is modified.
func (mg *Merger) Merge(existing, incoming []entry.Entry) Result {
	var errs []string
	validExisting := validate(existing, "Existing entry", &errs)
	validIncoming := validate(incoming, "Entry", &errs)

	merged := make([]entry.Entry, 0, len(validExisting)+len(validIncoming))
	merged = append(merged, validExisting...)

	var added, duplicates int
	for i, candidate := range validIncoming {
		if match, ok := mg.findDuplicate(candidate, merged); ok {
			slog.Debug("dropping duplicate entry", "index", i, "entry", candidate.String(), "matches", match.String())
			duplicates++
			continue
		}
		merged = append(merged, candidate)
		added++
	}

	sortByStart(merged)

	slog.Debug("merged entries", "before", len(existing), "after", len(merged), "added", added, "duplicates", duplicates, "errors", len(errs))
	return Result{
		TotalBefore:       len(existing),
		TotalAfter:        len(merged),
		Added:             added,
		DuplicatesRemoved: duplicates,
		Errors:            errs,
		Entries:           merged,
	}
}

// MergeAll merges each source in turn into the result of the previous
// merge. Errors are prefixed with the source index.
func (mg *Merger) MergeAll(existing []entry.Entry, sources [][]entry.Entry) Result {
	if len(sources) == 0 {
		return mg.Merge(existing, nil)
	}

	out := Result{TotalBefore: len(existing)}
	current := existing
	for i, src := range sources {
		r := mg.Merge(current, src)
		current = r.Entries
		out.Added += r.Added
		out.DuplicatesRemoved += r.DuplicatesRemoved
		for _, e := range r.Errors {
			out.Errors = append(out.Errors, fmt.Sprintf("Source %d: %s", i, e))
		}
	}
	out.Entries = current
	out.TotalAfter = len(current)
	return out
}

// findDuplicate returns the first entry in pool that matches candidate.
func (mg *Merger) findDuplicate(candidate entry.Entry, pool []entry.Entry) (entry.Entry, bool) {
	for _, e := range pool {
		if mg.matcher.IsDuplicate(candidate, e) {
			return e, true
		}
	}
	return entry.Entry{}, false
}

func validate(entries []entry.Entry, label string, errs *[]string) []entry.Entry {
	valid := make([]entry.Entry, 0, len(entries))
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			*errs = append(*errs, fmt.Sprintf("%s %d: %s", label, i, validationMessage(err)))
			continue
		}
		valid = append(valid, e)
	}
	return valid
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, entry.ErrInvalidInterval):
		return "End time is before or equal to start time"
	case errors.Is(err, entry.ErrMissingTimestamp):
		return "Invalid timestamp (" + err.Error() + ")"
	default:
		return err.Error()
	}
}

func sortByStart(entries []entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start.Before(entries[j].Start)
	})
}
