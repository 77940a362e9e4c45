// Package merge folds newly parsed entries into an existing collection,
// dropping invalid entries and duplicates.
package merge

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/entry"
)

const (
	// DurationTolerance is the largest length difference between two
	// duplicates. It does not follow the configured tolerance.
	DurationTolerance = 5 * time.Minute
	// OverlapBuffer is the amount of shared time two entries may have
	// without being reported as overlapping.
	OverlapBuffer = time.Minute
)

// Matcher decides whether two entries describe the same event.
type Matcher struct {
	// Tolerance bounds the start and end differences of duplicates.
	Tolerance time.Duration
	// SimilarityThreshold is the word-set Jaccard similarity that has to
	// be exceeded for two different descriptions to match.
	SimilarityThreshold float64
	// MinContainmentRatio is the smallest length ratio of shorter to
	// longer description for a substring to count as a match.
	MinContainmentRatio float64
}

// NewMatcher creates a matcher from the merge settings.
func NewMatcher(cfg config.Merge) Matcher {
	return Matcher{
		Tolerance:           time.Duration(cfg.ToleranceMinutes) * time.Minute,
		SimilarityThreshold: cfg.SimilarityThreshold,
		MinContainmentRatio: cfg.MinContainmentRatio,
	}
}

// IsDuplicate reports whether a and b are the same event: same day, start
// and end within Tolerance, durations within DurationTolerance, same
// location and similar descriptions. The result does not depend on the
// argument order.
func (m Matcher) IsDuplicate(a, b entry.Entry) bool {
	if !a.SameDay(b) {
		return false
	}
	if absDuration(a.Start.Sub(b.Start)) > m.Tolerance {
		return false
	}
	if absDuration(a.End.Sub(b.End)) > m.Tolerance {
		return false
	}
	if absDuration(a.Duration()-b.Duration()) > DurationTolerance {
		return false
	}
	if a.Location != b.Location {
		return false
	}
	return m.SimilarDescriptions(a.Description, b.Description)
}

// SimilarDescriptions applies the description part of IsDuplicate.
//
// Two empty descriptions match; one empty description never matches.
// Otherwise the descriptions match when they are equal ignoring case, when
// one contains the other and the shorter is at least MinContainmentRatio
// of the longer, or when their word sets are more than
// SimilarityThreshold similar. A containment below the ratio is decisive.
func (m Matcher) SimilarDescriptions(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	switch {
	case a == "" && b == "":
		return true
	case a == "" || b == "":
		return false
	case a == b:
		return true
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		shorter, longer := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return float64(shorter) >= m.MinContainmentRatio*float64(longer)
	}

	return Jaccard(a, b) > m.SimilarityThreshold
}

// Overlaps reports whether a and b share more than OverlapBuffer of time.
// Back-to-back entries do not overlap.
func (m Matcher) Overlaps(a, b entry.Entry) bool {
	return a.Start.Before(b.End.Add(-OverlapBuffer)) && b.Start.Before(a.End.Add(-OverlapBuffer))
}

// ExactTimeMatch reports whether a and b have the same start, end and
// location. Such pairs are usually sub-rows of one spreadsheet event.
func (m Matcher) ExactTimeMatch(a, b entry.Entry) bool {
	return a.Start.Equal(b.Start) && a.End.Equal(b.End) && a.Location == b.Location
}

// Jaccard returns the Jaccard similarity of the whitespace separated,
// lower-cased word sets of a and b. Two empty sets have similarity 0.
func Jaccard(a, b string) float64 {
	wa := wordSet(a)
	wb := wordSet(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}

	shared := 0
	for w := range wa {
		if wb[w] {
			shared++
		}
	}
	union := len(wa) + len(wb) - shared
	return float64(shared) / float64(union)
}

func wordSet(s string) map[string]bool {
	words := strings.Fields(strings.ToLower(s))
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
