package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/timeutil"
)

// Kind is the classification of a single line or cell.
type Kind int

const (
	Noise Kind = iota
	MonthHeader
	Date
	TimeRange
	Location
	Description
)

func (k Kind) String() string {
	switch k {
	case MonthHeader:
		return "month-header"
	case Date:
		return "date"
	case TimeRange:
		return "time-range"
	case Location:
		return "location"
	case Description:
		return "description"
	default:
		return "noise"
	}
}

// Rule is one predicate of the classification table.
type Rule struct {
	Kind  Kind
	Match func(token string) bool
}

// Classifier assigns a Kind to trimmed tokens by evaluating an ordered rule
// table; the first matching rule wins.
type Classifier struct {
	rules       []Rule
	monthHeader map[string]bool
	locations   map[string]string
	timeRangeRe *regexp.Regexp
	minDescLen  int
}

// NewClassifier builds a classifier from the parsing settings.
// The settings are copied; later changes to p have no effect.
func NewClassifier(p config.Parsing) *Classifier {
	p = p.Clone()

	c := &Classifier{
		monthHeader: make(map[string]bool, len(p.MonthHeaders)),
		locations:   p.LocationMappings,
		timeRangeRe: timeRangePattern(p.TimeSeparators),
		minDescLen:  p.MinDescriptionLength,
	}
	for _, h := range p.MonthHeaders {
		c.monthHeader[h] = true
	}

	c.rules = []Rule{
		{Kind: MonthHeader, Match: func(s string) bool { return c.monthHeader[s] }},
		{Kind: Date, Match: timeutil.LooksLikeDate},
		{Kind: TimeRange, Match: c.timeRangeRe.MatchString},
		{Kind: Location, Match: func(s string) bool { _, ok := c.locations[s]; return ok }},
		{Kind: Description, Match: func(s string) bool { return utf8.RuneCountInString(s) >= c.minDescLen }},
	}
	return c
}

// timeRangePattern matches two H:MM times joined by one of the separators.
// Separators are tried in timeutil.OrderSeparators order, the same order
// ParseTimeRange splits on.
func timeRangePattern(separators []string) *regexp.Regexp {
	var seps []string
	for _, s := range timeutil.OrderSeparators(separators) {
		seps = append(seps, regexp.QuoteMeta(s))
	}
	if len(seps) == 0 {
		// Matches nothing.
		return regexp.MustCompile(`[^\x00-\x{10FFFF}]`)
	}
	return regexp.MustCompile(`\d{1,2}:\d{2}\s*(?:` + strings.Join(seps, "|") + `)\s*\d{1,2}:\d{2}`)
}

// Rules returns a copy of the ordered rule table.
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Classify returns the kind of token. Empty tokens are Noise.
func (c *Classifier) Classify(token string) Kind {
	token = strings.TrimSpace(token)
	if token == "" {
		return Noise
	}
	for _, r := range c.rules {
		if r.Match(token) {
			return r.Kind
		}
	}
	return Noise
}

// SplitTimeRange extracts the time range from a line classified as
// TimeRange. rest is the remaining text, which callers treat as an inline
// description.
func (c *Classifier) SplitTimeRange(line string) (token, rest string, ok bool) {
	loc := c.timeRangeRe.FindStringIndex(line)
	if loc == nil {
		return "", "", false
	}
	token = line[loc[0]:loc[1]]
	rest = strings.TrimSpace(strings.TrimSpace(line[:loc[0]]) + " " + strings.TrimSpace(line[loc[1]:]))
	return token, rest, true
}

// IsLocationCode reports whether token is a configured location code.
func (c *Classifier) IsLocationCode(token string) bool {
	_, ok := c.locations[strings.TrimSpace(token)]
	return ok
}
