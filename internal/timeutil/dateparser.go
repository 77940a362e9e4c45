package timeutil

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DateParseError reports a date token that could not be resolved.
type DateParseError struct {
	Token  string
	Reason string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("could not parse date '%s': %s", e.Token, e.Reason)
}

// TimeRangeParseError reports a time range token that could not be resolved.
type TimeRangeParseError struct {
	Token  string
	Reason string
}

func (e *TimeRangeParseError) Error() string {
	return fmt.Sprintf("could not parse time range '%s': %s", e.Token, e.Reason)
}

var (
	// 30.6 | 30.6. | 30.6.25 | 30.06.2025
	numericDateRe = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})(?:\.(\d{2}|\d{4})?)?$`)
	// 30. June | 30. Juni 2025 | 3.Okt.
	namedDateRe = regexp.MustCompile(`^(\d{1,2})\.\s*(\p{L}+)\.?(?:\s+(\d{2}|\d{4}))?$`)
	clockRe     = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// monthNames maps lower-case English and German month names and
// abbreviations to their month.
var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January, "januar": time.January, "jänner": time.January,
	"february": time.February, "feb": time.February, "februar": time.February,
	"march": time.March, "mar": time.March, "märz": time.March, "maerz": time.March, "mär": time.March, "mrz": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May, "mai": time.May,
	"june": time.June, "jun": time.June, "juni": time.June,
	"july": time.July, "jul": time.July, "juli": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October, "oktober": time.October, "okt": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December, "dezember": time.December, "dez": time.December,
}

// LookupMonth resolves an English or German month name (case-insensitive).
func LookupMonth(name string) (time.Month, bool) {
	m, ok := monthNames[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// LooksLikeDate reports whether token follows the date grammar with day
// 1-31 and month 1-12. It does not check that the day exists in the month.
func LooksLikeDate(token string) bool {
	token = strings.TrimSpace(token)
	if m := numericDateRe.FindStringSubmatch(token); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return day >= 1 && day <= 31 && month >= 1 && month <= 12
	}
	if m := namedDateRe.FindStringSubmatch(token); m != nil {
		day, _ := strconv.Atoi(m[1])
		_, ok := LookupMonth(m[2])
		return ok && day >= 1 && day <= 31
	}
	return false
}

// ParseDate resolves a German-style date token to midnight of that day in
// now's location. Rules, in order:
//
//   - "d.m" uses the year of now
//   - "d.m.yy" expands to 2000+yy, "d.m.yyyy" is used verbatim
//   - "d. MonthName [year]" accepts English and German month names
//
// A trailing dot is tolerated. Days that do not exist in the month
// (e.g. 30.2.25) are rejected.
func ParseDate(token string, now time.Time) (time.Time, error) {
	raw := token
	token = strings.TrimSpace(token)
	if token == "" {
		return time.Time{}, &DateParseError{Token: raw, Reason: "empty date"}
	}

	var dayStr, monthStr, yearStr string
	if m := numericDateRe.FindStringSubmatch(token); m != nil {
		dayStr, monthStr, yearStr = m[1], m[2], m[3]
	} else if m := namedDateRe.FindStringSubmatch(token); m != nil {
		month, ok := LookupMonth(m[2])
		if !ok {
			return time.Time{}, &DateParseError{Token: raw, Reason: fmt.Sprintf("unknown month name '%s'", m[2])}
		}
		dayStr, monthStr, yearStr = m[1], strconv.Itoa(int(month)), m[3]
	} else {
		return time.Time{}, &DateParseError{Token: raw, Reason: "unrecognized date format (use d.m, d.m.yy, d.m.yyyy or d. Month)"}
	}

	day, _ := strconv.Atoi(dayStr)
	month, _ := strconv.Atoi(monthStr)
	if day < 1 || day > 31 {
		return time.Time{}, &DateParseError{Token: raw, Reason: fmt.Sprintf("day %d out of range 1-31", day)}
	}
	if month < 1 || month > 12 {
		return time.Time{}, &DateParseError{Token: raw, Reason: fmt.Sprintf("month %d out of range 1-12", month)}
	}

	switch len(yearStr) {
	case 0:
		yearStr = strconv.Itoa(now.Year())
	case 2:
		yearStr = "20" + yearStr
	}

	normalized := fmt.Sprintf("%02d.%02d.%s", day, month, yearStr)
	t, err := time.ParseInLocation("02.01.2006", normalized, now.Location())
	if err != nil {
		return time.Time{}, &DateParseError{Token: raw, Reason: fmt.Sprintf("invalid calendar date %s", normalized)}
	}
	return t, nil
}

// ParseClock parses an "H:MM" or "HH:MM" time of day.
func ParseClock(s string) (hour, minute int, err error) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, fmt.Errorf("invalid time '%s' (use H:MM)", s)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour > 23 {
		return 0, 0, fmt.Errorf("hour %d out of range 0-23", hour)
	}
	if minute > 59 {
		return 0, 0, fmt.Errorf("minute %d out of range 0-59", minute)
	}
	return hour, minute, nil
}

// OrderSeparators returns the non-empty separators, longest first. Equal
// lengths keep their configured order.
func OrderSeparators(separators []string) []string {
	out := make([]string, 0, len(separators))
	for _, s := range separators {
		if s != "" {
			out = append(out, s)
		}
	}
	slices.SortStableFunc(out, func(a, b string) int { return cmp.Compare(len(b), len(a)) })
	return out
}

// ParseTimeRange parses a token such as "9:00 - 12:00" and attaches both
// times to the calendar date of anchor. The token is split on the longest
// configured separator that occurs in it. When the end is not strictly
// after the start it is moved to the following day.
func ParseTimeRange(token string, anchor time.Time, separators []string) (start, end time.Time, err error) {
	trimmed := strings.TrimSpace(token)

	sep := ""
	for _, s := range OrderSeparators(separators) {
		if strings.Contains(trimmed, s) {
			sep = s
			break
		}
	}
	if sep == "" {
		return time.Time{}, time.Time{}, &TimeRangeParseError{Token: token, Reason: "no time separator found"}
	}

	parts := strings.Split(trimmed, sep)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, &TimeRangeParseError{Token: token, Reason: "time range must have exactly two parts"}
	}
	left, right := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if left == "" || right == "" {
		return time.Time{}, time.Time{}, &TimeRangeParseError{Token: token, Reason: "time range must have exactly two parts"}
	}

	sh, sm, err := ParseClock(left)
	if err != nil {
		return time.Time{}, time.Time{}, &TimeRangeParseError{Token: token, Reason: err.Error()}
	}
	eh, em, err := ParseClock(right)
	if err != nil {
		return time.Time{}, time.Time{}, &TimeRangeParseError{Token: token, Reason: err.Error()}
	}

	y, mo, d := anchor.Date()
	loc := anchor.Location()
	start = time.Date(y, mo, d, sh, sm, 0, 0, loc)
	end = time.Date(y, mo, d, eh, em, 0, 0, loc)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, nil
}

// ParseISODate parses a YYYY-MM-DD date at midnight in the local timezone.
func ParseISODate(input string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", input, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format '%s' (use YYYY-MM-DD or DD.MM.YYYY, e.g., 2025-06-30 or 30.06.2025)", input)
	}
	return t, nil
}
