package parser

import "fmt"

// Warning describes an input line or row that was skipped.
type Warning struct {
	// Line is the 1-based line (or row) number in the input.
	Line int
	// Content is the original text of the line or row.
	Content string
	// Error is a human-readable description of the problem.
	Error string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s (%q)", w.Line, w.Error, truncate(w.Content, 50))
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
