package merge

import (
	"fmt"
	"strings"
)

// FormatSummary renders r for humans. At most maxErrors errors are listed;
// a non-positive maxErrors lists all of them.
func FormatSummary(r Result, maxErrors int) string {
	var b strings.Builder
	b.WriteString("Data Merge Summary\n")
	b.WriteString(strings.Repeat("=", 30) + "\n")
	fmt.Fprintf(&b, "Entries before merge: %d\n", r.TotalBefore)
	fmt.Fprintf(&b, "Entries after merge: %d\n", r.TotalAfter)
	fmt.Fprintf(&b, "New entries added: %d\n", r.Added)
	fmt.Fprintf(&b, "Duplicates removed: %d", r.DuplicatesRemoved)

	if len(r.Errors) == 0 {
		return b.String()
	}

	b.WriteString("\n\nMerge Errors:\n")
	b.WriteString(strings.Repeat("-", 15))
	shown := r.Errors
	if maxErrors > 0 && len(shown) > maxErrors {
		shown = shown[:maxErrors]
	}
	for _, e := range shown {
		b.WriteString("\n  - " + e)
	}
	if rest := len(r.Errors) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "\n  - ... and %d more errors", rest)
	}
	return b.String()
}
