package parser

import (
	"strings"

	"github.com/xolan/chrono/internal/config"
)

// ColumnMap holds the column index for each semantic role.
// An index of -1 means the role has no column.
type ColumnMap struct {
	Date        int
	Hours       int
	Location    int
	Description int
}

// ResolveColumns maps headers to roles. For each role, in the order date,
// hours, location, description, it picks the first unclaimed header that
// equals one of the role's names (case-insensitive), then the first that
// contains one of them, and otherwise the first unclaimed column. When
// every column is already claimed the first column is used. It never fails.
func ResolveColumns(headers []string, names config.ColumnNames) ColumnMap {
	if len(headers) == 0 {
		return ColumnMap{Date: -1, Hours: -1, Location: -1, Description: -1}
	}

	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}
	claimed := make([]bool, len(headers))

	resolve := func(roleNames []string) int {
		idx := findColumn(lower, claimed, roleNames, func(header, name string) bool { return header == name })
		if idx < 0 {
			idx = findColumn(lower, claimed, roleNames, strings.Contains)
		}
		if idx < 0 {
			for i := range lower {
				if !claimed[i] {
					idx = i
					break
				}
			}
		}
		if idx < 0 {
			return 0
		}
		claimed[idx] = true
		return idx
	}

	return ColumnMap{
		Date:        resolve(names.Date),
		Hours:       resolve(names.Hours),
		Location:    resolve(names.Location),
		Description: resolve(names.Description),
	}
}

func findColumn(headers []string, claimed []bool, names []string, match func(header, name string) bool) int {
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		for i, h := range headers {
			if !claimed[i] && match(h, name) {
				return i
			}
		}
	}
	return -1
}

// matchesColumnHint reports whether cell looks like a header for any role.
func matchesColumnHint(cell string, names config.ColumnNames) bool {
	cell = strings.ToLower(strings.TrimSpace(cell))
	if cell == "" {
		return false
	}
	for _, group := range [][]string{names.Date, names.Hours, names.Location, names.Description} {
		for _, name := range group {
			name = strings.ToLower(strings.TrimSpace(name))
			if name != "" && strings.Contains(cell, name) {
				return true
			}
		}
	}
	return false
}
