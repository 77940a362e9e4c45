package merge

import (
	"testing"
	"time"

	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/entry"
)

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

// mk builds an entry on 2025-06-30 from clock times given as minutes after midnight.
func mk(startMin, endMin int, location, description string) entry.Entry {
	base := at(2025, 6, 30, 0, 0)
	return entry.Entry{
		Start:       base.Add(time.Duration(startMin) * time.Minute),
		End:         base.Add(time.Duration(endMin) * time.Minute),
		Location:    location,
		Description: description,
	}
}

func hm(h, m int) int { return h*60 + m }

func newTestMerger(t *testing.T) *Merger {
	t.Helper()
	return New(config.DefaultConfig().Merge)
}
