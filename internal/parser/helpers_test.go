package parser

import (
	"testing"
	"time"

	"github.com/xolan/chrono/internal/config"
)

var fixedNow = time.Date(2025, time.October, 17, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func testParsing(t *testing.T) config.Parsing {
	t.Helper()
	return config.DefaultConfig().Parsing
}

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	return NewWithClock(testParsing(t), fixedClock)
}

func day(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}
