package parser

import (
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/entry"
)

// Result is the outcome of parsing one input.
type Result struct {
	Entries  []entry.Entry
	Warnings []Warning
	// Records is the number of logical records found before building.
	Records int
}

// Parser runs reconstruction and entry building for one configuration.
type Parser struct {
	reconstructor *Reconstructor
	builder       *Builder
}

// New creates a parser using the current time for year defaults.
func New(p config.Parsing) *Parser {
	return NewWithClock(p, time.Now)
}

// NewWithClock creates a parser whose "current year" comes from now.
func NewWithClock(p config.Parsing, now func() time.Time) *Parser {
	return &Parser{
		reconstructor: NewReconstructor(p, now),
		builder:       NewBuilder(p, now),
	}
}

// Classifier exposes the line classifier.
func (p *Parser) Classifier() *Classifier {
	return p.reconstructor.Classifier()
}

// ParseText parses a free text or delimited blob.
func (p *Parser) ParseText(text string) Result {
	records, warnings := p.reconstructor.Reconstruct(text)
	return p.build(records, warnings)
}

// ParseGrid parses tabular rows below a header row.
func (p *Parser) ParseGrid(headers []string, rows [][]string) Result {
	records, warnings := p.reconstructor.ReconstructGrid(headers, rows)
	return p.build(records, warnings)
}

func (p *Parser) build(records []Record, warnings []Warning) Result {
	res := Result{Records: len(records), Warnings: warnings}
	for _, rec := range records {
		e, err := p.builder.Build(rec)
		if err != nil {
			var be *EntryBuildError
			if errors.As(err, &be) {
				res.Warnings = append(res.Warnings, be.Warning())
			} else {
				res.Warnings = append(res.Warnings, Warning{Line: rec.Line, Content: rec.Raw, Error: err.Error()})
			}
			continue
		}
		res.Entries = append(res.Entries, e)
	}

	sort.SliceStable(res.Warnings, func(i, j int) bool { return res.Warnings[i].Line < res.Warnings[j].Line })
	for _, w := range res.Warnings {
		slog.Debug("skipped input line", "line", w.Line, "content", w.Content, "error", w.Error)
	}
	slog.Debug("parsed input", "records", res.Records, "entries", len(res.Entries), "warnings", len(res.Warnings))
	return res
}

// ParseCells parses rows of cells that have no header row.
func (p *Parser) ParseCells(rows [][]string) Result {
	records, warnings := p.reconstructor.ReconstructCells(rows)
	return p.build(records, warnings)
}

// LooksLikeHeader reports whether cells could be a header row: no cell is
// a date or time range and at least one cell matches a column name.
func (p *Parser) LooksLikeHeader(cells []string) bool {
	r := p.reconstructor
	matched := false
	for _, cell := range cells {
		switch r.classifier.Classify(cell) {
		case Date, TimeRange:
			return false
		}
		if matchesColumnHint(cell, r.names) {
			matched = true
		}
	}
	return matched
}
