// Package report renders entries as a standalone HTML report with overall
// totals, a location breakdown and one table per month.
package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/entry"
	"github.com/xolan/chrono/internal/stats"
	"github.com/xolan/chrono/internal/timeutil"
)

//go:embed report.html.tmpl
var reportTemplate string

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"hours":    func(h float64) string { return fmt.Sprintf("%.2f", h) },
	"duration": timeutil.FormatMinutes,
}).Parse(reportTemplate))

// Options controls what the report contains.
type Options struct {
	Title          string
	IncludeRawData bool
	// Now is the generation time shown in the footer; zero means time.Now.
	Now time.Time
}

// OptionsFromConfig returns report options for the export settings.
func OptionsFromConfig(cfg config.Export) Options {
	return Options{Title: cfg.Title, IncludeRawData: cfg.IncludeRawData}
}

// Row is one entry line of a month table.
type Row struct {
	Date        string
	Time        string
	Minutes     int
	Location    string
	Description string
}

// LocationShare is a location total with its share of all hours.
type LocationShare struct {
	stats.LocationHours
	Percent string
}

// Month is the summary and entry rows of one calendar month.
type Month struct {
	stats.MonthlySummary
	Rows []Row
}

// Data is the template model.
type Data struct {
	Title          string
	GeneratedAt    string
	Overall        stats.OverallSummary
	Locations      []LocationShare
	Months         []Month
	IncludeRawData bool
}

// Build computes the report model. Entries are ordered by start time.
func Build(entries []entry.Entry, opts Options) Data {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	title := opts.Title
	if title == "" {
		title = config.DefaultConfig().Export.Title
	}

	sorted := append([]entry.Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	overall := stats.Overall(sorted)
	data := Data{
		Title:          title,
		GeneratedAt:    now.Format("2006-01-02 15:04"),
		Overall:        overall,
		IncludeRawData: opts.IncludeRawData,
	}

	for _, lh := range overall.Locations {
		data.Locations = append(data.Locations, LocationShare{
			LocationHours: lh,
			Percent:       percent(lh.Minutes, overall.TotalMinutes),
		})
	}

	for _, ms := range stats.Monthly(sorted) {
		m := Month{MonthlySummary: ms}
		if opts.IncludeRawData {
			for _, e := range stats.EntriesForMonth(sorted, ms.Year, ms.Month) {
				m.Rows = append(m.Rows, Row{
					Date:        e.Start.Format("02.01.2006"),
					Time:        e.Start.Format("15:04") + " - " + e.End.Format("15:04"),
					Minutes:     stats.Minutes(e.Duration()),
					Location:    e.Location,
					Description: e.Description,
				})
			}
		}
		data.Months = append(data.Months, m)
	}

	return data
}

// Render writes the report for d to w.
func Render(w io.Writer, d Data) error {
	if err := tmpl.Execute(w, d); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// WriteFile renders d into path.
func WriteFile(path string, d Data) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	if err := Render(f, d); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func percent(part, total int) string {
	if total == 0 {
		return "0.0"
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		StringFixed(1)
}
