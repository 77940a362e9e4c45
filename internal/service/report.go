package service

import (
	"io"
	"path/filepath"
	"time"

	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/report"
	"github.com/xolan/chrono/internal/timeutil"
)

// ReportService renders the HTML report of the stored entries
type ReportService struct {
	loc    StoreLocation
	config config.Config
	now    func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(loc StoreLocation, cfg config.Config) *ReportService {
	return &ReportService{
		loc:    loc,
		config: cfg,
		now:    time.Now,
	}
}

// Build returns the report model of the entries in the date range
func (s *ReportService) Build(spec DateRangeSpec) (report.Data, error) {
	start, end, _ := resolveDateRange(spec, s.now())

	result, err := s.loc.load()
	if err != nil {
		return report.Data{}, err
	}

	entries := result.Entries[:0:0]
	for _, e := range result.Entries {
		if timeutil.IsInRange(e.Start, start, end) {
			entries = append(entries, e)
		}
	}

	opts := report.OptionsFromConfig(s.config.Export)
	opts.Now = s.now()
	return report.Build(entries, opts), nil
}

// Render writes the HTML report of the entries in the date range to w
func (s *ReportService) Render(w io.Writer, spec DateRangeSpec) error {
	data, err := s.Build(spec)
	if err != nil {
		return err
	}
	return report.Render(w, data)
}

// Write renders the report of the entries in the date range into path. An empty path uses
// export.output_filename. It returns the written path.
func (s *ReportService) Write(path string, spec DateRangeSpec) (string, error) {
	if path == "" {
		path = s.config.Export.OutputFilename
	}

	data, err := s.Build(spec)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if err := report.WriteFile(abs, data); err != nil {
		return "", err
	}
	return abs, nil
}
