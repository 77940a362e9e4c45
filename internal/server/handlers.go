package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/xolan/chrono/internal/entry"
	"github.com/xolan/chrono/internal/filter"
	"github.com/xolan/chrono/internal/logging"
	"github.com/xolan/chrono/internal/parser"
	"github.com/xolan/chrono/internal/report"
	"github.com/xolan/chrono/internal/service"
	"github.com/xolan/chrono/internal/stats"
	"github.com/xolan/chrono/internal/timeutil"
)

type errorResponse struct {
	Error string `json:"error"`
}

type locationJSON struct {
	Location string  `json:"location"`
	Hours    float64 `json:"hours"`
	Minutes  int     `json:"minutes"`
}

type monthJSON struct {
	Month      string         `json:"month"`
	Label      string         `json:"label"`
	TotalHours float64        `json:"total_hours"`
	Minutes    int            `json:"total_minutes"`
	Entries    int            `json:"entry_count"`
	Locations  []locationJSON `json:"locations"`
}

type summaryJSON struct {
	TotalHours           float64        `json:"total_hours"`
	TotalMinutes         int            `json:"total_minutes"`
	EntryCount           int            `json:"entry_count"`
	Days                 int            `json:"days"`
	Weeks                int            `json:"weeks"`
	Months               int            `json:"months"`
	AverageHoursPerMonth float64        `json:"average_hours_per_month"`
	AverageHoursPerWeek  float64        `json:"average_hours_per_week"`
	Locations            []locationJSON `json:"locations"`
	Monthly              []monthJSON    `json:"monthly"`
}

type entriesJSON struct {
	Period       string        `json:"period"`
	Filter       string        `json:"filter,omitempty"`
	TotalMinutes int           `json:"total_minutes"`
	TotalHours   float64       `json:"total_hours"`
	Entries      []entry.Entry `json:"entries"`
}

type monthDetailJSON struct {
	monthJSON
	Entries   []entry.Entry `json:"entries"`
	Truncated int           `json:"truncated"`
}

type importJSON struct {
	BatchID           string   `json:"batch_id"`
	DryRun            bool     `json:"dry_run"`
	Saved             bool     `json:"saved"`
	Parsed            int      `json:"parsed"`
	Warnings          []string `json:"warnings"`
	Conflicts         []string `json:"conflicts"`
	TotalBefore       int      `json:"total_before"`
	TotalAfter        int      `json:"total_after"`
	Added             int      `json:"added"`
	DuplicatesRemoved int      `json:"duplicates_removed"`
	Retained          int      `json:"retained_invalid"`
	Errors            []string `json:"errors"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReport renders the HTML report for the range in the query.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	spec, err := rangeFromQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	data, err := s.services.Report.Build(spec)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.Render(w, data); err != nil {
		logging.FromContext(r.Context()).Error("render report", "error", err)
	}
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	spec, err := rangeFromQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	q := r.URL.Query()
	f := filter.NewFilter(q.Get("keyword"), q.Get("location"))

	result, err := s.services.Entry.List(spec, f)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	entries := result.Entries
	if entries == nil {
		entries = []entry.Entry{}
	}
	writeJSON(w, r, http.StatusOK, entriesJSON{
		Period:       result.Period,
		Filter:       result.Filter,
		TotalMinutes: result.TotalMinutes,
		TotalHours:   result.TotalHours,
		Entries:      entries,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	result, err := s.services.Stats.Summary()
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	o := result.Overall
	resp := summaryJSON{
		TotalHours:           o.TotalHours,
		TotalMinutes:         o.TotalMinutes,
		EntryCount:           o.EntryCount,
		Days:                 o.Days,
		Weeks:                o.Weeks,
		Months:               o.Months,
		AverageHoursPerMonth: o.AverageHoursPerMonth,
		AverageHoursPerWeek:  o.AverageHoursPerWeek,
		Locations:            toLocations(o.Locations),
		Monthly:              make([]monthJSON, 0, len(result.Months)),
	}
	for _, m := range result.Months {
		resp.Monthly = append(resp.Monthly, toMonth(m))
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	start, _, err := timeutil.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	detail, err := s.services.Stats.Month(start.Year(), start.Month())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	entries := detail.Entries
	if entries == nil {
		entries = []entry.Entry{}
	}
	writeJSON(w, r, http.StatusOK, monthDetailJSON{
		monthJSON: toMonth(detail.Summary),
		Entries:   entries,
		Truncated: detail.Truncated,
	})
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := s.services.Entry.Locations()
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if locations == nil {
		locations = []string{}
	}
	writeJSON(w, r, http.StatusOK, locations)
}

// handleImport parses the request body as a time log and merges it.
// Conflicts are reported but never block the merge.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxImportSize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, http.StatusRequestEntityTooLarge, errors.New("request body too large"))
		return
	}
	if strings.TrimSpace(string(body)) == "" {
		writeError(w, r, http.StatusBadRequest, errors.New("empty request body"))
		return
	}

	dryRun, _ := strconv.ParseBool(r.URL.Query().Get("dry_run"))

	imp := s.services.Import
	src, err := imp.ParseText(string(body))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, parser.ErrFileTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, r, status, err)
		return
	}
	plan, err := imp.Plan([]service.ParsedSource{src})
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	saved := false
	if !dryRun {
		if saved, err = imp.Apply(plan); err != nil {
			writeError(w, r, http.StatusInternalServerError, err)
			return
		}
	}

	resp := importJSON{
		BatchID:           plan.BatchID,
		DryRun:            dryRun,
		Saved:             saved,
		Parsed:            plan.Parsed(),
		Warnings:          []string{},
		Conflicts:         []string{},
		TotalBefore:       plan.Merge.TotalBefore,
		TotalAfter:        plan.Merge.TotalAfter,
		Added:             plan.Merge.Added,
		DuplicatesRemoved: plan.Merge.DuplicatesRemoved,
		Retained:          len(plan.Retained),
		Errors:            append([]string{}, plan.Merge.Errors...),
	}
	for _, warning := range src.Result.Warnings {
		resp.Warnings = append(resp.Warnings, warning.String())
	}
	for _, c := range plan.Conflicts {
		resp.Conflicts = append(resp.Conflicts, c.String())
	}

	status := http.StatusOK
	if saved {
		status = http.StatusCreated
	}
	writeJSON(w, r, status, resp)
}

// rangeFromQuery reads period, month, last, from and to query parameters.
func rangeFromQuery(r *http.Request) (service.DateRangeSpec, error) {
	q := r.URL.Query()
	opts := service.RangeOptions{
		Period: q.Get("period"),
		Month:  q.Get("month"),
		From:   q.Get("from"),
		To:     q.Get("to"),
	}
	if last := q.Get("last"); last != "" {
		n, err := strconv.Atoi(last)
		if err != nil {
			return service.DateRangeSpec{}, errors.New("last must be a number of days")
		}
		opts.LastDays = n
	}
	return service.ParseRange(opts)
}

func toLocations(in []stats.LocationHours) []locationJSON {
	out := make([]locationJSON, 0, len(in))
	for _, l := range in {
		out = append(out, locationJSON{Location: l.Location, Hours: l.Hours, Minutes: l.Minutes})
	}
	return out
}

func toMonth(m stats.MonthlySummary) monthJSON {
	return monthJSON{
		Month:      m.Key(),
		Label:      m.Label(),
		TotalHours: m.TotalHours,
		Minutes:    m.TotalMinutes,
		Entries:    m.EntryCount,
		Locations:  toLocations(m.Locations),
	}
}

// writeError logs err with the request ID and returns it as JSON.
func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	logging.FromContext(r.Context()).Warn("request error",
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)
	writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode", "error", err)
	}
}
