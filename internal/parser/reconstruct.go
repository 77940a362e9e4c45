package parser

import (
	"encoding/csv"
	"log/slog"
	"strings"
	"time"

	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/timeutil"
)

// Record is one logical event before its tokens are parsed.
type Record struct {
	// Line is the 1-based line (or row) that carried the time range.
	Line        int
	Raw         string
	Date        string
	TimeRange   string
	Location    string
	Description string
}

// Shape is the inferred layout of a text blob.
type Shape int

const (
	// FreeText is line-oriented: date, time range, location and
	// description each on their own line.
	FreeText Shape = iota
	// Delimited is one event per row with comma, semicolon or tab separated cells.
	Delimited
)

func (s Shape) String() string {
	if s == Delimited {
		return "delimited"
	}
	return "free-text"
}

// delimiters are tried in this order when no delimiter dominates.
var delimiters = []rune{',', ';', '\t'}

// Reconstructor regroups classified lines or cells into records.
type Reconstructor struct {
	classifier *Classifier
	names      config.ColumnNames
	now        func() time.Time
}

// NewReconstructor creates a reconstructor for the given parsing settings.
func NewReconstructor(p config.Parsing, now func() time.Time) *Reconstructor {
	p = p.Clone()
	if now == nil {
		now = time.Now
	}
	return &Reconstructor{
		classifier: NewClassifier(p),
		names:      p.ColumnNames,
		now:        now,
	}
}

// Classifier returns the classifier used by r.
func (r *Reconstructor) Classifier() *Classifier {
	return r.classifier
}

func (r *Reconstructor) parseDate(token string) (time.Time, error) {
	return timeutil.ParseDate(token, r.now())
}

// Reconstruct infers the shape of text and returns its records together
// with a warning for every line that could not be used.
func (r *Reconstructor) Reconstruct(text string) ([]Record, []Warning) {
	lines := splitLines(text)
	shape, delim := InferShape(lines)
	slog.Debug("reconstructing input", "lines", len(lines), "shape", shape.String())

	if shape == Delimited {
		return r.reconstructRows(lines, delim)
	}
	return r.reconstructFreeText(lines)
}

// InferShape decides whether lines are delimited rows or free text. A line
// counts as delimited when some delimiter splits it into at least two
// non-empty fields; the blob is delimited when more than half of its
// non-empty lines are. The returned delimiter is the one that splits the
// most lines.
func InferShape(lines []string) (Shape, rune) {
	nonEmpty, delimited := 0, 0
	counts := make(map[rune]int, len(delimiters))

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		nonEmpty++
		split := false
		for _, d := range delimiters {
			if countNonEmpty(splitFields(line, d)) >= 2 {
				counts[d]++
				split = true
			}
		}
		if split {
			delimited++
		}
	}

	best := delimiters[0]
	for _, d := range delimiters {
		if counts[d] > counts[best] {
			best = d
		}
	}

	if nonEmpty > 0 && delimited*2 > nonEmpty {
		return Delimited, best
	}
	return FreeText, best
}

// reconstructFreeText handles line-oriented logs. A date line sets the
// current date, a time range line opens a record, the line right after it
// may be a location code and every following description line up to the
// next date, time range or month header is appended to the description.
func (r *Reconstructor) reconstructFreeText(lines []string) ([]Record, []Warning) {
	var (
		records        []Record
		warnings       []Warning
		date           string
		pending        *Record
		expectLocation bool
	)

	flush := func() {
		if pending != nil {
			records = append(records, *pending)
			pending = nil
		}
		expectLocation = false
	}

	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)

		if row, ok := r.delimitedTimeRow(lineNo, line); ok {
			flush()
			if row.Date != "" {
				if _, err := r.parseDate(row.Date); err != nil {
					warnings = append(warnings, Warning{Line: lineNo, Content: line, Error: err.Error()})
					date = ""
					continue
				}
				date = row.Date
			}
			if date == "" {
				warnings = append(warnings, Warning{Line: lineNo, Content: line, Error: "time range without a preceding date"})
				continue
			}
			pending = &Record{
				Line:        lineNo,
				Raw:         line,
				Date:        date,
				TimeRange:   row.TimeRange,
				Location:    row.Location,
				Description: row.Description,
			}
			expectLocation = row.Location == ""
			continue
		}

		switch r.classifier.Classify(line) {
		case Noise:
			continue

		case MonthHeader:
			flush()

		case Date:
			flush()
			if _, err := r.parseDate(line); err != nil {
				warnings = append(warnings, Warning{Line: lineNo, Content: line, Error: err.Error()})
				date = ""
				continue
			}
			date = line

		case TimeRange:
			flush()
			if date == "" {
				warnings = append(warnings, Warning{Line: lineNo, Content: line, Error: "time range without a preceding date"})
				continue
			}
			token, rest, _ := r.classifier.SplitTimeRange(line)
			pending = &Record{Line: lineNo, Raw: line, Date: date, TimeRange: token, Description: rest}
			expectLocation = true

		case Location:
			switch {
			case pending == nil:
				slog.Debug("skipping location outside of an entry", "line", lineNo)
			case expectLocation:
				pending.Location = line
			default:
				pending.Description = joinNonEmpty([]string{pending.Description, line})
			}
			expectLocation = false

		case Description:
			if pending == nil {
				slog.Debug("skipping text outside of an entry", "line", lineNo, "content", line)
				continue
			}
			pending.Description = joinNonEmpty([]string{pending.Description, line})
			expectLocation = false
		}
	}
	flush()

	return records, warnings
}

// delimitedTimeRow recognises a delimited row inside free text: a line
// that some delimiter splits into at least two non-empty cells, one of
// which is exactly a time range. A date cell in it replaces the current
// date.
func (r *Reconstructor) delimitedTimeRow(lineNo int, line string) (Row, bool) {
	for _, d := range delimiters {
		cells := splitFields(line, d)
		if countNonEmpty(cells) < 2 {
			continue
		}
		for _, cell := range cells {
			cell = strings.TrimSpace(cell)
			if _, rest, ok := r.classifier.SplitTimeRange(cell); ok && rest == "" {
				return r.classifyCells(lineNo, line, cells), true
			}
		}
	}
	return Row{}, false
}

// cellRow is one physical row already split into cells.
type cellRow struct {
	line  int
	raw   string
	cells []string
}

// reconstructRows handles delimited rows. Cells are classified regardless
// of their position and then fed through a SubRowAccumulator.
func (r *Reconstructor) reconstructRows(lines []string, dominant rune) ([]Record, []Warning) {
	rows := make([]cellRow, 0, len(lines))
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		rows = append(rows, cellRow{line: i + 1, raw: line, cells: r.splitRow(line, dominant)})
	}
	return r.reconstructCellRows(rows)
}

// ReconstructCells handles rows of cells without a known column layout,
// such as a spreadsheet without a header row. Rows are numbered from 1.
func (r *Reconstructor) ReconstructCells(rows [][]string) ([]Record, []Warning) {
	out := make([]cellRow, 0, len(rows))
	for i, cells := range rows {
		if countNonEmpty(cells) == 0 {
			continue
		}
		out = append(out, cellRow{line: i + 1, raw: strings.Join(cells, ", "), cells: cells})
	}
	return r.reconstructCellRows(out)
}

func (r *Reconstructor) reconstructCellRows(rows []cellRow) ([]Record, []Warning) {
	var (
		records  []Record
		warnings []Warning
	)
	acc := NewSubRowAccumulator(r.parseDate)

	for i, cr := range rows {
		if i == 0 && r.isHeaderRow(cr.cells) {
			slog.Debug("skipping header row", "line", cr.line)
			continue
		}

		row := r.classifyCells(cr.line, cr.raw, cr.cells)
		rec, w := acc.Feed(row)
		warnings = append(warnings, w...)
		if rec != nil {
			records = append(records, *rec)
		}
	}
	warnings = append(warnings, acc.Flush()...)

	return records, warnings
}

// ReconstructGrid handles tabular input with a header row. Columns are
// resolved with ResolveColumns; data rows are numbered from 2.
func (r *Reconstructor) ReconstructGrid(headers []string, rows [][]string) ([]Record, []Warning) {
	cm := ResolveColumns(headers, r.names)
	slog.Debug("resolved columns", "date", cm.Date, "hours", cm.Hours, "location", cm.Location, "description", cm.Description)

	// A role that fell back onto an already used column is ignored.
	seen := map[int]bool{}
	use := func(idx int) int {
		if idx < 0 || seen[idx] {
			return -1
		}
		seen[idx] = true
		return idx
	}
	dateCol, hoursCol, locCol, descCol := use(cm.Date), use(cm.Hours), use(cm.Location), use(cm.Description)

	var (
		records  []Record
		warnings []Warning
	)
	acc := NewSubRowAccumulator(r.parseDate)

	for i, cells := range rows {
		lineNo := i + 2
		raw := strings.Join(cells, ", ")
		cell := func(idx int) string {
			if idx < 0 || idx >= len(cells) {
				return ""
			}
			return strings.TrimSpace(cells[idx])
		}

		row := Row{
			Line:        lineNo,
			Raw:         raw,
			Date:        cell(dateCol),
			Location:    cell(locCol),
			Description: cell(descCol),
		}
		if hours := cell(hoursCol); hours != "" {
			token, rest, ok := r.classifier.SplitTimeRange(hours)
			if !ok {
				warnings = append(warnings, Warning{Line: lineNo, Content: raw, Error: "invalid time range '" + hours + "'"})
				continue
			}
			row.TimeRange = token
			row.Description = joinNonEmpty([]string{rest, row.Description})
		}

		rec, w := acc.Feed(row)
		warnings = append(warnings, w...)
		if rec != nil {
			records = append(records, *rec)
		}
	}
	warnings = append(warnings, acc.Flush()...)

	return records, warnings
}

// classifyCells assigns each cell to a field by its classification. The
// first date, time range and location win; descriptions are joined.
func (r *Reconstructor) classifyCells(lineNo int, raw string, cells []string) Row {
	row := Row{Line: lineNo, Raw: raw}
	var desc []string

	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		switch r.classifier.Classify(cell) {
		case Date:
			if row.Date == "" {
				row.Date = cell
			}
		case TimeRange:
			if row.TimeRange == "" {
				token, rest, _ := r.classifier.SplitTimeRange(cell)
				row.TimeRange = token
				desc = append(desc, rest)
			} else {
				desc = append(desc, cell)
			}
		case Location:
			if row.Location == "" {
				row.Location = cell
			}
		case Description:
			desc = append(desc, cell)
		}
	}
	row.Description = joinNonEmpty(desc)
	return row
}

// isHeaderRow reports whether every non-empty cell is a column name hint
// and no cell is a date or time range.
func (r *Reconstructor) isHeaderRow(cells []string) bool {
	hints := 0
	for _, cell := range cells {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		switch r.classifier.Classify(cell) {
		case Date, TimeRange:
			return false
		}
		if !matchesColumnHint(cell, r.names) {
			return false
		}
		hints++
	}
	return hints > 0
}

// splitRow splits line on the dominant delimiter when it occurs, falling
// back to the other delimiters and finally to the whole line as one cell.
func (r *Reconstructor) splitRow(line string, dominant rune) []string {
	if strings.ContainsRune(line, dominant) {
		return splitFields(line, dominant)
	}
	for _, d := range delimiters {
		if fields := splitFields(line, d); countNonEmpty(fields) >= 2 {
			return fields
		}
	}
	return []string{line}
}

// splitFields splits one line into cells, honouring CSV quoting.
func splitFields(line string, delim rune) []string {
	if !strings.ContainsRune(line, delim) {
		return []string{line}
	}
	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = delim
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	fields, err := reader.Read()
	if err != nil {
		return strings.Split(line, string(delim))
	}
	return fields
}

func countNonEmpty(fields []string) int {
	n := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			n++
		}
	}
	return n
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
