package parser

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/entry"
)

// Sentinel kinds of a LoadError.
var (
	ErrFileNotFound      = errors.New("file not found")
	ErrFileTooLarge      = errors.New("file too large")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrReadFailed        = errors.New("failed to read file")
)

// StdinName is the path reported for text read from standard input.
const StdinName = "<stdin>"

// TextName is the path reported for text handed over in memory.
const TextName = "<text>"

// LoadError is returned when an input file cannot be loaded at all.
// errors.Is matches both Kind and the underlying error.
type LoadError struct {
	Path string
	Kind error
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// spreadsheetDateLayouts are date renderings produced by spreadsheet cells
// that are converted to d.m.yyyy before parsing.
var spreadsheetDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"01-02-06",
	"1/2/06",
	"1/2/2006",
}

// Loader reads input files and hands their content to a Parser.
type Loader struct {
	parser   *Parser
	formats  []string
	maxBytes int64
	encoding string
}

// NewLoader creates a loader honouring the file settings.
func NewLoader(p *Parser, files config.Files) *Loader {
	return &Loader{
		parser:   p,
		formats:  append([]string(nil), files.SupportedFormats...),
		maxBytes: files.MaxFileSizeBytes(),
		encoding: files.Encoding,
	}
}

// Load reads and parses the file at path. Resource problems are returned as
// *LoadError; problems inside the file become warnings in the Result.
func (l *Loader) Load(path string) (Result, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !l.supported(ext) {
		return Result{}, &LoadError{Path: path, Kind: ErrUnsupportedFormat, Err: fmt.Errorf("extension %q (supported: %s)", ext, strings.Join(l.formats, ", "))}
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, &LoadError{Path: path, Kind: ErrFileNotFound}
		}
		return Result{}, &LoadError{Path: path, Kind: ErrReadFailed, Err: err}
	}
	if info.IsDir() {
		return Result{}, &LoadError{Path: path, Kind: ErrReadFailed, Err: errors.New("is a directory")}
	}
	if info.Size() > l.maxBytes {
		return Result{}, &LoadError{Path: path, Kind: ErrFileTooLarge, Err: fmt.Errorf("%s exceeds the limit of %s", formatBytes(info.Size()), formatBytes(l.maxBytes))}
	}

	slog.Debug("loading file", "path", path, "format", ext, "bytes", info.Size())

	switch ext {
	case ".txt":
		text, err := l.readText(path)
		if err != nil {
			return Result{}, err
		}
		return l.parser.ParseText(text), nil
	case ".csv":
		text, err := l.readText(path)
		if err != nil {
			return Result{}, err
		}
		return l.parseCSV(text), nil
	case ".xlsx":
		return l.loadXLSX(path)
	case ".json":
		return l.loadJSON(path)
	case ".xls":
		return Result{}, &LoadError{Path: path, Kind: ErrUnsupportedFormat, Err: errors.New("legacy .xls workbooks cannot be read, save the file as .xlsx")}
	default:
		return Result{}, &LoadError{Path: path, Kind: ErrUnsupportedFormat, Err: fmt.Errorf("no reader for %q", ext)}
	}
}

// LoadText reads a pasted text blob from r, enforcing the size ceiling.
func (l *Loader) LoadText(r io.Reader) (Result, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return Result{}, &LoadError{Path: StdinName, Kind: ErrReadFailed, Err: err}
	}
	if int64(len(data)) > l.maxBytes {
		return Result{}, &LoadError{Path: StdinName, Kind: ErrFileTooLarge, Err: fmt.Errorf("input exceeds the limit of %s", formatBytes(l.maxBytes))}
	}
	text, err := l.Decode(data)
	if err != nil {
		return Result{}, &LoadError{Path: StdinName, Kind: ErrReadFailed, Err: err}
	}
	return l.parser.ParseText(text), nil
}

// LoadString parses text that is already UTF-8, enforcing the same size
// ceiling as LoadText.
func (l *Loader) LoadString(text string) (Result, error) {
	if int64(len(text)) > l.maxBytes {
		return Result{}, &LoadError{Path: TextName, Kind: ErrFileTooLarge, Err: fmt.Errorf("input exceeds the limit of %s", formatBytes(l.maxBytes))}
	}
	return l.parser.ParseText(text), nil
}

// Decode converts data from the configured encoding to UTF-8.
func (l *Loader) Decode(data []byte) (string, error) {
	name := strings.ToLower(strings.TrimSpace(l.encoding))
	if name == "" || name == "utf-8" || name == "utf8" {
		data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
		if !utf8.Valid(data) {
			return "", errors.New("input is not valid UTF-8 (set files.encoding to the file's encoding)")
		}
		return string(data), nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", fmt.Errorf("unknown encoding %q: %w", l.encoding, err)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s input: %w", l.encoding, err)
	}
	return string(decoded), nil
}

func (l *Loader) readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &LoadError{Path: path, Kind: ErrReadFailed, Err: err}
	}
	text, err := l.Decode(data)
	if err != nil {
		return "", &LoadError{Path: path, Kind: ErrReadFailed, Err: err}
	}
	return text, nil
}

// parseCSV uses the header row to resolve columns. Files without a header
// are parsed as delimited text.
func (l *Loader) parseCSV(text string) Result {
	_, delim := InferShape(splitLines(text))

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		slog.Debug("csv reader failed, falling back to text parsing", "error", err)
		return l.parser.ParseText(text)
	}
	rows = dropEmptyRows(rows)
	if len(rows) == 0 {
		return Result{}
	}
	if l.parser.LooksLikeHeader(rows[0]) {
		return l.parser.ParseGrid(rows[0], rows[1:])
	}
	return l.parser.ParseText(text)
}

// loadXLSX parses the first worksheet of a workbook.
func (l *Loader) loadXLSX(path string) (Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Result{}, &LoadError{Path: path, Kind: ErrReadFailed, Err: err}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Result{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Result{}, &LoadError{Path: path, Kind: ErrReadFailed, Err: err}
	}
	rows = dropEmptyRows(rows)
	if len(rows) == 0 {
		return Result{}, nil
	}
	for _, row := range rows {
		for i, cell := range row {
			row[i] = normalizeSpreadsheetDate(cell)
		}
	}

	slog.Debug("read worksheet", "sheet", sheets[0], "rows", len(rows))
	if l.parser.LooksLikeHeader(rows[0]) {
		return l.parser.ParseGrid(rows[0], rows[1:]), nil
	}
	return l.parser.ParseCells(rows), nil
}

// loadJSON reads a JSON array of entries as written by "chrono export".
func (l *Loader) loadJSON(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, &LoadError{Path: path, Kind: ErrReadFailed, Err: err}
	}
	var entries []entry.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return Result{}, &LoadError{Path: path, Kind: ErrReadFailed, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	return Result{Entries: entries, Records: len(entries)}, nil
}

func (l *Loader) supported(ext string) bool {
	for _, f := range l.formats {
		if f == ext {
			return true
		}
	}
	return false
}

// normalizeSpreadsheetDate rewrites ISO or US formatted date cells as d.m.yyyy.
func normalizeSpreadsheetDate(cell string) string {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return cell
	}
	for _, layout := range spreadsheetDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("02.01.2006")
		}
	}
	return cell
}

func dropEmptyRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		if countNonEmpty(row) > 0 {
			out = append(out, row)
		}
	}
	return out
}

func formatBytes(n int64) string {
	const mb = 1024 * 1024
	if n >= mb {
		return fmt.Sprintf("%.1f MB", float64(n)/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}
