package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/entry"
	"github.com/xolan/chrono/internal/merge"
	"github.com/xolan/chrono/internal/parser"
)

// TextSourceName is the source recorded on entries imported from pasted text.
const TextSourceName = "text"

// ErrNoInput is returned when an import is planned without any source.
var ErrNoInput = errors.New("no input to import")

// ImportService parses time logs and merges them into the store
type ImportService struct {
	loc    StoreLocation
	config config.Config
	parser *parser.Parser
	loader *parser.Loader
	merger *merge.Merger
}

// NewImportService creates a new ImportService
func NewImportService(loc StoreLocation, cfg config.Config) *ImportService {
	p := parser.New(cfg.Parsing)
	return &ImportService{
		loc:    loc,
		config: cfg,
		parser: p,
		loader: parser.NewLoader(p, cfg.Files),
		merger: merge.New(cfg.Merge),
	}
}

// ParseFile loads and parses one input file. Resource problems are
// returned as *parser.LoadError.
func (s *ImportService) ParseFile(path string) (ParsedSource, error) {
	result, err := s.loader.Load(path)
	if err != nil {
		return ParsedSource{}, err
	}
	return ParsedSource{Name: filepath.Base(path), Path: path, Result: result}, nil
}

// ParseFiles parses every path, stopping at the first file that cannot be loaded.
func (s *ImportService) ParseFiles(paths []string) ([]ParsedSource, error) {
	sources := make([]ParsedSource, 0, len(paths))
	for _, path := range paths {
		src, err := s.ParseFile(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// ParseReader parses a pasted text blob.
func (s *ImportService) ParseReader(r io.Reader) (ParsedSource, error) {
	result, err := s.loader.LoadText(r)
	if err != nil {
		return ParsedSource{}, err
	}
	return ParsedSource{Name: TextSourceName, Result: result}, nil
}

// ParseText parses text that is already in memory. Text above
// files.max_file_size_mb is rejected like an oversized file.
func (s *ImportService) ParseText(text string) (ParsedSource, error) {
	result, err := s.loader.LoadString(text)
	if err != nil {
		return ParsedSource{}, err
	}
	return ParsedSource{Name: TextSourceName, Result: result}, nil
}

// Plan merges the parsed sources into the stored entries without saving.
// Every incoming entry is tagged with its source name and a new batch id.
func (s *ImportService) Plan(sources []ParsedSource) (*ImportPlan, error) {
	if len(sources) == 0 {
		return nil, ErrNoInput
	}

	stored, err := s.loc.load()
	if err != nil {
		return nil, err
	}

	batchID := uuid.NewString()
	tagged := make([][]entry.Entry, len(sources))
	var incoming []entry.Entry
	for i, src := range sources {
		tagged[i] = make([]entry.Entry, len(src.Result.Entries))
		for j, e := range src.Result.Entries {
			tagged[i][j] = e.WithOrigin(src.Name, batchID)
		}
		incoming = append(incoming, tagged[i]...)
	}

	var result merge.Result
	if len(tagged) == 1 {
		result = s.merger.Merge(stored.Entries, tagged[0])
	} else {
		result = s.merger.MergeAll(stored.Entries, tagged)
	}

	plan := &ImportPlan{
		BatchID:       batchID,
		Sources:       sources,
		Conflicts:     s.merger.SuggestConflicts(stored.Entries, incoming),
		Merge:         result,
		StoreWarnings: stored.Warnings,
	}
	for _, e := range stored.Entries {
		if e.Validate() != nil {
			plan.Retained = append(plan.Retained, e)
		}
	}

	slog.Info("import planned",
		"batch", batchID,
		"sources", len(sources),
		"parsed", plan.Parsed(),
		"added", result.Added,
		"duplicates", result.DuplicatesRemoved,
		"conflicts", len(plan.Conflicts),
		"retained_invalid", len(plan.Retained),
	)
	return plan, nil
}

// Apply saves the merged entries of plan together with any stored entries
// that failed validation. Nothing is written when the plan adds no
// entries. The store is backed up first when files.backup_on_save is set.
// It reports whether the store was written.
func (s *ImportService) Apply(plan *ImportPlan) (bool, error) {
	if plan == nil {
		return false, ErrNoInput
	}
	if !plan.HasChanges() {
		return false, nil
	}

	entries := plan.Entries()
	if err := s.loc.save(entries, s.config.Files.BackupOnSave); err != nil {
		return false, fmt.Errorf("import batch %s: %w", plan.BatchID, err)
	}
	slog.Info("import saved", "batch", plan.BatchID, "entries", len(entries), "retained_invalid", len(plan.Retained))
	return true, nil
}

// Import parses the given files, or r when paths is empty, and saves the
// merge result unless dryRun is set.
func (s *ImportService) Import(paths []string, r io.Reader, dryRun bool) (*ImportPlan, error) {
	var sources []ParsedSource
	if len(paths) > 0 {
		parsed, err := s.ParseFiles(paths)
		if err != nil {
			return nil, err
		}
		sources = parsed
	} else if r != nil {
		src, err := s.ParseReader(r)
		if err != nil {
			return nil, err
		}
		sources = []ParsedSource{src}
	}

	plan, err := s.Plan(sources)
	if err != nil {
		return nil, err
	}
	if dryRun {
		return plan, nil
	}
	if _, err := s.Apply(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Conflicts parses the given files and returns the advisory conflicts
// against the store without merging.
func (s *ImportService) Conflicts(paths []string) ([]merge.Conflict, []ParsedSource, error) {
	sources, err := s.ParseFiles(paths)
	if err != nil {
		return nil, nil, err
	}

	stored, err := s.loc.load()
	if err != nil {
		return nil, nil, err
	}

	var incoming []entry.Entry
	for _, src := range sources {
		incoming = append(incoming, src.Result.Entries...)
	}
	return s.merger.SuggestConflicts(stored.Entries, incoming), sources, nil
}
