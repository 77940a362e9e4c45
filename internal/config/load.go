package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	validBackends   = []string{BackendJSONL, BackendSQLite}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Load reads and validates a TOML configuration file.
// Keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg, md)
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config file at path.
// A missing file yields the defaults and no error. A malformed or invalid
// file also yields the defaults, together with an error describing the
// problem so callers can warn without aborting startup.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to access config file: %w", err)
	}

	cfg, err := Load(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("using default configuration: %w", err)
	}
	return cfg, nil
}

// applyDefaults fills every key that was not present in the decoded file.
// Maps and lists are replaced wholesale when present, never merged.
func applyDefaults(cfg *Config, md toml.MetaData) {
	def := DefaultConfig()
	set := func(keys ...string) bool { return md.IsDefined(keys...) }

	if !set("parsing", "location_mappings") {
		cfg.Parsing.LocationMappings = def.Parsing.LocationMappings
	}
	if !set("parsing", "time_separators") {
		cfg.Parsing.TimeSeparators = def.Parsing.TimeSeparators
	}
	if !set("parsing", "month_headers") {
		cfg.Parsing.MonthHeaders = def.Parsing.MonthHeaders
	}
	if !set("parsing", "column_names", "date") {
		cfg.Parsing.ColumnNames.Date = def.Parsing.ColumnNames.Date
	}
	if !set("parsing", "column_names", "hours") {
		cfg.Parsing.ColumnNames.Hours = def.Parsing.ColumnNames.Hours
	}
	if !set("parsing", "column_names", "location") {
		cfg.Parsing.ColumnNames.Location = def.Parsing.ColumnNames.Location
	}
	if !set("parsing", "column_names", "description") {
		cfg.Parsing.ColumnNames.Description = def.Parsing.ColumnNames.Description
	}
	if !set("parsing", "min_description_length") {
		cfg.Parsing.MinDescriptionLength = def.Parsing.MinDescriptionLength
	}

	if !set("merge", "tolerance_minutes") {
		cfg.Merge.ToleranceMinutes = def.Merge.ToleranceMinutes
	}
	if !set("merge", "similarity_threshold") {
		cfg.Merge.SimilarityThreshold = def.Merge.SimilarityThreshold
	}
	if !set("merge", "min_containment_ratio") {
		cfg.Merge.MinContainmentRatio = def.Merge.MinContainmentRatio
	}

	if !set("export", "output_filename") {
		cfg.Export.OutputFilename = def.Export.OutputFilename
	}
	if !set("export", "include_raw_data") {
		cfg.Export.IncludeRawData = def.Export.IncludeRawData
	}
	if !set("export", "title") {
		cfg.Export.Title = def.Export.Title
	}

	if !set("ui", "max_display_entries") {
		cfg.UI.MaxDisplayEntries = def.UI.MaxDisplayEntries
	}
	if !set("ui", "max_display_errors") {
		cfg.UI.MaxDisplayErrors = def.UI.MaxDisplayErrors
	}
	if !set("ui", "theme") {
		cfg.UI.Theme = def.UI.Theme
	}

	if !set("files", "supported_formats") {
		cfg.Files.SupportedFormats = def.Files.SupportedFormats
	}
	if !set("files", "encoding") {
		cfg.Files.Encoding = def.Files.Encoding
	}
	if !set("files", "max_file_size_mb") {
		cfg.Files.MaxFileSizeMB = def.Files.MaxFileSizeMB
	}
	if !set("files", "backup_on_save") {
		cfg.Files.BackupOnSave = def.Files.BackupOnSave
	}

	if !set("storage", "backend") {
		cfg.Storage.Backend = def.Storage.Backend
	}

	if !set("log", "level") {
		cfg.Log.Level = def.Log.Level
	}
	if !set("log", "format") {
		cfg.Log.Format = def.Log.Format
	}
}

// Normalize canonicalizes case and whitespace of enumerated values.
func (c *Config) Normalize() {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.Storage.Path = strings.TrimSpace(c.Storage.Path)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.Files.Encoding = strings.ToLower(strings.TrimSpace(c.Files.Encoding))
	c.UI.Theme = strings.TrimSpace(c.UI.Theme)

	formats := make([]string, 0, len(c.Files.SupportedFormats))
	for _, f := range c.Files.SupportedFormats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if !strings.HasPrefix(f, ".") {
			f = "." + f
		}
		formats = append(formats, f)
	}
	c.Files.SupportedFormats = formats
}

// Validate checks that all configuration values are usable.
func (c Config) Validate() error {
	if len(c.Parsing.TimeSeparators) == 0 {
		return fmt.Errorf("invalid time_separators: at least one separator is required")
	}
	for _, sep := range c.Parsing.TimeSeparators {
		if strings.TrimSpace(sep) == "" {
			return fmt.Errorf("invalid time_separators: separators must not be blank")
		}
	}
	for code := range c.Parsing.LocationMappings {
		if strings.TrimSpace(code) == "" {
			return fmt.Errorf("invalid location_mappings: empty location code")
		}
	}
	if c.Parsing.MinDescriptionLength < 1 {
		return fmt.Errorf("invalid min_description_length %d: must be at least 1", c.Parsing.MinDescriptionLength)
	}

	if c.Merge.ToleranceMinutes < 0 {
		return fmt.Errorf("invalid tolerance_minutes %d: must not be negative", c.Merge.ToleranceMinutes)
	}
	if c.Merge.SimilarityThreshold <= 0 || c.Merge.SimilarityThreshold > 1 {
		return fmt.Errorf("invalid similarity_threshold %v: must be in (0, 1]", c.Merge.SimilarityThreshold)
	}
	if c.Merge.MinContainmentRatio < 0 || c.Merge.MinContainmentRatio > 1 {
		return fmt.Errorf("invalid min_containment_ratio %v: must be in [0, 1]", c.Merge.MinContainmentRatio)
	}

	if strings.TrimSpace(c.Export.OutputFilename) == "" {
		return fmt.Errorf("invalid output_filename: must not be empty")
	}

	if c.UI.MaxDisplayEntries < 1 {
		return fmt.Errorf("invalid max_display_entries %d: must be at least 1", c.UI.MaxDisplayEntries)
	}
	if c.UI.MaxDisplayErrors < 0 {
		return fmt.Errorf("invalid max_display_errors %d: must not be negative", c.UI.MaxDisplayErrors)
	}

	if c.Files.MaxFileSizeMB < 1 {
		return fmt.Errorf("invalid max_file_size_mb %d: must be at least 1", c.Files.MaxFileSizeMB)
	}
	if c.Files.Encoding == "" {
		return fmt.Errorf("invalid encoding: must not be empty")
	}

	if !contains(validBackends, c.Storage.Backend) {
		return fmt.Errorf("invalid storage backend %q: must be one of %s", c.Storage.Backend, strings.Join(validBackends, ", "))
	}
	if !contains(validLogLevels, c.Log.Level) {
		return fmt.Errorf("invalid log level %q: must be one of %s", c.Log.Level, strings.Join(validLogLevels, ", "))
	}
	if !contains(validLogFormats, c.Log.Format) {
		return fmt.Errorf("invalid log format %q: must be one of %s", c.Log.Format, strings.Join(validLogFormats, ", "))
	}
	return nil
}

// IsSupportedFormat reports whether ext (".csv") is listed in supported_formats.
func (f Files) IsSupportedFormat(ext string) bool {
	return contains(f.SupportedFormats, strings.ToLower(ext))
}

// Save writes cfg to path as TOML.
func Save(path string, cfg Config) error {
	var buf bytes.Buffer
	buf.WriteString("# chrono configuration file\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// GenerateSampleConfig returns a commented sample configuration.
func GenerateSampleConfig() string {
	return `# chrono configuration file
#
# Every setting is optional. Uncomment a line to override its default.

[parsing]
# Location codes and the labels they map to
# location_mappings = { C = "Company", H = "Homeoffice", B = "Business Trip", T = "Training" }

# Separators accepted between the two times of a range (e.g. "9:00 - 12:00")
# time_separators = ["-", "–", "—"]

# Lines that are skipped as month headings (matched exactly)
# month_headers = ["January", "Februar", "Sept"]

# Minimum length of a description line
# min_description_length = 1

[parsing.column_names]
# Header names used to find the columns of CSV/XLSX files
# date = ["Datum", "Date"]
# hours = ["Stunden", "Hours", "Zeit", "Time"]
# location = ["Ort", "Location"]
# description = ["Info", "Description", "Beschreibung"]

[merge]
# Allowed start/end drift in minutes between duplicate entries
# tolerance_minutes = 5

# Word similarity (0-1) above which descriptions count as the same
# similarity_threshold = 0.8

# Minimum length ratio for a contained description to count as the same
# min_containment_ratio = 0.3

[export]
# output_filename = "report.html"
# include_raw_data = true
# title = "Time Tracking Report"

[ui]
# max_display_entries = 50
# max_display_errors = 5
# theme = "dracula"

[files]
# supported_formats = [".csv", ".xlsx", ".xls", ".txt", ".json"]
# encoding = "utf-8"
# max_file_size_mb = 10
# backup_on_save = true

[storage]
# Backend: "jsonl" or "sqlite"
# backend = "jsonl"
# Custom store location (defaults to the user config directory)
# path = ""

[log]
# Level: debug, info, warn, error
# level = "warn"
# Format: text or json
# format = "text"
`
}
