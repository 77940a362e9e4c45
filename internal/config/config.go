package config

import (
	"github.com/xolan/chrono/internal/osutil"
)

const (
	// AppName is the application name used for config directory
	AppName = osutil.AppName
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
)

// Storage backends.
const (
	BackendJSONL  = "jsonl"
	BackendSQLite = "sqlite"
)

// Config represents the application configuration.
// A Config is a value: components copy what they need at construction time
// and never write back into it.
type Config struct {
	Parsing Parsing `toml:"parsing"`
	Merge   Merge   `toml:"merge"`
	Export  Export  `toml:"export"`
	UI      UI      `toml:"ui"`
	Files   Files   `toml:"files"`
	Storage Storage `toml:"storage"`
	Log     Log     `toml:"log"`
}

// Parsing controls how raw time logs are classified and normalized.
type Parsing struct {
	// LocationMappings maps short location codes (e.g. "C") to labels.
	LocationMappings map[string]string `toml:"location_mappings"`
	// TimeSeparators are the accepted separators inside a time range.
	TimeSeparators []string `toml:"time_separators"`
	// MonthHeaders are lines that are skipped as month headings (case-sensitive).
	MonthHeaders []string `toml:"month_headers"`
	// ColumnNames are header hints used to resolve tabular columns.
	ColumnNames ColumnNames `toml:"column_names"`
	// MinDescriptionLength is the minimum length of a description token.
	MinDescriptionLength int `toml:"min_description_length"`
}

// ColumnNames holds the accepted header names per column role.
type ColumnNames struct {
	Date        []string `toml:"date"`
	Hours       []string `toml:"hours"`
	Location    []string `toml:"location"`
	Description []string `toml:"description"`
}

// Merge controls duplicate detection.
type Merge struct {
	// ToleranceMinutes is the allowed start/end drift between duplicates.
	ToleranceMinutes int `toml:"tolerance_minutes"`
	// SimilarityThreshold is the word-set Jaccard similarity above which
	// two descriptions are considered the same.
	SimilarityThreshold float64 `toml:"similarity_threshold"`
	// MinContainmentRatio is the minimum length ratio shorter/longer for a
	// substring match to count as the same description.
	MinContainmentRatio float64 `toml:"min_containment_ratio"`
}

// Export controls the HTML report.
type Export struct {
	OutputFilename string `toml:"output_filename"`
	IncludeRawData bool   `toml:"include_raw_data"`
	Title          string `toml:"title"`
}

// UI controls display limits and the TUI theme.
type UI struct {
	MaxDisplayEntries int    `toml:"max_display_entries"`
	MaxDisplayErrors  int    `toml:"max_display_errors"`
	Theme             string `toml:"theme"`
}

// Files controls file loading and saving.
type Files struct {
	SupportedFormats []string `toml:"supported_formats"`
	Encoding         string   `toml:"encoding"`
	MaxFileSizeMB    int      `toml:"max_file_size_mb"`
	BackupOnSave     bool     `toml:"backup_on_save"`
}

// MaxFileSizeBytes returns the file size ceiling in bytes.
func (f Files) MaxFileSizeBytes() int64 {
	return int64(f.MaxFileSizeMB) * 1024 * 1024
}

// Storage selects where entries are persisted.
type Storage struct {
	// Backend is "jsonl" or "sqlite".
	Backend string `toml:"backend"`
	// Path overrides the default store location when non-empty.
	Path string `toml:"path"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Parsing: Parsing{
			LocationMappings: map[string]string{
				"C": "Company",
				"H": "Homeoffice",
				"B": "Business Trip",
				"T": "Training",
			},
			TimeSeparators: []string{"-", "–", "—"},
			MonthHeaders: []string{
				"January", "February", "March", "April", "May", "June",
				"July", "August", "September", "October", "November", "December",
				"Jan", "Feb", "Mar", "Apr", "Jun", "Jul", "Aug", "Sep", "Sept", "Oct", "Nov", "Dec",
				"Januar", "Februar", "März", "Mai", "Juni", "Juli", "Oktober", "Dezember",
				"Mär", "Okt", "Dez",
			},
			ColumnNames: ColumnNames{
				Date:        []string{"Datum", "Date"},
				Hours:       []string{"Stunden", "Hours", "Zeit", "Time"},
				Location:    []string{"Ort", "Location"},
				Description: []string{"Info", "Description", "Beschreibung"},
			},
			MinDescriptionLength: 1,
		},
		Merge: Merge{
			ToleranceMinutes:    5,
			SimilarityThreshold: 0.8,
			MinContainmentRatio: 0.3,
		},
		Export: Export{
			OutputFilename: "report.html",
			IncludeRawData: true,
			Title:          "Time Tracking Report",
		},
		UI: UI{
			MaxDisplayEntries: 50,
			MaxDisplayErrors:  5,
			Theme:             "dracula",
		},
		Files: Files{
			SupportedFormats: []string{".csv", ".xlsx", ".xls", ".txt", ".json"},
			Encoding:         "utf-8",
			MaxFileSizeMB:    10,
			BackupOnSave:     true,
		},
		Storage: Storage{
			Backend: BackendJSONL,
		},
		Log: Log{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Clone returns a deep copy of the parsing settings.
func (p Parsing) Clone() Parsing {
	out := p
	out.LocationMappings = make(map[string]string, len(p.LocationMappings))
	for k, v := range p.LocationMappings {
		out.LocationMappings[k] = v
	}
	out.TimeSeparators = append([]string(nil), p.TimeSeparators...)
	out.MonthHeaders = append([]string(nil), p.MonthHeaders...)
	out.ColumnNames = ColumnNames{
		Date:        append([]string(nil), p.ColumnNames.Date...),
		Hours:       append([]string(nil), p.ColumnNames.Hours...),
		Location:    append([]string(nil), p.ColumnNames.Location...),
		Description: append([]string(nil), p.ColumnNames.Description...),
	}
	return out
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	return osutil.AppFile(ConfigFile)
}
