package handlers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xolan/chrono/internal/cli"
)

// ShowConfig displays the current effective configuration
func ShowConfig(deps *cli.Deps) {
	svc := deps.Services.Config
	cfg := svc.Get()
	w := deps.Stdout

	_, _ = fmt.Fprintln(w, "Configuration for chrono")
	_, _ = fmt.Fprintln(w, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "Config file:     %s\n", svc.GetPath())
	if svc.Exists() {
		_, _ = fmt.Fprintln(w, "Status:          File exists (using custom configuration)")
	} else {
		_, _ = fmt.Fprintln(w, "Status:          No config file (using defaults)")
	}
	_, _ = fmt.Fprintf(w, "Store:           %s (%s)\n", deps.Services.Store.Path(), deps.Services.Store.Backend())
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "Parsing:")
	_, _ = fmt.Fprintln(w, strings.Repeat("-", 60))
	codes := make([]string, 0, len(cfg.Parsing.LocationMappings))
	for code := range cfg.Parsing.LocationMappings {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		_, _ = fmt.Fprintf(w, "  %-8s -> %s\n", code, cfg.Parsing.LocationMappings[code])
	}
	_, _ = fmt.Fprintf(w, "Time separators: %s\n", strings.Join(cfg.Parsing.TimeSeparators, " "))
	_, _ = fmt.Fprintf(w, "Month headers:   %d\n", len(cfg.Parsing.MonthHeaders))
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "Merge:")
	_, _ = fmt.Fprintln(w, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(w, "Tolerance:       %d minutes\n", cfg.Merge.ToleranceMinutes)
	_, _ = fmt.Fprintf(w, "Similarity:      %.2f\n", cfg.Merge.SimilarityThreshold)
	_, _ = fmt.Fprintf(w, "Containment:     %.2f\n", cfg.Merge.MinContainmentRatio)
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "Files:")
	_, _ = fmt.Fprintln(w, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(w, "Formats:         %s\n", strings.Join(cfg.Files.SupportedFormats, ", "))
	_, _ = fmt.Fprintf(w, "Encoding:        %s\n", cfg.Files.Encoding)
	_, _ = fmt.Fprintf(w, "Max file size:   %d MB\n", cfg.Files.MaxFileSizeMB)
	_, _ = fmt.Fprintf(w, "Backup on save:  %t\n", cfg.Files.BackupOnSave)
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "Report:")
	_, _ = fmt.Fprintln(w, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(w, "Title:           %s\n", cfg.Export.Title)
	_, _ = fmt.Fprintf(w, "Output file:     %s\n", cfg.Export.OutputFilename)
	_, _ = fmt.Fprintf(w, "Raw data:        %t\n", cfg.Export.IncludeRawData)
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "UI:")
	_, _ = fmt.Fprintln(w, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(w, "Max entries:     %d\n", cfg.UI.MaxDisplayEntries)
	_, _ = fmt.Fprintf(w, "Max errors:      %d\n", cfg.UI.MaxDisplayErrors)
	_, _ = fmt.Fprintf(w, "Theme:           %s\n", cfg.UI.Theme)
	_, _ = fmt.Fprintf(w, "Log:             %s (%s)\n", cfg.Log.Level, cfg.Log.Format)
	_, _ = fmt.Fprintln(w)

	if !svc.Exists() {
		_, _ = fmt.Fprintln(w, "Tip: Run 'chrono config init' to create a sample config file.")
		_, _ = fmt.Fprintln(w)
	}
}

// InitConfig writes a commented sample config file
func InitConfig(deps *cli.Deps) {
	svc := deps.Services.Config
	if err := svc.Init(); err != nil {
		fail(deps, "Failed to create config file", err, "Use 'chrono config reset' to overwrite an existing file")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file at %s\n", svc.GetPath())
}

// ResetConfig overwrites the config file with the defaults after confirmation
func ResetConfig(deps *cli.Deps, yes bool) {
	svc := deps.Services.Config
	if svc.Exists() && !yes && !confirm(deps, fmt.Sprintf("Overwrite %s with the defaults?", svc.GetPath())) {
		_, _ = fmt.Fprintln(deps.Stdout, "Cancelled")
		return
	}
	if err := svc.Reset(); err != nil {
		fail(deps, "Failed to reset config", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Config reset to defaults at %s\n", svc.GetPath())
}
