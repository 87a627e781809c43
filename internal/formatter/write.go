package formatter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytexport/internal/models"
	"github.com/desertthunder/ytexport/internal/shared"
)

// Format is an artifact format.
type Format string

const (
	FormatXLSX   Format = "xlsx"
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// Formats lists the supported formats.
var Formats = []Format{FormatXLSX, FormatCSV, FormatJSON, FormatSQLite}

// ParseFormat returns the Format named by s (case-insensitive).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown format %q (expected xlsx, csv, json or sqlite)", shared.ErrInvalidFlag, s)
}

// Ext returns the file extension written for f. CSV exports are a pair of files sharing a base name.
func (f Format) Ext() string {
	switch f {
	case FormatXLSX:
		return ".xlsx"
	case FormatJSON:
		return ".json"
	case FormatSQLite:
		return ".db"
	default:
		return ""
	}
}

// OutputPath rewrites output so its extension matches f.
//
// Known artifact extensions are swapped, anything else is kept and the format's extension appended.
// For CSV the returned path is the base name of the file pair.
func OutputPath(f Format, output string) string {
	if output == "" {
		output = "youtube_data"
	}
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".xlsx", ".json", ".db", ".sqlite", ".csv":
		output = output[:len(output)-len(ext)]
	}
	return output + f.Ext()
}

// Result describes a written artifact.
type Result struct {
	Format   Format
	Files    []string
	ExportID string // Run id, set for sqlite
}

// Write writes export in format f to output (adjusted by [OutputPath]).
//
// Failures are logged and returned wrapped in [shared.ErrExport]. No partial-file cleanup is attempted.
func Write(ctx context.Context, logger *log.Logger, f Format, export *models.ChannelExport, output string) (*Result, error) {
	if export == nil {
		return nil, fmt.Errorf("%w: nothing to export", shared.ErrExport)
	}

	path := OutputPath(f, output)
	result := &Result{Format: f}

	var err error
	switch f {
	case FormatXLSX:
		err = WriteXLSX(export, path)
		result.Files = []string{path}
	case FormatCSV:
		var files *CSVExportResult
		if files, err = WriteCSVExport(export, path); err == nil {
			result.Files = []string{files.VideosFile, files.CommentsFile}
		}
	case FormatJSON:
		var file string
		if file, err = WriteJSONExport(export, path); err == nil {
			result.Files = []string{file}
		}
	case FormatSQLite:
		result.ExportID, err = WriteSQLiteExport(ctx, export, path)
		result.Files = []string{path}
	default:
		err = fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, f)
	}

	if err != nil {
		if logger != nil {
			logger.Error("error exporting data", "format", string(f), "path", path, "err", err)
		}
		return nil, fmt.Errorf("%w: %s: %w", shared.ErrExport, path, err)
	}

	if logger != nil {
		logger.Info("data exported", "format", string(f), "files", strings.Join(result.Files, ", "),
			"videos", len(export.Videos), "comments", len(export.Comments))
	}
	return result, nil
}
