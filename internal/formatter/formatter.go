// package formatter writes a [models.ChannelExport] to disk as a spreadsheet, CSV pair, JSON document or SQLite file.
//
// Every format keeps the same two tables ("Video Data" and "Comments Data") with the columns from
// [models.VideoColumns] and [models.CommentColumns], rows in dataset order.
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/desertthunder/ytexport/internal/models"
	"github.com/desertthunder/ytexport/internal/shared"
)

// ExportToCSV renders a header row of columns followed by rows. Nil cells are written empty.
func ExportToCSV(columns []string, rows [][]any) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(columns); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range rows {
		record := make([]string, len(row))
		for i, cell := range row {
			if cell != nil {
				record[i] = fmt.Sprint(cell)
			}
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// VideoRows returns the "Video Data" rows of export.
func VideoRows(export *models.ChannelExport) [][]any {
	rows := make([][]any, len(export.Videos))
	for i, v := range export.Videos {
		rows[i] = v.Row()
	}
	return rows
}

// CommentRows returns the "Comments Data" rows of export.
func CommentRows(export *models.ChannelExport) [][]any {
	rows := make([][]any, len(export.Comments))
	for i, c := range export.Comments {
		rows[i] = c.Row()
	}
	return rows
}

// ExportToJSON converts a ChannelExport to a pretty-printed JSON document with video_data and comments_data arrays.
func ExportToJSON(export *models.ChannelExport) ([]byte, error) {
	return shared.MarshalJSON(export, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	VideosFile   string
	CommentsFile string
}

// WriteCSVExport writes {base}_videos.csv and {base}_comments.csv.
//
// Defaults to the channel ID as the base filename.
func WriteCSVExport(export *models.ChannelExport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = export.ChannelID
	}

	videos, err := ExportToCSV(models.VideoColumns, VideoRows(export))
	if err != nil {
		return nil, fmt.Errorf("failed to generate video CSV: %w", err)
	}

	videosFile := baseFilepath + "_videos.csv"
	if err := os.WriteFile(videosFile, videos, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	comments, err := ExportToCSV(models.CommentColumns, CommentRows(export))
	if err != nil {
		return nil, fmt.Errorf("failed to generate comment CSV: %w", err)
	}

	commentsFile := baseFilepath + "_comments.csv"
	if err := os.WriteFile(commentsFile, comments, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	return &CSVExportResult{VideosFile: videosFile, CommentsFile: commentsFile}, nil
}

// WriteJSONExport writes the dataset as a single JSON document.
//
// Defaults to {channel ID}.json as the filename.
func WriteJSONExport(export *models.ChannelExport, filepath string) (string, error) {
	if filepath == "" {
		filepath = export.ChannelID + ".json"
	}

	data, err := ExportToJSON(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate JSON: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}

	return filepath, nil
}
