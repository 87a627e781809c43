package formatter

import (
	"fmt"

	"github.com/desertthunder/ytexport/internal/models"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the spreadsheet artifact.
const (
	VideoSheet   = "Video Data"
	CommentSheet = "Comments Data"
)

// WriteXLSX writes export as a workbook with a "Video Data" and a "Comments Data" sheet.
//
// Each sheet starts with a bold header row. Nil cells (videos without statistics, top-level
// comments' reply_to) are left empty. An existing file at path is replaced.
func WriteXLSX(export *models.ChannelExport, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), VideoSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(CommentSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSheet(f, VideoSheet, header, models.VideoColumns, VideoRows(export)); err != nil {
		return err
	}
	if err := writeSheet(f, CommentSheet, header, models.CommentColumns, CommentRows(export)); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, columns []string, rows [][]any) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to open sheet %q: %w", sheet, err)
	}

	head := make([]any, len(columns))
	for i, c := range columns {
		head[i] = c
	}
	if err := sw.SetRow("A1", head, excelize.RowOpts{StyleID: headerStyle}); err != nil {
		return fmt.Errorf("failed to write %q header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d of %q: %w", i+2, sheet, err)
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+2, sheet, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet %q: %w", sheet, err)
	}
	return nil
}
