package lib

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/tealeg/xlsx"
)

// DefaultReportName is used when the configured output path is a directory.
const DefaultReportName = "video_metadata.xlsx"

// ReportHeader is the fixed column set of the catalog spreadsheet.
var ReportHeader = []string{
	"Path", "Size (GB)", "Resolution", "Audio Tracks", "Video Codec",
	"Profile", "Bitrate (kbps)", "Container", "Frame Rate", "HDR/SDR",
}

// ReportWriter accumulates rows in scan order and serializes them to a
// spreadsheet in one shot. Nothing is persisted until Save.
type ReportWriter struct {
	rows []ReportRow
}

func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// Append adds one row to the report. Insertion order is preserved.
func (rw *ReportWriter) Append(row ReportRow) {
	rw.rows = append(rw.rows, row)
}

func (rw *ReportWriter) Len() int {
	return len(rw.rows)
}

// ResolveOutputPath maps a configured output location to the spreadsheet
// path. Anything not ending in .xlsx is treated as a directory and the
// default report name is appended.
func ResolveOutputPath(outputPath string) string {
	if strings.HasSuffix(outputPath, ".xlsx") {
		return outputPath
	}
	return filepath.Join(outputPath, DefaultReportName)
}

// Save writes the header and all collected rows to the resolved output path
// and returns the path actually written.
func (rw *ReportWriter) Save(outputPath string) (string, error) {
	target := ResolveOutputPath(outputPath)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Report")
	if err != nil {
		return "", fmt.Errorf("failed to create report sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, column := range ReportHeader {
		headerRow.AddCell().Value = column
	}

	for _, row := range rw.rows {
		r := sheet.AddRow()
		for _, cell := range row.Cells() {
			r.AddCell().Value = cell
		}
	}

	if err := file.Save(target); err != nil {
		return "", fmt.Errorf("failed to save report to %s: %w", target, err)
	}

	slog.Debug("Report saved", "path", target, "rows", len(rw.rows))
	return target, nil
}

// ReadReport loads a previously written report, returning the header row and
// the data rows in file order. Data rows are padded to the header width so
// trailing blank cells compare predictably.
func ReadReport(path string) (header []string, rows [][]string, err error) {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open report %s: %w", path, err)
	}
	if len(file.Sheets) == 0 {
		return nil, nil, fmt.Errorf("report %s has no sheets", path)
	}

	for i, row := range file.Sheets[0].Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, cell.Value)
		}
		if i == 0 {
			header = cells
			continue
		}
		for len(cells) < len(header) {
			cells = append(cells, "")
		}
		rows = append(rows, cells)
	}

	return header, rows, nil
}
