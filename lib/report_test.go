package lib

import (
	"path/filepath"
	"testing"
)

func TestResolveOutputPath(t *testing.T) {
	tests := []struct {
		output   string
		expected string
	}{
		{"/reports/catalog.xlsx", "/reports/catalog.xlsx"},
		{"/reports", filepath.Join("/reports", DefaultReportName)},
		{"/reports/", filepath.Join("/reports", DefaultReportName)},
		{"catalog.csv", filepath.Join("catalog.csv", DefaultReportName)},
	}

	for _, tt := range tests {
		result := ResolveOutputPath(tt.output)
		if result != tt.expected {
			t.Errorf("ResolveOutputPath(%q) = %q, want %q", tt.output, result, tt.expected)
		}
	}
}

func TestReportRoundTrip(t *testing.T) {
	rows := []ReportRow{
		{
			Path:        "/media/movie.mkv",
			SizeGB:      1.5,
			Resolution:  "1920x1080",
			AudioTracks: "Track 2/aac/ENG",
			VideoCodec:  "h264",
			Profile:     "High",
			BitrateKbps: "15000.00",
			Container:   "matroska,webm",
			FrameRate:   "23.976 fps",
			HDR:         "SDR",
		},
		{
			Path:        "/media/show.mp4",
			SizeGB:      0.75,
			Resolution:  "3840x2160",
			AudioTracks: "Track 1/eac3/JPN; Track 2/aac/ENG",
			VideoCodec:  "hevc",
			Profile:     "Main 10",
			BitrateKbps: "25000.50",
			Container:   "mov,mp4,m4a,3gp,3g2,mj2",
			FrameRate:   "59.940 fps",
			HDR:         "HDR",
		},
		// Degraded row from a failed probe: blank metadata, SDR default.
		{
			Path:   "/media/notes.txt",
			SizeGB: 0,
			HDR:    "SDR",
		},
	}

	writer := NewReportWriter()
	for _, row := range rows {
		writer.Append(row)
	}

	outputPath := filepath.Join(t.TempDir(), "report.xlsx")
	savedPath, err := writer.Save(outputPath)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if savedPath != outputPath {
		t.Errorf("Save returned %q, want %q", savedPath, outputPath)
	}

	header, readRows, err := ReadReport(savedPath)
	if err != nil {
		t.Fatalf("ReadReport failed: %v", err)
	}

	if len(header) != len(ReportHeader) {
		t.Fatalf("Expected %d header cells, got %d", len(ReportHeader), len(header))
	}
	for i, column := range ReportHeader {
		if header[i] != column {
			t.Errorf("Header[%d] = %q, want %q", i, header[i], column)
		}
	}

	if len(readRows) != len(rows) {
		t.Fatalf("Expected %d rows, got %d", len(rows), len(readRows))
	}
	for i, row := range rows {
		expected := row.Cells()
		for j, cell := range expected {
			if readRows[i][j] != cell {
				t.Errorf("Row %d cell %d = %q, want %q", i, j, readRows[i][j], cell)
			}
		}
	}
}

func TestReportWriterSavesIntoDirectory(t *testing.T) {
	dir := t.TempDir()

	writer := NewReportWriter()
	writer.Append(ReportRow{Path: "/media/movie.mkv", HDR: "SDR"})

	savedPath, err := writer.Save(dir)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	expected := filepath.Join(dir, DefaultReportName)
	if savedPath != expected {
		t.Errorf("Save returned %q, want %q", savedPath, expected)
	}

	header, readRows, err := ReadReport(savedPath)
	if err != nil {
		t.Fatalf("ReadReport failed: %v", err)
	}
	if len(header) != len(ReportHeader) {
		t.Errorf("Expected %d header cells, got %d", len(ReportHeader), len(header))
	}
	if len(readRows) != 1 {
		t.Errorf("Expected 1 row, got %d", len(readRows))
	}
}

func TestReportWriterEmptyReport(t *testing.T) {
	writer := NewReportWriter()
	if writer.Len() != 0 {
		t.Errorf("Expected empty writer, got %d rows", writer.Len())
	}

	savedPath, err := writer.Save(filepath.Join(t.TempDir(), "empty.xlsx"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	header, readRows, err := ReadReport(savedPath)
	if err != nil {
		t.Fatalf("ReadReport failed: %v", err)
	}
	if len(header) != len(ReportHeader) {
		t.Errorf("Expected header to survive empty report, got %d cells", len(header))
	}
	if len(readRows) != 0 {
		t.Errorf("Expected 0 rows, got %d", len(readRows))
	}
}
