package cmd

import (
	"context"
	"log/slog"
	"media-catalog/lib"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe <file>...",
	Short: "Probe files and print their metadata as a table",
	Long: `Run ffprobe against one or more files and print the same columns the
spreadsheet report uses, without writing anything to disk.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProbe,
}

var probeVerbose bool

func init() {
	probeCmd.Flags().BoolVarP(&probeVerbose, "verbose", "v", false, "Enable verbose logging")
}

func runProbe(cmd *cobra.Command, args []string) error {
	setupLogging(probeVerbose)

	if err := lib.CheckFFprobeAvailable(); err != nil {
		return err
	}

	ctx := context.Background()

	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(lib.ReportHeader))
	for i, column := range lib.ReportHeader {
		header[i] = column
	}
	tw.AppendHeader(header)

	for _, path := range args {
		var sizeBytes int64
		if fileInfo, err := os.Stat(path); err != nil {
			slog.Warn("Failed to stat file", "path", path, "error", err)
		} else {
			sizeBytes = fileInfo.Size()
		}

		probe, err := lib.RunFFProbe(ctx, path)
		if err != nil {
			slog.Warn("Probe failed", "path", path, "error", err)
		}

		cells := lib.BuildRow(path, sizeBytes, probe).Cells()
		row := make(table.Row, len(cells))
		for i, cell := range cells {
			row[i] = cell
		}
		tw.AppendRow(row)
	}

	tw.Render()
	return nil
}
