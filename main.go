package main

import (
	"log/slog"
	"media-catalog/cmd"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "media-catalog",
		Short: "Catalog a video library into a spreadsheet report",
		Long: `media-catalog scans directories for video files, probes each file with
ffprobe, and writes a spreadsheet report with resolution, codecs, bitrate,
frame rate, HDR/SDR status, and audio track details.`,
		SilenceUsage: true,
	}

	cmd.AddCommands(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
