package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"media-catalog/lib"
	"strings"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [roots...]",
	Short: "Scan directories and write a spreadsheet catalog",
	Long: `Recursively scan one or more directories, probe every file with ffprobe,
and write a spreadsheet report with resolution, codecs, bitrate, frame rate,
HDR/SDR status, and audio track details.

Every regular file under the roots is probed; files ffprobe cannot read are
still listed in the report with blank metadata columns.

Scan roots, the output path, and the cache toggle can also come from a TOML
config file; values given on the command line take precedence.`,
	RunE: runScan,
}

var (
	scanConfigPath string
	scanOutputPath string
	scanNoCache    bool
	scanVerbose    bool
)

func init() {
	scanCmd.Flags().StringVarP(&scanConfigPath, "config", "c", "", "Path to TOML config file")
	scanCmd.Flags().StringVarP(&scanOutputPath, "output", "o", "", "Output path for the report (.xlsx file or directory)")
	scanCmd.Flags().BoolVar(&scanNoCache, "no-cache", false, "Disable caching of probe results")
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "Enable verbose logging")
}

// scanOptions is the merged scan configuration after command-line values and
// the optional config file are reconciled.
type scanOptions struct {
	Roots   []string
	Output  string
	NoCache bool
}

// mergeScanOptions fills gaps in the command-line values from the config
// file. Command-line values always win; the file only supplies what the
// command line left unset.
func mergeScanOptions(args []string, output string, noCache bool, cfg *lib.Config) scanOptions {
	opts := scanOptions{
		Roots:   args,
		Output:  output,
		NoCache: noCache,
	}
	if cfg == nil {
		return opts
	}
	if len(opts.Roots) == 0 {
		opts.Roots = cfg.Scan.Roots
	}
	if opts.Output == "" {
		opts.Output = cfg.Report.Output
	}
	if !opts.NoCache {
		opts.NoCache = cfg.Cache.Disabled
	}
	return opts
}

func runScan(cmd *cobra.Command, args []string) error {
	setupLogging(scanVerbose)

	var cfg *lib.Config
	if scanConfigPath != "" {
		loaded, err := lib.LoadConfig(scanConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	opts := mergeScanOptions(args, scanOutputPath, scanNoCache, cfg)

	// Misconfiguration skips the scan entirely but is not a process failure.
	if len(opts.Roots) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Please specify at least one directory to scan, as arguments or in the config file.")
		return nil
	}
	if opts.Output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Please specify an output path for the report with --output or in the config file.")
		return nil
	}

	slog.Info("Starting catalog scan",
		"roots", strings.Join(opts.Roots, ", "),
		"output", opts.Output)

	app := &lib.App{
		Roots:      opts.Roots,
		OutputPath: opts.Output,
		NoCache:    opts.NoCache,
	}

	if err := app.Run(context.Background()); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	return nil
}
