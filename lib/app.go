package lib

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
)

// App wires the pipeline together: enumerate files, probe each one, map the
// probe output into report rows, and save the spreadsheet once at the end.
type App struct {
	Roots      []string
	OutputPath string
	NoCache    bool
}

func (a *App) Run(ctx context.Context) error {
	slog.Debug("Application starting", "config", fmt.Sprintf("%+v", a))

	if err := CheckFFprobeAvailable(); err != nil {
		return err
	}

	scanner := NewFileScanner(a.Roots)
	files, err := scanner.ScanFiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan directories: %w", err)
	}

	if len(files) == 0 {
		slog.Warn("No files found under the configured roots", "roots", a.Roots)
		return nil
	}

	var cache *CacheManager
	if a.NoCache {
		slog.Debug("Probe caching disabled")
	} else {
		cache = NewCacheManager(filepath.Dir(ResolveOutputPath(a.OutputPath)))
		if err := cache.EnsureCacheDir(); err != nil {
			slog.Warn("Failed to create cache directory, continuing without cache", "error", err)
			cache = nil
		} else if err := cache.CleanOldCache(60 * 24 * time.Hour); err != nil {
			slog.Warn("Failed to clean old cache files", "error", err)
		}
	}

	report := a.processFiles(ctx, files, cache)

	savedPath, err := report.Save(a.OutputPath)
	if err != nil {
		// All collected rows are lost; nothing is persisted before this point.
		slog.Error("Error saving report", "error", err)
		return nil
	}

	slog.Info("Report saved", "path", savedPath, "rows", report.Len())
	return nil
}

// processFiles runs the per-file pipeline strictly sequentially: one probe
// at a time, no fan-out. A probe failure degrades that file's row to blank
// metadata columns and the scan continues.
func (a *App) processFiles(ctx context.Context, files []string, cache *CacheManager) *ReportWriter {
	slog.Info("Probing files", "totalFiles", len(files))

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Probing files"),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(50),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	report := NewReportWriter()
	var totalBytes int64
	failed := 0

	for _, path := range files {
		slog.Debug("Working on file", "path", path)

		var sizeBytes int64
		fileInfo, err := os.Stat(path)
		if err != nil {
			slog.Warn("Failed to stat file", "path", path, "error", err)
		} else {
			sizeBytes = fileInfo.Size()
		}
		totalBytes += sizeBytes

		probe := a.probeFile(ctx, path, fileInfo, cache)
		if probe == nil {
			failed++
		}

		report.Append(BuildRow(path, sizeBytes, probe))
		bar.Add(1)
	}

	bar.Finish()

	slog.Info("Probing completed",
		"probed", report.Len()-failed,
		"failed", failed,
		"totalSize", FormatSize(totalBytes))

	return report
}

// probeFile returns the probe result for one file, from cache when possible,
// or nil when probing failed.
func (a *App) probeFile(ctx context.Context, path string, fileInfo os.FileInfo, cache *CacheManager) *ProbeResult {
	if cache != nil && fileInfo != nil {
		hasCache, cached, err := cache.HasValidCache(path, fileInfo)
		if err != nil {
			slog.Warn("Cache check failed, probing fresh", "file", path, "error", err)
		}
		if hasCache && cached != nil {
			return cached
		}
	}

	probe, err := RunFFProbe(ctx, path)
	if err != nil {
		slog.Warn("Probe failed", "file", path, "error", err)
		return nil
	}

	if cache != nil && fileInfo != nil {
		if err := cache.SaveCache(path, fileInfo, probe); err != nil {
			slog.Warn("Failed to cache probe result", "file", path, "error", err)
		}
	}

	return probe
}
