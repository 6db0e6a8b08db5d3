package lib

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// CacheManager stores raw probe results next to the report output so that
// re-scans of an unchanged library skip the ffprobe invocations.
type CacheManager struct {
	CacheDir string
}

// CacheEntry pairs a cached probe result with the source file attributes
// that invalidate it.
type CacheEntry struct {
	FilePath    string       `json:"file_path"`
	FileModTime time.Time    `json:"file_mod_time"`
	FileSize    int64        `json:"file_size"`
	ProbedAt    time.Time    `json:"probed_at"`
	Probe       *ProbeResult `json:"probe"`
}

func NewCacheManager(outputDir string) *CacheManager {
	return &CacheManager{CacheDir: filepath.Join(outputDir, ".cache")}
}

// EnsureCacheDir creates the cache directory if it doesn't exist
func (cm *CacheManager) EnsureCacheDir() error {
	if err := os.MkdirAll(cm.CacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

func (cm *CacheManager) cacheFilePath(filePath string) string {
	hash := sha256.Sum256([]byte(filePath))
	return filepath.Join(cm.CacheDir, hex.EncodeToString(hash[:])+".json")
}

// HasValidCache checks whether a usable cache entry exists for the file.
// Entries are invalidated when the source file's mod time or size changes,
// or after 30 days. Unreadable entries count as misses, not errors.
func (cm *CacheManager) HasValidCache(filePath string, fileInfo os.FileInfo) (bool, *ProbeResult, error) {
	cacheFilePath := cm.cacheFilePath(filePath)

	_, err := os.Stat(cacheFilePath)
	if os.IsNotExist(err) {
		return false, nil, nil
	}
	if err != nil {
		return false, nil, fmt.Errorf("failed to stat cache file: %w", err)
	}

	data, err := os.ReadFile(cacheFilePath)
	if err != nil {
		slog.Warn("Failed to read cache file, will re-probe", "file", filePath, "error", err)
		return false, nil, nil
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		slog.Warn("Failed to parse cache file, will re-probe", "file", filePath, "error", err)
		return false, nil, nil
	}

	if fileInfo.ModTime().After(entry.FileModTime) {
		slog.Debug("Source file modified since cache, will re-probe", "file", filePath)
		return false, nil, nil
	}

	if fileInfo.Size() != entry.FileSize {
		slog.Debug("Source file size changed since cache, will re-probe", "file", filePath)
		return false, nil, nil
	}

	if time.Since(entry.ProbedAt) > 30*24*time.Hour {
		slog.Debug("Cache entry too old, will re-probe", "file", filePath, "age", time.Since(entry.ProbedAt))
		return false, nil, nil
	}

	slog.Debug("Using cached probe result", "file", filePath, "probedAt", entry.ProbedAt)
	return true, entry.Probe, nil
}

// SaveCache stores one probe result in the cache.
func (cm *CacheManager) SaveCache(filePath string, fileInfo os.FileInfo, probe *ProbeResult) error {
	entry := CacheEntry{
		FilePath:    filePath,
		FileModTime: fileInfo.ModTime(),
		FileSize:    fileInfo.Size(),
		ProbedAt:    time.Now(),
		Probe:       probe,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := os.WriteFile(cm.cacheFilePath(filePath), data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// CleanOldCache removes cache files older than the specified duration
func (cm *CacheManager) CleanOldCache(maxAge time.Duration) error {
	entries, err := os.ReadDir(cm.CacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0

	for _, entry := range entries {
		if !entry.Type().IsRegular() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			filePath := filepath.Join(cm.CacheDir, entry.Name())
			if err := os.Remove(filePath); err != nil {
				slog.Warn("Failed to remove old cache file", "file", filePath, "error", err)
			} else {
				cleaned++
			}
		}
	}

	if cleaned > 0 {
		slog.Info("Cleaned old cache files", "count", cleaned, "maxAge", maxAge)
	}

	return nil
}
