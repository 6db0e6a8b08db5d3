package lib

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSourceFile(t *testing.T, dir, name, content string) (string, os.FileInfo) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create source file: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat source file: %v", err)
	}
	return path, info
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cm := NewCacheManager(dir)
	if err := cm.EnsureCacheDir(); err != nil {
		t.Fatalf("EnsureCacheDir failed: %v", err)
	}

	path, info := writeSourceFile(t, dir, "movie.mkv", "video bytes")

	probe := &ProbeResult{
		Format: Format{FormatName: "matroska,webm", BitRate: "15000000"},
		Streams: []Stream{
			{Index: 0, CodecName: "h264", CodecType: "video", Width: 1920, Height: 1080},
		},
	}

	if err := cm.SaveCache(path, info, probe); err != nil {
		t.Fatalf("SaveCache failed: %v", err)
	}

	hit, cached, err := cm.HasValidCache(path, info)
	if err != nil {
		t.Fatalf("HasValidCache failed: %v", err)
	}
	if !hit || cached == nil {
		t.Fatal("Expected cache hit")
	}
	if cached.Format.FormatName != "matroska,webm" {
		t.Errorf("Cached FormatName = %q, want %q", cached.Format.FormatName, "matroska,webm")
	}
	if len(cached.Streams) != 1 || cached.Streams[0].CodecName != "h264" {
		t.Errorf("Cached streams = %+v, want one h264 stream", cached.Streams)
	}
}

func TestCacheInvalidatedByFileChange(t *testing.T) {
	dir := t.TempDir()
	cm := NewCacheManager(dir)
	if err := cm.EnsureCacheDir(); err != nil {
		t.Fatalf("EnsureCacheDir failed: %v", err)
	}

	path, info := writeSourceFile(t, dir, "movie.mkv", "video bytes")
	if err := cm.SaveCache(path, info, &ProbeResult{}); err != nil {
		t.Fatalf("SaveCache failed: %v", err)
	}

	// Grow the file and push its mod time forward.
	if err := os.WriteFile(path, []byte("video bytes plus more"), 0644); err != nil {
		t.Fatalf("Failed to rewrite source file: %v", err)
	}
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("Failed to change file times: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat source file: %v", err)
	}

	hit, _, err := cm.HasValidCache(path, info)
	if err != nil {
		t.Fatalf("HasValidCache failed: %v", err)
	}
	if hit {
		t.Error("Expected cache miss after source file changed")
	}
}

func TestCacheMissWithoutEntry(t *testing.T) {
	dir := t.TempDir()
	cm := NewCacheManager(dir)
	if err := cm.EnsureCacheDir(); err != nil {
		t.Fatalf("EnsureCacheDir failed: %v", err)
	}

	path, info := writeSourceFile(t, dir, "movie.mkv", "video bytes")

	hit, cached, err := cm.HasValidCache(path, info)
	if err != nil {
		t.Fatalf("HasValidCache failed: %v", err)
	}
	if hit || cached != nil {
		t.Error("Expected cache miss for unprobed file")
	}
}

func TestCacheCorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	cm := NewCacheManager(dir)
	if err := cm.EnsureCacheDir(); err != nil {
		t.Fatalf("EnsureCacheDir failed: %v", err)
	}

	path, info := writeSourceFile(t, dir, "movie.mkv", "video bytes")
	if err := os.WriteFile(cm.cacheFilePath(path), []byte("not json"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt cache entry: %v", err)
	}

	hit, _, err := cm.HasValidCache(path, info)
	if err != nil {
		t.Fatalf("HasValidCache failed: %v", err)
	}
	if hit {
		t.Error("Expected corrupt cache entry to count as a miss")
	}
}

func TestCleanOldCache(t *testing.T) {
	dir := t.TempDir()
	cm := NewCacheManager(dir)
	if err := cm.EnsureCacheDir(); err != nil {
		t.Fatalf("EnsureCacheDir failed: %v", err)
	}

	path, info := writeSourceFile(t, dir, "movie.mkv", "video bytes")
	if err := cm.SaveCache(path, info, &ProbeResult{}); err != nil {
		t.Fatalf("SaveCache failed: %v", err)
	}

	cacheFile := cm.cacheFilePath(path)
	old := time.Now().Add(-90 * 24 * time.Hour)
	if err := os.Chtimes(cacheFile, old, old); err != nil {
		t.Fatalf("Failed to age cache file: %v", err)
	}

	if err := cm.CleanOldCache(60 * 24 * time.Hour); err != nil {
		t.Fatalf("CleanOldCache failed: %v", err)
	}

	if _, err := os.Stat(cacheFile); !os.IsNotExist(err) {
		t.Error("Expected aged cache file to be removed")
	}
}
