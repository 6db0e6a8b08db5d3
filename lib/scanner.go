package lib

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
)

// FileScanner enumerates candidate files under a set of root directories.
type FileScanner struct {
	roots []string
}

func NewFileScanner(roots []string) *FileScanner {
	return &FileScanner{roots: roots}
}

// ScanFiles recursively lists every regular file under the roots, in walk
// order. No extension filtering is applied; non-media files are rejected
// cheaply at probe time instead.
func (fs *FileScanner) ScanFiles(ctx context.Context) ([]string, error) {
	var files []string

	for _, root := range fs.roots {
		slog.Info("Scanning directory", "root", root)

		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				slog.Warn("Error accessing path", "path", path, "error", err)
				return nil // Continue walking despite individual file errors
			}

			if !info.Mode().IsRegular() {
				return nil
			}

			files = append(files, path)
			slog.Debug("Found file", "path", path, "size", info.Size())

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	slog.Info("File scan completed", "filesFound", len(files))
	return files, nil
}
