package fileloader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Directory discovery for the file picker. Each discovered file is still
// loaded individually; there is no multi-file merging.

// DirectoryInfo contains metadata about a discovered directory
type DirectoryInfo struct {
	RootPath   string   // Absolute path to directory
	Files      []string // Discovered file paths (absolute), in glob order
	TotalFiles int      // Total files found
	TotalSize  int64    // Total size in bytes
}

// DirectoryDiscoveryOptions controls file discovery behavior
type DirectoryDiscoveryOptions struct {
	Pattern  string // Glob pattern filter (e.g., "**/*.csv", "*.json.gz")
	MaxFiles int    // Maximum files to include (0 = unlimited)
}

// IsDirectory checks if the path is a directory
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// DiscoverFiles finds all files matching the pattern in a directory.
// A pattern is required so the picker only offers files of one data type.
// Uses the doublestar library for pattern matching and directory traversal.
func DiscoverFiles(dirPath string, options DirectoryDiscoveryOptions) (*DirectoryInfo, error) {
	if options.Pattern == "" {
		return nil, fmt.Errorf("file pattern is required (e.g., *.csv, **/*.json.gz)")
	}

	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	fullPattern := filepath.Join(absPath, options.Pattern)
	matches, err := doublestar.FilepathGlob(fullPattern)
	if err != nil {
		return nil, fmt.Errorf("pattern matching failed: %w", err)
	}

	var files []string
	var totalSize int64
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			continue // skip files we can't stat
		}
		if info.IsDir() {
			continue
		}

		files = append(files, match)
		totalSize += info.Size()

		if options.MaxFiles > 0 && len(files) >= options.MaxFiles {
			break
		}
	}

	return &DirectoryInfo{
		RootPath:   absPath,
		Files:      files,
		TotalFiles: len(files),
		TotalSize:  totalSize,
	}, nil
}
