package scanner

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/henri-ngl/learning-dbt/internal/checksum"
	"github.com/henri-ngl/learning-dbt/internal/files/filesystem"
	"github.com/henri-ngl/learning-dbt/pkg/bqseed"
)

// SourceFile describes one CSV file found in the resources directory.
type SourceFile struct {
	// Name is the logical name: the file name without the .csv extension
	Name      string
	Path      string
	SizeBytes int64
	// Checksum is the hex SHA-256 of the file content
	Checksum string
}

// Scanner discovers CSV sources.
// Scanner is safe for concurrent use as long as the filesystem provider is.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a scanner over fsProvider.
// Panics if fsProvider is nil.
func NewScanner(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{fsProvider: fsProvider}
}

// ScanResources lists the CSV files directly under <basePath>/resources,
// sorted by name. Subdirectories and other extensions are ignored.
func (s *Scanner) ScanResources(basePath string) ([]SourceFile, error) {
	dir := filepath.Join(basePath, bqseed.ResourcesDir)

	entries, err := s.fsProvider.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var files []SourceFile
	for _, entry := range entries {
		if entry.IsDir() || !isCSV(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		sum, size, err := s.digest(path)
		if err != nil {
			return nil, fmt.Errorf("failed to process file %s: %w", path, err)
		}

		files = append(files, SourceFile{
			Name:      strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			Path:      path,
			SizeBytes: size,
			Checksum:  sum,
		})
	}
	return files, nil
}

// digest streams the file through the checksum reader.
func (s *Scanner) digest(path string) (string, int64, error) {
	rc, err := s.fsProvider.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer rc.Close()

	r := checksum.NewReader(rc)
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", 0, err
	}
	return r.Sum(), r.BytesRead(), nil
}

// Unmapped returns the scanned files whose logical name no mapping uses.
func Unmapped(files []SourceFile, mappings []bqseed.FileTableMapping) []SourceFile {
	mapped := make(map[string]bool, len(mappings))
	for _, m := range mappings {
		mapped[m.Name] = true
	}

	var out []SourceFile
	for _, f := range files {
		if !mapped[f.Name] {
			out = append(out, f)
		}
	}
	return out
}

func isCSV(name string) bool {
	return strings.EqualFold(filepath.Ext(name), bqseed.SourceExtension)
}
