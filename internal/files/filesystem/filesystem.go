package filesystem

import (
	"io"
	"io/fs"

	"github.com/henri-ngl/learning-dbt/pkg/bqseed"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// FileSystemProvider opens source files as byte streams.
// Every handle returned by Open must be closed by the caller.
type FileSystemProvider interface {
	bqseed.FileOpener

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// ReadFile reads a whole file, used for small companion files such as bqseed.yaml
	ReadFile(path string) ([]byte, error)

	// ReadDir lists the direct children of a directory, sorted by name
	ReadDir(path string) ([]FileInfo, error)
}

// openRegular opens path with open and rejects directories.
func openRegular(path string, stat func(string) (FileInfo, error), open func(string) (io.ReadCloser, error)) (io.ReadCloser, error) {
	info, err := stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: path, Err: errIsDirectory}
	}
	return open(path)
}
