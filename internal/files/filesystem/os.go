package filesystem

import (
	"errors"
	"io"
	"os"
)

var (
	errIsDirectory    = errors.New("is a directory")
	errIsNotDirectory = errors.New("not a directory")
)

// OSFileSystem implements FileSystemProvider for the OS filesystem
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem provider
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (p *OSFileSystem) Open(path string) (io.ReadCloser, error) {
	return openRegular(path, p.Stat, func(path string) (io.ReadCloser, error) {
		return os.Open(path)
	})
}

func (p *OSFileSystem) Size(path string) (int64, error) {
	info, err := p.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (p *OSFileSystem) Stat(path string) (FileInfo, error) {
	return os.Stat(path)
}

func (p *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (p *OSFileSystem) ReadDir(path string) ([]FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	infos := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}
