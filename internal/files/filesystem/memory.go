package filesystem

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryHandle tracks whether an opened file was closed.
type memoryHandle struct {
	*bytes.Reader
	fs     *MemoryFileSystem
	closed bool
}

func (h *memoryHandle) Close() error {
	h.fs.mu.Lock()
	defer h.fs.mu.Unlock()
	if h.closed {
		return fs.ErrClosed
	}
	h.closed = true
	h.fs.open--
	return nil
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// It counts open handles so tests can assert every file was released.
type MemoryFileSystem struct {
	mu     sync.Mutex
	files  map[string][]byte
	dirs   map[string]bool
	opened []string
	open   int
}

// NewMemoryFileSystem creates a new empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func normalize(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// AddFile adds a file and its parent directories.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	p := normalize(filePath)
	mfs.files[p] = []byte(content)
	for dir := path.Dir(p); ; dir = path.Dir(dir) {
		mfs.dirs[dir] = true
		if dir == "." || dir == "/" {
			break
		}
	}
}

// OpenedPaths returns the paths passed to successful Open calls, in order.
func (mfs *MemoryFileSystem) OpenedPaths() []string {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	return append([]string(nil), mfs.opened...)
}

// OpenHandles returns the number of handles not yet closed.
func (mfs *MemoryFileSystem) OpenHandles() int {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	return mfs.open
}

func (mfs *MemoryFileSystem) Open(filePath string) (io.ReadCloser, error) {
	return openRegular(filePath, mfs.Stat, func(filePath string) (io.ReadCloser, error) {
		mfs.mu.Lock()
		defer mfs.mu.Unlock()
		p := normalize(filePath)
		mfs.opened = append(mfs.opened, p)
		mfs.open++
		return &memoryHandle{Reader: bytes.NewReader(mfs.files[p]), fs: mfs}, nil
	})
}

func (mfs *MemoryFileSystem) Size(filePath string) (int64, error) {
	info, err := mfs.Stat(filePath)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (mfs *MemoryFileSystem) Stat(filePath string) (FileInfo, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	p := normalize(filePath)
	if content, ok := mfs.files[p]; ok {
		return &memoryFileInfo{name: path.Base(p), size: int64(len(content)), mode: 0644, modTime: time.Now()}, nil
	}
	if mfs.dirs[p] {
		return &memoryFileInfo{name: path.Base(p), mode: 0755 | fs.ModeDir, modTime: time.Now(), isDir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: filePath, Err: fs.ErrNotExist}
}

func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	rc, err := mfs.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	dir := normalize(dirPath)
	if !mfs.dirs[dir] {
		if _, ok := mfs.files[dir]; ok {
			return nil, &fs.PathError{Op: "readdir", Path: dirPath, Err: errIsNotDirectory}
		}
		return nil, &fs.PathError{Op: "readdir", Path: dirPath, Err: fs.ErrNotExist}
	}

	var infos []FileInfo
	for p, content := range mfs.files {
		if path.Dir(p) == dir {
			infos = append(infos, &memoryFileInfo{name: path.Base(p), size: int64(len(content)), mode: 0644, modTime: time.Now()})
		}
	}
	for d := range mfs.dirs {
		if d != dir && path.Dir(d) == dir {
			infos = append(infos, &memoryFileInfo{name: path.Base(d), mode: 0755 | fs.ModeDir, modTime: time.Now(), isDir: true})
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })
	return infos, nil
}
