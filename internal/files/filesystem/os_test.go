package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_Open_ReadsContent(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "listings.csv")
	expected := "id,name\n1,flat\n"
	os.WriteFile(filePath, []byte(expected), 0644)

	p := NewOSFileSystem()

	rc, err := p.Open(filePath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(data) != expected {
		t.Errorf("content = %q, want %q", string(data), expected)
	}
}

func TestOSFileSystem_Open_Nonexistent(t *testing.T) {
	p := NewOSFileSystem()

	_, err := p.Open(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open(nonexistent) error = %v, want fs.ErrNotExist", err)
	}
}

func TestOSFileSystem_Open_Directory(t *testing.T) {
	p := NewOSFileSystem()

	_, err := p.Open(t.TempDir())
	if err == nil {
		t.Error("Open(directory) should return error")
	}
}

func TestOSFileSystem_Size(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "hosts.csv")
	os.WriteFile(filePath, []byte("id\n1\n"), 0644)

	size, err := NewOSFileSystem().Size(filePath)
	if err != nil {
		t.Fatalf("Size() error = %v", err)
	}
	if size != 5 {
		t.Errorf("Size() = %d, want 5", size)
	}
}

func TestOSFileSystem_ReadDir(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "listings.csv"), []byte("id\n"), 0644)
	os.WriteFile(filepath.Join(dir, "hosts.csv"), []byte("id\n1\n"), 0644)
	os.Mkdir(filepath.Join(dir, "archive"), 0755)

	infos, err := NewOSFileSystem().ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("ReadDir() returned %d entries, want 3", len(infos))
	}
	if infos[0].Name() != "archive" || !infos[0].IsDir() {
		t.Errorf("first entry = %s (dir=%v), want archive directory", infos[0].Name(), infos[0].IsDir())
	}
	if infos[1].Name() != "hosts.csv" || infos[1].Size() != 5 {
		t.Errorf("second entry = %s (%d bytes), want hosts.csv (5 bytes)", infos[1].Name(), infos[1].Size())
	}

	if _, err := NewOSFileSystem().ReadDir(filepath.Join(dir, "missing")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}
