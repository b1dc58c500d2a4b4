package client

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileSource is an upload attached to request Data
type FileSource interface {
	// Name is the filename sent with the multipart part
	Name() string
	// Path identifies the source in logs
	Path() string
	ReadAll() ([]byte, error)
}

// File is a FileSource backed by a local path
type File struct {
	path string
}

// NewFile references the file at path without touching the filesystem
func NewFile(path string) *File {
	return &File{path: path}
}

// OpenFile references the file at path after checking it is a regular file
func OpenFile(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("file not found: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return NewFile(path), nil
}

func (f *File) Name() string { return filepath.Base(f.path) }
func (f *File) Path() string { return f.path }

// ReadAll reads the whole file
func (f *File) ReadAll() ([]byte, error) {
	return os.ReadFile(f.path)
}

// MemoryFile is a FileSource held in memory
type MemoryFile struct {
	Filename string
	Contents []byte
}

func (f *MemoryFile) Name() string { return f.Filename }
func (f *MemoryFile) Path() string { return "memory://" + f.Filename }

// ReadAll returns a copy of the contents
func (f *MemoryFile) ReadAll() ([]byte, error) {
	out := make([]byte, len(f.Contents))
	copy(out, f.Contents)
	return out, nil
}
