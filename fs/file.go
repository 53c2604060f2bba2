// Package fs writes generated sitemaps to disk.
package fs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// File is a sitemap output file. Writes are atomic: content goes to a
// temporary file next to the target and is renamed into place.
type File struct {
	path string
}

// NewFile creates a File for the given path. The path is cleaned.
func NewFile(path string) *File {
	return &File{path: filepath.Clean(path)}
}

// Path returns the cleaned target path.
func (f *File) Path() string {
	return f.path
}

func (f *File) tempPath() string {
	return f.path + ".tmp"
}

// Checksum returns the xxhash64 checksum of the current file contents.
// The second return value is false if the file cannot be read.
func (f *File) Checksum() (uint64, bool) {
	r, err := os.Open(f.path)
	if err != nil {
		return 0, false
	}
	defer r.Close()

	sum, err := Checksum(r)
	if err != nil {
		return 0, false
	}
	return sum, true
}

// Write replaces the file with data. It reports false without touching the
// file if the existing content has the same checksum.
func (f *File) Write(data []byte) (bool, error) {
	if sum, ok := f.Checksum(); ok && sum == xxhash.Sum64(data) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return false, err
	}

	if err := os.WriteFile(f.tempPath(), data, 0644); err != nil {
		return false, err
	}

	if err := os.Rename(f.tempPath(), f.path); err != nil {
		_ = os.Remove(f.tempPath())
		return false, err
	}

	return true, nil
}

// Checksum returns the xxhash64 checksum of everything read from r.
func Checksum(r io.Reader) (uint64, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
