// Package osfilesystem provides the real filesystem adapter.
package osfilesystem

import (
	"os"

	"github.com/ravendarque/beyond-borders/pkg/ports"
)

// FileSystem implements ports.FileSystem using the os package.
type FileSystem struct{}

// New creates a new FileSystem.
func New() *FileSystem {
	return &FileSystem{}
}

// ReadFile reads the entire file at path.
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to path, creating or truncating it.
func (fs *FileSystem) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// MkdirAll creates a directory and any missing parents.
func (fs *FileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

// Ensure FileSystem implements ports.FileSystem
var _ ports.FileSystem = (*FileSystem)(nil)
