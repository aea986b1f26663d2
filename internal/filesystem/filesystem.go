package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

const walkErrorTemplateConstant = "failed to walk %s: %w"

// FileSystem exposes afero-backed filesystem operations.
type FileSystem struct {
	fileSystem afero.Fs
}

// WalkFunc is invoked for the walk root and every descendant, directories before their contents.
type WalkFunc func(path string, info fs.FileInfo) error

// New wraps the provided afero filesystem; a nil filesystem selects the operating system.
func New(fileSystem afero.Fs) *FileSystem {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	return &FileSystem{fileSystem: fileSystem}
}

// NewOSFileSystem constructs a FileSystem backed by the operating system.
func NewOSFileSystem() *FileSystem {
	return New(afero.NewOsFs())
}

// Abs resolves an absolute, cleaned path.
func (fileSystem *FileSystem) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

// Exists reports whether any filesystem entry is present at path.
func (fileSystem *FileSystem) Exists(path string) (bool, error) {
	_, statError := fileSystem.fileSystem.Stat(path)
	if statError == nil {
		return true, nil
	}
	if errors.Is(statError, fs.ErrNotExist) {
		return false, nil
	}
	return false, statError
}

// IsDirectory reports whether path resolves to a directory; a missing path is not an error.
func (fileSystem *FileSystem) IsDirectory(path string) (bool, error) {
	info, statError := fileSystem.fileSystem.Stat(path)
	if statError == nil {
		return info.IsDir(), nil
	}
	if errors.Is(statError, fs.ErrNotExist) {
		return false, nil
	}
	return false, statError
}

// Stat retrieves metadata, following symbolic links.
func (fileSystem *FileSystem) Stat(path string) (fs.FileInfo, error) {
	return fileSystem.fileSystem.Stat(path)
}

// RemoveAll deletes path and any children it contains.
func (fileSystem *FileSystem) RemoveAll(path string) error {
	return fileSystem.fileSystem.RemoveAll(path)
}

// Remove deletes a single file or empty directory.
func (fileSystem *FileSystem) Remove(path string) error {
	return fileSystem.fileSystem.Remove(path)
}

// MkdirAll ensures a directory hierarchy exists with the provided permissions.
func (fileSystem *FileSystem) MkdirAll(path string, permissions fs.FileMode) error {
	return fileSystem.fileSystem.MkdirAll(path, permissions)
}

// Open opens a file for reading.
func (fileSystem *FileSystem) Open(path string) (afero.File, error) {
	return fileSystem.fileSystem.Open(path)
}

// Create creates or truncates a file with the given permissions.
func (fileSystem *FileSystem) Create(path string, permissions fs.FileMode) (afero.File, error) {
	return fileSystem.fileSystem.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, permissions)
}

// Chmod changes the permission bits of path.
func (fileSystem *FileSystem) Chmod(path string, permissions fs.FileMode) error {
	return fileSystem.fileSystem.Chmod(path, permissions)
}

// Chtimes changes the access and modification times of path.
func (fileSystem *FileSystem) Chtimes(path string, accessTime time.Time, modificationTime time.Time) error {
	return fileSystem.fileSystem.Chtimes(path, accessTime, modificationTime)
}

// ReadFile returns the full contents of path.
func (fileSystem *FileSystem) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(fileSystem.fileSystem, path)
}

// WriteFile writes data to path, creating it when necessary.
func (fileSystem *FileSystem) WriteFile(path string, data []byte, permissions fs.FileMode) error {
	return afero.WriteFile(fileSystem.fileSystem, path, data, permissions)
}

// Walk visits root and its descendants in lexical order. Symbolic links are
// resolved, so linked files report their target's metadata and linked
// directories are descended into.
func (fileSystem *FileSystem) Walk(root string, visit WalkFunc) error {
	rootInfo, statError := fileSystem.fileSystem.Stat(root)
	if statError != nil {
		return fmt.Errorf(walkErrorTemplateConstant, root, statError)
	}
	return fileSystem.walk(root, rootInfo, visit)
}

func (fileSystem *FileSystem) walk(path string, info fs.FileInfo, visit WalkFunc) error {
	if visitError := visit(path, info); visitError != nil {
		return visitError
	}
	if !info.IsDir() {
		return nil
	}

	entries, readError := afero.ReadDir(fileSystem.fileSystem, path)
	if readError != nil {
		return fmt.Errorf(walkErrorTemplateConstant, path, readError)
	}

	for _, entry := range entries {
		childPath := filepath.Join(path, entry.Name())
		childInfo, statError := fileSystem.fileSystem.Stat(childPath)
		if statError != nil {
			return fmt.Errorf(walkErrorTemplateConstant, childPath, statError)
		}
		if walkError := fileSystem.walk(childPath, childInfo, visit); walkError != nil {
			return walkError
		}
	}
	return nil
}
