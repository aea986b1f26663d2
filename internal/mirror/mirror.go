package mirror

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/temirov/stdlibsync/internal/filesystem"
)

const (
	fileSystemMissingMessageConstant       = "mirror filesystem not configured"
	sourceNotDirectoryTemplateConstant     = "mirror source %s is not a directory"
	removeDestinationErrorTemplateConstant = "failed to remove %s: %w"
	createParentErrorTemplateConstant      = "failed to create parent directory %s: %w"
	copyTreeErrorTemplateConstant          = "failed to copy %s to %s: %w"
	copyFileErrorTemplateConstant          = "failed to copy file %s: %w"
	relativePathErrorTemplateConstant      = "failed to resolve %s relative to %s: %w"
	parentDirectoryPermissionsConstant     = fs.FileMode(0o755)
	ownerDirectoryAccessBitsConstant       = fs.FileMode(0o700)
	ownerFileAccessBitsConstant            = fs.FileMode(0o600)
)

// ErrFileSystemNotConfigured indicates the mirror was constructed without a filesystem.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// Result describes a completed replication.
type Result struct {
	SourcePath         string
	DestinationPath    string
	DestinationRemoved bool
	FilesCopied        int
	DirectoriesCopied  int
}

// Mirror performs full delete-and-recopy replication.
type Mirror struct {
	fileSystem *filesystem.FileSystem
}

// New constructs a Mirror over the provided filesystem.
func New(fileSystem *filesystem.FileSystem) (*Mirror, error) {
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	return &Mirror{fileSystem: fileSystem}, nil
}

// Replicate removes destinationPath when it exists, creates its parent chain,
// and copies sourcePath into it. File bytes, permission bits and modification
// times are preserved; symbolic links are copied as their targets.
func (mirror *Mirror) Replicate(sourcePath string, destinationPath string) (Result, error) {
	sourceInfo, statError := mirror.fileSystem.Stat(sourcePath)
	if statError != nil {
		return Result{}, statError
	}
	if !sourceInfo.IsDir() {
		return Result{}, fmt.Errorf(sourceNotDirectoryTemplateConstant, sourcePath)
	}

	result := Result{SourcePath: sourcePath, DestinationPath: destinationPath}

	destinationExists, existsError := mirror.fileSystem.Exists(destinationPath)
	if existsError != nil {
		return Result{}, existsError
	}
	if destinationExists {
		if removeError := mirror.fileSystem.RemoveAll(destinationPath); removeError != nil {
			return Result{}, fmt.Errorf(removeDestinationErrorTemplateConstant, destinationPath, removeError)
		}
		result.DestinationRemoved = true
	}

	parentDirectory := filepath.Dir(destinationPath)
	if mkdirError := mirror.fileSystem.MkdirAll(parentDirectory, parentDirectoryPermissionsConstant); mkdirError != nil {
		return Result{}, fmt.Errorf(createParentErrorTemplateConstant, parentDirectory, mkdirError)
	}

	var copiedDirectories []copiedDirectory
	walkError := mirror.fileSystem.Walk(sourcePath, func(path string, info fs.FileInfo) error {
		relativePath, relativeError := filepath.Rel(sourcePath, path)
		if relativeError != nil {
			return fmt.Errorf(relativePathErrorTemplateConstant, path, sourcePath, relativeError)
		}
		targetPath := filepath.Join(destinationPath, relativePath)

		if info.IsDir() {
			// Created writable so children can be added; final bits are applied afterwards.
			if mkdirError := mirror.fileSystem.MkdirAll(targetPath, info.Mode().Perm()|ownerDirectoryAccessBitsConstant); mkdirError != nil {
				return mkdirError
			}
			copiedDirectories = append(copiedDirectories, copiedDirectory{path: targetPath, info: info})
			result.DirectoriesCopied++
			return nil
		}

		if copyError := mirror.copyFile(path, targetPath, info); copyError != nil {
			return fmt.Errorf(copyFileErrorTemplateConstant, path, copyError)
		}
		result.FilesCopied++
		return nil
	})
	if walkError != nil {
		return Result{}, fmt.Errorf(copyTreeErrorTemplateConstant, sourcePath, destinationPath, walkError)
	}

	for index := len(copiedDirectories) - 1; index >= 0; index-- {
		directory := copiedDirectories[index]
		if finalizeError := mirror.applyMetadata(directory.path, directory.info); finalizeError != nil {
			return Result{}, fmt.Errorf(copyTreeErrorTemplateConstant, sourcePath, destinationPath, finalizeError)
		}
	}

	return result, nil
}

type copiedDirectory struct {
	path string
	info fs.FileInfo
}

func (mirror *Mirror) copyFile(sourcePath string, targetPath string, info fs.FileInfo) error {
	sourceFile, openError := mirror.fileSystem.Open(sourcePath)
	if openError != nil {
		return openError
	}
	defer sourceFile.Close()

	targetFile, createError := mirror.fileSystem.Create(targetPath, info.Mode().Perm()|ownerFileAccessBitsConstant)
	if createError != nil {
		return createError
	}

	if _, copyError := io.Copy(targetFile, sourceFile); copyError != nil {
		targetFile.Close()
		return copyError
	}
	if closeError := targetFile.Close(); closeError != nil {
		return closeError
	}

	return mirror.applyMetadata(targetPath, info)
}

func (mirror *Mirror) applyMetadata(targetPath string, info fs.FileInfo) error {
	if chmodError := mirror.fileSystem.Chmod(targetPath, info.Mode().Perm()); chmodError != nil {
		return chmodError
	}
	return mirror.fileSystem.Chtimes(targetPath, info.ModTime(), info.ModTime())
}
