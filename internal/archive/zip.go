package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/temirov/stdlibsync/internal/filesystem"
)

const (
	fileSystemMissingMessageConstant     = "archiver filesystem not configured"
	sourceNotDirectoryTemplateConstant   = "archive source %s is not a directory"
	removeArchiveErrorTemplateConstant   = "failed to remove existing archive %s: %w"
	createArchiveErrorTemplateConstant   = "failed to create archive %s: %w"
	writeEntryErrorTemplateConstant      = "failed to add %s to archive: %w"
	finalizeArchiveErrorTemplateConstant = "failed to finalize archive %s: %w"
	discardArchiveErrorTemplateConstant  = "failed to remove partial archive %s: %w"
	archiveFilePermissionsConstant       = fs.FileMode(0o644)
	directoryEntrySuffixConstant         = "/"
)

// ErrFileSystemNotConfigured indicates the archiver was constructed without a filesystem.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// Result describes a written archive.
type Result struct {
	ArchivePath     string
	ReplacedArchive bool
	EntryNames      []string
}

// ZipArchiver writes deflated zip archives of directory trees.
type ZipArchiver struct {
	fileSystem *filesystem.FileSystem
}

// NewZipArchiver constructs a ZipArchiver over the provided filesystem.
func NewZipArchiver(fileSystem *filesystem.FileSystem) (*ZipArchiver, error) {
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	return &ZipArchiver{fileSystem: fileSystem}, nil
}

// Create removes any file at archivePath and writes a new archive of
// sourceDirectory. Entry names are prefixed with the base name of
// sourceDirectory and use forward slashes; directories get trailing-slash entries.
func (archiver *ZipArchiver) Create(sourceDirectory string, archivePath string) (Result, error) {
	sourceInfo, statError := archiver.fileSystem.Stat(sourceDirectory)
	if statError != nil {
		return Result{}, statError
	}
	if !sourceInfo.IsDir() {
		return Result{}, fmt.Errorf(sourceNotDirectoryTemplateConstant, sourceDirectory)
	}

	result := Result{ArchivePath: archivePath}

	archiveExists, existsError := archiver.fileSystem.Exists(archivePath)
	if existsError != nil {
		return Result{}, existsError
	}
	if archiveExists {
		if removeError := archiver.fileSystem.Remove(archivePath); removeError != nil {
			return Result{}, fmt.Errorf(removeArchiveErrorTemplateConstant, archivePath, removeError)
		}
		result.ReplacedArchive = true
	}

	archiveFile, createError := archiver.fileSystem.Create(archivePath, archiveFilePermissionsConstant)
	if createError != nil {
		return Result{}, fmt.Errorf(createArchiveErrorTemplateConstant, archivePath, createError)
	}

	zipWriter := zip.NewWriter(archiveFile)
	archiveRoot := filepath.Dir(filepath.Clean(sourceDirectory))
	walkError := archiver.fileSystem.Walk(sourceDirectory, func(entryPath string, info fs.FileInfo) error {
		entryName, nameError := archiveEntryName(archiveRoot, entryPath, info.IsDir())
		if nameError != nil {
			return nameError
		}
		if writeError := archiver.writeEntry(zipWriter, entryPath, entryName, info); writeError != nil {
			return fmt.Errorf(writeEntryErrorTemplateConstant, entryPath, writeError)
		}
		result.EntryNames = append(result.EntryNames, entryName)
		return nil
	})

	closeWriterError := zipWriter.Close()
	closeFileError := archiveFile.Close()
	if walkError != nil {
		return Result{}, archiver.discardPartialArchive(archivePath, walkError)
	}
	if finalizeError := errors.Join(closeWriterError, closeFileError); finalizeError != nil {
		return Result{}, archiver.discardPartialArchive(archivePath, fmt.Errorf(finalizeArchiveErrorTemplateConstant, archivePath, finalizeError))
	}

	return result, nil
}

// discardPartialArchive removes the incomplete archive at archivePath and returns cause.
func (archiver *ZipArchiver) discardPartialArchive(archivePath string, cause error) error {
	removeError := archiver.fileSystem.Remove(archivePath)
	if removeError == nil || errors.Is(removeError, fs.ErrNotExist) {
		return cause
	}
	return errors.Join(cause, fmt.Errorf(discardArchiveErrorTemplateConstant, archivePath, removeError))
}

func (archiver *ZipArchiver) writeEntry(zipWriter *zip.Writer, entryPath string, entryName string, info fs.FileInfo) error {
	header, headerError := zip.FileInfoHeader(info)
	if headerError != nil {
		return headerError
	}
	header.Name = entryName
	if info.IsDir() {
		header.Method = zip.Store
		_, createError := zipWriter.CreateHeader(header)
		return createError
	}
	header.Method = zip.Deflate

	entryWriter, createError := zipWriter.CreateHeader(header)
	if createError != nil {
		return createError
	}

	sourceFile, openError := archiver.fileSystem.Open(entryPath)
	if openError != nil {
		return openError
	}
	defer sourceFile.Close()

	_, copyError := io.Copy(entryWriter, sourceFile)
	return copyError
}

func archiveEntryName(archiveRoot string, entryPath string, isDirectory bool) (string, error) {
	relativePath, relativeError := filepath.Rel(archiveRoot, entryPath)
	if relativeError != nil {
		return "", relativeError
	}
	entryName := path.Clean(filepath.ToSlash(relativePath))
	if isDirectory {
		entryName += directoryEntrySuffixConstant
	}
	return entryName, nil
}
