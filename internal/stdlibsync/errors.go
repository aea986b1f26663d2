package stdlibsync

import (
	"errors"
	"fmt"
)

const (
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	treeMirrorMissingMessageConstant        = "tree mirror not configured"
	archiverMissingMessageConstant          = "archiver not configured"
	pathInspectorMissingMessageConstant     = "path inspector not configured"
	repositoryRootRequiredMessageConstant   = "repository root must be provided"
	missingSourceDirectoryTemplateConstant  = "source directory %s does not exist"
)

// ErrRepositoryManagerNotConfigured indicates the git repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// ErrTreeMirrorNotConfigured indicates the tree mirror dependency was missing.
var ErrTreeMirrorNotConfigured = errors.New(treeMirrorMissingMessageConstant)

// ErrArchiverNotConfigured indicates the archiver dependency was missing.
var ErrArchiverNotConfigured = errors.New(archiverMissingMessageConstant)

// ErrPathInspectorNotConfigured indicates the path inspector dependency was missing.
var ErrPathInspectorNotConfigured = errors.New(pathInspectorMissingMessageConstant)

// ErrRepositoryRootRequired indicates the layout carried no repository root.
var ErrRepositoryRootRequired = errors.New(repositoryRootRequiredMessageConstant)

// MissingSourceDirectoryError reports a submodule directory that is absent before mirroring.
type MissingSourceDirectoryError struct {
	Path string
}

// Error describes the missing directory.
func (missing MissingSourceDirectoryError) Error() string {
	return fmt.Sprintf(missingSourceDirectoryTemplateConstant, missing.Path)
}
