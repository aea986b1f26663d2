package stdlibsync

import (
	"path"
	"path/filepath"
)

const (
	submoduleDirectoryNameConstant       = "modular"
	mojoDirectoryNameConstant            = "mojo"
	standardLibraryDirectoryNameConstant = "stdlib"
	documentationDirectoryNameConstant   = "docs"
	archiveFileNameConstant              = "mojo-stdlib.zip"
)

// Layout enumerates the paths a sync reads from and writes to, derived from the repository root.
type Layout struct {
	RepositoryRoot                 string
	SourceStandardLibraryPath      string
	SourceDocumentationPath        string
	DestinationStandardLibraryPath string
	DestinationDocumentationPath   string
	ArchivePath                    string
}

// NewLayout derives every sync path from the repository root.
func NewLayout(repositoryRoot string) Layout {
	return Layout{
		RepositoryRoot:                 repositoryRoot,
		SourceStandardLibraryPath:      filepath.Join(repositoryRoot, submoduleDirectoryNameConstant, mojoDirectoryNameConstant, standardLibraryDirectoryNameConstant),
		SourceDocumentationPath:        filepath.Join(repositoryRoot, submoduleDirectoryNameConstant, mojoDirectoryNameConstant, documentationDirectoryNameConstant),
		DestinationStandardLibraryPath: filepath.Join(repositoryRoot, mojoDirectoryNameConstant, standardLibraryDirectoryNameConstant),
		DestinationDocumentationPath:   filepath.Join(repositoryRoot, mojoDirectoryNameConstant, documentationDirectoryNameConstant),
		ArchivePath:                    filepath.Join(repositoryRoot, archiveFileNameConstant),
	}
}

// StagedPaths lists the repository-relative paths staged and inspected before committing.
func (layout Layout) StagedPaths() []string {
	return []string{
		path.Join(mojoDirectoryNameConstant, standardLibraryDirectoryNameConstant),
		path.Join(mojoDirectoryNameConstant, documentationDirectoryNameConstant),
		archiveFileNameConstant,
	}
}

type mirrorPair struct {
	sourcePath      string
	destinationPath string
}

func (layout Layout) mirrorPairs() []mirrorPair {
	return []mirrorPair{
		{sourcePath: layout.SourceStandardLibraryPath, destinationPath: layout.DestinationStandardLibraryPath},
		{sourcePath: layout.SourceDocumentationPath, destinationPath: layout.DestinationDocumentationPath},
	}
}
