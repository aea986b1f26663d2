package stdlibsync

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/stdlibsync/internal/archive"
	"github.com/temirov/stdlibsync/internal/mirror"
)

const (
	// CommitMessageConstant is the message recorded for every sync commit.
	CommitMessageConstant = "Sync stdlib and docs from modular submodule"

	updatingSubmoduleNarrationConstant  = "Step 1: Updating git submodule..."
	skippingSubmoduleNarrationConstant  = "Step 1: Skipping submodule update."
	copyingDirectoriesNarrationConstant = "\nStep 2: Copying directories..."
	deletingDestinationTemplateConstant = "Deleting existing %s..."
	copyingTreeTemplateConstant         = "Copying %s to %s..."
	creatingArchiveNarrationConstant    = "\nStep 3: Creating zip artifact..."
	skippingCommitNarrationConstant     = "Skipping git commit."
	makingCommitNarrationConstant       = "\nStep 4: Making git commit..."
	noChangesNarrationConstant          = "No changes to commit."
	syncCompleteNarrationConstant       = "\nSync complete!"
	inspectPathErrorTemplateConstant    = "failed to inspect %s: %w"
	mirrorErrorTemplateConstant         = "failed to mirror %s: %w"
	archiveErrorTemplateConstant        = "failed to create archive %s: %w"
	missingSourceLogMessageConstant     = "source directory missing"
	mirroredTreeLogMessageConstant      = "mirrored directory tree"
	archiveCreatedLogMessageConstant    = "created archive"
	stagingFailedLogMessageConstant     = "staging failed; continuing"
	statusFailedLogMessageConstant      = "working tree status unavailable; treating as clean"
	syncFinishedLogMessageConstant      = "sync finished"
	syncFailedLogMessageConstant        = "sync failed"
	logFieldPathConstant                = "path"
	logFieldSourceConstant              = "source"
	logFieldDestinationConstant         = "destination"
	logFieldFilesCopiedConstant         = "files_copied"
	logFieldDirectoriesCopiedConstant   = "directories_copied"
	logFieldEntryCountConstant          = "entry_count"
	logFieldOutcomeConstant             = "outcome"
	logFieldStagesConstant              = "stages"
	logFieldRepositoryRootConstant      = "repository_root"
)

// RepositoryManager exposes the git operations a sync performs.
type RepositoryManager interface {
	UpdateSubmodules(executionContext context.Context, repositoryPath string) error
	StagePaths(executionContext context.Context, repositoryPath string, paths []string) error
	WorkingTreeStatus(executionContext context.Context, repositoryPath string, paths []string) (string, error)
	Commit(executionContext context.Context, repositoryPath string, message string) error
}

// TreeMirror replaces a destination directory with a copy of a source directory.
type TreeMirror interface {
	Replicate(sourcePath string, destinationPath string) (mirror.Result, error)
}

// Archiver packages a directory into an archive file.
type Archiver interface {
	Create(sourceDirectory string, archivePath string) (archive.Result, error)
}

// PathInspector reports whether a path exists and whether it is a directory.
type PathInspector interface {
	Exists(path string) (bool, error)
	IsDirectory(path string) (bool, error)
}

// Dependencies enumerates collaborators required by the service.
type Dependencies struct {
	RepositoryManager RepositoryManager
	TreeMirror        TreeMirror
	Archiver          Archiver
	PathInspector     PathInspector
	Logger            *zap.Logger
	Output            io.Writer
}

// Options configure a single sync run.
type Options struct {
	RepositoryRoot      string
	SkipSubmoduleUpdate bool
	SkipCommit          bool
}

// Result records the stages a sync run traversed.
type Result struct {
	Stages  []Stage
	Outcome Stage
}

func (result *Result) record(stage Stage) {
	result.Stages = append(result.Stages, stage)
}

// Service runs the submodule update, mirror, archive, and commit steps in order.
type Service struct {
	repositoryManager RepositoryManager
	treeMirror        TreeMirror
	archiver          Archiver
	pathInspector     PathInspector
	logger            *zap.Logger
	output            io.Writer
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if dependencies.TreeMirror == nil {
		return nil, ErrTreeMirrorNotConfigured
	}
	if dependencies.Archiver == nil {
		return nil, ErrArchiverNotConfigured
	}
	if dependencies.PathInspector == nil {
		return nil, ErrPathInspectorNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	output := dependencies.Output
	if output == nil {
		output = io.Discard
	}

	return &Service{
		repositoryManager: dependencies.RepositoryManager,
		treeMirror:        dependencies.TreeMirror,
		archiver:          dependencies.Archiver,
		pathInspector:     dependencies.PathInspector,
		logger:            logger,
		output:            output,
	}, nil
}

// Run executes one sync. Completed steps are not rolled back when a later step fails.
func (service *Service) Run(executionContext context.Context, options Options) (Result, error) {
	repositoryRoot := strings.TrimSpace(options.RepositoryRoot)
	if len(repositoryRoot) == 0 {
		return Result{}, ErrRepositoryRootRequired
	}
	layout := NewLayout(repositoryRoot)

	result := Result{Stages: []Stage{StageStart}}
	runError := service.run(executionContext, layout, options, &result)
	if runError != nil {
		result.record(StageFailed)
		result.Outcome = StageFailed
		service.logger.Error(
			syncFailedLogMessageConstant,
			zap.String(logFieldRepositoryRootConstant, repositoryRoot),
			zap.Strings(logFieldStagesConstant, stageNames(result.Stages)),
			zap.Error(runError),
		)
		return result, runError
	}

	result.record(StageDone)
	service.logger.Info(
		syncFinishedLogMessageConstant,
		zap.String(logFieldRepositoryRootConstant, repositoryRoot),
		zap.String(logFieldOutcomeConstant, string(result.Outcome)),
	)
	return result, nil
}

func (service *Service) run(executionContext context.Context, layout Layout, options Options, result *Result) error {
	if options.SkipSubmoduleUpdate {
		service.narrate(skippingSubmoduleNarrationConstant)
		result.record(StageSubmoduleUpdateSkipped)
	} else {
		service.narrate(updatingSubmoduleNarrationConstant)
		if updateError := service.repositoryManager.UpdateSubmodules(executionContext, layout.RepositoryRoot); updateError != nil {
			return updateError
		}
		result.record(StageSubmoduleUpdated)
	}

	service.narrate(copyingDirectoriesNarrationConstant)
	if mirrorError := service.mirrorTrees(layout); mirrorError != nil {
		return mirrorError
	}
	result.record(StageMirrored)

	service.narrate(creatingArchiveNarrationConstant)
	archiveResult, archiveError := service.archiver.Create(layout.DestinationStandardLibraryPath, layout.ArchivePath)
	if archiveError != nil {
		return fmt.Errorf(archiveErrorTemplateConstant, layout.ArchivePath, archiveError)
	}
	service.logger.Debug(
		archiveCreatedLogMessageConstant,
		zap.String(logFieldPathConstant, archiveResult.ArchivePath),
		zap.Int(logFieldEntryCountConstant, len(archiveResult.EntryNames)),
	)
	result.record(StageArchived)

	if options.SkipCommit {
		service.narrate(skippingCommitNarrationConstant)
		service.narrate(syncCompleteNarrationConstant)
		result.record(StageCommitSkipped)
		result.Outcome = StageCommitSkipped
		return nil
	}

	service.narrate(makingCommitNarrationConstant)
	stagedPaths := layout.StagedPaths()
	if stageError := service.repositoryManager.StagePaths(executionContext, layout.RepositoryRoot, stagedPaths); stageError != nil {
		service.logger.Warn(stagingFailedLogMessageConstant, zap.Strings(logFieldPathConstant, stagedPaths), zap.Error(stageError))
	}

	status, statusError := service.repositoryManager.WorkingTreeStatus(executionContext, layout.RepositoryRoot, stagedPaths)
	if statusError != nil {
		service.logger.Warn(statusFailedLogMessageConstant, zap.Error(statusError))
		status = ""
	}
	if len(strings.TrimSpace(status)) == 0 {
		service.narrate(noChangesNarrationConstant)
		result.record(StageNoChanges)
		result.Outcome = StageNoChanges
		return nil
	}

	if commitError := service.repositoryManager.Commit(executionContext, layout.RepositoryRoot, CommitMessageConstant); commitError != nil {
		return commitError
	}
	service.narrate(syncCompleteNarrationConstant)
	result.record(StageCommitted)
	result.Outcome = StageCommitted
	return nil
}

// mirrorTrees verifies every source before any destination is touched.
func (service *Service) mirrorTrees(layout Layout) error {
	pairs := layout.mirrorPairs()

	for _, pair := range pairs {
		sourceIsDirectory, inspectError := service.pathInspector.IsDirectory(pair.sourcePath)
		if inspectError != nil {
			return fmt.Errorf(inspectPathErrorTemplateConstant, pair.sourcePath, inspectError)
		}
		if !sourceIsDirectory {
			service.logger.Error(missingSourceLogMessageConstant, zap.String(logFieldPathConstant, pair.sourcePath))
			return MissingSourceDirectoryError{Path: pair.sourcePath}
		}
	}

	for _, pair := range pairs {
		destinationExists, inspectError := service.pathInspector.Exists(pair.destinationPath)
		if inspectError != nil {
			return fmt.Errorf(inspectPathErrorTemplateConstant, pair.destinationPath, inspectError)
		}
		if destinationExists {
			service.narratef(deletingDestinationTemplateConstant, pair.destinationPath)
		}
	}

	for _, pair := range pairs {
		service.narratef(copyingTreeTemplateConstant, pair.sourcePath, pair.destinationPath)
		mirrorResult, mirrorError := service.treeMirror.Replicate(pair.sourcePath, pair.destinationPath)
		if mirrorError != nil {
			return fmt.Errorf(mirrorErrorTemplateConstant, pair.sourcePath, mirrorError)
		}
		service.logger.Debug(
			mirroredTreeLogMessageConstant,
			zap.String(logFieldSourceConstant, mirrorResult.SourcePath),
			zap.String(logFieldDestinationConstant, mirrorResult.DestinationPath),
			zap.Int(logFieldFilesCopiedConstant, mirrorResult.FilesCopied),
			zap.Int(logFieldDirectoriesCopiedConstant, mirrorResult.DirectoriesCopied),
		)
	}

	return nil
}

func (service *Service) narrate(line string) {
	fmt.Fprintln(service.output, line)
}

func (service *Service) narratef(template string, arguments ...any) {
	fmt.Fprintf(service.output, template+"\n", arguments...)
}

func stageNames(stages []Stage) []string {
	names := make([]string, 0, len(stages))
	for _, stage := range stages {
		names = append(names, string(stage))
	}
	return names
}
