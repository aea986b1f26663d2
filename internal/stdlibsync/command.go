package stdlibsync

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/stdlibsync/internal/archive"
	"github.com/temirov/stdlibsync/internal/execshell"
	"github.com/temirov/stdlibsync/internal/filesystem"
	"github.com/temirov/stdlibsync/internal/gitrepo"
	"github.com/temirov/stdlibsync/internal/mirror"
	"github.com/temirov/stdlibsync/internal/ui"
	"github.com/temirov/stdlibsync/internal/utils"
	flagutils "github.com/temirov/stdlibsync/internal/utils/flags"
	pathutils "github.com/temirov/stdlibsync/internal/utils/path"
)

const (
	commandUseConstant                       = "stdlib-sync"
	commandShortDescriptionConstant          = "Sync the Mojo stdlib and docs from the modular submodule"
	commandLongDescriptionConstant           = "stdlib-sync updates the modular submodule, mirrors modular/mojo/stdlib and modular/mojo/docs into mojo/, packages mojo/stdlib as mojo-stdlib.zip, and commits the result."
	skipSubmoduleUpdateFlagNameConstant      = "skip-submodule-update"
	skipSubmoduleUpdateFlagUsageConstant     = "Skip updating the modular submodule."
	skipCommitFlagNameConstant               = "skip-commit"
	skipCommitFlagUsageConstant              = "Skip creating a git commit."
	repositoryRootFlagNameConstant           = "repository-root"
	repositoryRootFlagUsageConstant          = "Repository containing the modular submodule (defaults to the current directory)."
	repositoryRootResolutionTemplateConstant = "failed to resolve repository root %s: %w"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the stdlib-sync command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	CommandRunner                execshell.CommandRunner
	FileSystem                   *filesystem.FileSystem
}

// Build constructs the stdlib-sync command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	flagutils.AddToggleFlag(command.Flags(), nil, skipSubmoduleUpdateFlagNameConstant, false, skipSubmoduleUpdateFlagUsageConstant)
	flagutils.AddToggleFlag(command.Flags(), nil, skipCommitFlagNameConstant, false, skipCommitFlagUsageConstant)
	command.Flags().String(repositoryRootFlagNameConstant, "", repositoryRootFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	skipSubmoduleUpdate, skipSubmoduleUpdateError := flagutils.ToggleValue(command.Flags(), skipSubmoduleUpdateFlagNameConstant)
	if skipSubmoduleUpdateError != nil {
		return skipSubmoduleUpdateError
	}
	skipCommit, skipCommitError := flagutils.ToggleValue(command.Flags(), skipCommitFlagNameConstant)
	if skipCommitError != nil {
		return skipCommitError
	}

	repositoryRoot := configuration.RepositoryRoot
	if command.Flags().Changed(repositoryRootFlagNameConstant) {
		flagValue, flagError := command.Flags().GetString(repositoryRootFlagNameConstant)
		if flagError != nil {
			return flagError
		}
		repositoryRoot = CommandConfiguration{RepositoryRoot: flagValue}.Sanitize().RepositoryRoot
	}

	repositoryRoot = pathutils.NewHomeExpander().Expand(repositoryRoot)

	fileSystem := builder.resolveFileSystem()
	absoluteRepositoryRoot, absoluteError := fileSystem.Abs(repositoryRoot)
	if absoluteError != nil {
		return fmt.Errorf(repositoryRootResolutionTemplateConstant, repositoryRoot, absoluteError)
	}

	logger := builder.resolveLogger()
	standardOutput := utils.NewFlushingWriter(command.OutOrStdout())
	observers := []execshell.CommandEventObserver{
		ui.NewStreamForwarder(standardOutput, utils.NewFlushingWriter(command.ErrOrStderr())),
	}
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		observers = append(observers, ui.NewConsoleCommandEventLogger(logger))
	}

	commandRunner := builder.CommandRunner
	if commandRunner == nil {
		commandRunner = execshell.NewOSCommandRunner()
	}
	gitExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner, observers...)
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(gitExecutor)
	if managerError != nil {
		return managerError
	}

	treeMirror, mirrorError := mirror.New(fileSystem)
	if mirrorError != nil {
		return mirrorError
	}

	archiver, archiverError := archive.NewZipArchiver(fileSystem)
	if archiverError != nil {
		return archiverError
	}

	service, serviceCreationError := NewService(Dependencies{
		RepositoryManager: repositoryManager,
		TreeMirror:        treeMirror,
		Archiver:          archiver,
		PathInspector:     fileSystem,
		Logger:            logger,
		Output:            standardOutput,
	})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	_, runError := service.Run(command.Context(), Options{
		RepositoryRoot:      absoluteRepositoryRoot,
		SkipSubmoduleUpdate: skipSubmoduleUpdate,
		SkipCommit:          skipCommit,
	})
	return runError
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveFileSystem() *filesystem.FileSystem {
	if builder.FileSystem == nil {
		return filesystem.NewOSFileSystem()
	}
	return builder.FileSystem
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
