package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/stdlibsync/internal/execshell"
)

const (
	gitExecutorMissingMessageConstant           = "git executor not configured"
	repositoryPathRequiredMessageConstant       = "repository path must be provided"
	commitMessageRequiredMessageConstant        = "commit message must be provided"
	stagedPathsRequiredMessageConstant          = "at least one path must be provided for staging"
	submoduleUpdateErrorTemplateConstant        = "failed to update submodules: %w"
	stageErrorTemplateConstant                  = "failed to stage paths: %w"
	statusErrorTemplateConstant                 = "failed to read working tree status: %w"
	commitErrorTemplateConstant                 = "failed to create commit: %w"
	gitSubmoduleSubcommandConstant              = "submodule"
	gitSubmoduleUpdateActionConstant            = "update"
	gitRemoteFlagConstant                       = "--remote"
	gitMergeFlagConstant                        = "--merge"
	gitAddSubcommandConstant                    = "add"
	gitStatusSubcommandConstant                 = "status"
	gitPorcelainFlagConstant                    = "--porcelain"
	gitCommitSubcommandConstant                 = "commit"
	gitMessageFlagConstant                      = "-m"
	gitPathspecSeparatorConstant                = "--"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
)

// ErrGitExecutorNotConfigured indicates the manager was constructed without a git executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryPathRequired indicates an empty repository path.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrCommitMessageRequired indicates an empty commit message.
var ErrCommitMessageRequired = errors.New(commitMessageRequiredMessageConstant)

// ErrStagedPathsRequired indicates staging was requested without any paths.
var ErrStagedPathsRequired = errors.New(stagedPathsRequiredMessageConstant)

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager performs the repository-level git operations of a sync run.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager around the executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// UpdateSubmodules fast-forwards submodules to their remote tracking state, merging local changes.
func (manager *RepositoryManager) UpdateSubmodules(executionContext context.Context, repositoryPath string) error {
	if _, executionError := manager.executeGit(executionContext, repositoryPath,
		gitSubmoduleSubcommandConstant, gitSubmoduleUpdateActionConstant, gitRemoteFlagConstant, gitMergeFlagConstant,
	); executionError != nil {
		return fmt.Errorf(submoduleUpdateErrorTemplateConstant, executionError)
	}
	return nil
}

// StagePaths adds the provided repository-relative paths to the index.
func (manager *RepositoryManager) StagePaths(executionContext context.Context, repositoryPath string, paths []string) error {
	if len(paths) == 0 {
		return ErrStagedPathsRequired
	}
	arguments := append([]string{gitAddSubcommandConstant}, paths...)
	if _, executionError := manager.executeGit(executionContext, repositoryPath, arguments...); executionError != nil {
		return fmt.Errorf(stageErrorTemplateConstant, executionError)
	}
	return nil
}

// WorkingTreeStatus returns the porcelain status output, restricted to paths when any are given.
func (manager *RepositoryManager) WorkingTreeStatus(executionContext context.Context, repositoryPath string, paths []string) (string, error) {
	arguments := []string{gitStatusSubcommandConstant, gitPorcelainFlagConstant}
	if len(paths) > 0 {
		arguments = append(arguments, gitPathspecSeparatorConstant)
		arguments = append(arguments, paths...)
	}
	executionResult, executionError := manager.executeGit(executionContext, repositoryPath, arguments...)
	if executionError != nil {
		return "", fmt.Errorf(statusErrorTemplateConstant, executionError)
	}
	return executionResult.StandardOutput, nil
}

// Commit records the staged changes with the provided message.
func (manager *RepositoryManager) Commit(executionContext context.Context, repositoryPath string, message string) error {
	if len(strings.TrimSpace(message)) == 0 {
		return ErrCommitMessageRequired
	}
	if _, executionError := manager.executeGit(executionContext, repositoryPath, gitCommitSubcommandConstant, gitMessageFlagConstant, message); executionError != nil {
		return fmt.Errorf(commitErrorTemplateConstant, executionError)
	}
	return nil
}

func (manager *RepositoryManager) executeGit(executionContext context.Context, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return execshell.ExecutionResult{}, ErrRepositoryPathRequired
	}
	return manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     trimmedRepositoryPath,
		EnvironmentVariables: map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant},
	})
}
