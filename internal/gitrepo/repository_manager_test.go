package gitrepo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/stdlibsync/internal/execshell"
)

const testRepositoryPathConstant = "/workspace/repo"

type stubGitExecutor struct {
	results          []execshell.ExecutionResult
	invocationErrors []error
	recordedCommands []execshell.CommandDetails
}

func (executor *stubGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, details)
	result := execshell.ExecutionResult{}
	if len(executor.results) > 0 {
		result = executor.results[0]
		executor.results = executor.results[1:]
	}
	if len(executor.invocationErrors) > 0 {
		invocationError := executor.invocationErrors[0]
		executor.invocationErrors = executor.invocationErrors[1:]
		if invocationError != nil {
			return execshell.ExecutionResult{}, invocationError
		}
	}
	return result, nil
}

func TestNewRepositoryManagerRequiresExecutor(t *testing.T) {
	manager, creationError := NewRepositoryManager(nil)
	require.ErrorIs(t, creationError, ErrGitExecutorNotConfigured)
	require.Nil(t, manager)
}

func TestRepositoryManagerIssuesExpectedCommands(t *testing.T) {
	testCases := []struct {
		name              string
		invoke            func(manager *RepositoryManager) error
		expectedArguments []string
	}{
		{
			name: "UpdateSubmodules",
			invoke: func(manager *RepositoryManager) error {
				return manager.UpdateSubmodules(context.Background(), testRepositoryPathConstant)
			},
			expectedArguments: []string{"submodule", "update", "--remote", "--merge"},
		},
		{
			name: "StagePaths",
			invoke: func(manager *RepositoryManager) error {
				return manager.StagePaths(context.Background(), testRepositoryPathConstant, []string{"mojo/stdlib", "mojo/docs", "mojo-stdlib.zip"})
			},
			expectedArguments: []string{"add", "mojo/stdlib", "mojo/docs", "mojo-stdlib.zip"},
		},
		{
			name: "RestrictedStatus",
			invoke: func(manager *RepositoryManager) error {
				_, statusError := manager.WorkingTreeStatus(context.Background(), testRepositoryPathConstant, []string{"mojo/stdlib"})
				return statusError
			},
			expectedArguments: []string{"status", "--porcelain", "--", "mojo/stdlib"},
		},
		{
			name: "UnrestrictedStatus",
			invoke: func(manager *RepositoryManager) error {
				_, statusError := manager.WorkingTreeStatus(context.Background(), testRepositoryPathConstant, nil)
				return statusError
			},
			expectedArguments: []string{"status", "--porcelain"},
		},
		{
			name: "Commit",
			invoke: func(manager *RepositoryManager) error {
				return manager.Commit(context.Background(), testRepositoryPathConstant, "Sync stdlib and docs from modular submodule")
			},
			expectedArguments: []string{"commit", "-m", "Sync stdlib and docs from modular submodule"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			executor := &stubGitExecutor{}
			manager, creationError := NewRepositoryManager(executor)
			require.NoError(t, creationError)

			require.NoError(t, testCase.invoke(manager))
			require.Len(t, executor.recordedCommands, 1)
			recorded := executor.recordedCommands[0]
			require.Equal(t, testCase.expectedArguments, recorded.Arguments)
			require.Equal(t, testRepositoryPathConstant, recorded.WorkingDirectory)
			require.Equal(t, gitTerminalPromptEnvironmentDisableConstant, recorded.EnvironmentVariables[gitTerminalPromptEnvironmentNameConstant])
		})
	}
}

func TestWorkingTreeStatusReturnsOutput(t *testing.T) {
	executor := &stubGitExecutor{results: []execshell.ExecutionResult{{StandardOutput: "A  mojo-stdlib.zip\n"}}}
	manager, creationError := NewRepositoryManager(executor)
	require.NoError(t, creationError)

	statusOutput, statusError := manager.WorkingTreeStatus(context.Background(), testRepositoryPathConstant, nil)
	require.NoError(t, statusError)
	require.Equal(t, "A  mojo-stdlib.zip\n", statusOutput)
}

func TestRepositoryManagerWrapsFailures(t *testing.T) {
	commandFailure := execshell.CommandFailedError{Result: execshell.ExecutionResult{ExitCode: 128}}
	testCases := []struct {
		name             string
		invoke           func(manager *RepositoryManager) error
		expectedFragment string
	}{
		{
			name: "Submodule",
			invoke: func(manager *RepositoryManager) error {
				return manager.UpdateSubmodules(context.Background(), testRepositoryPathConstant)
			},
			expectedFragment: "failed to update submodules",
		},
		{
			name: "Stage",
			invoke: func(manager *RepositoryManager) error {
				return manager.StagePaths(context.Background(), testRepositoryPathConstant, []string{"mojo"})
			},
			expectedFragment: "failed to stage paths",
		},
		{
			name: "Status",
			invoke: func(manager *RepositoryManager) error {
				_, statusError := manager.WorkingTreeStatus(context.Background(), testRepositoryPathConstant, nil)
				return statusError
			},
			expectedFragment: "failed to read working tree status",
		},
		{
			name: "Commit",
			invoke: func(manager *RepositoryManager) error {
				return manager.Commit(context.Background(), testRepositoryPathConstant, "message")
			},
			expectedFragment: "failed to create commit",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			executor := &stubGitExecutor{invocationErrors: []error{commandFailure}}
			manager, creationError := NewRepositoryManager(executor)
			require.NoError(t, creationError)

			invocationError := testCase.invoke(manager)
			require.ErrorContains(t, invocationError, testCase.expectedFragment)

			var failedError execshell.CommandFailedError
			require.True(t, errors.As(invocationError, &failedError))
			require.Equal(t, 128, failedError.ExitCode())
		})
	}
}

func TestRepositoryManagerValidatesInputs(t *testing.T) {
	executor := &stubGitExecutor{}
	manager, creationError := NewRepositoryManager(executor)
	require.NoError(t, creationError)

	require.ErrorIs(t, manager.UpdateSubmodules(context.Background(), "  "), ErrRepositoryPathRequired)
	require.ErrorIs(t, manager.StagePaths(context.Background(), testRepositoryPathConstant, nil), ErrStagedPathsRequired)
	require.ErrorIs(t, manager.Commit(context.Background(), testRepositoryPathConstant, " "), ErrCommitMessageRequired)
	require.Empty(t, executor.recordedCommands)
}
