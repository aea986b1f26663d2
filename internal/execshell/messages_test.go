package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandMessageFormatterDescribesSyncCommands(t *testing.T) {
	testCases := []struct {
		name     string
		command  ShellCommand
		result   ExecutionResult
		failure  error
		stage    messageStage
		expected string
	}{
		{
			name:     "SubmoduleUpdateStart",
			command:  ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"submodule", "update", "--remote", "--merge"}, WorkingDirectory: "/workspace/repo"}},
			stage:    messageStageStart,
			expected: "Updating submodules in /workspace/repo",
		},
		{
			name:     "SubmoduleUpdateFailure",
			command:  ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"submodule", "update", "--remote", "--merge"}, WorkingDirectory: "/workspace/repo"}},
			result:   ExecutionResult{ExitCode: 1, StandardError: "fatal: unable to fetch\n"},
			stage:    messageStageFailure,
			expected: "Failed to update submodules in /workspace/repo (exit code 1: fatal: unable to fetch)",
		},
		{
			name:     "AddStartListsPaths",
			command:  ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"add", "mojo/stdlib", "mojo/docs", "mojo-stdlib.zip"}, WorkingDirectory: "/workspace/repo"}},
			stage:    messageStageStart,
			expected: "Staging mojo/stdlib, mojo/docs, mojo-stdlib.zip in /workspace/repo",
		},
		{
			name:     "StatusCleanSuccess",
			command:  ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"status", "--porcelain"}, WorkingDirectory: "/workspace/repo"}},
			stage:    messageStageSuccess,
			expected: "Working tree in /workspace/repo has no changes",
		},
		{
			name:     "StatusDirtySuccess",
			command:  ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"status", "--porcelain"}, WorkingDirectory: "/workspace/repo"}},
			result:   ExecutionResult{StandardOutput: "M  mojo/stdlib/a.mojo\nA  mojo-stdlib.zip\n"},
			stage:    messageStageSuccess,
			expected: "Working tree in /workspace/repo has 2 changed paths",
		},
		{
			name:     "CommitStart",
			command:  ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"commit", "-m", "Sync stdlib and docs from modular submodule"}, WorkingDirectory: "/workspace/repo"}},
			stage:    messageStageStart,
			expected: "Creating commit in /workspace/repo with message \"Sync stdlib and docs from modular submodule\"",
		},
		{
			name:     "CommitExecutionFailure",
			command:  ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"commit", "-m", "message"}}},
			failure:  errors.New("signal: killed"),
			stage:    messageStageExecutionFailure,
			expected: "Unable to create commit in current directory with message \"message\": signal: killed",
		},
		{
			name:     "GenericFallback",
			command:  ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"rev-parse", "HEAD"}, WorkingDirectory: "/workspace/repo"}},
			stage:    messageStageStart,
			expected: "Running git rev-parse HEAD (in /workspace/repo)",
		},
	}

	formatter := CommandMessageFormatter{}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			message := formatter.buildMessage(testCase.command, testCase.result, testCase.failure, testCase.stage)
			require.Equal(t, testCase.expected, message)
		})
	}
}
