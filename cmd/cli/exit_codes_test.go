package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/stdlibsync/cmd/cli"
	"github.com/temirov/stdlibsync/internal/execshell"
	"github.com/temirov/stdlibsync/internal/stdlibsync"
)

func TestExitCode(t *testing.T) {
	commandFailure := func(exitCode int) error {
		return fmt.Errorf("failed to create commit: %w", execshell.CommandFailedError{
			Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: execshell.CommandDetails{Arguments: []string{"commit"}}},
			Result:  execshell.ExecutionResult{ExitCode: exitCode},
		})
	}

	testCases := []struct {
		name             string
		executionError   error
		expectedExitCode int
	}{
		{name: "Success", executionError: nil, expectedExitCode: 0},
		{name: "MissingSource", executionError: stdlibsync.MissingSourceDirectoryError{Path: "/repo/modular/mojo/docs"}, expectedExitCode: 1},
		{name: "GitExitCode", executionError: commandFailure(128), expectedExitCode: 128},
		{name: "GitZeroExitCode", executionError: commandFailure(0), expectedExitCode: 1},
		{name: "ExecutionFailure", executionError: execshell.CommandExecutionError{Cause: errors.New("executable file not found")}, expectedExitCode: 1},
		{name: "OtherFailure", executionError: errors.New("unable to load configuration"), expectedExitCode: 1},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expectedExitCode, cli.ExitCode(testCase.executionError))
		})
	}
}
