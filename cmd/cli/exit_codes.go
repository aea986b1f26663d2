package cli

import (
	"errors"

	"github.com/temirov/stdlibsync/internal/execshell"
	"github.com/temirov/stdlibsync/internal/stdlibsync"
)

// Process exit codes.
const (
	ExitCodeSuccess = 0
	ExitCodeFailure = 1
)

// ExitCode maps an execution error onto the process exit status.
func ExitCode(executionError error) int {
	if executionError == nil {
		return ExitCodeSuccess
	}

	var missingSource stdlibsync.MissingSourceDirectoryError
	if errors.As(executionError, &missingSource) {
		return ExitCodeFailure
	}

	var commandFailure execshell.CommandFailedError
	if errors.As(executionError, &commandFailure) {
		if exitCode := commandFailure.ExitCode(); exitCode > 0 {
			return exitCode
		}
	}

	return ExitCodeFailure
}
