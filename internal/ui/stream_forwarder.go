package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/stdlibsync/internal/execshell"
)

const (
	runningCommandTemplateConstant = "Running: %s\n"
	commandArgumentSeparator       = " "
	lineTerminatorConstant         = "\n"
)

// StreamForwarder echoes each command line and copies captured command output onto local streams.
type StreamForwarder struct {
	standardOutput io.Writer
	standardError  io.Writer
}

// NewStreamForwarder constructs a forwarder. Nil writers discard output.
func NewStreamForwarder(standardOutput io.Writer, standardError io.Writer) *StreamForwarder {
	if standardOutput == nil {
		standardOutput = io.Discard
	}
	if standardError == nil {
		standardError = io.Discard
	}
	return &StreamForwarder{standardOutput: standardOutput, standardError: standardError}
}

// CommandStarted prints the command line about to run.
func (forwarder *StreamForwarder) CommandStarted(command execshell.ShellCommand) {
	commandLine := strings.Join(append([]string{string(command.Name)}, command.Details.Arguments...), commandArgumentSeparator)
	fmt.Fprintf(forwarder.standardOutput, runningCommandTemplateConstant, commandLine)
}

// CommandCompleted forwards captured standard output and standard error regardless of exit code.
func (forwarder *StreamForwarder) CommandCompleted(_ execshell.ShellCommand, result execshell.ExecutionResult) {
	writeCaptured(forwarder.standardOutput, result.StandardOutput)
	writeCaptured(forwarder.standardError, result.StandardError)
}

// CommandExecutionFailed forwards the failure to standard error.
func (forwarder *StreamForwarder) CommandExecutionFailed(_ execshell.ShellCommand, failure error) {
	if failure == nil {
		return
	}
	writeCaptured(forwarder.standardError, failure.Error())
}

func writeCaptured(writer io.Writer, captured string) {
	if len(captured) == 0 {
		return
	}
	io.WriteString(writer, captured)
	if !strings.HasSuffix(captured, lineTerminatorConstant) {
		io.WriteString(writer, lineTerminatorConstant)
	}
}
