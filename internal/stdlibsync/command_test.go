package stdlibsync_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/temirov/stdlibsync/internal/execshell"
	"github.com/temirov/stdlibsync/internal/filesystem"
	"github.com/temirov/stdlibsync/internal/stdlibsync"
)

type scriptedCommandRunner struct {
	commands []execshell.ShellCommand
	results  map[string]execshell.ExecutionResult
}

func (runner *scriptedCommandRunner) Run(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.commands = append(runner.commands, command)
	if len(command.Details.Arguments) == 0 {
		return execshell.ExecutionResult{}, nil
	}
	return runner.results[command.Details.Arguments[0]], nil
}

func (runner *scriptedCommandRunner) commandLines() []string {
	lines := make([]string, 0, len(runner.commands))
	for _, command := range runner.commands {
		lines = append(lines, strings.Join(append([]string{string(command.Name)}, command.Details.Arguments...), " "))
	}
	return lines
}

func newCommandFileSystem(t *testing.T) *filesystem.FileSystem {
	t.Helper()
	memoryFileSystem := afero.NewMemMapFs()
	for filePath, content := range completeSourceTree() {
		require.NoError(t, afero.WriteFile(memoryFileSystem, filePath, []byte(content), 0o644))
	}
	return filesystem.New(memoryFileSystem)
}

func executeSyncCommand(t *testing.T, builder *stdlibsync.CommandBuilder, arguments ...string) (string, string, error) {
	t.Helper()
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	standardOutput := &bytes.Buffer{}
	standardError := &bytes.Buffer{}
	command.SetOut(standardOutput)
	command.SetErr(standardError)
	command.SetContext(context.Background())
	command.SetArgs(arguments)
	command.SilenceUsage = true
	command.SilenceErrors = true

	executionError := command.Execute()
	return standardOutput.String(), standardError.String(), executionError
}

func TestCommandRunsGitStepsAndForwardsOutput(t *testing.T) {
	runner := &scriptedCommandRunner{results: map[string]execshell.ExecutionResult{
		"status": {StandardOutput: testPorcelainStatusConstant},
		"commit": {StandardOutput: "[main 1a2b3c4] Sync stdlib and docs from modular submodule", StandardError: "hint: signed"},
	}}
	fileSystem := newCommandFileSystem(t)
	builder := &stdlibsync.CommandBuilder{CommandRunner: runner, FileSystem: fileSystem}

	standardOutput, standardError, executionError := executeSyncCommand(t, builder, "--repository-root", testRepositoryRootConstant, "--skip-submodule-update")
	require.NoError(t, executionError)

	require.Equal(t, []string{
		"git add mojo/stdlib mojo/docs mojo-stdlib.zip",
		"git status --porcelain -- mojo/stdlib mojo/docs mojo-stdlib.zip",
		"git commit -m Sync stdlib and docs from modular submodule",
	}, runner.commandLines())
	for _, command := range runner.commands {
		require.Equal(t, testRepositoryRootConstant, command.Details.WorkingDirectory)
		require.Equal(t, "0", command.Details.EnvironmentVariables["GIT_TERMINAL_PROMPT"])
	}

	outputLines := strings.Split(standardOutput, "\n")
	require.Contains(t, outputLines, "Step 1: Skipping submodule update.")
	require.Contains(t, outputLines, "Running: git add mojo/stdlib mojo/docs mojo-stdlib.zip")
	require.Contains(t, outputLines, "[main 1a2b3c4] Sync stdlib and docs from modular submodule")
	require.True(t, strings.HasSuffix(standardOutput, "\nSync complete!\n"))
	require.Equal(t, "hint: signed\n", standardError)

	requireFileContent(t, fileSystem, "/repo/mojo/docs/manual.md", "# Manual")
}

func TestCommandHonorsToggleValues(t *testing.T) {
	testCases := []struct {
		name                 string
		arguments            []string
		expectedCommandLines []string
	}{
		{
			name:                 "SkipBothSteps",
			arguments:            []string{"--skip-submodule-update=yes", "--skip-commit"},
			expectedCommandLines: []string{},
		},
		{
			name:      "ExplicitlyDisabledSkips",
			arguments: []string{"--skip-submodule-update=no", "--skip-commit=off"},
			expectedCommandLines: []string{
				"git submodule update --remote --merge",
				"git add mojo/stdlib mojo/docs mojo-stdlib.zip",
				"git status --porcelain -- mojo/stdlib mojo/docs mojo-stdlib.zip",
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			runner := &scriptedCommandRunner{}
			builder := &stdlibsync.CommandBuilder{
				CommandRunner: runner,
				FileSystem:    newCommandFileSystem(t),
				ConfigurationProvider: func() stdlibsync.CommandConfiguration {
					return stdlibsync.CommandConfiguration{RepositoryRoot: testRepositoryRootConstant}
				},
			}

			_, _, executionError := executeSyncCommand(t, builder, testCase.arguments...)
			require.NoError(t, executionError)
			require.Equal(t, testCase.expectedCommandLines, runner.commandLines())
		})
	}
}

func TestCommandSurfacesSubmoduleExitCode(t *testing.T) {
	runner := &scriptedCommandRunner{results: map[string]execshell.ExecutionResult{
		"submodule": {StandardError: "fatal: not a git repository", ExitCode: testSubmoduleFailureCode},
	}}
	builder := &stdlibsync.CommandBuilder{CommandRunner: runner, FileSystem: newCommandFileSystem(t)}

	standardOutput, standardError, executionError := executeSyncCommand(t, builder, "--repository-root", testRepositoryRootConstant)

	var commandFailure execshell.CommandFailedError
	require.ErrorAs(t, executionError, &commandFailure)
	require.Equal(t, testSubmoduleFailureCode, commandFailure.ExitCode())
	require.Equal(t, "Step 1: Updating git submodule...\nRunning: git submodule update --remote --merge\n", standardOutput)
	require.Equal(t, "fatal: not a git repository\n", standardError)
	require.Equal(t, "failed to update submodules: git submodule update --remote --merge exited with code 128", executionError.Error())
}

func TestCommandRejectsPositionalArguments(t *testing.T) {
	builder := &stdlibsync.CommandBuilder{CommandRunner: &scriptedCommandRunner{}, FileSystem: newCommandFileSystem(t)}

	_, _, executionError := executeSyncCommand(t, builder, "unexpected")
	require.Error(t, executionError)
}

func TestConfigurationSanitizeRestoresDefaultRoot(t *testing.T) {
	require.Equal(t, ".", stdlibsync.CommandConfiguration{RepositoryRoot: "   "}.Sanitize().RepositoryRoot)
	require.Equal(t, "/repo", stdlibsync.CommandConfiguration{RepositoryRoot: " /repo "}.Sanitize().RepositoryRoot)
	require.Equal(t, map[string]any{"sync.repository_root": "."}, stdlibsync.DefaultConfigurationValues("sync"))
}
