// Package execshell provides structured helpers for invoking external tools.
//
// CommandRunner is the narrow capability the sync orchestrator depends on: it
// runs an argument vector and reports the exit code together with captured
// standard output and standard error. ShellExecutor layers zap logging and
// lifecycle observers on top of a runner, and OSCommandRunner is the default
// os/exec implementation.
package execshell
