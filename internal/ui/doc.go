// Package ui provides helpers for formatting human-readable console output.
//
// ConsoleCommandEventLogger narrates git invocations through a console zap
// logger, and StreamForwarder copies the standard output and standard error
// captured from each invocation onto the process's own streams.
package ui
