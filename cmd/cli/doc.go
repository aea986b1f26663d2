// Package cli constructs the stdlib-sync command-line interface, wiring the
// Cobra root command, configuration loader, and structured logging.
package cli
