package main

import (
	"fmt"
	"os"

	"github.com/temirov/stdlibsync/cmd/cli"
)

const (
	exitErrorTemplateConstant = "Error: %v\n"
)

// main executes the stdlib-sync command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(cli.ExitCode(executionError))
	}
}
