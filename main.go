// ./main.go
package main

import (
	"github.com/hireloop/autopilot/cmd"
)

// main is the entry point for the autopilot CLI application.
func main() {
	// Execute the root command defined in the cmd package.
	// This handles all command-line parsing, configuration, and execution.
	cmd.Execute()
}
