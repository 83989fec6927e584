// Package cli wires the supervisor's command line.
package cli

import (
	"errors"
	"fmt"
	"os"
)

// exitError carries a process exit code through cobra's error return.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// Execute runs the root command and returns the process exit code.
// args should be os.Args[1:].
func Execute(version string, args []string) int {
	if args == nil {
		// cobra falls back to os.Args when given nil.
		args = []string{}
	}
	cmd := newRootCmd(version)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		// Fatal configuration errors: one line, before any process exists.
		fmt.Fprintf(os.Stderr, "baron: %v\n", err)
		return 1
	}
	return 0
}
