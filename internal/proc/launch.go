// Package proc wraps the process-level primitives the supervisor is built
// on: launching commands, waiting for arbitrary children, and signalling
// the process group at shutdown.
package proc

import (
	"fmt"
	"os"
	"os/exec"

	"baron.dev/internal/config"
)

// Launch starts c's program with inherited stdio and records the new pid on
// c. It returns immediately; reaping happens exclusively through WaitAny,
// never through exec.Cmd.Wait. On failure it prints a diagnostic naming the
// program and returns the error — the caller accounts the command as having
// exited with status 1 so the failure flows through the ordinary
// aggregation path.
func Launch(c *config.Command) error {
	cmd := exec.Command(c.Args[0], c.Args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// No Setpgid: children stay in the supervisor's process group so the
	// shutdown broadcast reaches them.
	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to execute '%s': %v\n", c.Args[0], err)
		return err
	}

	c.PID = cmd.Process.Pid
	return nil
}
