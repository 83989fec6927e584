package proc

import "golang.org/x/sys/unix"

// WaitAny blocks until any child process terminates and returns its pid and
// wait status. Interruption by signal delivery is retried, it is not an
// error. unix.ECHILD is returned once no child processes remain; callers
// treat that as the end of a phase, not a failure.
func WaitAny() (int, unix.WaitStatus, error) {
	var status unix.WaitStatus
	for {
		pid, err := unix.Wait4(-1, &status, 0, nil)
		if err == unix.EINTR {
			continue
		}
		return pid, status, err
	}
}
