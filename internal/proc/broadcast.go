package proc

import "golang.org/x/sys/unix"

// Broadcast sends sig to every process in the supervisor's own process
// group, or to every process visible to it when everything is true (only
// meaningful when running as pid 1 of a namespace). ESRCH means there was
// nothing left to signal and is not an error.
func Broadcast(sig unix.Signal, everything bool) error {
	target := 0
	if everything {
		target = -1
	}
	if err := unix.Kill(target, sig); err != nil && err != unix.ESRCH {
		return err
	}
	return nil
}
