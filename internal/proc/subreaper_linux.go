//go:build linux

package proc

import "golang.org/x/sys/unix"

// EnableChildSubreaper marks the supervisor as the reaper for orphaned
// descendants. When the supervisor is not pid 1 (nested use, tests) this is
// what makes the draining phase wait for the whole process tree rather than
// only direct children.
func EnableChildSubreaper() error {
	return unix.Prctl(unix.PR_SET_CHILD_SUBREAPER, 1, 0, 0, 0)
}
