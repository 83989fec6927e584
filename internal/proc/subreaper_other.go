//go:build !linux

package proc

// EnableChildSubreaper is a no-op on platforms without subreaper support;
// orphaned grandchildren reparent to the real init instead.
func EnableChildSubreaper() error {
	return nil
}
