//go:build linux

package file

import "golang.org/x/sys/unix"

// Allocate reserves space with fallocate(2), so later writes into the
// range cannot fail with ENOSPC.
func (l *Local) Allocate(off, length int64) error {
	return unix.Fallocate(int(l.f.Fd()), 0, off, length)
}

// Discard punches a hole into the file, releasing the backing storage
// while keeping the file size unchanged.
func (l *Local) Discard(off, length int64) error {
	return unix.Fallocate(int(l.f.Fd()), unix.FALLOC_FL_PUNCH_HOLE|unix.FALLOC_FL_KEEP_SIZE, off, length)
}
