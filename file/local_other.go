//go:build !linux

package file

// Allocate extends the file so the range [off, off+length) exists.
// Without fallocate(2) the space is not reserved up front.
func (l *Local) Allocate(off, length int64) error {
	fi, err := l.f.Stat()
	if err != nil {
		return err
	}
	if off+length > fi.Size() {
		return l.f.Truncate(off + length)
	}
	return nil
}

// Discard is a no-op on platforms without hole punching.
func (l *Local) Discard(off, length int64) error {
	return nil
}
