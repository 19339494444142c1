package file

import (
	"context"
	"io/fs"

	"github.com/hupe1980/readgate"
)

// Tracking is a pass-through File that charges the memory budget of a
// permit for the buffers its bulk reads return.
//
// The admission estimate covers only the initial cost of a read; the
// real buffer size is known only once the I/O completes. Tracking
// closes that gap: every ReadBulk acquires memory units sized to the
// returned buffer and attaches them to the buffer's lifetime, so the
// charge is credited back exactly when the caller releases the buffer.
//
// All other operations forward directly to the wrapped file.
type Tracking struct {
	f      File
	permit *readgate.Permit
}

// Compile time check to ensure Tracking satisfies the File interface.
var _ File = (*Tracking)(nil)

// NewTracking wraps f so bulk reads debit permit's memory budget. The
// tracking file takes ownership of the permit handle and drops it on
// Close; callers that still need the permit should pass a Clone.
//
// With an inert permit (readgate.NoPermit) buffers are forwarded
// untracked.
func NewTracking(f File, permit *readgate.Permit) *Tracking {
	return &Tracking{f: f, permit: permit}
}

func (t *Tracking) ReadAt(p []byte, off int64) (int, error) {
	return t.f.ReadAt(p, off)
}

func (t *Tracking) WriteAt(p []byte, off int64) (int, error) {
	return t.f.WriteAt(p, off)
}

// ReadBulk performs the wrapped bulk read with the memory charge
// attached. The charge is acquired up front for the requested range,
// re-sized to the buffer the read actually returned, and released by
// the buffer's Release.
func (t *Tracking) ReadBulk(ctx context.Context, off int64, length int) (*Buffer, error) {
	units := t.permit.GetMemoryUnits(int64(length))

	buf, err := t.f.ReadBulk(ctx, off, length)
	if err != nil {
		units.Close()
		return nil, err
	}

	if !t.permit.Valid() {
		return buf, nil
	}

	units.Reset(int64(buf.Len()))

	return NewBuffer(buf.Bytes(), func() {
		units.Close()
		buf.Release()
	}), nil
}

func (t *Tracking) Sync() error { return t.f.Sync() }

func (t *Tracking) Stat() (fs.FileInfo, error) { return t.f.Stat() }

func (t *Tracking) Truncate(size int64) error { return t.f.Truncate(size) }

func (t *Tracking) Allocate(off, length int64) error { return t.f.Allocate(off, length) }

func (t *Tracking) Discard(off, length int64) error { return t.f.Discard(off, length) }

func (t *Tracking) Size() (int64, error) { return t.f.Size() }

// Dup duplicates the underlying file and shares the permit, so the
// duplicate's reads are charged against the same admission.
func (t *Tracking) Dup() (File, error) {
	f, err := t.f.Dup()
	if err != nil {
		return nil, err
	}
	return &Tracking{f: f, permit: t.permit.Clone()}, nil
}

func (t *Tracking) ListDirectory(next func(fs.DirEntry) error) error {
	return t.f.ListDirectory(next)
}

// Close closes the underlying file and drops the permit handle.
// Buffers already returned keep their memory charge until released.
func (t *Tracking) Close() error {
	err := t.f.Close()
	t.permit.Close()
	return err
}
