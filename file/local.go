package file

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
)

// Local implements File on top of the local filesystem.
type Local struct {
	f    *os.File
	flag int
	perm os.FileMode
}

// Compile time check to ensure Local satisfies the File interface.
var _ File = (*Local)(nil)

// OpenLocal opens a local file. flag and perm follow os.OpenFile.
func OpenLocal(path string, flag int, perm os.FileMode) (*Local, error) {
	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return nil, err
	}
	return &Local{f: f, flag: flag, perm: perm}, nil
}

// NewLocal wraps an already opened *os.File. Dup reopens the file
// read-write; use OpenLocal to preserve the original open flags.
func NewLocal(f *os.File) *Local {
	return &Local{f: f, flag: os.O_RDWR, perm: 0o644}
}

func (l *Local) ReadAt(p []byte, off int64) (int, error) {
	return l.f.ReadAt(p, off)
}

func (l *Local) WriteAt(p []byte, off int64) (int, error) {
	return l.f.WriteAt(p, off)
}

func (l *Local) ReadBulk(ctx context.Context, off int64, length int) (*Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := make([]byte, length)
	n, err := l.f.ReadAt(p, off)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return NewBuffer(p[:n], nil), nil
}

func (l *Local) Sync() error { return l.f.Sync() }

func (l *Local) Stat() (fs.FileInfo, error) { return l.f.Stat() }

func (l *Local) Truncate(size int64) error { return l.f.Truncate(size) }

func (l *Local) Size() (int64, error) {
	fi, err := l.f.Stat()
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

func (l *Local) Dup() (File, error) {
	flag := l.flag &^ (os.O_CREATE | os.O_EXCL | os.O_TRUNC)
	f, err := os.OpenFile(l.f.Name(), flag, l.perm)
	if err != nil {
		return nil, err
	}
	return &Local{f: f, flag: l.flag, perm: l.perm}, nil
}

func (l *Local) ListDirectory(next func(fs.DirEntry) error) error {
	entries, err := l.f.ReadDir(-1)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := next(entry); err != nil {
			return err
		}
	}
	return nil
}

func (l *Local) Close() error { return l.f.Close() }
