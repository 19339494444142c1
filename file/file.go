package file

import (
	"context"
	"errors"
	"io"
	"io/fs"
)

// ErrNotSupported is returned when an implementation cannot perform an
// operation (e.g. listing a directory on an in-memory file).
var ErrNotSupported = errors.New("operation not supported")

// File is the positional-I/O substrate readgate instruments. It is
// modeled after the operation set storage engines need on data files;
// Local and Memory are the built-in implementations, and any backend
// providing positional reads and writes can implement it.
type File interface {
	io.ReaderAt
	io.WriterAt

	// ReadBulk reads up to length bytes starting at off and returns
	// them as a released-explicitly buffer. Reads past the end of the
	// file return a short (possibly empty) buffer, not an error.
	ReadBulk(ctx context.Context, off int64, length int) (*Buffer, error)

	// Sync flushes buffered writes to stable storage.
	Sync() error

	// Stat returns file metadata.
	Stat() (fs.FileInfo, error)

	// Truncate resizes the file to size bytes.
	Truncate(size int64) error

	// Allocate reserves space for the byte range [off, off+length).
	Allocate(off, length int64) error

	// Discard releases the storage backing the byte range
	// [off, off+length). Best effort.
	Discard(off, length int64) error

	// Size returns the current file size in bytes.
	Size() (int64, error)

	// Dup returns an independent handle to the same file.
	Dup() (File, error)

	// ListDirectory calls next for every entry of a directory handle.
	// Iteration stops at the first error, which is returned.
	ListDirectory(next func(fs.DirEntry) error) error

	// Close releases the handle.
	Close() error
}
