package file

import (
	"context"
	"io"
	"io/fs"
	"sync"
	"time"
)

// Memory is an in-memory File implementation for testing and
// embedding. It stores the contents in a byte slice without any
// filesystem dependency. Thread-safe for concurrent reads and writes.
type Memory struct {
	d *memoryData
}

// memoryData is shared between dup'd handles, the way dup'd file
// descriptors share the underlying file.
type memoryData struct {
	mu   sync.RWMutex
	data []byte
}

// Compile time check to ensure Memory satisfies the File interface.
var _ File = (*Memory)(nil)

// NewMemory creates an in-memory file with the given initial contents.
func NewMemory(data []byte) *Memory {
	copied := make([]byte, len(data))
	copy(copied, data)
	return &Memory{d: &memoryData{data: copied}}
}

func (m *Memory) ReadAt(p []byte, off int64) (int, error) {
	m.d.mu.RLock()
	defer m.d.mu.RUnlock()

	if off < 0 || off >= int64(len(m.d.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.d.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *Memory) WriteAt(p []byte, off int64) (int, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()

	if grown := off + int64(len(p)); grown > int64(len(m.d.data)) {
		data := make([]byte, grown)
		copy(data, m.d.data)
		m.d.data = data
	}
	return copy(m.d.data[off:], p), nil
}

func (m *Memory) ReadBulk(ctx context.Context, off int64, length int) (*Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.d.mu.RLock()
	defer m.d.mu.RUnlock()

	if off < 0 || off >= int64(len(m.d.data)) {
		return NewBuffer(nil, nil), nil
	}
	end := off + int64(length)
	if end > int64(len(m.d.data)) {
		end = int64(len(m.d.data))
	}
	copied := make([]byte, end-off)
	copy(copied, m.d.data[off:end])

	return NewBuffer(copied, nil), nil
}

func (m *Memory) Sync() error { return nil }

func (m *Memory) Stat() (fs.FileInfo, error) {
	m.d.mu.RLock()
	defer m.d.mu.RUnlock()

	return &memoryFileInfo{size: int64(len(m.d.data))}, nil
}

func (m *Memory) Truncate(size int64) error {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()

	data := make([]byte, size)
	copy(data, m.d.data)
	m.d.data = data
	return nil
}

func (m *Memory) Allocate(off, length int64) error {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()

	if grown := off + length; grown > int64(len(m.d.data)) {
		data := make([]byte, grown)
		copy(data, m.d.data)
		m.d.data = data
	}
	return nil
}

func (m *Memory) Discard(off, length int64) error {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()

	end := off + length
	if end > int64(len(m.d.data)) {
		end = int64(len(m.d.data))
	}
	if off < 0 || off >= end {
		return nil
	}
	for i := off; i < end; i++ {
		m.d.data[i] = 0
	}
	return nil
}

func (m *Memory) Size() (int64, error) {
	m.d.mu.RLock()
	defer m.d.mu.RUnlock()

	return int64(len(m.d.data)), nil
}

func (m *Memory) Dup() (File, error) {
	return &Memory{d: m.d}, nil
}

func (m *Memory) ListDirectory(next func(fs.DirEntry) error) error {
	return ErrNotSupported
}

func (m *Memory) Close() error { return nil }

type memoryFileInfo struct {
	size int64
}

func (fi *memoryFileInfo) Name() string       { return "memory" }
func (fi *memoryFileInfo) Size() int64        { return fi.size }
func (fi *memoryFileInfo) Mode() fs.FileMode  { return 0o644 }
func (fi *memoryFileInfo) ModTime() time.Time { return time.Time{} }
func (fi *memoryFileInfo) IsDir() bool        { return false }
func (fi *memoryFileInfo) Sys() any           { return nil }
