package file

// Buffer carries bytes returned by a bulk read together with the
// release action that ends their lifetime. Tracked files use the
// release action to return the memory charge attached to the buffer,
// so callers must call Release when done with the bytes.
type Buffer struct {
	data    []byte
	release func()
}

// NewBuffer creates a buffer over data. release may be nil; if set, it
// runs exactly once, on the first Release call.
func NewBuffer(data []byte, release func()) *Buffer {
	return &Buffer{data: data, release: release}
}

// Bytes returns the underlying bytes. The slice is valid until
// Release is called.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.data) }

// Release ends the buffer's lifetime. Idempotent.
func (b *Buffer) Release() {
	if b.release != nil {
		release := b.release
		b.release = nil
		release()
	}
	b.data = nil
}
