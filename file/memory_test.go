package file

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_ReadWrite(t *testing.T) {
	f := NewMemory([]byte("hello world"))

	p := make([]byte, 5)
	n, err := f.ReadAt(p, 6)
	require.NoError(t, err)
	assert.Equal(t, "world", string(p[:n]))

	_, err = f.WriteAt([]byte("WORLD"), 6)
	require.NoError(t, err)

	n, err = f.ReadAt(p, 6)
	require.NoError(t, err)
	assert.Equal(t, "WORLD", string(p[:n]))

	// Reads past the end report EOF.
	_, err = f.ReadAt(p, 100)
	assert.ErrorIs(t, err, io.EOF)
}

func TestMemory_WriteAtGrows(t *testing.T) {
	f := NewMemory(nil)

	_, err := f.WriteAt([]byte("abc"), 10)
	require.NoError(t, err)

	size, err := f.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(13), size)
}

func TestMemory_ReadBulk(t *testing.T) {
	f := NewMemory([]byte("0123456789"))

	buf, err := f.ReadBulk(context.Background(), 2, 4)
	require.NoError(t, err)
	assert.Equal(t, "2345", string(buf.Bytes()))
	buf.Release()

	// A short read past the end returns what is there.
	buf, err = f.ReadBulk(context.Background(), 8, 100)
	require.NoError(t, err)
	assert.Equal(t, "89", string(buf.Bytes()))
	buf.Release()

	// Beyond the end returns an empty buffer, not an error.
	buf, err = f.ReadBulk(context.Background(), 100, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, buf.Len())
	buf.Release()
}

func TestMemory_TruncateAllocateDiscard(t *testing.T) {
	f := NewMemory([]byte("0123456789"))

	require.NoError(t, f.Truncate(4))
	size, err := f.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(4), size)

	require.NoError(t, f.Allocate(0, 8))
	size, err = f.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(8), size)

	require.NoError(t, f.Discard(0, 2))
	buf, err := f.ReadBulk(context.Background(), 0, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, '2', '3'}, buf.Bytes())
	buf.Release()
}

func TestMemory_DupSharesContents(t *testing.T) {
	f := NewMemory([]byte("abc"))

	dup, err := f.Dup()
	require.NoError(t, err)

	_, err = dup.WriteAt([]byte("x"), 0)
	require.NoError(t, err)

	p := make([]byte, 3)
	_, err = f.ReadAt(p, 0)
	require.NoError(t, err)
	assert.Equal(t, "xbc", string(p))

	require.NoError(t, dup.Close())
	require.NoError(t, f.Close())
}

func TestMemory_ListDirectoryNotSupported(t *testing.T) {
	f := NewMemory(nil)
	assert.ErrorIs(t, f.ListDirectory(nil), ErrNotSupported)
}

func TestBuffer_ReleaseIsIdempotent(t *testing.T) {
	released := 0
	buf := NewBuffer([]byte("abc"), func() { released++ })

	buf.Release()
	buf.Release()
	assert.Equal(t, 1, released)
	assert.Nil(t, buf.Bytes())
}
