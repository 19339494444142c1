package file

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_ReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")

	f, err := OpenLocal(path, os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.WriteAt([]byte("hello world"), 0)
	require.NoError(t, err)
	require.NoError(t, f.Sync())

	buf, err := f.ReadBulk(context.Background(), 6, 64)
	require.NoError(t, err)
	assert.Equal(t, "world", string(buf.Bytes()))
	buf.Release()

	size, err := f.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(11), size)

	require.NoError(t, f.Truncate(5))
	size, err = f.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
}

func TestLocal_Allocate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")

	f, err := OpenLocal(path, os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, f.Allocate(0, 4096))

	size, err := f.Size()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, size, int64(4096))
}

func TestLocal_Dup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")

	f, err := OpenLocal(path, os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.WriteAt([]byte("abc"), 0)
	require.NoError(t, err)

	dup, err := f.Dup()
	require.NoError(t, err)

	p := make([]byte, 3)
	n, err := dup.ReadAt(p, 0)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(p[:n]))

	require.NoError(t, dup.Close())
}

func TestLocal_ListDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b"), []byte("y"), 0o644))

	d, err := os.Open(dir)
	require.NoError(t, err)

	f := NewLocal(d)
	defer f.Close()

	var names []string
	err = f.ListDirectory(func(entry fs.DirEntry) error {
		names = append(names, entry.Name())
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, names)
}
