package file

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/readgate"
)

func TestTracking_ReadBulkChargesBufferLifetime(t *testing.T) {
	sem := readgate.NewSemaphore(2, 1024)

	permit, err := sem.WaitAdmission(context.Background(), 0)
	require.NoError(t, err)

	tf := NewTracking(NewMemory(make([]byte, 512)), permit)

	buf, err := tf.ReadBulk(context.Background(), 0, 256)
	require.NoError(t, err)
	assert.Equal(t, 256, buf.Len())
	assert.Equal(t, readgate.Resources{Count: 1, Memory: 768}, sem.Available())

	// The charge is credited back when the buffer is released, not
	// before.
	buf.Release()
	assert.Equal(t, readgate.Resources{Count: 1, Memory: 1024}, sem.Available())

	require.NoError(t, tf.Close())
	assert.Equal(t, readgate.Resources{Count: 2, Memory: 1024}, sem.Available())
}

func TestTracking_ShortReadShrinksCharge(t *testing.T) {
	sem := readgate.NewSemaphore(1, 1024)

	permit, err := sem.WaitAdmission(context.Background(), 0)
	require.NoError(t, err)

	tf := NewTracking(NewMemory(make([]byte, 100)), permit)

	// The read asks for more than the file holds; the charge must
	// match the buffer that actually came back.
	buf, err := tf.ReadBulk(context.Background(), 0, 512)
	require.NoError(t, err)
	assert.Equal(t, 100, buf.Len())
	assert.Equal(t, readgate.Resources{Count: 0, Memory: 924}, sem.Available())

	buf.Release()
	require.NoError(t, tf.Close())
	assert.Equal(t, readgate.Resources{Count: 1, Memory: 1024}, sem.Available())
}

func TestTracking_FailedReadReleasesCharge(t *testing.T) {
	sem := readgate.NewSemaphore(1, 1024)

	permit, err := sem.WaitAdmission(context.Background(), 0)
	require.NoError(t, err)

	tf := NewTracking(NewMemory(make([]byte, 100)), permit)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = tf.ReadBulk(ctx, 0, 64)
	require.Error(t, err)
	assert.Equal(t, readgate.Resources{Count: 0, Memory: 1024}, sem.Available())

	require.NoError(t, tf.Close())
}

func TestTracking_NoPermitForwardsUntracked(t *testing.T) {
	tf := NewTracking(NewMemory([]byte("hello")), readgate.NoPermit())

	buf, err := tf.ReadBulk(context.Background(), 0, 5)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf.Bytes()))
	buf.Release()

	require.NoError(t, tf.Close())
}

func TestTracking_DupSharesPermit(t *testing.T) {
	sem := readgate.NewSemaphore(1, 1024)

	permit, err := sem.WaitAdmission(context.Background(), 100)
	require.NoError(t, err)

	tf := NewTracking(NewMemory(make([]byte, 64)), permit)

	dup, err := tf.Dup()
	require.NoError(t, err)

	// Closing the original keeps the admission alive through the dup.
	require.NoError(t, tf.Close())
	assert.Equal(t, readgate.Resources{Count: 0, Memory: 924}, sem.Available())

	require.NoError(t, dup.Close())
	assert.Equal(t, readgate.Resources{Count: 1, Memory: 1024}, sem.Available())
}

func TestTracking_Forwarding(t *testing.T) {
	sem := readgate.NewSemaphore(1, 1024)
	permit := sem.ConsumeResources(readgate.Resources{Count: 1})

	tf := NewTracking(NewMemory([]byte("0123456789")), permit)

	p := make([]byte, 4)
	n, err := tf.ReadAt(p, 2)
	require.NoError(t, err)
	assert.Equal(t, "2345", string(p[:n]))

	// Plain positional reads are not instrumented.
	assert.Equal(t, readgate.Resources{Count: 0, Memory: 1024}, sem.Available())

	_, err = tf.WriteAt([]byte("ab"), 0)
	require.NoError(t, err)
	require.NoError(t, tf.Sync())

	size, err := tf.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(10), size)

	require.NoError(t, tf.Truncate(4))
	size, err = tf.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(4), size)

	require.NoError(t, tf.Close())
}
