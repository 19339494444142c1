package file

import (
	"context"
	"io/fs"

	"golang.org/x/time/rate"
)

// RateLimited wraps a File with I/O throughput limiting. Positional
// reads, writes and bulk reads pass through the limiter; metadata
// operations are not limited.
type RateLimited struct {
	f       File
	limiter *rate.Limiter
	ctx     context.Context
}

// Compile time check to ensure RateLimited satisfies the File interface.
var _ File = (*RateLimited)(nil)

// NewRateLimited creates a new RateLimited file. ctx bounds the waits
// of operations that carry no context of their own (ReadAt, WriteAt).
func NewRateLimited(f File, limiter *rate.Limiter, ctx context.Context) *RateLimited {
	return &RateLimited{
		f:       f,
		limiter: limiter,
		ctx:     ctx,
	}
}

func (r *RateLimited) ReadAt(p []byte, off int64) (int, error) {
	if err := r.limiter.WaitN(r.ctx, len(p)); err != nil {
		return 0, err
	}
	return r.f.ReadAt(p, off)
}

func (r *RateLimited) WriteAt(p []byte, off int64) (int, error) {
	if err := r.limiter.WaitN(r.ctx, len(p)); err != nil {
		return 0, err
	}
	return r.f.WriteAt(p, off)
}

func (r *RateLimited) ReadBulk(ctx context.Context, off int64, length int) (*Buffer, error) {
	if err := r.limiter.WaitN(ctx, length); err != nil {
		return nil, err
	}
	return r.f.ReadBulk(ctx, off, length)
}

func (r *RateLimited) Sync() error { return r.f.Sync() }

func (r *RateLimited) Stat() (fs.FileInfo, error) { return r.f.Stat() }

func (r *RateLimited) Truncate(size int64) error { return r.f.Truncate(size) }

func (r *RateLimited) Allocate(off, length int64) error { return r.f.Allocate(off, length) }

func (r *RateLimited) Discard(off, length int64) error { return r.f.Discard(off, length) }

func (r *RateLimited) Size() (int64, error) { return r.f.Size() }

func (r *RateLimited) Dup() (File, error) {
	f, err := r.f.Dup()
	if err != nil {
		return nil, err
	}
	return &RateLimited{f: f, limiter: r.limiter, ctx: r.ctx}, nil
}

func (r *RateLimited) ListDirectory(next func(fs.DirEntry) error) error {
	return r.f.ListDirectory(next)
}

func (r *RateLimited) Close() error { return r.f.Close() }
