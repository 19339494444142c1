// Package file provides the positional-I/O substrate readgate
// instruments, plus wrappers that attach admission accounting and
// throughput limits to it.
//
// File is the interface; implementations must be safe for concurrent
// use.
//
// # Built-in Implementations
//
//   - Local: local filesystem files (fallocate/hole-punch on Linux)
//   - Memory: in-memory files for tests and embedding
//
// # Wrappers
//
//   - Tracking: charges a permit's memory budget for buffers returned
//     by bulk reads; the charge lives exactly as long as the buffer
//   - RateLimited: bounds read/write throughput with a rate.Limiter
//
// # Tracked Buffers
//
// ReadBulk returns a Buffer whose Release ends its lifetime. With a
// Tracking file, Release also credits the memory charge back to the
// semaphore:
//
//	tf := file.NewTracking(f, permit)
//	buf, err := tf.ReadBulk(ctx, off, 64<<10)
//	if err != nil { ... }
//	defer buf.Release()
//	process(buf.Bytes())
package file
