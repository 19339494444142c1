// Package readgate provides admission control for read operations in
// high-throughput storage engines.
//
// Each read consumes two resources: a slot (one logical reader) and a
// memory budget in bytes. When either is exhausted, further readers
// queue FIFO; when memory is tight, previously admitted but currently
// idle readers can be evicted to make room. Admission is proven by a
// lightweight Permit whose Close returns the resources automatically.
//
// # Quick Start
//
//	sem := readgate.NewSemaphore(100, 64<<20, readgate.WithName("shard-0"))
//
//	ctx, cancel := context.WithTimeout(ctx, time.Second)
//	defer cancel()
//
//	permit, err := sem.WaitAdmission(ctx, estimatedBytes)
//	if err != nil {
//	    return err // queue overload or admission timeout
//	}
//	defer permit.Close()
//
// # Incremental Memory
//
// Reads that discover their real memory need only after I/O completes
// attach additional charges through memory units:
//
//	units := permit.GetMemoryUnits(int64(len(buf)))
//	defer units.Close()
//
// # Evictable Idle Readers
//
// A reader that goes idle while holding its permit can register as
// evictable, letting the semaphore reclaim its resources when new
// admissions would otherwise queue:
//
//	handle := sem.RegisterInactiveRead(reader)
//	...
//	if reader, ok := sem.UnregisterInactiveRead(handle); ok {
//	    // resume the reader, permit still held
//	}
//
// # Tracked Files
//
// The file subpackage wraps a file handle so that buffers returned by
// bulk reads carry a memory charge for exactly as long as the caller
// holds them. See package file.
package readgate
