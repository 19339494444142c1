package readgate

import (
	"sync"
	"sync/atomic"
)

// Permit proves a read has been admitted and holds the resources
// reserved for it. Permits are issued by the semaphore; the resources
// were already debited when the permit was created, and the permit is
// responsible only for crediting them back.
//
// A permit may be shared between collaborators via Clone; the base
// cost is returned when the last handle is closed, or earlier via
// Release. Either way it is returned exactly once.
//
// The zero-value permit returned by NoPermit is bound to no semaphore
// and all operations on it are inert.
type Permit struct {
	state  *permitState
	closed atomic.Bool
}

// permitState is shared between all clones of a permit.
type permitState struct {
	sem  *Semaphore
	refs atomic.Int64

	mu       sync.Mutex
	baseCost Resources
}

func newPermit(sem *Semaphore, baseCost Resources) *Permit {
	state := &permitState{sem: sem, baseCost: baseCost}
	state.refs.Store(1)
	return &Permit{state: state}
}

// NoPermit returns the inert permit used for untracked readers.
func NoPermit() *Permit {
	return &Permit{}
}

// Valid reports whether the permit is bound to a semaphore.
func (p *Permit) Valid() bool {
	return p != nil && p.state != nil
}

// Clone returns a new handle sharing this permit's base cost. The
// cost is credited back once the last handle is closed.
func (p *Permit) Clone() *Permit {
	if !p.Valid() {
		return &Permit{}
	}
	p.state.refs.Add(1)
	return &Permit{state: p.state}
}

// Release credits the base cost back to the semaphore immediately.
// Closing the permit afterwards is a no-op with respect to resources.
func (p *Permit) Release() {
	if !p.Valid() {
		return
	}
	p.state.signalBaseCost()
}

// Close drops this handle. When the last handle is dropped, any base
// cost not yet returned by Release is credited back to the semaphore.
// Close is idempotent per handle.
func (p *Permit) Close() {
	if !p.Valid() {
		return
	}
	if p.closed.Swap(true) {
		return
	}
	if p.state.refs.Add(-1) == 0 {
		p.state.signalBaseCost()
	}
}

// GetMemoryUnits acquires an additional memory delta from the
// semaphore the permit is bound to, scoped to the returned handle.
// On an inert permit the returned units are unbound and inert too.
func (p *Permit) GetMemoryUnits(memory int64) *MemoryUnits {
	if !p.Valid() {
		return &MemoryUnits{}
	}
	return newMemoryUnits(p.state.sem, memory)
}

// signalBaseCost returns the base cost exactly once.
func (st *permitState) signalBaseCost() {
	st.mu.Lock()
	cost := st.baseCost
	st.baseCost = Resources{}
	st.mu.Unlock()

	if !cost.IsZero() {
		st.sem.Signal(cost)
	}
}

// MemoryUnits is a scoped acquisition of a memory delta against a
// semaphore. Construction debits the amount, Close credits it back,
// and Reset re-sizes the acquisition.
//
// Units unbound to a semaphore (from an inert permit) are a valid
// no-op in every path; they cannot be rebound.
type MemoryUnits struct {
	sem    *Semaphore
	memory int64
}

func newMemoryUnits(sem *Semaphore, memory int64) *MemoryUnits {
	if sem != nil && memory != 0 {
		sem.consumeMemory(memory)
	}
	return &MemoryUnits{sem: sem, memory: memory}
}

// Size returns the currently held memory amount.
func (mu *MemoryUnits) Size() int64 {
	if mu == nil {
		return 0
	}
	return mu.memory
}

// Reset re-sizes the acquisition to memory bytes. The new amount is
// debited before the old one is credited, so waiters are never woken
// by a transient credit they cannot actually fit into.
func (mu *MemoryUnits) Reset(memory int64) {
	if mu == nil || mu.sem == nil {
		return
	}
	mu.sem.resetMemory(mu.memory, memory)
	mu.memory = memory
}

// Close returns the held memory to the semaphore. Idempotent.
func (mu *MemoryUnits) Close() {
	mu.Reset(0)
}
