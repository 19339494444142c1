package readgate

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultMaxQueueLength is the admission-queue cap used when no
// WithMaxQueueLength option is given.
const DefaultMaxQueueLength = 100

// waiter is a queued admission request. The ready channel is buffered
// so the wake loop can hand over a permit without blocking; the waiter
// either receives it or, if it gave up in the meantime, drains the
// channel and returns the permit.
type waiter struct {
	res   Resources
	ready chan *Permit
}

// Semaphore is an admission-control semaphore for read operations.
// Each admitted read consumes one slot and a caller-estimated memory
// budget; when either dimension is exhausted, further requests queue
// FIFO. Idle readers can register as evictable so their resources may
// be reclaimed under pressure.
//
// Slots are hard-capped. Memory is soft: a request whose estimate
// exceeds the available bytes is still admitted as long as any memory
// headroom remains, because storage reads commonly overestimate. A
// fully depleted memory pool blocks until something frees.
//
// All methods are safe for concurrent use. Permits and memory units
// must be returned to the semaphore they were issued by.
type Semaphore struct {
	mu sync.Mutex

	capacity  Resources
	resources Resources // available, i.e. capacity minus admitted

	waitList       *list.List // of *waiter, FIFO
	maxQueueLength int

	inactiveReads *list.List // of *inactiveEntry, ascending id
	inactiveIndex map[uint64]*list.Element
	nextID        uint64
	stats         InactiveReadStats

	name           string
	prethrowAction func()
	logger         *Logger
	observer       MetricsObserver
}

// NewSemaphore creates a semaphore with the given slot and memory
// capacity. Both must be non-negative.
func NewSemaphore(count, memory int64, optFns ...Option) *Semaphore {
	opts := options{
		maxQueueLength: DefaultMaxQueueLength,
		name:           "readgate",
		logger:         NoopLogger(),
		observer:       &NoopMetricsObserver{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if count < 0 || memory < 0 {
		panic(fmt.Sprintf("readgate: %s: negative capacity {count: %d, memory: %d}", opts.name, count, memory))
	}

	capacity := Resources{Count: count, Memory: memory}

	return &Semaphore{
		capacity:       capacity,
		resources:      capacity,
		waitList:       list.New(),
		maxQueueLength: opts.maxQueueLength,
		inactiveReads:  list.New(),
		inactiveIndex:  make(map[uint64]*list.Element),
		nextID:         1,
		name:           opts.name,
		prethrowAction: opts.prethrowAction,
		logger:         opts.logger,
		observer:       opts.observer,
	}
}

// Name returns the identifier embedded in errors.
func (s *Semaphore) Name() string { return s.name }

// Capacity returns the resource capacity the semaphore was built with.
func (s *Semaphore) Capacity() Resources { return s.capacity }

// Available returns the currently available resources. Memory may be
// negative while admitted readers exceed their estimates.
func (s *Semaphore) Available() Resources {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.resources
}

// QueueDepth returns the number of queued admission requests.
func (s *Semaphore) QueueDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.waitList.Len()
}

// InactiveReadStats returns a snapshot of the registry counters.
func (s *Semaphore) InactiveReadStats() InactiveReadStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stats
}

// mayProceed reports whether a request for r can be admitted right
// now. Slots are checked against what is available; memory only needs
// any headroom left unless the request carries no memory at all.
func (s *Semaphore) mayProceed(r Resources) bool {
	return r.Count <= s.resources.Count && (s.resources.Memory > 0 || r.Memory == 0)
}

// checkSlotInvariant panics if the slot count went out of bounds.
// Unlike memory, the count dimension must never be over-committed;
// a violation is a programming error, not a recoverable condition.
func (s *Semaphore) checkSlotInvariant() {
	if s.resources.Count < 0 || s.resources.Count > s.capacity.Count {
		panic(fmt.Sprintf("readgate: %s: slot count out of bounds: %d not in [0, %d]",
			s.name, s.resources.Count, s.capacity.Count))
	}
}

// WaitAdmission admits a read that estimates it needs the given number
// of memory bytes, blocking until resources are available or ctx is
// done. The context carries the admission deadline.
//
// If the request cannot be admitted immediately, inactive reads are
// evicted, oldest first, until it fits or the registry is empty; only
// then is the request queued. Queued requests are admitted in strict
// FIFO order.
//
// Returns a QueueOverloadError if the wait queue is full, or an
// AdmissionTimeoutError if ctx expires while queued.
func (s *Semaphore) WaitAdmission(ctx context.Context, memory int64) (*Permit, error) {
	s.mu.Lock()

	if s.waitList.Len() >= s.maxQueueLength {
		depth := s.waitList.Len()
		s.mu.Unlock()

		if s.prethrowAction != nil {
			s.prethrowAction()
		}
		s.logger.LogQueueOverload(s.name, depth)
		s.observer.OnQueueOverload()

		return nil, &QueueOverloadError{Name: s.name}
	}

	r := Resources{Count: 1, Memory: memory}

	// Prefer displacing idle readers over queueing behind them. The
	// entry is removed from the registry before Evict is called, and
	// the lock is dropped around the call: eviction re-enters the
	// semaphore when the reader drops its permit.
	for !s.mayProceed(r) {
		entry, ok := s.popOldestInactive()
		if !ok {
			break
		}
		s.mu.Unlock()

		entry.reader.Evict()
		s.logger.LogEviction(s.name, entry.id)
		s.observer.OnEviction()

		s.mu.Lock()
	}

	if s.mayProceed(r) {
		s.resources = s.resources.Sub(r)
		s.checkSlotInvariant()
		s.mu.Unlock()

		s.observer.OnAdmit(false, 0)

		return newPermit(s, r), nil
	}

	w := &waiter{res: r, ready: make(chan *Permit, 1)}
	elem := s.waitList.PushBack(w)
	depth := s.waitList.Len()
	s.mu.Unlock()

	s.observer.OnQueueDepth(depth)
	start := time.Now()

	select {
	case p := <-w.ready:
		s.observer.OnAdmit(true, time.Since(start))
		return p, nil
	case <-ctx.Done():
		s.mu.Lock()
		select {
		case p := <-w.ready:
			// Granted concurrently with expiry. Return the permit's
			// resources and fail the request.
			s.mu.Unlock()
			p.Close()
		default:
			s.waitList.Remove(elem)
			s.mu.Unlock()
		}

		err := &AdmissionTimeoutError{Name: s.name, cause: ctx.Err()}
		s.logger.LogAdmissionTimeout(s.name, err)
		s.observer.OnAdmissionTimeout()

		return nil, err
	}
}

// ConsumeResources debits r without any admission check and returns a
// permit carrying it as base cost. It is the synchronous fast path for
// callers that have already reserved resources out-of-band.
func (s *Semaphore) ConsumeResources(r Resources) *Permit {
	s.mu.Lock()
	s.resources = s.resources.Sub(r)
	s.checkSlotInvariant()
	s.mu.Unlock()

	return newPermit(s, r)
}

// Signal credits r back to the semaphore and admits queued requests,
// in FIFO order, for as long as the queue head fits. After Signal
// returns, either the queue is empty or its head does not fit.
func (s *Semaphore) Signal(r Resources) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.signalLocked(r)
}

func (s *Semaphore) signalLocked(r Resources) {
	s.resources = s.resources.Add(r)
	s.checkSlotInvariant()

	for elem := s.waitList.Front(); elem != nil; elem = s.waitList.Front() {
		w := elem.Value.(*waiter)
		if !s.mayProceed(w.res) {
			break
		}
		s.waitList.Remove(elem)
		s.resources = s.resources.Sub(w.res)
		w.ready <- newPermit(s, w.res)
	}
}

// consumeMemory debits memory without waking anyone.
func (s *Semaphore) consumeMemory(memory int64) {
	s.mu.Lock()
	s.resources.Memory -= memory
	s.mu.Unlock()
}

// resetMemory atomically debits the new amount and credits the old
// one. The debit is recorded first so the wake loop never sees a
// transient credit it could spuriously admit against.
func (s *Semaphore) resetMemory(oldMemory, newMemory int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resources.Memory -= newMemory
	s.signalLocked(Resources{Memory: oldMemory})
}

// RegisterInactiveRead registers an idle reader so its resources can
// be reclaimed under pressure and returns a handle for unregistering
// it.
//
// If admission requests are queued, registering would be wasteful:
// the reader is evicted immediately instead and the empty handle is
// returned.
func (s *Semaphore) RegisterInactiveRead(reader InactiveRead) InactiveReadHandle {
	s.mu.Lock()

	// Implies the registry was drained first: admissions never queue
	// before evicting all inactive reads.
	if s.waitList.Len() == 0 {
		id := s.nextID
		s.nextID++
		elem := s.inactiveReads.PushBack(&inactiveEntry{id: id, reader: reader})
		s.inactiveIndex[id] = elem
		s.stats.Population++
		s.mu.Unlock()

		return InactiveReadHandle{id: id}
	}

	// The evicted reader will release its permit, hopefully allowing
	// us to admit some queued requests.
	s.stats.PermitBasedEvictions++
	s.mu.Unlock()

	reader.Evict()
	s.observer.OnEviction()

	return InactiveReadHandle{}
}

// UnregisterInactiveRead removes the registration for the given handle
// and returns the reader, which is now the caller's to resume. Evict
// is not called. Returns false if the handle is empty or the entry was
// already evicted.
func (s *Semaphore) UnregisterInactiveRead(h InactiveReadHandle) (InactiveRead, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.inactiveIndex[h.id]
	if !ok {
		return nil, false
	}
	entry := elem.Value.(*inactiveEntry)
	s.inactiveReads.Remove(elem)
	delete(s.inactiveIndex, h.id)
	s.stats.Population--

	return entry.reader, true
}

// TryEvictOneInactiveRead evicts the oldest registered inactive read,
// if any, and reports whether an eviction happened.
func (s *Semaphore) TryEvictOneInactiveRead() bool {
	s.mu.Lock()
	entry, ok := s.popOldestInactive()
	s.mu.Unlock()

	if !ok {
		return false
	}

	entry.reader.Evict()
	s.logger.LogEviction(s.name, entry.id)
	s.observer.OnEviction()

	return true
}

// popOldestInactive removes and returns the lowest-id registry entry.
// Lowest id first means FIFO by registration time: stale readers were
// idle longest. Caller must hold s.mu and must call Evict only after
// releasing it.
func (s *Semaphore) popOldestInactive() (*inactiveEntry, bool) {
	elem := s.inactiveReads.Front()
	if elem == nil {
		return nil, false
	}
	entry := elem.Value.(*inactiveEntry)
	s.inactiveReads.Remove(elem)
	delete(s.inactiveIndex, entry.id)
	s.stats.Population--
	s.stats.PermitBasedEvictions++

	return entry, true
}
