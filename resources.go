package readgate

import "fmt"

// Resources is the pair of dimensions a read consumes while admitted:
// one slot in the Count dimension per concurrent reader, plus an
// estimated Memory budget in bytes.
//
// Count is hard-capped. Memory is soft: the available pool may go
// transiently negative when readers turn out to need more than their
// admission estimate (see Semaphore).
type Resources struct {
	Count  int64
	Memory int64
}

// Add returns the element-wise sum of r and o.
func (r Resources) Add(o Resources) Resources {
	return Resources{
		Count:  r.Count + o.Count,
		Memory: r.Memory + o.Memory,
	}
}

// Sub returns the element-wise difference of r and o.
func (r Resources) Sub(o Resources) Resources {
	return Resources{
		Count:  r.Count - o.Count,
		Memory: r.Memory - o.Memory,
	}
}

// FitsIn reports whether r fits into the given capacity on both
// dimensions.
func (r Resources) FitsIn(capacity Resources) bool {
	return r.Count <= capacity.Count && r.Memory <= capacity.Memory
}

// IsZero reports whether both dimensions are zero.
func (r Resources) IsZero() bool {
	return r.Count == 0 && r.Memory == 0
}

func (r Resources) String() string {
	return fmt.Sprintf("{count: %d, memory: %d}", r.Count, r.Memory)
}
