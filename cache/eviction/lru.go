package eviction

import "fmt"

// lru tracks recency with a monotonically increasing counter. Each way
// remembers the counter value at its last access; the victim is the way with
// the smallest value.
//
// The ways are seeded with staggered values 0..N-1 and the counter starts at
// N, so that before any access the victim is deterministically way 0 and
// empty ways are claimed in index order. Ties break toward the lowest way
// index.
type lru struct {
	numWays    int
	counter    uint64
	lastAccess []uint64
}

// NewLRU creates a least-recently-used policy for numWays ways.
func NewLRU(numWays int) (Policy, error) {
	if numWays < 1 {
		return nil, fmt.Errorf("lru: associativity must be at least 1, got %d",
			numWays)
	}

	p := &lru{
		numWays:    numWays,
		lastAccess: make([]uint64, numWays),
	}
	p.Reset()

	return p, nil
}

func (p *lru) OnAccess(way int) {
	if way < 0 || way >= p.numWays {
		return
	}

	p.lastAccess[way] = p.counter
	p.counter++
}

func (p *lru) SelectVictim() int {
	victim := 0
	minTime := p.lastAccess[0]

	for way := 1; way < p.numWays; way++ {
		if p.lastAccess[way] < minTime {
			minTime = p.lastAccess[way]
			victim = way
		}
	}

	return victim
}

func (p *lru) Reset() {
	for way := range p.lastAccess {
		p.lastAccess[way] = uint64(way)
	}

	p.counter = uint64(p.numWays)
}
