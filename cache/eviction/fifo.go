package eviction

import "fmt"

// fifo rotates a victim pointer through the ways, ignoring access recency.
// The pointer only advances inside SelectVictim, i.e. on misses that evict.
// Since the simulator always fills the selected way immediately, the
// rotation order equals insertion order; no separate re-insertion step is
// needed.
type fifo struct {
	numWays    int
	nextVictim int
}

// NewFIFO creates a first-in-first-out policy for numWays ways.
func NewFIFO(numWays int) (Policy, error) {
	if numWays < 1 {
		return nil, fmt.Errorf("fifo: associativity must be at least 1, got %d",
			numWays)
	}

	return &fifo{numWays: numWays}, nil
}

// OnAccess is a no-op. FIFO tracks insertion order, not recency.
func (p *fifo) OnAccess(way int) {}

func (p *fifo) SelectVictim() int {
	victim := p.nextVictim
	p.nextVictim = (p.nextVictim + 1) % p.numWays

	return victim
}

func (p *fifo) Reset() {
	p.nextVictim = 0
}
