package eviction

import "fmt"

// plru approximates LRU with numWays-1 tree bits forming a complete binary
// tree, root at index 0, children of node i at 2i+1 and 2i+2. A cleared bit
// sends the victim search into the left half of the subtree, a set bit into
// the right half.
//
// Both walks are depth log2(numWays) and iterative.
type plru struct {
	numWays int
	bits    []bool
}

// NewPLRU creates a pseudo-LRU policy. numWays must be a power of two and at
// least 2.
func NewPLRU(numWays int) (Policy, error) {
	if numWays < 2 || numWays&(numWays-1) != 0 {
		return nil, fmt.Errorf(
			"plru: associativity must be a power of two >= 2, got %d", numWays)
	}

	return &plru{
		numWays: numWays,
		bits:    make([]bool, numWays-1),
	}, nil
}

// OnAccess walks from the root toward the accessed way, pointing every bit
// on the path away from the half that contains the way.
func (p *plru) OnAccess(way int) {
	if way < 0 || way >= p.numWays {
		return
	}

	node := 0
	pos := way

	for size := p.numWays; size > 1; size >>= 1 {
		half := size / 2

		if pos < half {
			p.bits[node] = true // left half just used, prefer right as victim
			node = 2*node + 1
		} else {
			p.bits[node] = false // right half just used, prefer left as victim
			pos -= half
			node = 2*node + 2
		}
	}
}

// SelectVictim follows the bits from the root to a leaf and returns the leaf
// number.
func (p *plru) SelectVictim() int {
	node := 0
	victim := 0

	for size := p.numWays; size > 1; size >>= 1 {
		half := size / 2

		if p.bits[node] {
			victim += half
			node = 2*node + 2
		} else {
			node = 2*node + 1
		}
	}

	return victim
}

func (p *plru) Reset() {
	for i := range p.bits {
		p.bits[i] = false
	}
}
