package eviction

import (
	"fmt"
	"math/rand"
)

// random picks victims uniformly. Each instance owns its own seeded
// generator, so parallel simulations stay independent and repeatable.
type random struct {
	numWays int
	seed    int64
	rng     *rand.Rand
}

// NewRandom creates a random replacement policy for numWays ways.
func NewRandom(numWays int, seed int64) (Policy, error) {
	if numWays < 1 {
		return nil, fmt.Errorf(
			"random: associativity must be at least 1, got %d", numWays)
	}

	return &random{
		numWays: numWays,
		seed:    seed,
		rng:     rand.New(rand.NewSource(seed)),
	}, nil
}

// OnAccess is a no-op. Random replacement tracks nothing.
func (p *random) OnAccess(way int) {}

func (p *random) SelectVictim() int {
	return p.rng.Intn(p.numWays)
}

func (p *random) Reset() {
	p.rng = rand.New(rand.NewSource(p.seed))
}
