package trace

import (
	"math/rand"
)

// Sequential generates count accesses that walk one block at a time:
// 0, blockSize, 2*blockSize, ...
func Sequential(count, blockSize int) []Access {
	accesses := make([]Access, count)
	for i := range accesses {
		accesses[i] = Access{
			Address:   uint64(i) * uint64(blockSize),
			Type:      Read,
			Timestamp: uint64(i),
		}
	}

	return accesses
}

// Random generates count accesses drawn uniformly from [0, maxAddress).
// The generator is seeded so runs are reproducible. A zero maxAddress yields
// an all-zero trace.
func Random(count int, maxAddress uint64, seed int64) []Access {
	rng := rand.New(rand.NewSource(seed))

	accesses := make([]Access, count)
	for i := range accesses {
		var addr uint64
		if maxAddress > 0 {
			addr = rng.Uint64() % maxAddress
		}

		accesses[i] = Access{
			Address:   addr,
			Type:      Read,
			Timestamp: uint64(i),
		}
	}

	return accesses
}

// Locality generates count accesses with temporal locality: with probability
// pLocal the access stays inside a working set of workingSetBlocks blocks,
// otherwise it jumps to a random block in [0, jumpBlocks).
func Locality(
	count, workingSetBlocks, jumpBlocks, blockSize int,
	pLocal float64,
	seed int64,
) []Access {
	rng := rand.New(rand.NewSource(seed))

	accesses := make([]Access, count)
	for i := range accesses {
		var block int
		if rng.Float64() < pLocal {
			block = rng.Intn(workingSetBlocks)
		} else {
			block = rng.Intn(jumpBlocks)
		}

		accesses[i] = Access{
			Address:   uint64(block) * uint64(blockSize),
			Type:      Read,
			Timestamp: uint64(i),
		}
	}

	return accesses
}

// Zipf generates count accesses whose block numbers follow a Zipf
// distribution over [0, maxBlocks]. s and v parameterize the distribution as
// in math/rand: s > 1, v >= 1.
func Zipf(
	count int,
	s, v float64,
	maxBlocks uint64,
	blockSize int,
	seed int64,
) []Access {
	rng := rand.New(rand.NewSource(seed))
	zipf := rand.NewZipf(rng, s, v, maxBlocks)

	accesses := make([]Access, count)
	for i := range accesses {
		accesses[i] = Access{
			Address:   zipf.Uint64() * uint64(blockSize),
			Type:      Read,
			Timestamp: uint64(i),
		}
	}

	return accesses
}
