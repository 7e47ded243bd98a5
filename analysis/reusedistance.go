// Package analysis derives cache-sizing predictions from memory traces
// without re-simulating for every candidate size: reuse (stack) distances,
// working-set sizes, and a minimal-cache-size recommender.
package analysis

import (
	"fmt"

	"github.com/tracelab/cachemodel/trace"
)

// InfiniteDistance marks the first reference to a block. Conceptually the
// distance is infinite; every such access is a compulsory miss.
const InfiniteDistance = -1

// ReuseDistances computes the stack distance of every access: the number of
// distinct blocks referenced strictly between an access and the previous
// access to the same block.
//
// This is Olken's algorithm over a Fenwick tree keyed by access position,
// O(n log n) overall. The most recent position of every distinct block is
// marked in the tree; the distance of a repeat access at position i with
// previous occurrence at p is the count of marked positions after p.
func ReuseDistances(accesses []trace.Access, blockSize int) ([]int, error) {
	if blockSize < 1 || blockSize&(blockSize-1) != 0 {
		return nil, fmt.Errorf(
			"block size must be a positive power of two, got %d", blockSize)
	}

	distances := make([]int, len(accesses))
	lastPos := make(map[uint64]int, len(accesses))
	tree := newFenwickTree(len(accesses))
	distinct := 0

	for i, a := range accesses {
		block := a.Address / uint64(blockSize)
		pos := i + 1 // Fenwick positions are 1-based.

		if prev, seen := lastPos[block]; seen {
			distances[i] = distinct - tree.prefixSum(prev)
			tree.add(prev, -1)
		} else {
			distances[i] = InfiniteDistance
			distinct++
		}

		tree.add(pos, 1)
		lastPos[block] = pos
	}

	return distances, nil
}

// PredictHitRate predicts the hit rate of a fully-associative LRU cache
// holding cacheBlocks blocks: an access hits iff its distance is defined and
// strictly below the capacity. Returns 0 for an empty trace.
func PredictHitRate(distances []int, cacheBlocks int) float64 {
	if len(distances) == 0 {
		return 0
	}

	hits := 0
	for _, d := range distances {
		if d >= 0 && d < cacheBlocks {
			hits++
		}
	}

	return float64(hits) / float64(len(distances))
}

// A SizeMissRate is one point of a miss-rate curve.
type SizeMissRate struct {
	Size     int
	MissRate float64
}

// MissRateCurve evaluates the predicted miss rate for every cache size from
// 1 to maxCacheBlocks. The result is non-increasing in miss rate.
//
// Computed from a distance histogram and a running hit count, so the whole
// curve costs O(n + maxCacheBlocks) instead of re-scanning per size.
func MissRateCurve(distances []int, maxCacheBlocks int) []SizeMissRate {
	hitsBelow := make([]int, maxCacheBlocks+1)
	for _, d := range distances {
		if d >= 0 && d < maxCacheBlocks {
			hitsBelow[d+1]++
		}
	}

	curve := make([]SizeMissRate, maxCacheBlocks)
	hits := 0

	for size := 1; size <= maxCacheBlocks; size++ {
		hits += hitsBelow[size]

		hitRate := 0.0
		if len(distances) > 0 {
			hitRate = float64(hits) / float64(len(distances))
		}

		curve[size-1] = SizeMissRate{Size: size, MissRate: 1 - hitRate}
	}

	return curve
}

// A DistanceHistogram summarizes a distance sequence. Distances at or above
// the overflow threshold share one bucket; first references are counted
// separately.
type DistanceHistogram struct {
	Counts          []uint64 // Counts[d] = accesses with distance d.
	Overflow        uint64
	FirstReferences uint64
}

// NewDistanceHistogram builds a histogram with maxDistance individual
// buckets.
func NewDistanceHistogram(distances []int, maxDistance int) DistanceHistogram {
	h := DistanceHistogram{Counts: make([]uint64, maxDistance)}

	for _, d := range distances {
		switch {
		case d == InfiniteDistance:
			h.FirstReferences++
		case d >= maxDistance:
			h.Overflow++
		default:
			h.Counts[d]++
		}
	}

	return h
}

// fenwickTree is a binary indexed tree over 1-based positions, supporting
// point updates and prefix sums in O(log n).
type fenwickTree struct {
	counts []int
}

func newFenwickTree(n int) *fenwickTree {
	return &fenwickTree{counts: make([]int, n+1)}
}

func (t *fenwickTree) add(pos, delta int) {
	for ; pos < len(t.counts); pos += pos & -pos {
		t.counts[pos] += delta
	}
}

func (t *fenwickTree) prefixSum(pos int) int {
	sum := 0
	for ; pos > 0; pos -= pos & -pos {
		sum += t.counts[pos]
	}

	return sum
}
