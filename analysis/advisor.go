package analysis

import (
	"fmt"

	"github.com/tracelab/cachemodel/cache"
	"github.com/tracelab/cachemodel/cache/eviction"
	"github.com/tracelab/cachemodel/trace"
)

// A HitRateEvaluator reports the hit rate a cache of cacheBlocks blocks
// achieves on some fixed trace.
type HitRateEvaluator func(cacheBlocks int) (float64, error)

// MinimalSizeForHitRate binary-searches [1, maxSize] for the smallest cache
// size (in blocks) whose evaluated hit rate reaches target. When the target
// is unattainable within the range it saturates at maxSize; that is a
// well-defined result, not an error.
func MinimalSizeForHitRate(
	eval HitRateEvaluator,
	target float64,
	maxSize int,
) (int, error) {
	if maxSize < 1 {
		return 0, fmt.Errorf("max size must be at least 1, got %d", maxSize)
	}

	low, high := 1, maxSize
	best := maxSize

	for low <= high {
		mid := (low + high) / 2

		hitRate, err := eval(mid)
		if err != nil {
			return 0, err
		}

		if hitRate >= target {
			best = mid
			high = mid - 1
		} else {
			low = mid + 1
		}
	}

	return best, nil
}

// ReuseDistanceEvaluator predicts hit rates from precomputed reuse
// distances. Each probe is O(n); combined with the binary search this is the
// advisor's default evaluator.
func ReuseDistanceEvaluator(distances []int) HitRateEvaluator {
	return func(cacheBlocks int) (float64, error) {
		return PredictHitRate(distances, cacheBlocks), nil
	}
}

// SimulationEvaluator measures hit rates by replaying the trace through a
// fully-associative LRU cache of the probed size. Slower than the
// reuse-distance evaluator but exercises the real simulator; the two must
// agree.
func SimulationEvaluator(
	accesses []trace.Access,
	blockSize int,
) HitRateEvaluator {
	return func(cacheBlocks int) (float64, error) {
		sim, err := cache.MakeBuilder().
			WithNumSets(1).
			WithAssociativity(cacheBlocks).
			WithBlockSize(blockSize).
			WithReplacementPolicy(eviction.KindLRU).
			Build("advisor")
		if err != nil {
			return 0, err
		}

		sim.Replay(accesses)

		return sim.HitRate(), nil
	}
}
