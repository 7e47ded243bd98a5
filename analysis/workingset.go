package analysis

import (
	"fmt"

	"github.com/tracelab/cachemodel/trace"
)

// WorkingSetSizes slides a window of windowSize accesses over the trace and
// reports, for every full-window position, the number of distinct blocks
// inside the window. A trace shorter than the window yields a single value:
// the distinct-block count of the whole trace.
func WorkingSetSizes(
	accesses []trace.Access,
	windowSize, blockSize int,
) ([]int, error) {
	if windowSize < 1 {
		return nil, fmt.Errorf("window size must be at least 1, got %d",
			windowSize)
	}

	if blockSize < 1 || blockSize&(blockSize-1) != 0 {
		return nil, fmt.Errorf(
			"block size must be a positive power of two, got %d", blockSize)
	}

	if len(accesses) < windowSize {
		return []int{DistinctBlocks(accesses, blockSize)}, nil
	}

	inWindow := make(map[uint64]int)
	sizes := make([]int, 0, len(accesses)-windowSize+1)

	blockAt := func(i int) uint64 {
		return accesses[i].Address / uint64(blockSize)
	}

	for i := 0; i < windowSize; i++ {
		inWindow[blockAt(i)]++
	}

	sizes = append(sizes, len(inWindow))

	for i := windowSize; i < len(accesses); i++ {
		leaving := blockAt(i - windowSize)
		inWindow[leaving]--
		if inWindow[leaving] == 0 {
			delete(inWindow, leaving)
		}

		inWindow[blockAt(i)]++

		sizes = append(sizes, len(inWindow))
	}

	return sizes, nil
}

// DistinctBlocks counts the distinct blocks referenced by the whole trace.
func DistinctBlocks(accesses []trace.Access, blockSize int) int {
	seen := make(map[uint64]struct{}, len(accesses))
	for _, a := range accesses {
		seen[a.Address/uint64(blockSize)] = struct{}{}
	}

	return len(seen)
}
