package cache

import "github.com/tracelab/cachemodel/cache/eviction"

// A line is one way of a cache set. An invalid line holds no block.
type line struct {
	valid bool
	dirty bool
	tag   uint64
}

// A set is an associativity-wide group of lines plus the replacement policy
// that owns their metadata. Sets are exclusively owned by their Simulator
// and never share policy instances.
type set struct {
	lines  []line
	policy eviction.Policy
}

// lookup scans the ways in index order for a valid line holding tag.
func (s *set) lookup(tag uint64) (way int, found bool) {
	for i := range s.lines {
		if s.lines[i].valid && s.lines[i].tag == tag {
			return i, true
		}
	}

	return -1, false
}
