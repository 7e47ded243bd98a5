// Package cache implements a trace-driven set-associative cache simulator
// with pluggable replacement policies.
package cache

import (
	"github.com/tracelab/cachemodel/trace"
)

// An AccessResult reports the outcome of one cache access.
type AccessResult struct {
	Hit   bool
	Block uint64
	SetID int
	WayID int
	Tag   uint64

	// Eviction details, only meaningful on a miss that displaced a valid
	// line.
	Evicted      bool
	EvictedTag   uint64
	EvictedDirty bool
}

// Stats accumulates hit/miss accounting for a Simulator.
type Stats struct {
	Hits           uint64
	Misses         uint64
	Reads          uint64
	Writes         uint64
	Evictions      uint64
	DirtyEvictions uint64
}

// HitRate returns hits over total accesses, 0 when nothing was accessed.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}

// A Simulator replays memory accesses against a set-associative cache. It is
// a deterministic batch model: every decision is a pure function of the
// access prefix and the per-set policy state.
type Simulator struct {
	name string

	numSets       int
	associativity int
	blockSize     uint64

	sets  []set
	stats Stats
}

// Name returns the name given at build time.
func (s *Simulator) Name() string {
	return s.name
}

// NumSets returns the number of sets.
func (s *Simulator) NumSets() int {
	return s.numSets
}

// Associativity returns the number of ways per set.
func (s *Simulator) Associativity() int {
	return s.associativity
}

// BlockSize returns the block size in bytes.
func (s *Simulator) BlockSize() int {
	return int(s.blockSize)
}

// Stats returns a copy of the accumulated statistics.
func (s *Simulator) Stats() Stats {
	return s.stats
}

// HitRate returns the overall hit rate, 0 before the first access.
func (s *Simulator) HitRate() float64 {
	return s.stats.HitRate()
}

// Access replays one access and returns its outcome. The decision depends
// only on the state of the set the address maps to.
func (s *Simulator) Access(addr uint64, kind trace.AccessType) AccessResult {
	block := addr / s.blockSize
	setID := int(block % uint64(s.numSets))
	tag := block / uint64(s.numSets)

	if kind == trace.Write {
		s.stats.Writes++
	} else {
		s.stats.Reads++
	}

	target := &s.sets[setID]

	result := AccessResult{
		Block: block,
		SetID: setID,
		Tag:   tag,
	}

	if way, found := target.lookup(tag); found {
		s.stats.Hits++
		result.Hit = true
		result.WayID = way

		if kind == trace.Write {
			target.lines[way].dirty = true
		}

		target.policy.OnAccess(way)

		return result
	}

	s.stats.Misses++

	way := target.policy.SelectVictim()
	result.WayID = way

	victim := &target.lines[way]
	if victim.valid {
		s.stats.Evictions++
		result.Evicted = true
		result.EvictedTag = victim.tag
		result.EvictedDirty = victim.dirty

		if victim.dirty {
			s.stats.DirtyEvictions++
		}
	}

	victim.valid = true
	victim.tag = tag
	victim.dirty = kind == trace.Write

	target.policy.OnAccess(way)

	return result
}

// Replay runs a whole trace through the cache and returns the per-access
// outcomes in order.
func (s *Simulator) Replay(accesses []trace.Access) []AccessResult {
	results := make([]AccessResult, len(accesses))
	for i, a := range accesses {
		results[i] = s.Access(a.Address, a.Type)
	}

	return results
}

// Reset invalidates every line, resets every policy, and clears the
// statistics.
func (s *Simulator) Reset() {
	for i := range s.sets {
		for j := range s.sets[i].lines {
			s.sets[i].lines[j] = line{}
		}

		s.sets[i].policy.Reset()
	}

	s.stats = Stats{}
}
