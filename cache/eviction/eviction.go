// Package eviction provides the replacement policies used by set-associative
// caches. A policy instance tracks the per-way metadata of exactly one cache
// set; every set owns its own instance.
package eviction

import "fmt"

// A Policy decides which way of a cache set to evict on a miss.
type Policy interface {
	// OnAccess records that a way was just referenced.
	OnAccess(way int)

	// SelectVictim returns the way to evict next.
	SelectVictim() int

	// Reset restores the policy to its just-initialized state.
	Reset()
}

// Names of the supported replacement strategies.
const (
	KindLRU    = "lru"
	KindFIFO   = "fifo"
	KindRandom = "random"
	KindPLRU   = "plru"
)

// New creates a policy of the named kind for a set with numWays ways. The
// seed is only used by the random policy.
func New(kind string, numWays int, seed int64) (Policy, error) {
	switch kind {
	case KindLRU:
		return NewLRU(numWays)
	case KindFIFO:
		return NewFIFO(numWays)
	case KindRandom:
		return NewRandom(numWays, seed)
	case KindPLRU:
		return NewPLRU(numWays)
	default:
		return nil, fmt.Errorf("unknown replacement policy %q", kind)
	}
}
