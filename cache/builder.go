package cache

import (
	"errors"
	"fmt"

	"github.com/tracelab/cachemodel/cache/eviction"
)

// ErrConfig reports an invalid cache configuration. Construction fails
// before any access is processed.
var ErrConfig = errors.New("invalid cache configuration")

// A PolicyFactory creates one replacement policy instance per set. setID
// lets seeded policies stay independent across sets.
type PolicyFactory func(numWays, setID int) (eviction.Policy, error)

// Builder can build cache simulators.
type Builder struct {
	numSets       int
	associativity int
	blockSize     int
	policyKind    string
	randomSeed    int64
	policyFactory PolicyFactory
}

// MakeBuilder creates a new builder with the default configuration: 64 sets,
// 4-way, 64-byte blocks, LRU replacement.
func MakeBuilder() Builder {
	return Builder{
		numSets:       64,
		associativity: 4,
		blockSize:     64,
		policyKind:    eviction.KindLRU,
	}
}

// WithNumSets sets the number of sets.
func (b Builder) WithNumSets(numSets int) Builder {
	b.numSets = numSets
	return b
}

// WithAssociativity sets the number of ways per set.
func (b Builder) WithAssociativity(associativity int) Builder {
	b.associativity = associativity
	return b
}

// WithBlockSize sets the block size in bytes. It must be a positive power of
// two.
func (b Builder) WithBlockSize(blockSize int) Builder {
	b.blockSize = blockSize
	return b
}

// WithReplacementPolicy selects the replacement strategy by name (lru, fifo,
// random, or plru).
func (b Builder) WithReplacementPolicy(kind string) Builder {
	b.policyKind = kind
	return b
}

// WithRandomSeed sets the seed used by the random replacement policy. Set i
// derives its generator from seed+i.
func (b Builder) WithRandomSeed(seed int64) Builder {
	b.randomSeed = seed
	return b
}

// WithPolicyFactory overrides the replacement policy construction entirely.
// The factory is invoked once per set.
func (b Builder) WithPolicyFactory(factory PolicyFactory) Builder {
	b.policyFactory = factory
	return b
}

// Build builds a simulator. Configuration errors are returned before any
// simulation state exists.
func (b Builder) Build(name string) (*Simulator, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	factory := b.policyFactory
	if factory == nil {
		factory = func(numWays, setID int) (eviction.Policy, error) {
			return eviction.New(b.policyKind, numWays, b.randomSeed+int64(setID))
		}
	}

	sets := make([]set, b.numSets)
	for i := range sets {
		policy, err := factory(b.associativity, i)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}

		sets[i] = set{
			lines:  make([]line, b.associativity),
			policy: policy,
		}
	}

	return &Simulator{
		name:          name,
		numSets:       b.numSets,
		associativity: b.associativity,
		blockSize:     uint64(b.blockSize),
		sets:          sets,
	}, nil
}

func (b Builder) validate() error {
	if b.numSets < 1 {
		return fmt.Errorf("%w: number of sets must be at least 1, got %d",
			ErrConfig, b.numSets)
	}

	if b.associativity < 1 {
		return fmt.Errorf("%w: associativity must be at least 1, got %d",
			ErrConfig, b.associativity)
	}

	if b.blockSize < 1 || b.blockSize&(b.blockSize-1) != 0 {
		return fmt.Errorf("%w: block size must be a positive power of two, got %d",
			ErrConfig, b.blockSize)
	}

	return nil
}
