// Package validation replays traces through a cache simulator, captures
// per-access outcome logs, and compares them against logs produced by other
// implementations of the same model.
package validation

import (
	"fmt"

	"github.com/tracelab/cachemodel/cache"
	"github.com/tracelab/cachemodel/trace"
)

// A Record is the outcome of one access, in replay order.
type Record struct {
	Index   int
	Address uint64
	Block   uint64
	Set     int
	Way     int
	Tag     uint64
	Hit     bool
}

// A Mismatch describes one disagreement between two logs.
type Mismatch struct {
	Index    int
	Address  uint64
	Field    string
	Expected string
	Actual   string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("access %d (addr 0x%08X): %s expected %s, got %s",
		m.Index, m.Address, m.Field, m.Expected, m.Actual)
}

// A Result is the outcome of comparing two logs.
type Result struct {
	Passed     bool
	Mismatches []Mismatch
}

// Capture replays the trace through the simulator and returns one record per
// access. The simulator is reset first so the log always starts from a cold
// cache.
func Capture(sim *cache.Simulator, accesses []trace.Access) []Record {
	sim.Reset()

	records := make([]Record, len(accesses))
	for i, access := range accesses {
		result := sim.Access(access.Address, access.Type)

		records[i] = Record{
			Index:   i,
			Address: access.Address,
			Block:   result.Block,
			Set:     result.SetID,
			Way:     result.WayID,
			Tag:     result.Tag,
			Hit:     result.Hit,
		}
	}

	return records
}

// Compare matches two logs positionally. Both logs are opaque artifacts; the
// comparison never assumes which side came from this implementation. A length
// difference is itself reported as a mismatch.
func Compare(expected, actual []Record) Result {
	var mismatches []Mismatch

	if len(expected) != len(actual) {
		mismatches = append(mismatches, Mismatch{
			Index:    min(len(expected), len(actual)),
			Field:    "length",
			Expected: fmt.Sprintf("%d records", len(expected)),
			Actual:   fmt.Sprintf("%d records", len(actual)),
		})
	}

	n := min(len(expected), len(actual))
	for i := 0; i < n; i++ {
		mismatches = append(mismatches, compareRecords(expected[i], actual[i])...)
	}

	return Result{
		Passed:     len(mismatches) == 0,
		Mismatches: mismatches,
	}
}

func compareRecords(expected, actual Record) []Mismatch {
	var mismatches []Mismatch

	report := func(field, want, got string) {
		mismatches = append(mismatches, Mismatch{
			Index:    expected.Index,
			Address:  expected.Address,
			Field:    field,
			Expected: want,
			Actual:   got,
		})
	}

	if expected.Address != actual.Address {
		report("address",
			fmt.Sprintf("0x%08X", expected.Address),
			fmt.Sprintf("0x%08X", actual.Address))
	}

	if expected.Block != actual.Block {
		report("block",
			fmt.Sprintf("%d", expected.Block),
			fmt.Sprintf("%d", actual.Block))
	}

	if expected.Set != actual.Set {
		report("set",
			fmt.Sprintf("%d", expected.Set),
			fmt.Sprintf("%d", actual.Set))
	}

	if expected.Way != actual.Way {
		report("way",
			fmt.Sprintf("%d", expected.Way),
			fmt.Sprintf("%d", actual.Way))
	}

	if expected.Tag != actual.Tag {
		report("tag",
			fmt.Sprintf("%d", expected.Tag),
			fmt.Sprintf("%d", actual.Tag))
	}

	if expected.Hit != actual.Hit {
		report("outcome", outcomeString(expected.Hit), outcomeString(actual.Hit))
	}

	return mismatches
}

func outcomeString(hit bool) string {
	if hit {
		return "HIT"
	}

	return "MISS"
}

// A Summary aggregates one log.
type Summary struct {
	Accesses int
	Hits     int
	Misses   int
}

// HitRate returns the fraction of hits, 0 for an empty log.
func (s Summary) HitRate() float64 {
	if s.Accesses == 0 {
		return 0
	}

	return float64(s.Hits) / float64(s.Accesses)
}

// Summarize aggregates a log into hit/miss counts.
func Summarize(records []Record) Summary {
	s := Summary{Accesses: len(records)}
	for _, r := range records {
		if r.Hit {
			s.Hits++
		} else {
			s.Misses++
		}
	}

	return s
}
