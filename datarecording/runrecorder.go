package datarecording

import (
	"github.com/rs/xid"

	"github.com/tracelab/cachemodel/cache"
	"github.com/tracelab/cachemodel/trace"
)

// RunEntry is one row in the runs table, summarizing a whole replay.
type RunEntry struct {
	RunID         string
	Name          string
	NumSets       int
	Associativity int
	BlockSize     int
	Accesses      uint64
	Hits          uint64
	Misses        uint64
	Evictions     uint64
	HitRate       float64
}

// AccessEntry is one row in the accesses table, one per replayed access.
type AccessEntry struct {
	RunID       string
	AccessIndex int
	Address     uint64
	AccessType  string
	SetID       int
	WayID       int
	Tag         uint64
	Hit         bool
	Evicted     bool
	EvictedTag  uint64
}

// RunRecorder replays traces through simulators and records the per-access
// outcomes and the run summary.
type RunRecorder struct {
	recorder DataRecorder
}

// NewRunRecorder creates a RunRecorder with the run and access tables
// prepared.
func NewRunRecorder(recorder DataRecorder) *RunRecorder {
	recorder.CreateTable("runs", RunEntry{})
	recorder.CreateTable("accesses", AccessEntry{})

	return &RunRecorder{recorder: recorder}
}

// RecordRun replays the trace through the simulator, records every access,
// then records and returns the run summary. The simulator is reset first.
func (r *RunRecorder) RecordRun(
	sim *cache.Simulator,
	accesses []trace.Access,
) RunEntry {
	sim.Reset()

	runID := xid.New().String()

	for i, access := range accesses {
		result := sim.Access(access.Address, access.Type)

		r.recorder.InsertData("accesses", AccessEntry{
			RunID:       runID,
			AccessIndex: i,
			Address:     access.Address,
			AccessType:  access.Type.String(),
			SetID:       result.SetID,
			WayID:       result.WayID,
			Tag:         result.Tag,
			Hit:         result.Hit,
			Evicted:     result.Evicted,
			EvictedTag:  result.EvictedTag,
		})
	}

	stats := sim.Stats()
	run := RunEntry{
		RunID:         runID,
		Name:          sim.Name(),
		NumSets:       sim.NumSets(),
		Associativity: sim.Associativity(),
		BlockSize:     sim.BlockSize(),
		Accesses:      stats.Hits + stats.Misses,
		Hits:          stats.Hits,
		Misses:        stats.Misses,
		Evictions:     stats.Evictions,
		HitRate:       sim.HitRate(),
	}

	r.recorder.InsertData("runs", run)
	r.recorder.Flush()

	return run
}
