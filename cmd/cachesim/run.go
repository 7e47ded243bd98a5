package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracelab/cachemodel/cache"
	"github.com/tracelab/cachemodel/datarecording"
)

var runFlags struct {
	simFlags
	tracePath string
	recordDB  string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a trace and report hit/miss statistics.",
	Run: func(cmd *cobra.Command, args []string) {
		sim, err := buildSimulator(cmd, runFlags.simFlags, "cachesim")
		fatalOnErr(err)

		accesses, err := loadTrace(runFlags.tracePath)
		fatalOnErr(err)

		if runFlags.recordDB != "" {
			recorder := datarecording.NewRunRecorder(
				datarecording.New(runFlags.recordDB))
			recorder.RecordRun(sim, accesses)
		} else {
			sim.Replay(accesses)
		}

		printStats(sim)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	registerSimFlags(runCmd, &runFlags.simFlags)
	runCmd.Flags().StringVarP(&runFlags.tracePath, "trace", "t",
		os.Getenv("CACHESIM_TRACE"), "trace file (.bin for binary)")
	runCmd.Flags().StringVar(&runFlags.recordDB, "record", "",
		"record per-access outcomes into a SQLite database")
	_ = runCmd.MarkFlagRequired("trace")
}

func printStats(sim *cache.Simulator) {
	stats := sim.Stats()

	fmt.Printf("Cache: %d sets x %d ways x %d B blocks\n",
		sim.NumSets(), sim.Associativity(), sim.BlockSize())
	fmt.Printf("Accesses:        %d\n", stats.Hits+stats.Misses)
	fmt.Printf("Reads:           %d\n", stats.Reads)
	fmt.Printf("Writes:          %d\n", stats.Writes)
	fmt.Printf("Hits:            %d\n", stats.Hits)
	fmt.Printf("Misses:          %d\n", stats.Misses)
	fmt.Printf("Evictions:       %d\n", stats.Evictions)
	fmt.Printf("Dirty evictions: %d\n", stats.DirtyEvictions)
	fmt.Printf("Hit rate:        %.4f\n", sim.HitRate())
}
