package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracelab/cachemodel/analysis"
	"github.com/tracelab/cachemodel/trace"
)

var adviseFlags struct {
	tracePath  string
	blockSize  int
	target     float64
	maxSize    int
	windowSize int
	simulate   bool
}

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Recommend a cache size for a trace.",
	Long: "`advise --trace t --target 0.9` analyzes the trace's reuse " +
		"distances and working set and reports the smallest " +
		"fully-associative LRU cache, in blocks, that reaches the target " +
		"hit rate.",
	Run: func(cmd *cobra.Command, args []string) {
		accesses, err := loadTrace(adviseFlags.tracePath)
		fatalOnErr(err)

		distances, err := analysis.ReuseDistances(accesses,
			adviseFlags.blockSize)
		fatalOnErr(err)

		evaluator := analysis.ReuseDistanceEvaluator(distances)
		if adviseFlags.simulate {
			evaluator = analysis.SimulationEvaluator(accesses,
				adviseFlags.blockSize)
		}

		size, err := analysis.MinimalSizeForHitRate(evaluator,
			adviseFlags.target, adviseFlags.maxSize)
		fatalOnErr(err)

		printAdvice(accesses, distances, size)
	},
}

func init() {
	rootCmd.AddCommand(adviseCmd)

	adviseCmd.Flags().StringVarP(&adviseFlags.tracePath, "trace", "t",
		os.Getenv("CACHESIM_TRACE"), "trace file (.bin for binary)")
	adviseCmd.Flags().IntVar(&adviseFlags.blockSize, "block-size", 64,
		"block size in bytes")
	adviseCmd.Flags().Float64Var(&adviseFlags.target, "target", 0.9,
		"target hit rate")
	adviseCmd.Flags().IntVar(&adviseFlags.maxSize, "max-size", 1<<20,
		"largest cache size to consider, in blocks")
	adviseCmd.Flags().IntVarP(&adviseFlags.windowSize, "window", "w", 1000,
		"working set window size, in accesses")
	adviseCmd.Flags().BoolVar(&adviseFlags.simulate, "simulate", false,
		"probe sizes by direct simulation instead of reuse distances")
	_ = adviseCmd.MarkFlagRequired("trace")
}

func printAdvice(accesses []trace.Access, distances []int, size int) {
	footprint := analysis.DistinctBlocks(accesses, adviseFlags.blockSize)

	fmt.Printf("Trace:            %d accesses, %d distinct blocks\n",
		len(accesses), footprint)
	fmt.Printf("Footprint:        %d KB\n",
		footprint*adviseFlags.blockSize/1024)

	sizes, err := analysis.WorkingSetSizes(accesses, adviseFlags.windowSize,
		adviseFlags.blockSize)
	fatalOnErr(err)

	peak := 0
	for _, s := range sizes {
		if s > peak {
			peak = s
		}
	}

	fmt.Printf("Peak working set: %d blocks over %d-access windows\n",
		peak, adviseFlags.windowSize)

	fmt.Printf("Recommended size: %d blocks (%d KB) for hit rate %.2f\n",
		size, size*adviseFlags.blockSize/1024, adviseFlags.target)

	predicted := analysis.PredictHitRate(distances, size)
	fmt.Printf("Predicted rate:   %.4f\n", predicted)
}
