package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tracelab/cachemodel/trace"
)

var generateFlags struct {
	pattern         string
	count           int
	blockSize       int
	maxAddress      uint64
	workingSet      int
	jumpRange       int
	localityPercent float64
	zipfS           float64
	maxBlocks       uint64
	seed            int64
	outPath         string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic trace.",
	Long: "`generate --pattern [sequential|random|locality|zipf]` writes a " +
		"synthetic trace, in binary format if the output ends in .bin.",
	Run: func(cmd *cobra.Command, args []string) {
		accesses, err := generateTrace()
		fatalOnErr(err)

		fatalOnErr(writeTrace(generateFlags.outPath, accesses))

		fmt.Printf("Wrote %d accesses to %s\n",
			len(accesses), generateFlags.outPath)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateFlags.pattern, "pattern", "p",
		"locality", "trace pattern: sequential, random, locality, or zipf")
	generateCmd.Flags().IntVarP(&generateFlags.count, "count", "n", 10000,
		"number of accesses")
	generateCmd.Flags().IntVar(&generateFlags.blockSize, "block-size", 64,
		"block size in bytes")
	generateCmd.Flags().Uint64Var(&generateFlags.maxAddress, "max-address",
		1<<20, "address space size for the random pattern")
	generateCmd.Flags().IntVar(&generateFlags.workingSet, "working-set", 64,
		"working set size in blocks for the locality pattern")
	generateCmd.Flags().IntVar(&generateFlags.jumpRange, "jump-range", 4096,
		"jump range in blocks for the locality pattern")
	generateCmd.Flags().Float64Var(&generateFlags.localityPercent, "p-local",
		0.8, "probability of staying in the working set")
	generateCmd.Flags().Float64Var(&generateFlags.zipfS, "zipf-s", 1.2,
		"skew parameter for the zipf pattern")
	generateCmd.Flags().Uint64Var(&generateFlags.maxBlocks, "max-blocks",
		1<<16, "block space size for the zipf pattern")
	generateCmd.Flags().Int64Var(&generateFlags.seed, "seed", 1,
		"generator seed")
	generateCmd.Flags().StringVarP(&generateFlags.outPath, "out", "o",
		"trace.txt", "output file (.bin for binary)")
}

func generateTrace() ([]trace.Access, error) {
	f := generateFlags

	switch f.pattern {
	case "sequential":
		return trace.Sequential(f.count, f.blockSize), nil
	case "random":
		return trace.Random(f.count, f.maxAddress, f.seed), nil
	case "locality":
		return trace.Locality(f.count, f.workingSet, f.jumpRange,
			f.blockSize, f.localityPercent, f.seed), nil
	case "zipf":
		return trace.Zipf(f.count, f.zipfS, 1.0, f.maxBlocks, f.blockSize,
			f.seed), nil
	default:
		return nil, fmt.Errorf("unknown pattern %q", f.pattern)
	}
}

func writeTrace(path string, accesses []trace.Access) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trace: %w", err)
	}
	defer file.Close()

	if strings.ToLower(filepath.Ext(path)) == ".bin" {
		return trace.WriteBinary(file, accesses)
	}

	return trace.WriteText(file, accesses)
}
