package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tracelab/cachemodel/cache"
	"github.com/tracelab/cachemodel/cache/eviction"
	"github.com/tracelab/cachemodel/config"
	"github.com/tracelab/cachemodel/trace"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "cachesim",
	Short: "cachesim replays memory traces through a set-associative cache " +
		"model.",
	Long: `cachesim replays memory traces through a set-associative cache ` +
		`model, reports hit rates, analyzes reuse distances and working ` +
		`sets, and recommends cache sizes.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	// A .env file can default the --config and --trace flags through the
	// CACHESIM_CONFIG and CACHESIM_TRACE variables.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

type simFlags struct {
	configPath    string
	numSets       int
	associativity int
	blockSize     int
	policy        string
	seed          int64
}

func registerSimFlags(cmd *cobra.Command, flags *simFlags) {
	cmd.Flags().StringVarP(&flags.configPath, "config", "c",
		os.Getenv("CACHESIM_CONFIG"),
		"configuration file (.yaml, .yml, or .json)")
	cmd.Flags().IntVar(&flags.numSets, "sets", 64, "number of sets")
	cmd.Flags().IntVar(&flags.associativity, "ways", 4, "ways per set")
	cmd.Flags().IntVar(&flags.blockSize, "block-size", 64,
		"block size in bytes")
	cmd.Flags().StringVar(&flags.policy, "policy", eviction.KindLRU,
		"replacement policy: lru, fifo, random, or plru")
	cmd.Flags().Int64Var(&flags.seed, "seed", 1,
		"seed for the random replacement policy")
}

func buildSimulator(
	cmd *cobra.Command,
	flags simFlags,
	name string,
) (*cache.Simulator, error) {
	builder := cache.MakeBuilder().
		WithNumSets(flags.numSets).
		WithAssociativity(flags.associativity).
		WithBlockSize(flags.blockSize).
		WithReplacementPolicy(flags.policy).
		WithRandomSeed(flags.seed)

	if flags.configPath != "" {
		cfg, err := config.Load(flags.configPath)
		if err != nil {
			return nil, err
		}

		numSets, associativity, blockSize, err := cfg.CacheParams()
		if err != nil {
			return nil, err
		}

		builder = builder.
			WithNumSets(numSets).
			WithAssociativity(associativity).
			WithBlockSize(blockSize)

		if cfg.L1Cache.Policy != "" && !cmd.Flags().Changed("policy") {
			builder = builder.WithReplacementPolicy(cfg.L1Cache.Policy)
		}
	}

	return builder.Build(name)
}

// loadTrace reads a trace file, picking the binary codec for .bin files and
// the text codec for everything else.
func loadTrace(path string) ([]trace.Access, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer file.Close()

	if strings.ToLower(filepath.Ext(path)) == ".bin" {
		return trace.ReadBinary(file)
	}

	parser := trace.Parser{}

	return parser.Parse(file)
}

func fatalOnErr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
