package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracelab/cachemodel/validation"
)

var validateFlags struct {
	simFlags
	tracePath    string
	expectedPath string
	capturePath  string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Compare a replay against an expected outcome log.",
	Long: "`validate --trace t --expected log` replays the trace and " +
		"compares the outcomes against the log. `validate --trace t " +
		"--capture log` writes the log of this implementation instead, for " +
		"use as the expected side of a later comparison.",
	Run: func(cmd *cobra.Command, args []string) {
		sim, err := buildSimulator(cmd, validateFlags.simFlags, "validate")
		fatalOnErr(err)

		accesses, err := loadTrace(validateFlags.tracePath)
		fatalOnErr(err)

		records := validation.Capture(sim, accesses)

		if validateFlags.capturePath != "" {
			file, err := os.Create(validateFlags.capturePath)
			fatalOnErr(err)
			defer file.Close()

			fatalOnErr(validation.WriteLog(file, records))
			fmt.Printf("Captured %d records to %s\n",
				len(records), validateFlags.capturePath)

			return
		}

		expectedFile, err := os.Open(validateFlags.expectedPath)
		fatalOnErr(err)
		defer expectedFile.Close()

		expected, err := validation.ParseLog(expectedFile)
		fatalOnErr(err)

		result := validation.Compare(expected, records)
		fatalOnErr(validation.WriteReport(os.Stdout, result, expected,
			records))

		if !result.Passed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	registerSimFlags(validateCmd, &validateFlags.simFlags)
	validateCmd.Flags().StringVarP(&validateFlags.tracePath, "trace", "t",
		os.Getenv("CACHESIM_TRACE"), "trace file (.bin for binary)")
	validateCmd.Flags().StringVarP(&validateFlags.expectedPath, "expected",
		"e", "", "expected outcome log")
	validateCmd.Flags().StringVar(&validateFlags.capturePath, "capture", "",
		"write this implementation's log instead of comparing")
	_ = validateCmd.MarkFlagRequired("trace")
	validateCmd.MarkFlagsOneRequired("expected", "capture")
	validateCmd.MarkFlagsMutuallyExclusive("expected", "capture")
}
