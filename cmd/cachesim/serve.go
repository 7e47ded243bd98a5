package main

import (
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/tracelab/cachemodel/analysis"
	"github.com/tracelab/cachemodel/monitoring"
)

var serveFlags struct {
	simFlags
	tracePath  string
	port       int
	windowSize int
	curveMax   int
	open       bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Replay a trace and serve the results over HTTP.",
	Run: func(cmd *cobra.Command, args []string) {
		sim, err := buildSimulator(cmd, serveFlags.simFlags, "serve")
		fatalOnErr(err)

		accesses, err := loadTrace(serveFlags.tracePath)
		fatalOnErr(err)

		sim.Replay(accesses)

		distances, err := analysis.ReuseDistances(accesses,
			sim.BlockSize())
		fatalOnErr(err)

		workingSet, err := analysis.WorkingSetSizes(accesses,
			serveFlags.windowSize, sim.BlockSize())
		fatalOnErr(err)

		stats := sim.Stats()
		monitor := monitoring.NewMonitor().
			WithPortNumber(serveFlags.port)
		monitor.RegisterSimulator(sim)
		monitor.RegisterResult(monitoring.Result{
			Summary: monitoring.RunSummary{
				Name:          sim.Name(),
				NumSets:       sim.NumSets(),
				Associativity: sim.Associativity(),
				BlockSize:     sim.BlockSize(),
				Accesses:      stats.Hits + stats.Misses,
				Hits:          stats.Hits,
				Misses:        stats.Misses,
				Evictions:     stats.Evictions,
				HitRate:       sim.HitRate(),
			},
			Curve:      analysis.MissRateCurve(distances, serveFlags.curveMax),
			WorkingSet: workingSet,
		})

		url := monitor.StartServer()

		if serveFlags.open {
			fatalOnErr(browser.OpenURL(url))
		}

		// Serve until interrupted.
		select {}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	registerSimFlags(serveCmd, &serveFlags.simFlags)
	serveCmd.Flags().StringVarP(&serveFlags.tracePath, "trace", "t",
		os.Getenv("CACHESIM_TRACE"), "trace file (.bin for binary)")
	serveCmd.Flags().IntVar(&serveFlags.port, "port", 0,
		"port to listen on, random when 0")
	serveCmd.Flags().IntVarP(&serveFlags.windowSize, "window", "w", 1000,
		"working set window size, in accesses")
	serveCmd.Flags().IntVar(&serveFlags.curveMax, "curve-max", 4096,
		"largest cache size on the miss rate curve, in blocks")
	serveCmd.Flags().BoolVar(&serveFlags.open, "open", false,
		"open the results in a browser")
	_ = serveCmd.MarkFlagRequired("trace")
}
