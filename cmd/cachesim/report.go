package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tracelab/cachemodel/datarecording"
)

var reportFlags struct {
	dbPath string
	runID  string
	limit  int
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print runs recorded with `run --record`.",
	Long: "`report --db file.sqlite3` lists the recorded runs. With " +
		"`--run [id]` it also prints the per-access outcomes of that run.",
	Run: func(cmd *cobra.Command, args []string) {
		reader := datarecording.NewReader(reportFlags.dbPath)
		defer reader.Close()

		fatalOnErr(printReport(os.Stdout, reader,
			reportFlags.runID, reportFlags.limit))
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportFlags.dbPath, "db", "",
		"recording database file")
	reportCmd.Flags().StringVar(&reportFlags.runID, "run", "",
		"also print the accesses of this run")
	reportCmd.Flags().IntVar(&reportFlags.limit, "limit", 50,
		"maximum number of accesses to print, 0 for all")
	_ = reportCmd.MarkFlagRequired("db")
}

func printReport(
	w io.Writer,
	reader datarecording.DataReader,
	runID string,
	limit int,
) error {
	reader.MapTable("runs", datarecording.RunEntry{})
	reader.MapTable("accesses", datarecording.AccessEntry{})

	ctx := context.Background()

	runs, total, err := reader.Query(ctx, "runs", datarecording.QueryParams{})
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}

	fmt.Fprintf(w, "Recorded runs: %d\n\n", total)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RunID\tName\tGeometry\tAccesses\tHits\tMisses\tHitRate")

	for _, r := range runs {
		run := r.(*datarecording.RunEntry)
		fmt.Fprintf(tw, "%s\t%s\t%dx%dx%dB\t%d\t%d\t%d\t%.4f\n",
			run.RunID, run.Name,
			run.NumSets, run.Associativity, run.BlockSize,
			run.Accesses, run.Hits, run.Misses, run.HitRate)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if runID == "" {
		return nil
	}

	return printRunAccesses(w, reader, runID, limit)
}

func printRunAccesses(
	w io.Writer,
	reader datarecording.DataReader,
	runID string,
	limit int,
) error {
	ctx := context.Background()

	accesses, total, err := reader.Query(ctx, "accesses",
		datarecording.QueryParams{
			Where:   "RunID = ?",
			Args:    []any{runID},
			OrderBy: "AccessIndex",
			Limit:   limit,
		})
	if err != nil {
		return fmt.Errorf("query accesses: %w", err)
	}

	fmt.Fprintf(w, "\nAccesses of run %s (%d of %d):\n", runID,
		len(accesses), total)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Index\tAddress\tType\tSet\tWay\tTag\tOutcome")

	for _, a := range accesses {
		access := a.(*datarecording.AccessEntry)

		outcome := "MISS"
		if access.Hit {
			outcome = "HIT"
		}

		fmt.Fprintf(tw, "%d\t0x%08X\t%s\t%d\t%d\t%d\t%s\n",
			access.AccessIndex, access.Address, access.AccessType,
			access.SetID, access.WayID, access.Tag, outcome)
	}

	return tw.Flush()
}
