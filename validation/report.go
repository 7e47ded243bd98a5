package validation

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteReport writes a human-readable comparison report: the verdict, the
// aggregates of both logs, the mismatch list, and a per-access table.
func WriteReport(
	w io.Writer,
	result Result,
	expected, actual []Record,
) error {
	verdict := "PASSED"
	if !result.Passed {
		verdict = "FAILED"
	}

	fmt.Fprintf(w, "Validation %s\n\n", verdict)

	writeSummary(w, "Expected", Summarize(expected))
	writeSummary(w, "Actual", Summarize(actual))

	if len(result.Mismatches) > 0 {
		fmt.Fprintf(w, "\nMismatches (%d):\n", len(result.Mismatches))
		for _, m := range result.Mismatches {
			fmt.Fprintf(w, "  %s\n", m)
		}
	}

	fmt.Fprintln(w)

	return writeAccessTable(w, expected, actual)
}

func writeSummary(w io.Writer, label string, s Summary) {
	fmt.Fprintf(w, "%s: %d accesses, %d hits, %d misses, hit rate %.4f\n",
		label, s.Accesses, s.Hits, s.Misses, s.HitRate())
}

func writeAccessTable(w io.Writer, expected, actual []Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "Index\tAddress\tExpected\tActual\tMatch")

	n := max(len(expected), len(actual))
	for i := 0; i < n; i++ {
		var address uint64
		expectedCell, actualCell := "-", "-"

		if i < len(expected) {
			address = expected[i].Address
			expectedCell = outcomeString(expected[i].Hit)
		}

		if i < len(actual) {
			address = actual[i].Address
			actualCell = outcomeString(actual[i].Hit)
		}

		match := "yes"
		if i >= len(expected) || i >= len(actual) ||
			len(compareRecords(expected[i], actual[i])) > 0 {
			match = "NO"
		}

		fmt.Fprintf(tw, "%d\t0x%08X\t%s\t%s\t%s\n",
			i, address, expectedCell, actualCell, match)
	}

	return tw.Flush()
}
