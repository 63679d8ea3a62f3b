// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Skipstat prints skiplist benchmark statistics on the console: the
// per-implementation summary table, a speedup table per workload, and
// the peak cross-implementation comparison, without writing any chart
// artifacts.
//
// Usage:
//
//	skipstat [-csv] [-workload name] results.csv
//
// The -csv flag switches the summary to CSV form for piping into
// other tools. The -workload flag restricts the speedup tables to one
// workload.
//
// Implementations without a single-thread baseline are omitted from
// the speedup tables with a diagnostic on stderr; ratios against a
// zero-throughput implementation print as "?".
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"golang.org/x/skipbench/benchagg"
	"golang.org/x/skipbench/benchcmp"
	"golang.org/x/skipbench/benchcsv"
	"golang.org/x/skipbench/benchsum"
	"golang.org/x/skipbench/internal/texttab"
)

// comparisonThreads is the thread count of the peak-comparison slice.
const comparisonThreads = 8

var (
	flagCSV      = flag.Bool("csv", false, "print the summary in CSV form")
	flagWorkload = flag.String("workload", "", "restrict speedup tables to `workload`")
)

var exit = os.Exit // replaced during testing

func usage() {
	fmt.Fprintf(os.Stderr, "usage: skipstat [options] results.csv\n")
	fmt.Fprintf(os.Stderr, "options:\n")
	flag.PrintDefaults()
	exit(2)
}

func main() {
	log.SetPrefix("skipstat: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}

	if err := skipstat(os.Stdout, flag.Arg(0), *flagCSV, *flagWorkload); err != nil {
		log.Fatal(err)
	}
}

// skipstat loads the dataset at path and writes the report to w.
func skipstat(w io.Writer, path string, asCSV bool, workload string) error {
	records, err := benchcsv.ReadAll(path)
	if err != nil {
		return err
	}

	sums := benchsum.Summarize(records)
	if asCSV {
		if err := benchsum.WriteCSV(w, sums); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(w, "=== Summary Statistics ===")
		if err := benchsum.FprintTable(w, sums); err != nil {
			return err
		}
	}

	for _, wl := range workloads(records) {
		if workload != "" && wl != workload {
			continue
		}
		if err := printSpeedups(w, records, wl); err != nil {
			return err
		}
	}

	return printPeaks(w, records)
}

// workloads returns the workload labels in first-observation order.
func workloads(records []benchcsv.Record) []string {
	seen := make(map[string]bool)
	var labels []string
	for i := range records {
		if w := records[i].Workload; !seen[w] {
			seen[w] = true
			labels = append(labels, w)
		}
	}
	return labels
}

// printSpeedups prints the speedup table for one workload: one row
// per implementation with a single-thread baseline, one column per
// thread count.
func printSpeedups(w io.Writer, records []benchcsv.Record, workload string) error {
	slice := benchagg.Where(records, func(r *benchcsv.Record) bool { return r.Workload == workload })
	tab := benchagg.Aggregate(slice, benchagg.Implementation, benchagg.Threads)
	curves, errs := benchcmp.SpeedupAll(tab)
	for _, err := range errs {
		logrus.Warnf("workload %s: %v", workload, err)
	}
	if len(curves) == 0 {
		return nil
	}

	fmt.Fprintf(w, "\n=== Speedup (workload=%s) ===\n", workload)
	var t texttab.Table
	hdr := t.Row().Cell("implementation")
	threads := tab.ThreadCounts()
	for _, n := range threads {
		hdr.Cell(strconv.Itoa(n), texttab.Right)
	}
	for _, c := range curves {
		row := t.Row().Cell(c.Implementation)
		for _, n := range threads {
			if ratio, ok := c.At(n); ok {
				row.Cell(strconv.FormatFloat(ratio, 'f', 2, 64), texttab.Right)
			} else {
				row.Cell("?", texttab.Right)
			}
		}
	}
	return t.Format(w)
}

// printPeaks prints the cross-implementation ratio grid over the peak
// slice (mixed workload at the comparison thread count). Nothing is
// printed when the slice is empty.
func printPeaks(w io.Writer, records []benchcsv.Record) error {
	slice := benchagg.Where(records, func(r *benchcsv.Record) bool {
		return r.Workload == "mixed" && r.Threads == comparisonThreads
	})
	if len(slice) == 0 {
		return nil
	}
	tab := benchagg.Aggregate(slice, benchagg.Implementation)
	grid := benchcmp.PeakRatios(tab)

	fmt.Fprintf(w, "\n=== Peak Comparison (workload=mixed, threads=%d) ===\n", comparisonThreads)
	var t texttab.Table
	hdr := t.Row().Cell("")
	for _, col := range grid.Cols {
		hdr.Cell(col, texttab.Right)
	}
	for _, row := range grid.Rows {
		r := t.Row().Cell(row)
		for _, col := range grid.Cols {
			r.Cell(benchcmp.FormatRatio(grid.Value(row, col)), texttab.Right)
		}
	}
	return t.Format(w)
}
