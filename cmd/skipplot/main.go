// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Skipplot runs the full analysis pipeline over a skiplist benchmark
// results file: it aggregates the raw measurements, derives speedup
// and comparison tables, renders the chart artifacts, and writes the
// per-implementation summary statistics.
//
// Usage:
//
//	skipplot [-o dir] [-html] [-history dsn] [-q] results.csv
//
// The positional argument is the results file written by the
// benchmark harness. Charts and the summary CSV go to the output
// directory (default results/plots). With -html an interactive chart
// page and an HTML summary table are written alongside the PNGs.
//
// With -history, the run's summary statistics and speedup curves are
// also appended to a run-history database, so runs can be compared
// over time. The -historydriver flag selects the SQL driver (sqlite3,
// the default, or mysql).
//
// A missing input file or a malformed dataset is fatal. Analyses
// whose slice of the dataset is empty (no mixed-workload rows, no
// rows at the comparison thread count, a single key range) are
// skipped with a diagnostic and the remaining artifacts are still
// produced, as is the speedup curve of any implementation lacking a
// single-thread baseline.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"

	"golang.org/x/skipbench/benchagg"
	"golang.org/x/skipbench/benchchart"
	"golang.org/x/skipbench/benchcmp"
	"golang.org/x/skipbench/benchcsv"
	"golang.org/x/skipbench/benchdb"
	_ "golang.org/x/skipbench/benchdb/sqlite3"
	"golang.org/x/skipbench/benchsum"
	"golang.org/x/skipbench/internal/atomicfile"
)

var (
	flagOut           = flag.String("o", filepath.Join("results", "plots"), "write artifacts to `dir`")
	flagHTML          = flag.Bool("html", false, "also render an interactive HTML chart page")
	flagHistory       = flag.String("history", "", "record the run in the history database at `dsn`")
	flagHistoryDriver = flag.String("historydriver", "sqlite3", "SQL `driver` for the history database")
	flagQuiet         = flag.Bool("q", false, "print warnings and errors only")
)

var exit = os.Exit // replaced during testing

func usage() {
	fmt.Fprintf(os.Stderr, "usage: skipplot [options] results.csv\n")
	fmt.Fprintf(os.Stderr, "options:\n")
	flag.PrintDefaults()
	exit(2)
}

func main() {
	log.SetPrefix("skipplot: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}
	if *flagQuiet {
		logrus.SetLevel(logrus.WarnLevel)
	}

	path := flag.Arg(0)
	records, err := benchcsv.ReadAll(path)
	if err != nil {
		log.Fatal(err)
	}
	logrus.Infof("loaded %d records from %s", len(records), path)

	if err := run(records, path); err != nil {
		log.Fatal(err)
	}
	logrus.Infof("all artifacts written to %s", *flagOut)
}

func run(records []benchcsv.Record, source string) error {
	charts := buildCharts(records)

	var renderers []benchchart.Renderer
	renderers = append(renderers, benchchart.PNG{})
	if *flagHTML {
		renderers = append(renderers, benchchart.HTML{})
	}
	for _, r := range renderers {
		paths, err := r.Render(*flagOut, charts)
		for _, p := range paths {
			logrus.Infof("saved: %s", p)
		}
		if err != nil {
			return err
		}
	}

	sums := benchsum.Summarize(records)
	if err := writeSummary(sums); err != nil {
		return err
	}

	fmt.Println("=== Summary Statistics ===")
	if err := benchsum.FprintTable(os.Stdout, sums); err != nil {
		return err
	}

	if *flagHistory != "" {
		if err := recordHistory(records, sums, source); err != nil {
			return err
		}
	}
	return nil
}

// buildCharts assembles every chart whose slice of the dataset is
// non-empty. A skipped chart is a warning, never a failure.
func buildCharts(records []benchcsv.Record) []*benchchart.Chart {
	var charts []*benchchart.Chart
	add := func(c *benchchart.Chart, err error) {
		if err != nil {
			logrus.Warnf("skipping chart: %v", err)
			return
		}
		charts = append(charts, c)
	}

	add(benchchart.Scalability(records))

	speedup, errs := benchchart.Speedup(records)
	for _, err := range errs {
		logrus.Warnf("skipping speedup curve: %v", err)
	}
	if speedup != nil && len(speedup.Series) > 0 {
		charts = append(charts, speedup)
	}

	add(benchchart.WorkloadComparison(records))
	add(benchchart.Contention(records))
	return charts
}

func writeSummary(sums []benchsum.ImplSummary) error {
	if err := os.MkdirAll(*flagOut, 0777); err != nil {
		return err
	}
	path := filepath.Join(*flagOut, "summary_statistics.csv")
	err := atomicfile.Write(path, func(w io.Writer) error {
		return benchsum.WriteCSV(w, sums)
	})
	if err != nil {
		return err
	}
	logrus.Infof("saved: %s", path)

	if *flagHTML {
		path := filepath.Join(*flagOut, "summary.html")
		err := atomicfile.Write(path, func(w io.Writer) error {
			return benchsum.WriteHTML(w, sums)
		})
		if err != nil {
			return err
		}
		logrus.Infof("saved: %s", path)
	}
	return nil
}

// recordHistory appends the run's summaries and mixed-workload
// speedup curves to the history database. The run commits atomically:
// a failed insert leaves no history rows behind.
func recordHistory(records []benchcsv.Record, sums []benchsum.ImplSummary, source string) error {
	ctx := context.Background()
	db, err := benchdb.OpenSQL(*flagHistoryDriver, *flagHistory)
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := db.NewRun(ctx, source)
	if err != nil {
		return err
	}
	for i := range sums {
		if err := run.InsertSummary(ctx, &sums[i]); err != nil {
			run.Abort()
			return err
		}
	}

	mixed := benchagg.Where(records, func(r *benchcsv.Record) bool { return r.Workload == "mixed" })
	if len(mixed) > 0 {
		tab := benchagg.Aggregate(mixed, benchagg.Implementation, benchagg.Threads)
		curves, errs := benchcmp.SpeedupAll(tab)
		for _, err := range errs {
			logrus.Warnf("history: %v", err)
		}
		for _, c := range curves {
			if err := run.InsertSpeedup(ctx, c); err != nil {
				run.Abort()
				return err
			}
		}
	}

	if err := run.Commit(); err != nil {
		return err
	}
	logrus.Infof("recorded run %d in %s", run.ID, *flagHistory)
	return nil
}
