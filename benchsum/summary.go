// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchsum computes per-implementation summary statistics for
// skiplist benchmark datasets.
//
// A summary pools every trial of an implementation, across all
// workloads, thread counts, and key ranges, into one row of
// descriptive statistics. It is the textual companion to the charts:
// a quick read on which implementation is fastest overall and how
// noisy its trials are.
package benchsum

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"

	"golang.org/x/skipbench/benchcsv"
	"golang.org/x/skipbench/benchunit"
	"golang.org/x/skipbench/internal/texttab"
)

// An ImplSummary holds descriptive statistics for one implementation,
// pooled across every workload, thread count, and key range in the
// dataset.
type ImplSummary struct {
	Implementation string // canonical key, e.g. "lockfree"
	Name           string // display label, e.g. "Lock-Free"
	Trials         int    // number of trials pooled

	// Throughput statistics, in ops/sec.
	ThroughputMean float64
	ThroughputStd  float64 // sample standard deviation; NaN if Trials < 2
	ThroughputMax  float64

	// Elapsed-time statistics, in seconds.
	TimeMean float64
	TimeMin  float64
}

// Summarize computes one ImplSummary per implementation, in order of
// first appearance in records. No implementation is dropped: a single
// trial still summarizes, with an undefined (NaN) standard deviation.
func Summarize(records []benchcsv.Record) []ImplSummary {
	if len(records) == 0 {
		return nil
	}

	impls := make([]string, len(records))
	throughputs := make([]float64, len(records))
	times := make([]float64, len(records))
	for i := range records {
		impls[i] = records[i].Implementation
		throughputs[i] = records[i].Throughput
		times[i] = records[i].Time
	}
	tab := new(table.Builder).
		Add("implementation", impls).
		Add("throughput", throughputs).
		Add("time", times).
		Done()

	g := ggstat.Agg("implementation")(
		ggstat.AggCount("trials"),
		ggstat.AggMean("throughput", "time"),
		ggstat.AggMax("throughput"),
		ggstat.AggMin("time"),
		aggStdDev("throughput"),
	).F(tab)
	out := table.Flatten(g)

	names := out.MustColumn("implementation").([]string)
	trials := out.MustColumn("trials").([]int)
	means := out.MustColumn("mean throughput").([]float64)
	stds := out.MustColumn("stddev throughput").([]float64)
	maxs := out.MustColumn("max throughput").([]float64)
	tmeans := out.MustColumn("mean time").([]float64)
	tmins := out.MustColumn("min time").([]float64)

	sums := make([]ImplSummary, len(names))
	for i, impl := range names {
		sums[i] = ImplSummary{
			Implementation: impl,
			Name:           DisplayName(impl),
			Trials:         trials[i],
			ThroughputMean: means[i],
			ThroughputStd:  stds[i],
			ThroughputMax:  maxs[i],
			TimeMean:       tmeans[i],
			TimeMin:        tmins[i],
		}
	}
	return sums
}

// aggStdDev returns an aggregate function that computes the sample
// standard deviation of each of cols. The resulting columns will be
// named "stddev <col>". A group with fewer than two values has no
// defined spread and yields NaN.
func aggStdDev(cols ...string) ggstat.Aggregator {
	return func(input table.Grouping, b *table.Builder) {
		for _, col := range cols {
			devs := make([]float64, 0, len(input.Tables()))
			for _, gid := range input.Tables() {
				xs := input.Table(gid).MustColumn(col).([]float64)
				if len(xs) < 2 {
					devs = append(devs, math.NaN())
					continue
				}
				devs = append(devs, stats.StdDev(xs))
			}
			b.Add("stddev "+col, devs)
		}
	}
}

// DisplayNames maps canonical implementation keys to the labels used
// in summaries and chart legends. New implementations only need an
// entry here.
var DisplayNames = map[string]string{
	"coarse":   "Coarse-Grained",
	"fine":     "Fine-Grained",
	"lockfree": "Lock-Free",
}

// DisplayName returns the display label for an implementation key.
// Keys not in DisplayNames fall back to capitalizing the key.
func DisplayName(impl string) string {
	if name, ok := DisplayNames[impl]; ok {
		return name
	}
	r, size := utf8.DecodeRuneInString(impl)
	if size == 0 {
		return impl
	}
	return strings.ToUpper(string(r)) + impl[size:]
}

var csvHeader = []string{"implementation", "throughput_mean", "throughput_std", "throughput_max", "time_mean", "time_min"}

// WriteCSV writes rows as the persisted summary artifact: a header
// line and one row per implementation. Throughput statistics are
// reported in millions of ops/sec and every value is rounded to two
// decimals. An undefined standard deviation becomes an empty cell.
func WriteCSV(w io.Writer, rows []ImplSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := range rows {
		s := &rows[i]
		err := cw.Write([]string{
			s.Implementation,
			csvCell(benchunit.Mops(s.ThroughputMean)),
			csvCell(benchunit.Mops(s.ThroughputStd)),
			csvCell(benchunit.Mops(s.ThroughputMax)),
			csvCell(s.TimeMean),
			csvCell(s.TimeMin),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// csvCell formats v with two-decimal precision. Non-finite values
// have no meaningful cell representation and are left empty.
func csvCell(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FprintTable renders rows as an aligned console table. Throughput
// statistics are in millions of ops/sec with two decimals, times in
// seconds with four decimals, and an undefined standard deviation
// prints as NaN.
func FprintTable(w io.Writer, rows []ImplSummary) error {
	var tab texttab.Table
	tab.Row().
		Cell("implementation").
		Cell("trials", texttab.Right).
		Cell("throughput_mean", texttab.Right).
		Cell("throughput_std", texttab.Right).
		Cell("throughput_max", texttab.Right).
		Cell("time_mean", texttab.Right).
		Cell("time_min", texttab.Right)
	for i := range rows {
		s := &rows[i]
		tab.Row().
			Cell(s.Implementation).
			Cell(strconv.Itoa(s.Trials), texttab.Right).
			Cell(mopsCell(s.ThroughputMean), texttab.Right).
			Cell(mopsCell(s.ThroughputStd), texttab.Right).
			Cell(mopsCell(s.ThroughputMax), texttab.Right).
			Cell(secondsCell(s.TimeMean), texttab.Right).
			Cell(secondsCell(s.TimeMin), texttab.Right)
	}
	return tab.Format(w)
}

func mopsCell(v float64) string {
	return strconv.FormatFloat(benchunit.Mops(v), 'f', 2, 64)
}

func secondsCell(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
