// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/skipbench/benchcsv"
	"golang.org/x/skipbench/benchdb"
)

func rec(impl, workload string, threads, keyRange int, throughput, time float64) benchcsv.Record {
	return benchcsv.Record{
		Implementation: impl,
		Workload:       workload,
		Threads:        threads,
		KeyRange:       keyRange,
		Throughput:     throughput,
		Time:           time,
	}
}

// records covers every analysis slice: a mixed thread sweep, an
// insert workload at the comparison thread count, and two key ranges.
func records() []benchcsv.Record {
	return []benchcsv.Record{
		rec("coarse", "mixed", 1, 10000, 5e6, 0.2),
		rec("coarse", "mixed", 8, 10000, 9e6, 0.11),
		rec("coarse", "mixed", 8, 100, 3e6, 0.33),
		rec("coarse", "insert", 8, 10000, 7e6, 0.14),
		rec("lockfree", "mixed", 1, 10000, 4e6, 0.25),
		rec("lockfree", "mixed", 8, 10000, 24e6, 0.04),
		rec("lockfree", "mixed", 8, 100, 18e6, 0.06),
		rec("lockfree", "insert", 8, 10000, 20e6, 0.05),
	}
}

func TestRunWritesAllArtifacts(t *testing.T) {
	dir := t.TempDir()
	*flagOut = filepath.Join(dir, "plots")
	*flagHTML = true
	*flagHistory = filepath.Join(dir, "history.db")
	*flagHistoryDriver = "sqlite3"
	defer resetFlags()

	if err := run(records(), "results.csv"); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{
		"scalability.png",
		"speedup.png",
		"workload_comparison.png",
		"contention.png",
		"index.html",
		"summary.html",
		"summary_statistics.csv",
	} {
		path := filepath.Join(*flagOut, name)
		fi, err := os.Stat(path)
		if err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
			continue
		}
		if fi.Size() == 0 {
			t.Errorf("artifact %s is empty", name)
		}
	}

	db, err := benchdb.OpenSQL("sqlite3", *flagHistory)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	runs, err := db.CountRuns()
	if err != nil {
		t.Fatal(err)
	}
	if runs != 1 {
		t.Errorf("history has %d run(s), want 1", runs)
	}
}

func TestRunSkipsEmptySlices(t *testing.T) {
	dir := t.TempDir()
	*flagOut = filepath.Join(dir, "plots")
	defer resetFlags()

	// No mixed rows and no threads=8 rows: every chart is skipped,
	// but the summary artifact is still written.
	partial := []benchcsv.Record{
		rec("coarse", "insert", 4, 10000, 7e6, 0.14),
		rec("lockfree", "insert", 4, 10000, 20e6, 0.05),
	}
	if err := run(partial, "results.csv"); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(*flagOut, "summary_statistics.csv")); err != nil {
		t.Errorf("missing summary artifact: %v", err)
	}
	entries, err := os.ReadDir(*flagOut)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("output directory has %d entries, want only the summary", len(entries))
	}
}

func resetFlags() {
	*flagOut = filepath.Join("results", "plots")
	*flagHTML = false
	*flagHistory = ""
	*flagHistoryDriver = "sqlite3"
}
