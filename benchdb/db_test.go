// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdb_test

import (
	"context"
	"math"
	"testing"

	"golang.org/x/skipbench/benchcmp"
	"golang.org/x/skipbench/benchdb/dbtest"
	"golang.org/x/skipbench/benchsum"
)

func TestRecordRun(t *testing.T) {
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()
	ctx := context.Background()

	run, err := db.NewRun(ctx, "results.csv")
	if err != nil {
		t.Fatal(err)
	}
	summary := benchsum.ImplSummary{
		Implementation: "lockfree",
		Name:           "Lock-Free",
		Trials:         1,
		ThroughputMean: 8e6,
		ThroughputStd:  math.NaN(), // single trial: stored as NULL
		ThroughputMax:  8e6,
		TimeMean:       0.5,
		TimeMin:        0.5,
	}
	if err := run.InsertSummary(ctx, &summary); err != nil {
		t.Fatal(err)
	}
	curve := &benchcmp.Curve{
		Implementation: "lockfree",
		Threads:        []int{1, 2, 4},
		Ratio:          []float64{1.0, 1.9, 3.4},
	}
	if err := run.InsertSpeedup(ctx, curve); err != nil {
		t.Fatal(err)
	}
	if err := run.Commit(); err != nil {
		t.Fatal(err)
	}

	sums, err := db.Summaries(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(sums) != 1 {
		t.Fatalf("got %d summaries, want 1", len(sums))
	}
	got := sums[0]
	if got.Implementation != "lockfree" || got.Trials != 1 || got.ThroughputMean != 8e6 {
		t.Errorf("summary round-trip = %+v", got)
	}
	if !math.IsNaN(got.ThroughputStd) {
		t.Errorf("NULL standard deviation read back as %v, want NaN", got.ThroughputStd)
	}

	curves, err := db.Speedups(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(curves) != 1 {
		t.Fatalf("got %d curves, want 1", len(curves))
	}
	c := curves[0]
	if c.Implementation != "lockfree" || len(c.Threads) != 3 || c.Ratio[2] != 3.4 {
		t.Errorf("curve round-trip = %+v", c)
	}
}

func TestAbortLeavesNoRows(t *testing.T) {
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()
	ctx := context.Background()

	run, err := db.NewRun(ctx, "results.csv")
	if err != nil {
		t.Fatal(err)
	}
	if err := run.InsertSummary(ctx, &benchsum.ImplSummary{Implementation: "coarse"}); err != nil {
		t.Fatal(err)
	}
	if err := run.Abort(); err != nil {
		t.Fatal(err)
	}

	runs, err := db.CountRuns()
	if err != nil {
		t.Fatal(err)
	}
	if runs != 0 {
		t.Errorf("found %d run(s) after abort, want 0", runs)
	}
}
