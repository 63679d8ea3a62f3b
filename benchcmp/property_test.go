// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcmp

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"golang.org/x/skipbench/benchagg"
	"golang.org/x/skipbench/benchcsv"
)

// randomDataset mirrors the generator used by the aggregation
// property tests: a dataset with deliberately repeated
// configurations, all with a threads=1 row per implementation so
// every speedup baseline exists.
func randomDataset(seed int64, n int) []benchcsv.Record {
	rng := rand.New(rand.NewSource(seed))
	impls := []string{"coarse", "fine", "lockfree"}
	threads := []int{1, 2, 4, 8}
	records := make([]benchcsv.Record, 0, n+len(impls))
	for _, impl := range impls {
		records = append(records, rec(impl, "mixed", 1, 10000, 1+rng.Float64()*1e7, 0.1))
	}
	for i := 0; i < n; i++ {
		impl := impls[rng.Intn(len(impls))]
		records = append(records, rec(impl, "mixed", threads[rng.Intn(len(threads))], 10000, rng.Float64()*2e7, 0.1))
	}
	return records
}

func TestDerivationProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("speedup at the baseline is exactly 1", prop.ForAll(
		func(seed int64, n int) bool {
			tab := benchagg.Aggregate(randomDataset(seed, n), benchagg.Implementation, benchagg.Threads)
			curves, errs := SpeedupAll(tab)
			if len(errs) != 0 {
				return false
			}
			for _, c := range curves {
				r, ok := c.At(1)
				if !ok || r != 1.0 {
					return false
				}
			}
			return len(curves) == len(tab.Implementations())
		},
		gen.Int64(),
		gen.IntRange(0, 80),
	))

	properties.Property("pivot reproduces every aggregated cell", prop.ForAll(
		func(seed int64, n int) bool {
			tab := benchagg.Aggregate(randomDataset(seed, n), benchagg.Threads, benchagg.Implementation)
			g, err := Pivot(tab, benchagg.Threads, benchagg.Implementation)
			if err != nil {
				return false
			}
			for _, k := range tab.Keys {
				v, ok := g.Value(dimValue(k, benchagg.Threads), k.Implementation)
				if !ok || v != tab.Stats[k].Mean {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(0, 80),
	))

	properties.TestingRun(t)
}
