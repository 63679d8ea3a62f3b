// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcmp

import (
	"fmt"

	"golang.org/x/skipbench/benchagg"
)

// Peaks returns the implementation → mean throughput mapping from a
// table aggregated by implementation alone. The table is typically
// built from records restricted to one workload and one thread count
// beforehand, making this the peak-performance slice of the pivot.
func Peaks(t *benchagg.Table) map[string]float64 {
	requireDims(t, benchagg.Implementation)
	peaks := make(map[string]float64, t.Len())
	for _, k := range t.Keys {
		peaks[k.Implementation] = t.Stats[k].Mean
	}
	return peaks
}

// Ratio returns a/b, the "a is r times faster than b" figure. A zero
// denominator makes the ratio undefined: ok is false and the value
// must not be used. The caller renders an undefined ratio as "?";
// it never propagates an infinity or a division panic.
func Ratio(a, b float64) (r float64, ok bool) {
	if b == 0 {
		return 0, false
	}
	return a / b, true
}

// FormatRatio renders a ratio produced by Ratio, using "?" for an
// undefined one.
func FormatRatio(r float64, ok bool) string {
	if !ok {
		return "?"
	}
	return fmt.Sprintf("%.2fx", r)
}

// PeakRatios builds the full cross-implementation ratio grid from a
// table aggregated by implementation: cell (a, b) holds peak[a] /
// peak[b]. Undefined ratios are absent cells.
func PeakRatios(t *benchagg.Table) *Grid {
	peaks := Peaks(t)
	impls := t.Implementations()
	g := &Grid{
		RowDim: benchagg.Implementation,
		ColDim: benchagg.Implementation,
		Rows:   impls,
		Cols:   impls,
		cells:  make(map[gridKey]float64),
	}
	for _, a := range impls {
		for _, b := range impls {
			if r, ok := Ratio(peaks[a], peaks[b]); ok {
				g.cells[gridKey{a, b}] = r
			}
		}
	}
	return g
}
