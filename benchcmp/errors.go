// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcmp

import "fmt"

// A BaselineMissingError reports that a speedup was requested for an
// implementation with no single-thread baseline row. It is
// recoverable: callers skip that implementation's curve, note it, and
// keep going.
type BaselineMissingError struct {
	Implementation string
}

func (e *BaselineMissingError) Error() string {
	return fmt.Sprintf("implementation %s has no threads=1 baseline", e.Implementation)
}

// An EmptyGroupError reports that a requested slice of the dataset
// holds no data, for example a workload-comparison table when no rows
// were measured at the comparison thread count. It is recoverable:
// the specific artifact is skipped, the rest of the pipeline
// continues.
type EmptyGroupError struct {
	Slice string
}

func (e *EmptyGroupError) Error() string {
	return "no data for " + e.Slice
}

// An AmbiguousCellError reports that pivoting saw two values for the
// same (row, column) pair. Aggregated input cannot produce this; it
// means a caller pivoted a table that was not built by the canonical
// aggregation step.
type AmbiguousCellError struct {
	Row, Col string
}

func (e *AmbiguousCellError) Error() string {
	return fmt.Sprintf("ambiguous cell (%s, %s): input is not aggregated by (row, column)", e.Row, e.Col)
}
