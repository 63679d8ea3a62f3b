// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"fmt"
	"strings"
)

// A NotFoundError reports that a dataset path does not exist. It is
// fatal: there is nothing to analyze.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("dataset %s does not exist", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// A SchemaError reports that a dataset does not conform to the results
// schema: a required column is absent, a cell cannot be parsed as its
// column's type, or a value violates a column constraint. It is fatal;
// a malformed dataset would poison every downstream statistic.
type SchemaError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SchemaError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// missingColumnsError builds the SchemaError for a header that lacks
// one or more required columns.
func missingColumnsError(fileName string, missing []string) *SchemaError {
	noun := "column"
	if len(missing) > 1 {
		noun = "columns"
	}
	return &SchemaError{
		FileName: fileName,
		Line:     1,
		Msg:      fmt.Sprintf("missing required %s %s", noun, strings.Join(missing, ", ")),
	}
}
