// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbtest provides a database for testing.
package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"golang.org/x/skipbench/benchdb"
	_ "golang.org/x/skipbench/benchdb/sqlite3"
)

var dbCount int64

// NewDB makes a connection to an empty in-memory sqlite3 database.
// cleanup must be called when done with the testing database, instead
// of calling db.Close().
//
// Each call gets its own named in-memory database with a shared
// cache. A plain :memory: source would give every pooled connection a
// separate empty database.
func NewDB(t *testing.T) (*benchdb.DB, func()) {
	dsn := fmt.Sprintf("file:dbtest%d?mode=memory&cache=shared", atomic.AddInt64(&dbCount, 1))
	d, err := benchdb.OpenSQL("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	cleanup := func() { d.Close() }
	// Make sure the database really is empty.
	runs, err := d.CountRuns()
	if err != nil {
		cleanup()
		t.Fatal(err)
	}
	if runs != 0 {
		cleanup()
		t.Fatalf("found %d row(s) in Runs, want 0", runs)
	}
	return d, cleanup
}
