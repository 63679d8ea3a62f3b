// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchdb records pipeline results in a SQL database, so that
// summary statistics and speedup curves from successive benchmark runs
// can be compared over time.
package benchdb

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"golang.org/x/skipbench/benchcmp"
	"golang.org/x/skipbench/benchsum"
)

// DB is a handle to a run-history database. It's safe for concurrent
// use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun     *sql.Stmt
	insertSummary *sql.Stmt
	insertSpeedup *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. This is used by the sqlite3 package to
// register a ConnectHook. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	RecordedAt DATETIME,
	Source VARCHAR(8192)
);
CREATE TABLE IF NOT EXISTS Summaries (
	RunID BIGINT UNSIGNED,
	Implementation VARCHAR(255),
	Samples BIGINT UNSIGNED,
	ThroughputMean DOUBLE,
	ThroughputStd DOUBLE,
	ThroughputMax DOUBLE,
	TimeMean DOUBLE,
	TimeMin DOUBLE,
	PRIMARY KEY (RunID, Implementation),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS Speedups (
	RunID BIGINT UNSIGNED,
	Implementation VARCHAR(255),
	Threads BIGINT UNSIGNED,
	Speedup DOUBLE,
	PRIMARY KEY (RunID, Implementation, Threads),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(RecordedAt, Source) VALUES (?, ?)")
	if err != nil {
		return err
	}
	db.insertSummary, err = db.sql.Prepare(
		"INSERT INTO Summaries(RunID, Implementation, Samples, ThroughputMean, ThroughputStd, ThroughputMax, TimeMean, TimeMin) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertSpeedup, err = db.sql.Prepare(
		"INSERT INTO Speedups(RunID, Implementation, Threads, Speedup) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// A Run is one pipeline invocation being recorded. Its rows become
// visible to readers only when Commit succeeds; an abandoned or
// failed run leaves no partial history behind.
type Run struct {
	// ID is the primary key of the run's row in Runs.
	ID int64

	db *DB
	tx *sql.Tx
}

// NewRun starts recording a run over the dataset named by source,
// usually the input file path. The caller must finish the run with
// Commit or discard it with Abort.
func (db *DB) NewRun(ctx context.Context, source string) (*Run, error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	res, err := tx.Stmt(db.insertRun).ExecContext(ctx, time.Now(), source)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	return &Run{ID: id, db: db, tx: tx}, nil
}

// InsertSummary adds one implementation's summary statistics to the
// run. An undefined statistic (NaN standard deviation of a
// single-trial group) is stored as NULL.
func (r *Run) InsertSummary(ctx context.Context, s *benchsum.ImplSummary) error {
	_, err := r.tx.Stmt(r.db.insertSummary).ExecContext(ctx,
		r.ID, s.Implementation, s.Trials,
		nullable(s.ThroughputMean), nullable(s.ThroughputStd), nullable(s.ThroughputMax),
		nullable(s.TimeMean), nullable(s.TimeMin))
	return err
}

// InsertSpeedup adds every point of one implementation's speedup
// curve to the run.
func (r *Run) InsertSpeedup(ctx context.Context, c *benchcmp.Curve) error {
	stmt := r.tx.Stmt(r.db.insertSpeedup)
	for i, threads := range c.Threads {
		if _, err := stmt.ExecContext(ctx, r.ID, c.Implementation, threads, c.Ratio[i]); err != nil {
			return err
		}
	}
	return nil
}

// Commit makes the run's rows permanent.
func (r *Run) Commit() error {
	return r.tx.Commit()
}

// Abort discards the run and everything inserted into it.
func (r *Run) Abort() error {
	return r.tx.Rollback()
}

// Summaries returns the summary rows recorded for a run, in
// implementation order. Statistics stored as NULL come back as NaN.
func (db *DB) Summaries(ctx context.Context, runID int64) ([]benchsum.ImplSummary, error) {
	rows, err := db.sql.QueryContext(ctx,
		"SELECT Implementation, Samples, ThroughputMean, ThroughputStd, ThroughputMax, TimeMean, TimeMin FROM Summaries WHERE RunID = ? ORDER BY Implementation", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sums []benchsum.ImplSummary
	for rows.Next() {
		var s benchsum.ImplSummary
		var mean, std, max, tMean, tMin sql.NullFloat64
		if err := rows.Scan(&s.Implementation, &s.Trials, &mean, &std, &max, &tMean, &tMin); err != nil {
			return nil, err
		}
		s.Name = benchsum.DisplayName(s.Implementation)
		s.ThroughputMean = stored(mean)
		s.ThroughputStd = stored(std)
		s.ThroughputMax = stored(max)
		s.TimeMean = stored(tMean)
		s.TimeMin = stored(tMin)
		sums = append(sums, s)
	}
	return sums, rows.Err()
}

// Speedups returns the speedup curves recorded for a run, one per
// implementation in implementation order.
func (db *DB) Speedups(ctx context.Context, runID int64) ([]*benchcmp.Curve, error) {
	rows, err := db.sql.QueryContext(ctx,
		"SELECT Implementation, Threads, Speedup FROM Speedups WHERE RunID = ? ORDER BY Implementation, Threads", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var curves []*benchcmp.Curve
	for rows.Next() {
		var impl string
		var threads int
		var ratio float64
		if err := rows.Scan(&impl, &threads, &ratio); err != nil {
			return nil, err
		}
		if len(curves) == 0 || curves[len(curves)-1].Implementation != impl {
			curves = append(curves, &benchcmp.Curve{Implementation: impl})
		}
		c := curves[len(curves)-1]
		c.Threads = append(c.Threads, threads)
		c.Ratio = append(c.Ratio, ratio)
	}
	return curves, rows.Err()
}

// stored converts a scanned statistic back to its in-memory form:
// NULL means the statistic was undefined.
func stored(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

// CountRuns returns the number of recorded runs.
func (db *DB) CountRuns() (int, error) {
	var count int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Runs").Scan(&count)
	return count, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertRun, db.insertSummary, db.insertSpeedup} {
		if stmt == nil {
			continue
		}
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}

// nullable converts a statistic to its stored form: non-finite values
// have no meaningful representation and become NULL.
func nullable(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
