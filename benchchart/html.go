// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"

	"golang.org/x/skipbench/internal/atomicfile"
)

// HTML renders every chart onto a single interactive index.html page.
type HTML struct {
	// FileName of the page within the output directory.
	// Zero means "index.html".
	FileName string
}

func (r HTML) Render(dir string, cs []*Chart) ([]string, error) {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, errors.Wrapf(err, "creating output directory %s failed", dir)
	}

	page := components.NewPage()
	page.PageTitle = "Skiplist Benchmark Results"
	for _, c := range cs {
		switch c.Kind {
		case Bar:
			page.AddCharts(barChart(c))
		default:
			page.AddCharts(lineChart(c))
		}
	}

	name := r.FileName
	if name == "" {
		name = "index.html"
	}
	path := filepath.Join(dir, name)
	err := atomicfile.Write(path, func(w io.Writer) error {
		return page.Render(w)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "rendering %s failed", path)
	}
	return []string{path}, nil
}

func lineChart(c *Chart) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(globalOptions(c)...)

	xs := xLevels(c)
	labels := make([]string, len(xs))
	for i, x := range xs {
		labels[i] = formatLevel(x)
	}
	line.SetXAxis(labels)

	for _, s := range c.Series {
		line.AddSeries(s.Label, lineData(xs, s.X, s.Y))
	}
	if c.Ideal != nil {
		line.AddSeries(c.Ideal.Label, lineData(xs, c.Ideal.X, c.Ideal.Y),
			charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}))
	}
	return line
}

func barChart(c *Chart) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(c)...)
	bar.SetXAxis(c.Categories)

	for _, s := range c.Series {
		data := make([]opts.BarData, len(s.Y))
		for i, v := range s.Y {
			if math.IsNaN(v) {
				continue // echarts shows a gap for a nil value
			}
			data[i].Value = v
		}
		bar.AddSeries(s.Label, data)
	}
	return bar
}

func globalOptions(c *Chart) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: c.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.YLabel}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	}
}

// xLevels returns the sorted union of x coordinates over the chart's
// series. The page draws every series against this shared category
// axis, leaving gaps where a series has no measurement.
func xLevels(c *Chart) []float64 {
	seen := make(map[float64]bool)
	var xs []float64
	add := func(s *Series) {
		for _, x := range s.X {
			if !seen[x] {
				seen[x] = true
				xs = append(xs, x)
			}
		}
	}
	for i := range c.Series {
		add(&c.Series[i])
	}
	if c.Ideal != nil {
		add(c.Ideal)
	}
	sort.Float64s(xs)
	return xs
}

func lineData(levels, x, y []float64) []opts.LineData {
	at := make(map[float64]float64, len(x))
	for i := range x {
		at[x[i]] = y[i]
	}
	data := make([]opts.LineData, len(levels))
	for i, lv := range levels {
		if v, ok := at[lv]; ok {
			data[i].Value = v
		}
	}
	return data
}

func formatLevel(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
