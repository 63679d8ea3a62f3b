// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"golang.org/x/skipbench/internal/atomicfile"
)

// PNG renders each chart to its own <name>.png file.
type PNG struct {
	// Width and Height of each image. Zero means 10x6 inches.
	Width, Height vg.Length

	// DPI of each image. Zero means 150.
	DPI int
}

func (r PNG) Render(dir string, charts []*Chart) ([]string, error) {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, errors.Wrapf(err, "creating output directory %s failed", dir)
	}

	var paths []string
	for _, c := range charts {
		path := filepath.Join(dir, c.Name+".png")
		if err := r.render1(path, c); err != nil {
			return paths, errors.Wrapf(err, "rendering %s failed", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (r PNG) render1(path string, c *Chart) error {
	pl := plot.New()
	pl.Title.Text = c.Title
	pl.X.Label.Text = c.XLabel
	pl.Y.Label.Text = c.YLabel
	pl.Legend.Top = true
	pl.Legend.Left = true
	pl.Legend.Padding = 1 * vg.Millimeter
	pl.BackgroundColor = color.White

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	if c.LogX {
		pl.X.Scale = plot.LogScale{}
		pl.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	colors := seriesColors(len(c.Series))

	switch c.Kind {
	case Bar:
		if err := addBars(pl, c, colors); err != nil {
			return err
		}
	default:
		if err := addLines(pl, c, colors); err != nil {
			return err
		}
	}

	width, height := r.Width, r.Height
	if width == 0 {
		width = 10 * vg.Inch
	}
	if height == 0 {
		height = 6 * vg.Inch
	}
	dpi := r.DPI
	if dpi == 0 {
		dpi = 150
	}

	canvas := vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(width, height),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(color.White),
	)}
	pl.Draw(draw.New(canvas))

	return atomicfile.Write(path, func(w io.Writer) error {
		_, err := canvas.WriteTo(w)
		return err
	})
}

func addLines(pl *plot.Plot, c *Chart, colors []color.Color) error {
	for i, s := range c.Series {
		xys := make(plotter.XYs, len(s.X))
		for j := range s.X {
			xys[j].X = s.X[j]
			xys[j].Y = s.Y[j]
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return err
		}
		line.Color = colors[i%len(colors)]
		line.Width = vg.Points(1.5)
		points.Color = colors[i%len(colors)]
		pl.Add(line, points)
		pl.Legend.Add(s.Label, line, points)
	}

	if c.Ideal != nil {
		xys := make(plotter.XYs, len(c.Ideal.X))
		for j := range c.Ideal.X {
			xys[j].X = c.Ideal.X[j]
			xys[j].Y = c.Ideal.Y[j]
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = color.Gray{128}
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		pl.Add(line)
		pl.Legend.Add(c.Ideal.Label, line)
	}
	return nil
}

func addBars(pl *plot.Plot, c *Chart, colors []color.Color) error {
	barWidth := vg.Points(18)
	barSpacing := vg.Points(3)
	// Total width of one category's bar group, center to center.
	groupWidth := (barWidth + barSpacing) * vg.Length(len(c.Series)-1)

	for i, s := range c.Series {
		values := make(plotter.Values, len(s.Y))
		for j, v := range s.Y {
			// A missing cell draws as a zero-height bar.
			if !math.IsNaN(v) {
				values[j] = v
			}
		}
		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return err
		}
		bars.Offset = (barWidth+barSpacing)*vg.Length(i) - groupWidth/2
		bars.Color = colors[i%len(colors)]
		bars.LineStyle.Width = 0
		pl.Add(bars)
		pl.Legend.Add(s.Label, bars)
	}
	pl.NominalX(c.Categories...)
	return nil
}

// seriesColors picks a qualitative palette sized for n series. Brewer
// palettes are defined for three colors and up, so small charts share
// the three-color palette.
func seriesColors(n int) []color.Color {
	size := n
	if size < 3 {
		size = 3
	}
	pal, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", size)
	if err != nil {
		return []color.Color{color.Black}
	}
	return pal.Colors()
}
