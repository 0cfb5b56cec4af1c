// SPDX-License-Identifier: MIT

package convergence

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// errorFloor keeps exact solves plottable on the log axis.
const errorFloor = 1e-16

// ErrNoSeries is returned when a report has nothing at the requested size.
var ErrNoSeries = errors.New("convergence: no series for size")

// Chart builds an error-vs-budget chart, one line per solver, for one size.
func Chart(r *Report, size int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s, size %d", r.Problem, size)
	p.X.Label.Text = "iteration budget"
	p.Y.Label.Text = "‖x* − x‖"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	n := 0
	for _, s := range r.Series {
		if s.Size != size {
			continue
		}
		pts := make(plotter.XYs, len(s.Samples))
		for i, smp := range s.Samples {
			pts[i].X = float64(smp.Budget)
			pts[i].Y = math.Max(smp.Error, errorFloor)
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("Chart: %s: %w", s.Method, err)
		}
		line.Color = plotutil.Color(n)
		line.Dashes = plotutil.Dashes(n)
		p.Add(line)
		p.Legend.Add(s.Method, line)
		n++
	}
	if n == 0 {
		return nil, fmt.Errorf("Chart: %d: %w", size, ErrNoSeries)
	}

	return p, nil
}

// WriteChart renders the chart for one size in the given format
// ("png", "svg", "pdf", ...) to w.
func WriteChart(w io.Writer, r *Report, size int, format string) error {
	p, err := Chart(r, size)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, format)
	if err != nil {
		return fmt.Errorf("WriteChart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("WriteChart: %w", err)
	}

	return nil
}

// SaveChart writes the chart for one size to path; the extension picks the format.
func SaveChart(path string, r *Report, size int) error {
	p, err := Chart(r, size)
	if err != nil {
		return err
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
