package render

import (
	"fmt"

	"github.com/mwiater/benjmark/internal/settings"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// intervalPoints pairs each plotted center with its confidence interval.
type intervalPoints struct {
	plotter.XYs
	plotter.YErrors
}

// Lineplot writes a single line plot with one line per key. The x axis is
// the input size and the y axis the configured statistic.
func (r Renderer) Lineplot(keys []string, root string, s settings.Settings) (string, error) {
	all, sizes, unit, err := r.prepare(keys, root, s)
	if err != nil {
		return "", err
	}
	colors, err := palette(len(all))
	if err != nil {
		return "", err
	}

	p := newPlot(s, unit)
	logScale := s.LogScale()
	if logScale {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	labels, err := sizeLabels(s, sizes)
	if err != nil {
		return "", err
	}
	ticks := make([]plot.Tick, len(sizes))
	for i, size := range sizes {
		ticks[i] = plot.Tick{Value: float64(size), Label: labels[i]}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)

	for i, ser := range all {
		pts := intervalPoints{}
		for _, pt := range ser.points {
			center := unit.Convert(pt.summary.Center)
			if logScale && center <= 0 {
				continue
			}
			pts.XYs = append(pts.XYs, plotter.XY{X: float64(pt.size), Y: center})
			pts.YErrors = append(pts.YErrors, struct{ Low, High float64 }{
				Low:  center - unit.Convert(pt.summary.Lo),
				High: unit.Convert(pt.summary.Hi) - center,
			})
		}
		if len(pts.XYs) == 0 {
			continue
		}

		line, scatter, err := plotter.NewLinePoints(pts.XYs)
		if err != nil {
			return "", fmt.Errorf("line for %s: %w", ser.key, err)
		}
		line.LineStyle.Color = colors[i]
		line.LineStyle.Width = vg.Points(1.5)
		scatter.GlyphStyle.Color = colors[i]
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(line, scatter)
		p.Legend.Add(ser.key, line, scatter)

		if s.ErrorBars() && drawableIntervals(pts, logScale) {
			bars, err := plotter.NewYErrorBars(pts)
			if err != nil {
				return "", fmt.Errorf("error bars for %s: %w", ser.key, err)
			}
			bars.LineStyle.Color = colors[i]
			p.Add(bars)
		}
	}

	path := artifactPath(s, "lineplot")
	if err := r.save(p, s, path); err != nil {
		return "", err
	}
	return path, nil
}

// drawableIntervals reports whether any interval has width and, on a log
// axis, every lower bound stays positive.
func drawableIntervals(pts intervalPoints, logScale bool) bool {
	wide := false
	for i, e := range pts.YErrors {
		if e.Low > 0 || e.High > 0 {
			wide = true
		}
		if logScale && pts.XYs[i].Y-e.Low <= 0 {
			return false
		}
	}
	return wide
}
