// internal/render/render.go
// Package render draws bar and line plots of the datasets found under a
// results root.
package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/mwiater/benjmark/internal/logging"
	"github.com/mwiater/benjmark/internal/results"
	"github.com/mwiater/benjmark/internal/settings"
	"github.com/mwiater/benjmark/internal/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/vg"
)

// Renderer loads datasets and saves plots. The zero value is not usable;
// callers outside tests use the package-level functions.
type Renderer struct {
	Load func(root string, keys []string) ([]results.Dataset, error)
	Save func(p *plot.Plot, width, height vg.Length, path string) error
}

var defaultRenderer = Renderer{Load: results.Load, Save: savePlot}

// RenderBarplots writes grouped bar plots for keys and returns their paths.
func RenderBarplots(keys []string, root string, s settings.Settings) ([]string, error) {
	return defaultRenderer.Barplots(keys, root, s)
}

// RenderLineplot writes one line plot for keys and returns its path.
func RenderLineplot(keys []string, root string, s settings.Settings) (string, error) {
	return defaultRenderer.Lineplot(keys, root, s)
}

func savePlot(p *plot.Plot, width, height vg.Length, path string) error {
	return p.Save(width, height, path)
}

// point is one summarized size of a series.
type point struct {
	size    int64
	summary stats.Summary
}

// series is the summarized dataset of one key.
type series struct {
	key    string
	points []point
}

func (s series) lookup(size int64) (stats.Summary, bool) {
	for _, p := range s.points {
		if p.size == size {
			return p.summary, true
		}
	}
	return stats.Summary{}, false
}

// prepare loads and summarizes the datasets named by keys.
func (r Renderer) prepare(keys []string, root string, s settings.Settings) ([]series, []int64, stats.Unit, error) {
	if err := s.Err(); err != nil {
		return nil, nil, stats.Unit{}, fmt.Errorf("settings: %w", err)
	}
	datasets, err := r.Load(root, keys)
	if err != nil {
		return nil, nil, stats.Unit{}, err
	}

	out := make([]series, 0, len(datasets))
	var maxNs float64
	for _, ds := range datasets {
		ser := series{key: ds.Key, points: make([]point, 0, len(ds.Points))}
		for _, p := range ds.Points {
			sum, err := stats.Summarize(p.Samples, s.Statistic(), s.Confidence())
			if err != nil {
				return nil, nil, stats.Unit{}, fmt.Errorf("summarize %s size %d: %w", ds.Key, p.Size, err)
			}
			for _, w := range sum.Warnings {
				logging.LogEvent("[RENDER] %s size %d: %v", ds.Key, p.Size, w)
			}
			if sum.Center > maxNs {
				maxNs = sum.Center
			}
			ser.points = append(ser.points, point{size: p.Size, summary: sum})
		}
		out = append(out, ser)
	}

	unit, err := stats.PickUnit(s.TimeUnit(), maxNs)
	if err != nil {
		return nil, nil, stats.Unit{}, err
	}
	return out, results.Sizes(datasets), unit, nil
}

// newPlot applies the labels shared by every plot kind.
func newPlot(s settings.Settings, unit stats.Unit) *plot.Plot {
	p := plot.New()
	p.Title.Text = s.Title()
	p.X.Label.Text = s.XLabel()
	p.Y.Label.Text = fmt.Sprintf("%s (%s)", s.YLabel(), unit.Label)
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Padding = vg.Millimeter
	return p
}

func sizeLabels(s settings.Settings, sizes []int64) ([]string, error) {
	labels := make([]string, len(sizes))
	for i, size := range sizes {
		label, err := settings.FormatSize(s.SizeFormat(), size)
		if err != nil {
			return nil, err
		}
		labels[i] = label
	}
	return labels, nil
}

// palette returns n colors from the qualitative Set1 scheme, cycling when
// there are more series than colors.
func palette(n int) ([]color.Color, error) {
	size := n
	if size < 3 {
		size = 3
	}
	if size > 9 {
		size = 9
	}
	p, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", size)
	if err != nil {
		return nil, err
	}
	base := p.Colors()
	colors := make([]color.Color, n)
	for i := range colors {
		colors[i] = base[i%len(base)]
	}
	return colors, nil
}

// artifactPath builds <outputdir>/<outputprefix>_<name>.<format>.
func artifactPath(s settings.Settings, name string) string {
	return filepath.Join(s.OutputDir(), fmt.Sprintf("%s_%s.%s", s.OutputPrefix(), name, s.Format()))
}

func (r Renderer) save(p *plot.Plot, s settings.Settings, path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	width := vg.Length(s.Width()) * vg.Inch
	height := vg.Length(s.Height()) * vg.Inch
	if err := r.Save(p, width, height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	logging.LogEvent("[RENDER] wrote %s", path)
	return nil
}
