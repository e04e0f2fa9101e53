package render

import (
	"fmt"

	"github.com/mwiater/benjmark/internal/settings"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// groupWidth is the horizontal space shared by the bars of one size.
const groupWidth = 48

// Barplots writes one grouped bar plot per page of input sizes. Each group
// is an input size and holds one bar per key, in key order.
func (r Renderer) Barplots(keys []string, root string, s settings.Settings) ([]string, error) {
	all, sizes, unit, err := r.prepare(keys, root, s)
	if err != nil {
		return nil, err
	}
	colors, err := palette(len(all))
	if err != nil {
		return nil, err
	}

	barWidth := vg.Points(groupWidth / float64(len(all)))
	var paths []string
	for page, chunk := range paginate(sizes, s.BarsPerPlot()) {
		p := newPlot(s, unit)
		labels, err := sizeLabels(s, chunk)
		if err != nil {
			return nil, err
		}

		for i, ser := range all {
			values := make(plotter.Values, len(chunk))
			for j, size := range chunk {
				// A size missing for this key is drawn as an empty slot.
				if sum, ok := ser.lookup(size); ok {
					values[j] = unit.Convert(sum.Center)
				}
			}
			bars, err := plotter.NewBarChart(values, barWidth)
			if err != nil {
				return nil, fmt.Errorf("bar chart for %s: %w", ser.key, err)
			}
			bars.Color = colors[i]
			bars.LineStyle.Width = 0
			bars.Offset = barWidth*vg.Length(i) - barWidth*vg.Length(len(all)-1)/2
			p.Add(bars)
			p.Legend.Add(ser.key, bars)
		}
		p.Y.Min = 0
		p.NominalX(labels...)

		path := artifactPath(s, fmt.Sprintf("barplot_%d", page+1))
		if err := r.save(p, s, path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// paginate splits sizes into consecutive chunks of at most n entries.
func paginate(sizes []int64, n int) [][]int64 {
	if n < 1 {
		n = 1
	}
	var pages [][]int64
	for start := 0; start < len(sizes); start += n {
		end := min(start+n, len(sizes))
		pages = append(pages, sizes[start:end])
	}
	return pages
}
