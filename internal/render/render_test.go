package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mwiater/benjmark/internal/results"
	"github.com/mwiater/benjmark/internal/settings"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// writeFixture lays out measurements for each key at the given sizes.
func writeFixture(t *testing.T, root string, keys []string, sizes []int64) {
	t.Helper()
	for k, key := range keys {
		for _, size := range sizes {
			samples := make([]float64, 7)
			for i := range samples {
				samples[i] = float64((k+1)*int(size)*1000 + i)
			}
			m := results.Measurement{Key: key, Size: size, SamplesNs: samples}
			path := filepath.Join(root, key, fmt.Sprintf("%d.json", size))
			if err := results.Write(path, m); err != nil {
				t.Fatalf("write fixture: %v", err)
			}
		}
	}
}

type savedPlot struct {
	plot *plot.Plot
	path string
}

func recordingRenderer(saved *[]savedPlot) Renderer {
	return Renderer{
		Load: results.Load,
		Save: func(p *plot.Plot, width, height vg.Length, path string) error {
			*saved = append(*saved, savedPlot{plot: p, path: path})
			return nil
		},
	}
}

func TestBarplotsPagesSizesAndLabels(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	keys := []string{"cpp", "clojure"}
	writeFixture(t, root, keys, []int64{10, 20, 30})

	s := settings.Default.
		Set("outputprefix", "tmpfib").
		Set("sizeformat", "{:d} points").
		Set("xlabel", "Nth number").
		Set("outputdir", out).
		Set("barsperplot", 2)

	var saved []savedPlot
	paths, err := recordingRenderer(&saved).Barplots(keys, root, s)
	if err != nil {
		t.Fatalf("Barplots error: %v", err)
	}

	want := []string{
		filepath.Join(out, "tmpfib_barplot_1.png"),
		filepath.Join(out, "tmpfib_barplot_2.png"),
	}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	if len(saved) != 2 {
		t.Fatalf("expected 2 saved plots, got %d", len(saved))
	}
	first := saved[0].plot
	if first.X.Label.Text != "Nth number" {
		t.Fatalf("x label = %q", first.X.Label.Text)
	}
	if !strings.HasPrefix(first.Y.Label.Text, "Time (") {
		t.Fatalf("y label = %q", first.Y.Label.Text)
	}
	ticks := first.X.Tick.Marker.Ticks(first.X.Min, first.X.Max)
	var labels []string
	for _, tick := range ticks {
		if tick.Label != "" {
			labels = append(labels, tick.Label)
		}
	}
	if !reflect.DeepEqual(labels, []string{"10 points", "20 points"}) {
		t.Fatalf("tick labels = %v", labels)
	}
}

func TestLineplotSingleArtifact(t *testing.T) {
	root := t.TempDir()
	keys := []string{"cpp", "clojure"}
	writeFixture(t, root, keys, []int64{10, 20})

	s := settings.Default.Set("outputprefix", "tmpfib").Set("outputdir", t.TempDir()).Set("format", "svg").Set("logscale", true)

	var saved []savedPlot
	path, err := recordingRenderer(&saved).Lineplot(keys, root, s)
	if err != nil {
		t.Fatalf("Lineplot error: %v", err)
	}
	if filepath.Base(path) != "tmpfib_lineplot.svg" {
		t.Fatalf("path = %s", path)
	}
	if len(saved) != 1 {
		t.Fatalf("expected one plot, got %d", len(saved))
	}
	if _, ok := saved[0].plot.Y.Scale.(plot.LogScale); !ok {
		t.Fatalf("expected log scale, got %T", saved[0].plot.Y.Scale)
	}
}

func TestRenderPropagatesErrors(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, []string{"cpp"}, []int64{10})

	var saved []savedPlot
	r := recordingRenderer(&saved)
	s := settings.Default.Set("outputdir", t.TempDir())

	if _, err := r.Barplots([]string{"cpp", "clojure"}, root, s); !errors.Is(err, results.ErrDatasetNotFound) {
		t.Fatalf("expected ErrDatasetNotFound, got %v", err)
	}
	if _, err := r.Lineplot([]string{"cpp"}, filepath.Join(root, "missing"), s); !errors.Is(err, results.ErrRootNotFound) {
		t.Fatalf("expected ErrRootNotFound, got %v", err)
	}
	bad := s.Set("no-such-option", 1)
	if _, err := r.Lineplot([]string{"cpp"}, root, bad); !errors.Is(err, settings.ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}

	failing := Renderer{Load: results.Load, Save: func(*plot.Plot, vg.Length, vg.Length, string) error {
		return errors.New("disk full")
	}}
	if _, err := failing.Lineplot([]string{"cpp"}, root, s); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected save error, got %v", err)
	}
	if len(saved) != 0 {
		t.Fatalf("nothing should have been saved, got %d", len(saved))
	}
}

func TestRenderWritesArtifactsWithPrefix(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	keys := []string{"cpp", "clojure"}
	writeFixture(t, root, keys, []int64{5, 10, 15})

	s := settings.Default.
		Set("outputprefix", "tmpfib").
		Set("sizeformat", "{:d} points").
		Set("xlabel", "Nth number").
		Set("outputdir", out)

	bars, err := RenderBarplots(keys, root, s)
	if err != nil {
		t.Fatalf("RenderBarplots error: %v", err)
	}
	line, err := RenderLineplot(keys, root, s)
	if err != nil {
		t.Fatalf("RenderLineplot error: %v", err)
	}
	if len(bars) < 1 {
		t.Fatal("expected at least one bar plot")
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	var barCount, lineCount int
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "tmpfib") {
			t.Fatalf("artifact %s lacks the configured prefix", name)
		}
		switch {
		case strings.Contains(name, "_barplot_"):
			barCount++
		case strings.Contains(name, "_lineplot"):
			lineCount++
		}
	}
	if barCount < 1 || lineCount != 1 {
		t.Fatalf("bar plots = %d, line plots = %d", barCount, lineCount)
	}
	if filepath.Dir(line) != out {
		t.Fatalf("line plot written to %s", line)
	}
}

func TestPaginate(t *testing.T) {
	got := paginate([]int64{1, 2, 3, 4, 5}, 2)
	want := [][]int64{{1, 2}, {3, 4}, {5}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("paginate = %v, want %v", got, want)
	}
	if got := paginate(nil, 3); len(got) != 0 {
		t.Fatalf("expected no pages, got %v", got)
	}
}

func TestPaletteCycles(t *testing.T) {
	colors, err := palette(11)
	if err != nil {
		t.Fatalf("palette error: %v", err)
	}
	if len(colors) != 11 || colors[0] != colors[9] {
		t.Fatalf("expected 11 colors cycling after 9")
	}
	two, err := palette(2)
	if err != nil || len(two) != 2 {
		t.Fatalf("palette(2) = %v, %v", two, err)
	}
}
